// Package vault provisions the sample key vault and manages its access
// policies.
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/Azure-Samples/key-vault-go-storage-accounts/names"
)

// Config is a structure to store vault provisioner configuration.
type Config struct {
	SubscriptionID string
	TenantID       string
	ResourceGroup  string
	Location       string

	// VaultName selects an existing vault. When empty a new vault with a
	// random unique name is created.
	VaultName string

	// ClientObjectID is the service principal object id granted full
	// key/secret/certificate/storage permissions on newly created vaults.
	ClientObjectID string
}

// Provisioner ensures the sample vault exists and grants access policies.
// The vault reference is memoized: it is resolved at most once per process
// and identifiers never change during a run.
//
// Not safe for concurrent use; the samples are strictly sequential.
type Provisioner struct {
	logger log.Logger
	cfg    Config
	client *armkeyvault.VaultsClient

	vault *armkeyvault.Vault
}

// New creates a vault provisioner using the given management-plane
// credential, normally the sample's service principal.
func New(logger log.Logger, c Config, credential azcore.TokenCredential, options *arm.ClientOptions) (*Provisioner, error) {
	client, err := armkeyvault.NewVaultsClient(c.SubscriptionID, credential, options)
	if err != nil {
		return nil, fmt.Errorf("create vaults client, %w", err)
	}

	return &Provisioner{logger: logger, cfg: c, client: client}, nil
}

// Ensure returns the sample vault, creating or fetching it on first call.
// Subsequent calls return the cached reference without any network call.
func (p *Provisioner) Ensure(ctx context.Context) (*armkeyvault.Vault, error) {
	if p.vault != nil {
		return p.vault, nil
	}

	if p.cfg.VaultName != "" {
		resp, err := p.client.Get(ctx, p.cfg.ResourceGroup, p.cfg.VaultName, nil)
		if err != nil {
			return nil, fmt.Errorf("get vault %s, %w", p.cfg.VaultName, err)
		}

		p.vault = &resp.Vault
		return p.vault, nil
	}

	vaultName := names.New("vault", "-")
	level.Info(p.logger).Log("msg", "creating vault", "vault", vaultName, "resourceGroup", p.cfg.ResourceGroup)

	parameters := armkeyvault.VaultCreateOrUpdateParameters{
		Location: to.Ptr(p.cfg.Location),
		Properties: &armkeyvault.VaultProperties{
			TenantID: to.Ptr(p.cfg.TenantID),
			SKU: &armkeyvault.SKU{
				Family: to.Ptr(armkeyvault.SKUFamilyA),
				Name:   to.Ptr(armkeyvault.SKUNameStandard),
			},
			AccessPolicies: []*armkeyvault.AccessPolicyEntry{
				fullAccessPolicy(p.cfg.TenantID, p.cfg.ClientObjectID),
			},
			EnabledForDeployment:         to.Ptr(true),
			EnabledForDiskEncryption:     to.Ptr(true),
			EnabledForTemplateDeployment: to.Ptr(true),
		},
	}

	poller, err := p.client.BeginCreateOrUpdate(ctx, p.cfg.ResourceGroup, vaultName, parameters, nil)
	if err != nil {
		return nil, fmt.Errorf("create vault %s, %w", vaultName, err)
	}

	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create vault %s, %w", vaultName, err)
	}

	p.vault = &resp.Vault
	return p.vault, nil
}

// GrantAccess appends a full-permission access policy for the given
// principal and persists it. The persisted policy list is built from a copy
// of the cached vault; the cached reference is only replaced by the service
// response on success, so a failed persist leaves no local drift.
func (p *Provisioner) GrantAccess(ctx context.Context, objectID string) error {
	if p.vault == nil {
		return errors.New("no vault has been provisioned")
	}
	if objectID == "" {
		return errors.New("objectID cannot be empty")
	}

	level.Info(p.logger).Log("msg", "granting vault access", "vault", *p.vault.Name, "oid", objectID)

	properties := *p.vault.Properties
	policies := make([]*armkeyvault.AccessPolicyEntry, len(properties.AccessPolicies), len(properties.AccessPolicies)+1)
	copy(policies, properties.AccessPolicies)
	properties.AccessPolicies = append(policies, fullAccessPolicy(p.cfg.TenantID, objectID))

	parameters := armkeyvault.VaultCreateOrUpdateParameters{
		Location:   p.vault.Location,
		Properties: &properties,
	}

	poller, err := p.client.BeginCreateOrUpdate(ctx, p.cfg.ResourceGroup, *p.vault.Name, parameters, nil)
	if err != nil {
		return fmt.Errorf("update vault access policies, %w", err)
	}

	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return fmt.Errorf("update vault access policies, %w", err)
	}

	p.vault = &resp.Vault
	return nil
}

// VaultURL returns the data-plane URL of the provisioned vault, or empty
// before Ensure has succeeded.
func (p *Provisioner) VaultURL() string {
	if p.vault == nil || p.vault.Properties == nil || p.vault.Properties.VaultURI == nil {
		return ""
	}

	return *p.vault.Properties.VaultURI
}

// VaultName returns the resource name of the provisioned vault, or empty
// before Ensure has succeeded.
func (p *Provisioner) VaultName() string {
	if p.vault == nil || p.vault.Name == nil {
		return ""
	}

	return *p.vault.Name
}

func fullAccessPolicy(tenantID, objectID string) *armkeyvault.AccessPolicyEntry {
	return &armkeyvault.AccessPolicyEntry{
		TenantID:    to.Ptr(tenantID),
		ObjectID:    to.Ptr(objectID),
		Permissions: allPermissions(),
	}
}

// allPermissions enumerates every key, secret, certificate and storage
// permission the management API defines.
func allPermissions() *armkeyvault.Permissions {
	permissions := &armkeyvault.Permissions{}

	for _, v := range armkeyvault.PossibleKeyPermissionsValues() {
		permissions.Keys = append(permissions.Keys, to.Ptr(v))
	}
	for _, v := range armkeyvault.PossibleSecretPermissionsValues() {
		permissions.Secrets = append(permissions.Secrets, to.Ptr(v))
	}
	for _, v := range armkeyvault.PossibleCertificatePermissionsValues() {
		permissions.Certificates = append(permissions.Certificates, to.Ptr(v))
	}
	for _, v := range armkeyvault.PossibleStoragePermissionsValues() {
		permissions.Storage = append(permissions.Storage, to.Ptr(v))
	}

	return permissions
}
