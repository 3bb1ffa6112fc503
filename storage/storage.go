// Package storage drives a cloud storage account through the managed
// lifecycle: create, grant the vault's service principal the key-operator
// role, register with the vault for key rotation, rotate and deregister.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"

	"github.com/Azure-Samples/key-vault-go-storage-accounts/auth"
	"github.com/Azure-Samples/key-vault-go-storage-accounts/keyvault"
	"github.com/Azure-Samples/key-vault-go-storage-accounts/names"
	"github.com/Azure-Samples/key-vault-go-storage-accounts/vault"
)

const (
	// keyVaultServicePrincipalID is the object id of the Azure Key Vault
	// first-party service principal, the identity that rotates keys on
	// registered accounts.
	keyVaultServicePrincipalID = "93c27d83-f79b-4cb2-8dd4-4aa716542e74"

	// keyOperatorRoleName must be assigned to the Key Vault service
	// principal on a storage account before the vault will accept its
	// registration.
	keyOperatorRoleName = "Storage Account Key Operator Service Role"

	armScope = "https://management.azure.com/.default"

	activeKeyName      = "key1"
	regenerationPeriod = "P30D"
)

// Config is a structure to store storage orchestrator configuration.
type Config struct {
	SubscriptionID string
	ResourceGroup  string
	Location       string

	// AccountName seeds the orchestrator with an already-registered
	// account. AddAccount always generates a fresh name.
	AccountName string
}

// UserPrincipal is the interactively authenticated user. Registration and
// key regeneration must run under user credentials: the vault requires the
// caller to hold the storage account's own keys, a capability service
// principals are deliberately denied.
type UserPrincipal interface {
	Token(ctx context.Context, scopes ...string) (azcore.AccessToken, error)
	Identity() *auth.UserIdentity
	Credential() azcore.TokenCredential
}

// Options overrides SDK client construction, mainly for tests.
type Options struct {
	ARM      *arm.ClientOptions
	KeyVault *keyvault.ClientOptions
}

// AccountDetail is the result of a list-then-fetch round trip.
type AccountDetail struct {
	Name       string
	ResourceID string
}

// Orchestrator owns the single sample storage account and its vault
// registration. State advances in call order: AddAccount must complete
// before UpdateAccount, RegenerateKey or DeleteAccount mean anything; no
// runtime guard enforces the ordering beyond the registered name check.
//
// Not safe for concurrent use; the samples are strictly sequential.
type Orchestrator struct {
	logger log.Logger
	cfg    Config
	user   UserPrincipal
	vaults *vault.Provisioner
	spCred azcore.TokenCredential
	opts   Options

	accountName string
}

// New creates a storage orchestrator. spCred is the sample's service
// principal credential, used for vault data-plane calls that do not touch
// account keys.
func New(logger log.Logger, c Config, user UserPrincipal, vaults *vault.Provisioner, spCred azcore.TokenCredential, opts *Options) *Orchestrator {
	o := &Orchestrator{
		logger:      logger,
		cfg:         c,
		user:        user,
		vaults:      vaults,
		spCred:      spCred,
		accountName: c.AccountName,
	}
	if opts != nil {
		o.opts = *opts
	}

	return o
}

// AccountName returns the name of the account the orchestrator manages, or
// empty before AddAccount has run with no configured name.
func (o *Orchestrator) AccountName() string {
	return o.accountName
}

// AddAccount creates a storage account, grants the Key Vault service
// principal the key-operator role on it, grants the authenticated user
// access to the vault, and registers the account with the vault for
// managed rotation of key1 every 30 days.
//
// Role assignments propagate with some delay; a registration racing the
// propagation fails with an authorization error and is not retried here.
func (o *Orchestrator) AddAccount(ctx context.Context) error {
	// Authenticate the user up front; this both triggers the device-code
	// prompt once and caches the identity needed for the vault grant.
	if _, err := o.user.Token(ctx, armScope); err != nil {
		return err
	}

	userCred := o.user.Credential()
	accountName := names.New("sa", "")

	level.Info(o.logger).Log("msg", "creating storage account", "account", accountName)

	accounts, err := armstorage.NewAccountsClient(o.cfg.SubscriptionID, userCred, o.opts.ARM)
	if err != nil {
		return fmt.Errorf("create accounts client, %w", err)
	}

	poller, err := accounts.BeginCreate(ctx, o.cfg.ResourceGroup, accountName, armstorage.AccountCreateParameters{
		Location: to.Ptr(o.cfg.Location),
		Kind:     to.Ptr(armstorage.KindStorage),
		SKU:      &armstorage.SKU{Name: to.Ptr(armstorage.SKUNameStandardRAGRS)},
	}, nil)
	if err != nil {
		return fmt.Errorf("create storage account %s, %w", accountName, err)
	}

	created, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return fmt.Errorf("create storage account %s, %w", accountName, err)
	}

	level.Info(o.logger).Log("msg", "granting key vault the key operator role", "account", accountName)

	roleID, err := o.findRoleDefinition(ctx, userCred, keyOperatorRoleName)
	if err != nil {
		return err
	}

	assignments, err := armauthorization.NewRoleAssignmentsClient(o.cfg.SubscriptionID, userCred, o.opts.ARM)
	if err != nil {
		return fmt.Errorf("create role assignments client, %w", err)
	}

	_, err = assignments.Create(ctx, *created.ID, uuid.New().String(), armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			RoleDefinitionID: to.Ptr(roleID),
			PrincipalID:      to.Ptr(keyVaultServicePrincipalID),
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("assign key operator role, %w", err)
	}

	if _, err := o.vaults.Ensure(ctx); err != nil {
		return err
	}

	// Registration runs as the user, so the user needs vault access too.
	identity := o.user.Identity()
	if identity == nil {
		return errors.New("no authenticated user identity available")
	}
	if err := o.vaults.GrantAccess(ctx, identity.ObjectID); err != nil {
		return err
	}

	level.Info(o.logger).Log("msg", "registering storage account with vault", "account", accountName, "vault", o.vaults.VaultName())

	kv, err := o.vaultClient(userCred)
	if err != nil {
		return err
	}

	enabled := true
	_, err = kv.SetStorageAccount(ctx, accountName, keyvault.StorageAccountCreateParameters{
		ResourceID:         *created.ID,
		ActiveKeyName:      activeKeyName,
		AutoRegenerateKey:  true,
		RegenerationPeriod: regenerationPeriod,
		Attributes:         &keyvault.StorageAccountAttributes{Enabled: &enabled},
	})
	if err != nil {
		return fmt.Errorf("register storage account with vault, %w", err)
	}

	o.accountName = accountName
	return nil
}

// UpdateAccount switches the active key to key2 and disables automatic
// regeneration. The account must already be registered.
func (o *Orchestrator) UpdateAccount(ctx context.Context) error {
	kv, err := o.vaultClient(o.spCred)
	if err != nil {
		return err
	}

	level.Info(o.logger).Log("msg", "updating storage account active key", "account", o.accountName)

	if _, err := kv.UpdateStorageAccount(ctx, o.accountName, keyvault.StorageAccountUpdateParameters{
		ActiveKeyName: "key2",
	}); err != nil {
		return fmt.Errorf("update active key, %w", err)
	}

	level.Info(o.logger).Log("msg", "disabling automatic key regeneration", "account", o.accountName)

	if _, err := kv.UpdateStorageAccount(ctx, o.accountName, keyvault.StorageAccountUpdateParameters{
		AutoRegenerateKey: to.Ptr(false),
	}); err != nil {
		return fmt.Errorf("disable key regeneration, %w", err)
	}

	return nil
}

// RegenerateKey rotates exactly the named key. Runs under user credentials
// for the same reason registration does.
func (o *Orchestrator) RegenerateKey(ctx context.Context, keyName string) error {
	kv, err := o.vaultClient(o.user.Credential())
	if err != nil {
		return err
	}

	level.Info(o.logger).Log("msg", "regenerating storage account key", "account", o.accountName, "key", keyName)

	if _, err := kv.RegenerateStorageAccountKey(ctx, o.accountName, keyName); err != nil {
		return fmt.Errorf("regenerate key %s, %w", keyName, err)
	}

	return nil
}

// ListAccounts lists up to maxResults registered accounts and re-fetches
// full details per parsed identifier.
func (o *Orchestrator) ListAccounts(ctx context.Context, maxResults int32) ([]AccountDetail, error) {
	kv, err := o.vaultClient(o.spCred)
	if err != nil {
		return nil, err
	}

	items, err := kv.GetStorageAccounts(ctx, maxResults)
	if err != nil {
		return nil, fmt.Errorf("list storage accounts, %w", err)
	}

	details := make([]AccountDetail, 0, len(items))

	for _, item := range items {
		id, err := keyvault.ParseStorageAccountID(item.ID)
		if err != nil {
			return nil, err
		}

		bundle, err := kv.ForVault(id.VaultURL).GetStorageAccount(ctx, id.Name)
		if err != nil {
			return nil, fmt.Errorf("get storage account %s, %w", id.Name, err)
		}

		level.Info(o.logger).Log("msg", "managed storage account", "name", id.Name, "resourceID", bundle.ResourceID)
		details = append(details, AccountDetail{Name: id.Name, ResourceID: bundle.ResourceID})
	}

	return details, nil
}

// DeleteAccount removes the registration from the vault. The underlying
// cloud storage account is not deleted.
func (o *Orchestrator) DeleteAccount(ctx context.Context) error {
	kv, err := o.vaultClient(o.spCred)
	if err != nil {
		return err
	}

	level.Info(o.logger).Log("msg", "deleting storage account from vault", "account", o.accountName)

	if _, err := kv.DeleteStorageAccount(ctx, o.accountName); err != nil {
		return fmt.Errorf("delete storage account registration, %w", err)
	}

	return nil
}

func (o *Orchestrator) vaultClient(cred azcore.TokenCredential) (*keyvault.Client, error) {
	vaultURL := o.vaults.VaultURL()
	if vaultURL == "" {
		return nil, errors.New("no vault has been provisioned")
	}

	return keyvault.NewClient(vaultURL, cred, o.opts.KeyVault)
}

func (o *Orchestrator) findRoleDefinition(ctx context.Context, cred azcore.TokenCredential, roleName string) (string, error) {
	definitions, err := armauthorization.NewRoleDefinitionsClient(cred, o.opts.ARM)
	if err != nil {
		return "", fmt.Errorf("create role definitions client, %w", err)
	}

	filter := fmt.Sprintf("roleName eq '%s'", roleName)
	pager := definitions.NewListPager("/", &armauthorization.RoleDefinitionsClientListOptions{Filter: to.Ptr(filter)})

	page, err := pager.NextPage(ctx)
	if err != nil {
		return "", fmt.Errorf("list role definitions, %w", err)
	}
	if len(page.Value) == 0 || page.Value[0].ID == nil {
		return "", fmt.Errorf("role definition %q not found", roleName)
	}

	return *page.Value[0].ID, nil
}
