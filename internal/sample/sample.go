// Package sample wires the managed storage account walkthrough together: a
// device-code authenticated user, a provisioned vault, a storage account
// registered for key rotation, and SAS definitions exercised against blob
// storage.
package sample

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/go-kit/kit/log"

	"github.com/Azure-Samples/key-vault-go-storage-accounts/auth"
	"github.com/Azure-Samples/key-vault-go-storage-accounts/keyvault"
	"github.com/Azure-Samples/key-vault-go-storage-accounts/sas"
	"github.com/Azure-Samples/key-vault-go-storage-accounts/storage"
	"github.com/Azure-Samples/key-vault-go-storage-accounts/vault"
)

// Sample is the managed storage account walkthrough.
type Sample struct {
	logger log.Logger
	cfg    Config

	runner   *Runner
	user     *auth.UserAuthorizer
	vaults   *vault.Provisioner
	accounts *storage.Orchestrator
	spCred   azcore.TokenCredential
}

func New(logger log.Logger, c Config) (*Sample, error) {
	spCred, err := azidentity.NewClientSecretCredential(c.TenantID, c.ClientID, c.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("create service principal credential, %w", err)
	}

	user, err := auth.New(logger, auth.Config{TenantID: c.TenantID})
	if err != nil {
		return nil, err
	}

	vaults, err := vault.New(logger, vault.Config{
		SubscriptionID: c.SubscriptionID,
		TenantID:       c.TenantID,
		ResourceGroup:  c.ResourceGroup,
		Location:       c.Location,
		VaultName:      c.VaultName,
		ClientObjectID: c.ClientOID,
	}, spCred, nil)
	if err != nil {
		return nil, err
	}

	accounts := storage.New(logger, storage.Config{
		SubscriptionID: c.SubscriptionID,
		ResourceGroup:  c.ResourceGroup,
		Location:       c.Location,
		AccountName:    c.AccountName,
	}, user, vaults, spCred, nil)

	return &Sample{
		logger:   logger,
		cfg:      c,
		runner:   NewRunner(logger, c, spCred, nil),
		user:     user,
		vaults:   vaults,
		accounts: accounts,
		spCred:   spCred,
	}, nil
}

// Run walks through the whole managed storage account lifecycle.
func (s *Sample) Run(ctx context.Context) error {
	steps := []Step{
		{Name: "add storage account", Run: s.accounts.AddAccount},
		{Name: "update storage account", Run: s.accounts.UpdateAccount},
		{Name: "regenerate storage account key", Run: func(ctx context.Context) error {
			return s.accounts.RegenerateKey(ctx, "key1")
		}},
		{Name: "list storage accounts", Run: func(ctx context.Context) error {
			_, err := s.accounts.ListAccounts(ctx, 5)
			return err
		}},
		{Name: "create account sas definition", Run: func(ctx context.Context) error {
			o, err := s.definitions()
			if err != nil {
				return err
			}
			_, err = o.CreateAccountDefinition(ctx)
			return err
		}},
		{Name: "create blob sas definition", Run: func(ctx context.Context) error {
			o, err := s.definitions()
			if err != nil {
				return err
			}
			_, err = o.CreateBlobDefinition(ctx)
			return err
		}},
		{Name: "list sas definitions", Run: func(ctx context.Context) error {
			o, err := s.definitions()
			if err != nil {
				return err
			}
			_, err = o.ListDefinitions(ctx, 5)
			return err
		}},
		{Name: "delete storage account", Run: s.accounts.DeleteAccount},
	}

	return s.runner.Execute(ctx, steps...)
}

// definitions builds the SAS orchestrator. It needs the vault and the
// registered account, so it cannot be built before the add step has run.
func (s *Sample) definitions() (*sas.Orchestrator, error) {
	vaultURL := s.vaults.VaultURL()
	if vaultURL == "" {
		return nil, errors.New("no vault has been provisioned")
	}
	accountName := s.accounts.AccountName()
	if accountName == "" {
		return nil, errors.New("no storage account has been registered")
	}

	store, err := keyvault.NewClient(vaultURL, s.user.Credential(), nil)
	if err != nil {
		return nil, err
	}

	return sas.New(s.logger, sas.Config{
		AccountName: accountName,
		Azurite:     s.cfg.Azurite,
	}, store, vaultSecrets{cred: s.user.Credential()}), nil
}

// vaultSecrets reads SAS definition secrets with the secrets SDK, resolving
// the vault from each secret identifier.
type vaultSecrets struct {
	cred azcore.TokenCredential
}

func (v vaultSecrets) ReadSecret(ctx context.Context, secretID string) (string, error) {
	id, err := keyvault.ParseSecretID(secretID)
	if err != nil {
		return "", err
	}

	client, err := azsecrets.NewClient(id.VaultURL, v.cred, nil)
	if err != nil {
		return "", fmt.Errorf("create secrets client, %w", err)
	}

	resp, err := client.GetSecret(ctx, id.Name, id.Version, nil)
	if err != nil {
		return "", fmt.Errorf("get secret %s, %w", id.Name, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret %s has no value", id.Name)
	}

	return *resp.Value, nil
}
