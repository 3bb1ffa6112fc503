// Package sas manages shared access signature definitions on a vault-managed
// storage account. A definition stores an unsigned token template; the vault
// signs the template with the active storage key on every secret read, so
// consumers never see the key itself.
package sas

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	blobsas "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/Azure-Samples/key-vault-go-storage-accounts/internal"
	"github.com/Azure-Samples/key-vault-go-storage-accounts/keyvault"
)

const (
	accountDefinitionName = "acctall"
	blobDefinitionName    = "blobcontall"

	// templateSigningKey signs token templates. Any parseable key works
	// here: the vault discards the template's signature and re-signs with
	// the real storage key on every read.
	templateSigningKey = "00000000"

	defaultBlobStorageURL = "blob.core.windows.net"
	defaultContainerName  = "blobcontainer"
	defaultValidityPeriod = "PT2H"
)

// templateExpiry is a fixed, long-past expiry for token templates. The vault
// overrides it with the definition's validity period when issuing tokens.
var templateExpiry = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefinitionStore persists SAS definitions on a vault.
type DefinitionStore interface {
	SetSasDefinition(ctx context.Context, storageAccountName, sasDefinitionName string, parameters keyvault.SasDefinitionCreateParameters) (keyvault.SasDefinitionBundle, error)
	GetSasDefinition(ctx context.Context, storageAccountName, sasDefinitionName string) (keyvault.SasDefinitionBundle, error)
	GetSasDefinitions(ctx context.Context, storageAccountName string, maxResults int32) ([]keyvault.SasDefinitionItem, error)
}

// SecretReader reads the managed secret backing a SAS definition. The value
// is a freshly signed token on every read.
type SecretReader interface {
	ReadSecret(ctx context.Context, secretID string) (string, error)
}

type Config struct {
	// AccountName is the storage account the definitions sign tokens for.
	AccountName string

	// ContainerName is the blob container used to exercise issued tokens.
	// Defaults to "blobcontainer".
	ContainerName string

	// ValidityPeriod is the ISO-8601 lifetime of issued tokens. Defaults
	// to two hours.
	ValidityPeriod string

	// BlobStorageURL is the blob endpoint suffix. Defaults to the public
	// cloud suffix.
	BlobStorageURL string

	// Azurite points blob traffic at a local Azurite emulator instead of
	// the public endpoint.
	Azurite bool
}

// DefinitionDetail describes a stored SAS definition.
type DefinitionDetail struct {
	Name     string
	SasType  keyvault.SasTokenType
	SecretID string
}

// Orchestrator creates SAS definitions and exercises the tokens they issue
// against blob storage.
type Orchestrator struct {
	logger  log.Logger
	cfg     Config
	store   DefinitionStore
	secrets SecretReader
}

func New(logger log.Logger, c Config, store DefinitionStore, secrets SecretReader) *Orchestrator {
	if c.ContainerName == "" {
		c.ContainerName = defaultContainerName
	}
	if c.ValidityPeriod == "" {
		c.ValidityPeriod = defaultValidityPeriod
	}
	if c.BlobStorageURL == "" {
		c.BlobStorageURL = defaultBlobStorageURL
	}

	return &Orchestrator{
		logger:  logger,
		cfg:     c,
		store:   store,
		secrets: secrets,
	}
}

// CreateAccountDefinition stores an account-level SAS definition named
// "acctall" granting full rights on the blob service, then reads a token
// from its backing secret and uses it to create a container and upload a
// blob.
func (o *Orchestrator) CreateAccountDefinition(ctx context.Context) (keyvault.SasDefinitionBundle, error) {
	template, err := o.accountTemplate()
	if err != nil {
		return keyvault.SasDefinitionBundle{}, err
	}

	level.Info(o.logger).Log("msg", "creating account sas definition", "definition", accountDefinitionName, "account", o.cfg.AccountName)

	enabled := true
	bundle, err := o.store.SetSasDefinition(ctx, o.cfg.AccountName, accountDefinitionName, keyvault.SasDefinitionCreateParameters{
		TemplateURI:    template,
		SasType:        keyvault.SasTokenTypeAccount,
		ValidityPeriod: o.cfg.ValidityPeriod,
		Attributes:     &keyvault.SasDefinitionAttributes{Enabled: &enabled},
	})
	if err != nil {
		return keyvault.SasDefinitionBundle{}, fmt.Errorf("create account sas definition, %w", err)
	}

	token, err := o.issueToken(ctx, bundle, template)
	if err != nil {
		return keyvault.SasDefinitionBundle{}, err
	}

	client, err := azblob.NewClientWithNoCredential(o.serviceURL()+"?"+token, nil)
	if err != nil {
		return keyvault.SasDefinitionBundle{}, fmt.Errorf("create blob client, %w", err)
	}

	if _, err := client.CreateContainer(ctx, o.cfg.ContainerName, nil); err != nil {
		if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return keyvault.SasDefinitionBundle{}, fmt.Errorf("create container %s, %w", o.cfg.ContainerName, err)
		}
	}

	if err := o.upload(ctx, client, "blob1", []byte("test blob 1 data")); err != nil {
		return keyvault.SasDefinitionBundle{}, err
	}

	return bundle, nil
}

// CreateBlobDefinition stores a service-level SAS definition named
// "blobcontall" scoped to the blob container, then uses a token from its
// backing secret to upload another blob and list and delete everything in
// the container.
func (o *Orchestrator) CreateBlobDefinition(ctx context.Context) (keyvault.SasDefinitionBundle, error) {
	template, err := o.containerTemplate()
	if err != nil {
		return keyvault.SasDefinitionBundle{}, err
	}

	level.Info(o.logger).Log("msg", "creating blob sas definition", "definition", blobDefinitionName, "container", o.cfg.ContainerName)

	enabled := true
	bundle, err := o.store.SetSasDefinition(ctx, o.cfg.AccountName, blobDefinitionName, keyvault.SasDefinitionCreateParameters{
		TemplateURI:    template,
		SasType:        keyvault.SasTokenTypeService,
		ValidityPeriod: o.cfg.ValidityPeriod,
		Attributes:     &keyvault.SasDefinitionAttributes{Enabled: &enabled},
	})
	if err != nil {
		return keyvault.SasDefinitionBundle{}, fmt.Errorf("create blob sas definition, %w", err)
	}

	token, err := o.issueToken(ctx, bundle, template)
	if err != nil {
		return keyvault.SasDefinitionBundle{}, err
	}

	client, err := azblob.NewClientWithNoCredential(o.serviceURL()+"?"+token, nil)
	if err != nil {
		return keyvault.SasDefinitionBundle{}, fmt.Errorf("create blob client, %w", err)
	}

	if err := o.upload(ctx, client, "blob2", []byte("test blob 2 data")); err != nil {
		return keyvault.SasDefinitionBundle{}, err
	}

	if err := o.drainContainer(ctx, client); err != nil {
		return keyvault.SasDefinitionBundle{}, err
	}

	return bundle, nil
}

// ListDefinitions lists the SAS definitions stored for the account and
// fetches the full details of each.
func (o *Orchestrator) ListDefinitions(ctx context.Context, maxResults int32) ([]DefinitionDetail, error) {
	items, err := o.store.GetSasDefinitions(ctx, o.cfg.AccountName, maxResults)
	if err != nil {
		return nil, fmt.Errorf("list sas definitions, %w", err)
	}

	details := make([]DefinitionDetail, 0, len(items))
	for _, item := range items {
		id, err := keyvault.ParseSasDefinitionID(item.ID)
		if err != nil {
			return nil, err
		}

		bundle, err := o.store.GetSasDefinition(ctx, id.AccountName, id.Name)
		if err != nil {
			return nil, fmt.Errorf("get sas definition %s, %w", id.Name, err)
		}

		level.Info(o.logger).Log("msg", "found sas definition", "definition", id.Name, "type", bundle.SasType, "template", bundle.TemplateURI)

		details = append(details, DefinitionDetail{
			Name:     id.Name,
			SasType:  bundle.SasType,
			SecretID: bundle.SecretID,
		})
	}

	return details, nil
}

// issueToken reads a live token from the definition's backing secret.
func (o *Orchestrator) issueToken(ctx context.Context, bundle keyvault.SasDefinitionBundle, template string) (string, error) {
	token, err := o.secrets.ReadSecret(ctx, bundle.SecretID)
	if err != nil {
		return "", fmt.Errorf("read sas definition secret, %w", err)
	}
	if token == template {
		return "", fmt.Errorf("vault returned the unsigned template for %s", bundle.ID)
	}

	return token, nil
}

func (o *Orchestrator) upload(ctx context.Context, client *azblob.Client, name string, data []byte) error {
	if _, err := client.UploadBuffer(ctx, o.cfg.ContainerName, name, data, nil); err != nil {
		return fmt.Errorf("upload blob %s, %w", name, err)
	}

	level.Info(o.logger).Log("msg", "uploaded blob", "blob", name, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

// drainContainer lists every blob in the container and deletes each one,
// collecting failures so one bad blob does not stop the sweep.
func (o *Orchestrator) drainContainer(ctx context.Context, client *azblob.Client) error {
	var errs internal.MultiError

	pager := client.NewListBlobsFlatPager(o.cfg.ContainerName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list blobs in %s, %w", o.cfg.ContainerName, err)
		}
		if page.Segment == nil {
			continue
		}

		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}

			size := "unknown"
			if item.Properties != nil && item.Properties.ContentLength != nil {
				size = humanize.Bytes(uint64(*item.Properties.ContentLength))
			}
			level.Info(o.logger).Log("msg", "deleting blob", "blob", *item.Name, "size", size)

			if _, err := client.DeleteBlob(ctx, o.cfg.ContainerName, *item.Name, nil); err != nil {
				errs.Add(fmt.Errorf("delete blob %s, %w", *item.Name, err))
			}
		}
	}

	return errs.Err()
}

// serviceURL is the blob service endpoint tokens are exercised against.
func (o *Orchestrator) serviceURL() string {
	if o.cfg.Azurite {
		return fmt.Sprintf("http://127.0.0.1:10000/%s", o.cfg.AccountName)
	}

	return fmt.Sprintf("https://%s.%s", o.cfg.AccountName, o.cfg.BlobStorageURL)
}

// accountTemplate builds an unsigned account-level token template granting
// full rights on the blob service.
func (o *Orchestrator) accountTemplate() (string, error) {
	cred, err := azblob.NewSharedKeyCredential(o.cfg.AccountName, templateSigningKey)
	if err != nil {
		return "", fmt.Errorf("create template signing credential, %w", err)
	}

	perms := blobsas.AccountPermissions{
		Read:    true,
		Write:   true,
		Delete:  true,
		List:    true,
		Add:     true,
		Create:  true,
		Update:  true,
		Process: true,
	}
	types := blobsas.AccountResourceTypes{Service: true, Container: true, Object: true}

	qp, err := blobsas.AccountSignatureValues{
		Protocol:      o.protocol(),
		ExpiryTime:    templateExpiry,
		Permissions:   perms.String(),
		ResourceTypes: types.String(),
	}.SignWithSharedKey(cred)
	if err != nil {
		return "", fmt.Errorf("sign account token template, %w", err)
	}

	return qp.Encode(), nil
}

// containerTemplate builds an unsigned service-level token template scoped
// to the blob container. The template is the container URL carrying the
// token, which is how the vault distinguishes the signed entity.
func (o *Orchestrator) containerTemplate() (string, error) {
	cred, err := azblob.NewSharedKeyCredential(o.cfg.AccountName, templateSigningKey)
	if err != nil {
		return "", fmt.Errorf("create template signing credential, %w", err)
	}

	perms := blobsas.ContainerPermissions{
		Read:   true,
		Add:    true,
		Create: true,
		Write:  true,
		Delete: true,
		List:   true,
	}

	qp, err := blobsas.BlobSignatureValues{
		Protocol:      o.protocol(),
		ExpiryTime:    templateExpiry,
		Permissions:   perms.String(),
		ContainerName: o.cfg.ContainerName,
	}.SignWithSharedKey(cred)
	if err != nil {
		return "", fmt.Errorf("sign container token template, %w", err)
	}

	return fmt.Sprintf("%s/%s?%s", o.serviceURL(), o.cfg.ContainerName, qp.Encode()), nil
}

func (o *Orchestrator) protocol() blobsas.Protocol {
	if o.cfg.Azurite {
		return blobsas.ProtocolHTTPSandHTTP
	}

	return blobsas.ProtocolHTTPS
}
