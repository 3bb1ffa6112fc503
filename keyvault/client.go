// Package keyvault implements the Key Vault data-plane surface for managed
// storage accounts and SAS definitions. There is no released Go SDK module
// for this surface, so the client is built directly on the azcore pipeline,
// the same way the generated track-2 clients are.
package keyvault

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

const (
	moduleName    = "keyvault"
	moduleVersion = "v0.1.0"

	apiVersion = "7.4"
)

// scope is the audience for vault data-plane calls.
var scope = []string{"https://vault.azure.net/.default"}

// ClientOptions contains optional settings for Client.
type ClientOptions struct {
	azcore.ClientOptions

	// InsecureAllowCredentialWithHTTP permits sending bearer tokens over
	// plain HTTP. Intended for emulators and tests only.
	InsecureAllowCredentialWithHTTP bool
}

// Client calls the managed storage account and SAS definition endpoints of
// a single vault.
type Client struct {
	endpoint string
	pl       runtime.Pipeline
}

// NewClient creates a client bound to the given vault URL.
func NewClient(vaultURL string, credential azcore.TokenCredential, options *ClientOptions) (*Client, error) {
	if vaultURL == "" {
		return nil, errors.New("vaultURL cannot be empty")
	}

	if options == nil {
		options = &ClientOptions{}
	}

	authPolicy := runtime.NewBearerTokenPolicy(credential, scope, &policy.BearerTokenOptions{
		InsecureAllowCredentialWithHTTP: options.InsecureAllowCredentialWithHTTP,
	})
	pl := runtime.NewPipeline(moduleName, moduleVersion,
		runtime.PipelineOptions{PerRetry: []policy.Policy{authPolicy}},
		&options.ClientOptions)

	return &Client{endpoint: strings.TrimSuffix(vaultURL, "/"), pl: pl}, nil
}

// Endpoint returns the vault URL the client is bound to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ForVault returns a client addressing another vault over the same pipeline.
// Used when re-fetching items by their parsed object identifiers.
func (c *Client) ForVault(vaultURL string) *Client {
	return &Client{endpoint: strings.TrimSuffix(vaultURL, "/"), pl: c.pl}
}

// SetStorageAccount registers a storage account with the vault for managed
// key rotation.
func (c *Client) SetStorageAccount(ctx context.Context, storageAccountName string, parameters StorageAccountCreateParameters) (StorageBundle, error) {
	if storageAccountName == "" {
		return StorageBundle{}, errors.New("storageAccountName cannot be empty")
	}

	req, err := c.newRequest(ctx, http.MethodPut, "storage", url.PathEscape(storageAccountName))
	if err != nil {
		return StorageBundle{}, err
	}

	if err := runtime.MarshalAsJSON(req, parameters); err != nil {
		return StorageBundle{}, err
	}

	return c.storageBundle(req)
}

// UpdateStorageAccount mutates the active key name, rotation settings or
// attributes of an already registered account.
func (c *Client) UpdateStorageAccount(ctx context.Context, storageAccountName string, parameters StorageAccountUpdateParameters) (StorageBundle, error) {
	if storageAccountName == "" {
		return StorageBundle{}, errors.New("storageAccountName cannot be empty")
	}

	req, err := c.newRequest(ctx, http.MethodPatch, "storage", url.PathEscape(storageAccountName))
	if err != nil {
		return StorageBundle{}, err
	}

	if err := runtime.MarshalAsJSON(req, parameters); err != nil {
		return StorageBundle{}, err
	}

	return c.storageBundle(req)
}

// RegenerateStorageAccountKey rotates exactly the named key of a registered
// account. The vault only honors this for callers holding the storage
// account's own keys, i.e. user principals.
func (c *Client) RegenerateStorageAccountKey(ctx context.Context, storageAccountName, keyName string) (StorageBundle, error) {
	if storageAccountName == "" {
		return StorageBundle{}, errors.New("storageAccountName cannot be empty")
	}
	if keyName == "" {
		return StorageBundle{}, errors.New("keyName cannot be empty")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "storage", url.PathEscape(storageAccountName), "regeneratekey")
	if err != nil {
		return StorageBundle{}, err
	}

	if err := runtime.MarshalAsJSON(req, storageAccountRegenerateKeyParameters{KeyName: keyName}); err != nil {
		return StorageBundle{}, err
	}

	return c.storageBundle(req)
}

// GetStorageAccount fetches a single registered storage account.
func (c *Client) GetStorageAccount(ctx context.Context, storageAccountName string) (StorageBundle, error) {
	if storageAccountName == "" {
		return StorageBundle{}, errors.New("storageAccountName cannot be empty")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "storage", url.PathEscape(storageAccountName))
	if err != nil {
		return StorageBundle{}, err
	}

	return c.storageBundle(req)
}

// GetStorageAccounts lists the storage accounts registered with the vault,
// returning at most maxResults items. Only the single requested page is
// fetched.
func (c *Client) GetStorageAccounts(ctx context.Context, maxResults int32) ([]StorageAccountItem, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "storage")
	if err != nil {
		return nil, err
	}

	if maxResults > 0 {
		q := req.Raw().URL.Query()
		q.Set("maxresults", strconv.Itoa(int(maxResults)))
		req.Raw().URL.RawQuery = q.Encode()
	}

	resp, err := c.pl.Do(req)
	if err != nil {
		return nil, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return nil, runtime.NewResponseError(resp)
	}

	var page storageListResult
	if err := runtime.UnmarshalAsJSON(resp, &page); err != nil {
		return nil, err
	}

	return page.Value, nil
}

// DeleteStorageAccount removes the account registration from the vault. The
// underlying cloud storage account is untouched.
func (c *Client) DeleteStorageAccount(ctx context.Context, storageAccountName string) (StorageBundle, error) {
	if storageAccountName == "" {
		return StorageBundle{}, errors.New("storageAccountName cannot be empty")
	}

	req, err := c.newRequest(ctx, http.MethodDelete, "storage", url.PathEscape(storageAccountName))
	if err != nil {
		return StorageBundle{}, err
	}

	return c.storageBundle(req)
}

// SetSasDefinition registers a SAS definition for a managed storage account.
// The vault creates one managed secret per definition; reading that secret
// yields a freshly signed token.
func (c *Client) SetSasDefinition(ctx context.Context, storageAccountName, sasDefinitionName string, parameters SasDefinitionCreateParameters) (SasDefinitionBundle, error) {
	if storageAccountName == "" {
		return SasDefinitionBundle{}, errors.New("storageAccountName cannot be empty")
	}
	if sasDefinitionName == "" {
		return SasDefinitionBundle{}, errors.New("sasDefinitionName cannot be empty")
	}

	req, err := c.newRequest(ctx, http.MethodPut, "storage", url.PathEscape(storageAccountName), "sas", url.PathEscape(sasDefinitionName))
	if err != nil {
		return SasDefinitionBundle{}, err
	}

	if err := runtime.MarshalAsJSON(req, parameters); err != nil {
		return SasDefinitionBundle{}, err
	}

	return c.sasDefinitionBundle(req)
}

// GetSasDefinition fetches a single SAS definition.
func (c *Client) GetSasDefinition(ctx context.Context, storageAccountName, sasDefinitionName string) (SasDefinitionBundle, error) {
	if storageAccountName == "" {
		return SasDefinitionBundle{}, errors.New("storageAccountName cannot be empty")
	}
	if sasDefinitionName == "" {
		return SasDefinitionBundle{}, errors.New("sasDefinitionName cannot be empty")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "storage", url.PathEscape(storageAccountName), "sas", url.PathEscape(sasDefinitionName))
	if err != nil {
		return SasDefinitionBundle{}, err
	}

	return c.sasDefinitionBundle(req)
}

// GetSasDefinitions lists the SAS definitions of a managed storage account,
// returning at most maxResults items from the single requested page.
func (c *Client) GetSasDefinitions(ctx context.Context, storageAccountName string, maxResults int32) ([]SasDefinitionItem, error) {
	if storageAccountName == "" {
		return nil, errors.New("storageAccountName cannot be empty")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "storage", url.PathEscape(storageAccountName), "sas")
	if err != nil {
		return nil, err
	}

	if maxResults > 0 {
		q := req.Raw().URL.Query()
		q.Set("maxresults", strconv.Itoa(int(maxResults)))
		req.Raw().URL.RawQuery = q.Encode()
	}

	resp, err := c.pl.Do(req)
	if err != nil {
		return nil, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return nil, runtime.NewResponseError(resp)
	}

	var page sasDefinitionListResult
	if err := runtime.UnmarshalAsJSON(resp, &page); err != nil {
		return nil, err
	}

	return page.Value, nil
}

func (c *Client) newRequest(ctx context.Context, method string, paths ...string) (*policy.Request, error) {
	req, err := runtime.NewRequest(ctx, method, runtime.JoinPaths(c.endpoint, paths...))
	if err != nil {
		return nil, err
	}

	q := req.Raw().URL.Query()
	q.Set("api-version", apiVersion)
	req.Raw().URL.RawQuery = q.Encode()
	req.Raw().Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) storageBundle(req *policy.Request) (StorageBundle, error) {
	resp, err := c.pl.Do(req)
	if err != nil {
		return StorageBundle{}, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return StorageBundle{}, runtime.NewResponseError(resp)
	}

	var bundle StorageBundle
	if err := runtime.UnmarshalAsJSON(resp, &bundle); err != nil {
		return StorageBundle{}, err
	}

	return bundle, nil
}

func (c *Client) sasDefinitionBundle(req *policy.Request) (SasDefinitionBundle, error) {
	resp, err := c.pl.Do(req)
	if err != nil {
		return SasDefinitionBundle{}, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return SasDefinitionBundle{}, runtime.NewResponseError(resp)
	}

	var bundle SasDefinitionBundle
	if err := runtime.UnmarshalAsJSON(resp, &bundle); err != nil {
		return SasDefinitionBundle{}, err
	}

	return bundle, nil
}
