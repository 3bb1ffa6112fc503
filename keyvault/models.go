package keyvault

// SasTokenType is the kind of SAS token a definition issues.
type SasTokenType string

const (
	// SasTokenTypeAccount issues account-level SAS tokens.
	SasTokenTypeAccount SasTokenType = "account"
	// SasTokenTypeService issues service-level SAS tokens scoped to a
	// single storage entity, such as a blob container.
	SasTokenTypeService SasTokenType = "service"
)

// StorageAccountAttributes holds the mutable attributes of a managed
// storage account registration.
type StorageAccountAttributes struct {
	Enabled *bool `json:"enabled,omitempty"`

	// Created and Updated are Unix timestamps set by the service.
	Created *int64 `json:"created,omitempty"`
	Updated *int64 `json:"updated,omitempty"`
}

// StorageAccountCreateParameters registers a storage account with a vault.
type StorageAccountCreateParameters struct {
	ResourceID         string                    `json:"resourceId"`
	ActiveKeyName      string                    `json:"activeKeyName"`
	AutoRegenerateKey  bool                      `json:"autoRegenerateKey"`
	RegenerationPeriod string                    `json:"regenerationPeriod,omitempty"`
	Attributes         *StorageAccountAttributes `json:"attributes,omitempty"`
}

// StorageAccountUpdateParameters mutates an existing registration. Zero
// fields are left unchanged by the service.
type StorageAccountUpdateParameters struct {
	ActiveKeyName      string                    `json:"activeKeyName,omitempty"`
	AutoRegenerateKey  *bool                     `json:"autoRegenerateKey,omitempty"`
	RegenerationPeriod string                    `json:"regenerationPeriod,omitempty"`
	Attributes         *StorageAccountAttributes `json:"attributes,omitempty"`
}

type storageAccountRegenerateKeyParameters struct {
	KeyName string `json:"keyName"`
}

// StorageBundle is a managed storage account as returned by the vault.
type StorageBundle struct {
	ID                 string                    `json:"id"`
	ResourceID         string                    `json:"resourceId"`
	ActiveKeyName      string                    `json:"activeKeyName"`
	AutoRegenerateKey  bool                      `json:"autoRegenerateKey"`
	RegenerationPeriod string                    `json:"regenerationPeriod"`
	Attributes         *StorageAccountAttributes `json:"attributes"`
}

// StorageAccountItem is a list entry; full details require a GetStorageAccount
// call with the parsed identifier.
type StorageAccountItem struct {
	ID         string                    `json:"id"`
	ResourceID string                    `json:"resourceId"`
	Attributes *StorageAccountAttributes `json:"attributes"`
}

type storageListResult struct {
	Value    []StorageAccountItem `json:"value"`
	NextLink string               `json:"nextLink"`
}

// SasDefinitionAttributes holds the mutable attributes of a SAS definition.
type SasDefinitionAttributes struct {
	Enabled *bool `json:"enabled,omitempty"`

	Created *int64 `json:"created,omitempty"`
	Updated *int64 `json:"updated,omitempty"`
}

// SasDefinitionCreateParameters registers a SAS definition. TemplateURI is
// the unsigned template; its own expiry is ignored in favor of
// ValidityPeriod.
type SasDefinitionCreateParameters struct {
	TemplateURI    string                   `json:"templateUri"`
	SasType        SasTokenType             `json:"sasType"`
	ValidityPeriod string                   `json:"validityPeriod"`
	Attributes     *SasDefinitionAttributes `json:"attributes,omitempty"`
}

// SasDefinitionBundle is a SAS definition as returned by the vault.
// SecretID names the managed secret whose value is a freshly issued token
// on every read.
type SasDefinitionBundle struct {
	ID             string                   `json:"id"`
	SecretID       string                   `json:"sid"`
	TemplateURI    string                   `json:"templateUri"`
	SasType        SasTokenType             `json:"sasType"`
	ValidityPeriod string                   `json:"validityPeriod"`
	Attributes     *SasDefinitionAttributes `json:"attributes"`
}

// SasDefinitionItem is a list entry for a SAS definition.
type SasDefinitionItem struct {
	ID       string `json:"id"`
	SecretID string `json:"sid"`
}

type sasDefinitionListResult struct {
	Value    []SasDefinitionItem `json:"value"`
	NextLink string              `json:"nextLink"`
}
