package keyvault

import (
	"fmt"
	"net/url"
	"strings"
)

// StorageAccountID is a parsed managed storage account object identifier,
// e.g. https://myvault.vault.azure.net/storage/mysa.
type StorageAccountID struct {
	SourceID string
	VaultURL string
	Name     string
}

// ParseStorageAccountID parses a managed storage account identifier.
func ParseStorageAccountID(id string) (StorageAccountID, error) {
	vaultURL, segs, err := splitObjectID(id)
	if err != nil {
		return StorageAccountID{}, err
	}

	if len(segs) != 2 || segs[0] != "storage" || segs[1] == "" {
		return StorageAccountID{}, fmt.Errorf("%q is not a managed storage account identifier", id)
	}

	return StorageAccountID{SourceID: id, VaultURL: vaultURL, Name: segs[1]}, nil
}

// SasDefinitionID is a parsed SAS definition object identifier,
// e.g. https://myvault.vault.azure.net/storage/mysa/sas/acctall.
type SasDefinitionID struct {
	SourceID    string
	VaultURL    string
	AccountName string
	Name        string
}

// ParseSasDefinitionID parses a SAS definition identifier.
func ParseSasDefinitionID(id string) (SasDefinitionID, error) {
	vaultURL, segs, err := splitObjectID(id)
	if err != nil {
		return SasDefinitionID{}, err
	}

	if len(segs) != 4 || segs[0] != "storage" || segs[2] != "sas" || segs[1] == "" || segs[3] == "" {
		return SasDefinitionID{}, fmt.Errorf("%q is not a SAS definition identifier", id)
	}

	return SasDefinitionID{SourceID: id, VaultURL: vaultURL, AccountName: segs[1], Name: segs[3]}, nil
}

// SecretID is a parsed secret object identifier, with or without a version,
// e.g. https://myvault.vault.azure.net/secrets/mysa-acctall.
type SecretID struct {
	SourceID string
	VaultURL string
	Name     string
	Version  string
}

// ParseSecretID parses a secret identifier.
func ParseSecretID(id string) (SecretID, error) {
	vaultURL, segs, err := splitObjectID(id)
	if err != nil {
		return SecretID{}, err
	}

	if (len(segs) != 2 && len(segs) != 3) || segs[0] != "secrets" || segs[1] == "" {
		return SecretID{}, fmt.Errorf("%q is not a secret identifier", id)
	}

	sid := SecretID{SourceID: id, VaultURL: vaultURL, Name: segs[1]}
	if len(segs) == 3 {
		sid.Version = segs[2]
	}

	return sid, nil
}

func splitObjectID(id string) (string, []string, error) {
	u, err := url.Parse(id)
	if err != nil {
		return "", nil, fmt.Errorf("parse object identifier %q, %w", id, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", nil, fmt.Errorf("object identifier %q is not an absolute URL", id)
	}

	return u.Scheme + "://" + u.Host, strings.Split(strings.Trim(u.Path, "/"), "/"), nil
}
