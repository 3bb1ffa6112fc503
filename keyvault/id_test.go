package keyvault

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStorageAccountID(t *testing.T) {
	testCases := []struct {
		name    string
		id      string
		want    StorageAccountID
		wantErr bool
	}{
		{
			name: "Valid",
			id:   "https://myvault.vault.azure.net/storage/mysa",
			want: StorageAccountID{
				SourceID: "https://myvault.vault.azure.net/storage/mysa",
				VaultURL: "https://myvault.vault.azure.net",
				Name:     "mysa",
			},
		},
		{
			name:    "WrongCollection",
			id:      "https://myvault.vault.azure.net/secrets/mysa",
			wantErr: true,
		},
		{
			name:    "MissingName",
			id:      "https://myvault.vault.azure.net/storage",
			wantErr: true,
		},
		{
			name:    "SasDefinitionPath",
			id:      "https://myvault.vault.azure.net/storage/mysa/sas/acctall",
			wantErr: true,
		},
		{
			name:    "Relative",
			id:      "storage/mysa",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseStorageAccountID(tc.id)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("parsed id mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSasDefinitionID(t *testing.T) {
	got, err := ParseSasDefinitionID("https://myvault.vault.azure.net/storage/mysa/sas/acctall")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := SasDefinitionID{
		SourceID:    "https://myvault.vault.azure.net/storage/mysa/sas/acctall",
		VaultURL:    "https://myvault.vault.azure.net",
		AccountName: "mysa",
		Name:        "acctall",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parsed id mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseSasDefinitionID("https://myvault.vault.azure.net/storage/mysa"); err == nil {
		t.Error("expected error for storage account identifier")
	}
}

func TestParseSecretID(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want SecretID
	}{
		{
			name: "Unversioned",
			id:   "https://myvault.vault.azure.net/secrets/mysa-acctall",
			want: SecretID{
				SourceID: "https://myvault.vault.azure.net/secrets/mysa-acctall",
				VaultURL: "https://myvault.vault.azure.net",
				Name:     "mysa-acctall",
			},
		},
		{
			name: "Versioned",
			id:   "https://myvault.vault.azure.net/secrets/mysa-acctall/abc123",
			want: SecretID{
				SourceID: "https://myvault.vault.azure.net/secrets/mysa-acctall/abc123",
				VaultURL: "https://myvault.vault.azure.net",
				Name:     "mysa-acctall",
				Version:  "abc123",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSecretID(tc.id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("parsed id mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ParseSecretID("https://myvault.vault.azure.net/storage/mysa"); err == nil {
		t.Error("expected error for non-secret identifier")
	}
}
