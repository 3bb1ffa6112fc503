//go:build integration
// +build integration

package sas

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	blobsas "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/go-kit/kit/log"
)

// Azurite's well-known development account.
const (
	azuriteAccountName = "devstoreaccount1"
	azuriteAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// azuriteSecrets stands in for the vault: it signs real tokens with the
// emulator's account key, the way the vault signs with the managed key.
type azuriteSecrets struct {
	containerName string
}

func (a azuriteSecrets) ReadSecret(ctx context.Context, secretID string) (string, error) {
	cred, err := azblob.NewSharedKeyCredential(azuriteAccountName, azuriteAccountKey)
	if err != nil {
		return "", err
	}

	expiry := time.Now().Add(2 * time.Hour)

	if a.containerName != "" {
		perms := blobsas.ContainerPermissions{Read: true, Add: true, Create: true, Write: true, Delete: true, List: true}
		qp, err := blobsas.BlobSignatureValues{
			Protocol:      blobsas.ProtocolHTTPSandHTTP,
			ExpiryTime:    expiry,
			Permissions:   perms.String(),
			ContainerName: a.containerName,
		}.SignWithSharedKey(cred)
		if err != nil {
			return "", err
		}
		return qp.Encode(), nil
	}

	perms := blobsas.AccountPermissions{Read: true, Write: true, Delete: true, List: true, Add: true, Create: true, Update: true, Process: true}
	types := blobsas.AccountResourceTypes{Service: true, Container: true, Object: true}
	qp, err := blobsas.AccountSignatureValues{
		Protocol:      blobsas.ProtocolHTTPSandHTTP,
		ExpiryTime:    expiry,
		Permissions:   perms.String(),
		ResourceTypes: types.String(),
	}.SignWithSharedKey(cred)
	if err != nil {
		return "", err
	}
	return qp.Encode(), nil
}

func TestDefinitionsAgainstAzurite(t *testing.T) {
	container := fmt.Sprintf("blobcontainer-%d", time.Now().UnixNano())

	cfg := Config{
		AccountName:   azuriteAccountName,
		ContainerName: container,
		Azurite:       true,
	}

	o := New(log.NewNopLogger(), cfg, newFakeStore(), azuriteSecrets{})
	if _, err := o.CreateAccountDefinition(context.Background()); err != nil {
		t.Fatalf("CreateAccountDefinition: %v", err)
	}

	o = New(log.NewNopLogger(), cfg, newFakeStore(), azuriteSecrets{containerName: container})
	if _, err := o.CreateBlobDefinition(context.Background()); err != nil {
		t.Fatalf("CreateBlobDefinition: %v", err)
	}
}
