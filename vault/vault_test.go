package vault

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/go-kit/kit/log"
)

type fakeCredential struct{}

func (fakeCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "fake-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// fakeTransport intercepts the ARM pipeline so no request leaves the test.
type fakeTransport struct {
	handler  func(req *http.Request) *http.Response
	requests []*http.Request
}

func (f *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	return f.handler(req), nil
}

func jsonResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

const vaultBody = `{
	"id": "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.KeyVault/vaults/vault-test",
	"name": "vault-test",
	"location": "westus",
	"properties": {
		"tenantId": "tenant",
		"vaultUri": "https://vault-test.vault.azure.net/",
		"provisioningState": "Succeeded",
		"sku": {"family": "A", "name": "standard"},
		"accessPolicies": [
			{"tenantId": "tenant", "objectId": "sp-oid", "permissions": {"secrets": ["all"]}}
		]
	}
}`

func newTestProvisioner(t *testing.T, c Config, ft *fakeTransport) *Provisioner {
	t.Helper()

	p, err := New(log.NewNopLogger(), c, fakeCredential{}, &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{Transport: ft},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return p
}

// countWrites returns how many mutating calls reached the management API.
func countWrites(ft *fakeTransport) int {
	n := 0
	for _, req := range ft.requests {
		if req.Method == http.MethodPut || req.Method == http.MethodPatch {
			n++
		}
	}
	return n
}

func TestEnsureIsMemoized(t *testing.T) {
	ft := &fakeTransport{handler: func(req *http.Request) *http.Response {
		return jsonResponse(req, http.StatusOK, vaultBody)
	}}

	p := newTestProvisioner(t, Config{
		SubscriptionID: "sub",
		TenantID:       "tenant",
		ResourceGroup:  "rg",
		Location:       "westus",
		ClientObjectID: "sp-oid",
	}, ft)

	first, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	writes := countWrites(ft)
	if writes != 1 {
		t.Fatalf("expected exactly one creation call, got %d", writes)
	}

	second, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	if countWrites(ft) != writes {
		t.Error("expected zero network calls on second Ensure")
	}
	if first != second {
		t.Error("expected the identical cached reference")
	}
	if p.VaultURL() != "https://vault-test.vault.azure.net/" {
		t.Errorf("unexpected vault URL %q", p.VaultURL())
	}
}

func TestEnsureFetchesNamedVaultWithoutCreate(t *testing.T) {
	ft := &fakeTransport{handler: func(req *http.Request) *http.Response {
		if req.Method != http.MethodGet {
			t.Errorf("expected GET for a named vault, got %s %s", req.Method, req.URL.Path)
		}
		return jsonResponse(req, http.StatusOK, vaultBody)
	}}

	p := newTestProvisioner(t, Config{
		SubscriptionID: "sub",
		TenantID:       "tenant",
		ResourceGroup:  "rg",
		VaultName:      "vault-test",
	}, ft)

	if _, err := p.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if p.VaultName() != "vault-test" {
		t.Errorf("unexpected vault name %q", p.VaultName())
	}
}

func TestEnsureCreatesWithFullInitialPolicy(t *testing.T) {
	var createBody struct {
		Properties struct {
			AccessPolicies []struct {
				ObjectID    string `json:"objectId"`
				Permissions struct {
					Keys    []string `json:"keys"`
					Secrets []string `json:"secrets"`
					Storage []string `json:"storage"`
				} `json:"permissions"`
			} `json:"accessPolicies"`
			EnabledForDeployment bool `json:"enabledForDeployment"`
		} `json:"properties"`
	}

	ft := &fakeTransport{handler: func(req *http.Request) *http.Response {
		if req.Method == http.MethodPut {
			if err := json.NewDecoder(req.Body).Decode(&createBody); err != nil {
				t.Errorf("decode create body: %v", err)
			}
		}
		return jsonResponse(req, http.StatusOK, vaultBody)
	}}

	p := newTestProvisioner(t, Config{
		SubscriptionID: "sub",
		TenantID:       "tenant",
		ResourceGroup:  "rg",
		Location:       "westus",
		ClientObjectID: "sp-oid",
	}, ft)

	if _, err := p.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	if len(createBody.Properties.AccessPolicies) != 1 {
		t.Fatalf("expected one initial access policy, got %d", len(createBody.Properties.AccessPolicies))
	}

	ap := createBody.Properties.AccessPolicies[0]
	if ap.ObjectID != "sp-oid" {
		t.Errorf("expected policy for the service principal, got %q", ap.ObjectID)
	}
	if len(ap.Permissions.Keys) == 0 || len(ap.Permissions.Secrets) == 0 || len(ap.Permissions.Storage) == 0 {
		t.Error("expected the full permission set on the initial policy")
	}
	if !createBody.Properties.EnabledForDeployment {
		t.Error("expected enabledForDeployment on created vaults")
	}
}

func TestGrantAccessAppendsPolicy(t *testing.T) {
	var lastPut struct {
		Properties struct {
			AccessPolicies []struct {
				ObjectID string `json:"objectId"`
			} `json:"accessPolicies"`
		} `json:"properties"`
	}

	ft := &fakeTransport{handler: func(req *http.Request) *http.Response {
		if req.Method == http.MethodPut {
			if err := json.NewDecoder(req.Body).Decode(&lastPut); err != nil {
				t.Errorf("decode put body: %v", err)
			}
		}
		return jsonResponse(req, http.StatusOK, vaultBody)
	}}

	p := newTestProvisioner(t, Config{
		SubscriptionID: "sub",
		TenantID:       "tenant",
		ResourceGroup:  "rg",
		VaultName:      "vault-test",
	}, ft)

	if _, err := p.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if err := p.GrantAccess(context.Background(), "user-oid"); err != nil {
		t.Fatalf("GrantAccess: %v", err)
	}

	if len(lastPut.Properties.AccessPolicies) != 2 {
		t.Fatalf("expected appended policy list of 2, got %d", len(lastPut.Properties.AccessPolicies))
	}
	if lastPut.Properties.AccessPolicies[1].ObjectID != "user-oid" {
		t.Errorf("expected appended entry for user-oid, got %q", lastPut.Properties.AccessPolicies[1].ObjectID)
	}
}

func TestGrantAccessFailureLeavesCacheUntouched(t *testing.T) {
	ft := &fakeTransport{handler: func(req *http.Request) *http.Response {
		if req.Method == http.MethodPut {
			return jsonResponse(req, http.StatusInternalServerError, `{"error":{"code":"InternalServerError"}}`)
		}
		return jsonResponse(req, http.StatusOK, vaultBody)
	}}

	p := newTestProvisioner(t, Config{
		SubscriptionID: "sub",
		TenantID:       "tenant",
		ResourceGroup:  "rg",
		VaultName:      "vault-test",
	}, ft)

	cached, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	if err := p.GrantAccess(context.Background(), "user-oid"); err == nil {
		t.Fatal("expected error from failed persist")
	}

	// Cached vault still carries the single original policy entry.
	if got := len(cached.Properties.AccessPolicies); got != 1 {
		t.Errorf("expected cached policy list to stay at 1 entry, got %d", got)
	}

	again, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if again != cached {
		t.Error("expected the cached reference to survive a failed grant")
	}
}

func TestGrantAccessRequiresProvisionedVault(t *testing.T) {
	p := newTestProvisioner(t, Config{SubscriptionID: "sub"}, &fakeTransport{
		handler: func(req *http.Request) *http.Response {
			t.Error("no request expected")
			return jsonResponse(req, http.StatusOK, vaultBody)
		},
	})

	if err := p.GrantAccess(context.Background(), "oid"); err == nil {
		t.Fatal("expected error before Ensure")
	}
}
