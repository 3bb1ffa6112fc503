package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/go-kit/kit/log"
)

type staticCredential struct {
	token string
	err   error
	calls int
}

func (c *staticCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	c.calls++
	if c.err != nil {
		return azcore.AccessToken{}, c.err
	}
	return azcore.AccessToken{Token: c.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func unsignedJWT(t *testing.T, claims map[string]interface{}) string {
	t.Helper()

	enc := func(v interface{}) string {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal jwt segment: %v", err)
		}
		return base64.RawURLEncoding.EncodeToString(b)
	}

	header := map[string]string{"alg": "none", "typ": "JWT"}
	return enc(header) + "." + enc(claims) + "."
}

func TestTokenCachesUserIdentity(t *testing.T) {
	raw := unsignedJWT(t, map[string]interface{}{
		"oid": "11111111-2222-3333-4444-555555555555",
		"upn": "user@contoso.com",
	})
	cred := &staticCredential{token: raw}
	a := &UserAuthorizer{logger: log.NewNopLogger(), cred: cred}

	if a.Identity() != nil {
		t.Fatal("expected no identity before first acquisition")
	}

	if _, err := a.Token(context.Background(), "https://vault.azure.net/.default"); err != nil {
		t.Fatalf("Token: %v", err)
	}

	id := a.Identity()
	if id == nil {
		t.Fatal("expected cached identity after first acquisition")
	}
	if id.ObjectID != "11111111-2222-3333-4444-555555555555" || id.UserID != "user@contoso.com" {
		t.Errorf("unexpected identity %+v", id)
	}

	// Second acquisition for a different audience reuses the same cached
	// identity pointer.
	if _, err := a.Token(context.Background(), "https://management.azure.com/.default"); err != nil {
		t.Fatalf("Token: %v", err)
	}
	if a.Identity() != id {
		t.Error("expected identity to be cached across acquisitions")
	}
	if cred.calls != 2 {
		t.Errorf("expected credential to be consulted per call, got %d calls", cred.calls)
	}
}

func TestTokenFallsBackThroughNameClaims(t *testing.T) {
	raw := unsignedJWT(t, map[string]interface{}{
		"oid":         "aaaa",
		"unique_name": "fallback@contoso.com",
	})
	a := &UserAuthorizer{logger: log.NewNopLogger(), cred: &staticCredential{token: raw}}

	if _, err := a.Token(context.Background(), "https://vault.azure.net/.default"); err != nil {
		t.Fatalf("Token: %v", err)
	}

	if got := a.Identity().UserID; got != "fallback@contoso.com" {
		t.Errorf("expected unique_name fallback, got %q", got)
	}
}

func TestTokenPropagatesAuthenticationErrors(t *testing.T) {
	authErr := errors.New("AADSTS50005: device code expired")
	a := &UserAuthorizer{logger: log.NewNopLogger(), cred: &staticCredential{err: authErr}}

	_, err := a.Token(context.Background(), "https://vault.azure.net/.default")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, authErr) {
		t.Errorf("expected wrapped authentication error, got %v", err)
	}
	if a.Identity() != nil {
		t.Error("expected no identity after failed acquisition")
	}
}

func TestTokenToleratesOpaqueTokens(t *testing.T) {
	// Tokens for some audiences are opaque to the client; identity caching
	// is skipped but the token is still returned.
	a := &UserAuthorizer{logger: log.NewNopLogger(), cred: &staticCredential{token: "opaque"}}

	tk, err := a.Token(context.Background(), "https://storage.azure.com/.default")
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tk.Token != "opaque" {
		t.Errorf("unexpected token %q", tk.Token)
	}
	if a.Identity() != nil {
		t.Error("expected no identity for unparseable token")
	}
}
