// Package auth authenticates the interactive user through the device-code
// flow. Vault operations touching storage account keys must run as a user,
// not a service principal, so a second credential alongside the usual
// client-secret one is required.
package auth

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/golang-jwt/jwt/v5"
)

// Config holds settings for the user authorizer.
type Config struct {
	TenantID string

	// ClientID is the application the user authenticates to. When empty,
	// azidentity falls back to its cross-tenant developer sign-on client,
	// the same application the original sample used.
	ClientID string
}

// UserIdentity is the cached identity of the authenticated user, populated
// on the first successful token acquisition and kept for the process
// lifetime.
type UserIdentity struct {
	UserID   string
	ObjectID string
}

// UserAuthorizer obtains user tokens via the device-code flow. The first
// acquisition prompts the user to complete login out-of-band; the backing
// credential then satisfies subsequent requests silently from its cache and
// only re-prompts when silent acquisition cannot succeed.
//
// Not safe for concurrent use; the samples are strictly sequential.
type UserAuthorizer struct {
	logger log.Logger
	cred   azcore.TokenCredential
	user   *UserIdentity
}

// New creates a user authorizer for the given tenant. The device-code
// instructions are printed to the console by azidentity's default prompt.
func New(logger log.Logger, c Config) (*UserAuthorizer, error) {
	cred, err := azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
		TenantID: c.TenantID,
		ClientID: c.ClientID,
		UserPrompt: func(ctx context.Context, dc azidentity.DeviceCodeMessage) error {
			fmt.Println()
			fmt.Println(dc.Message)
			fmt.Println()
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create device code credential, %w", err)
	}

	return &UserAuthorizer{logger: logger, cred: cred}, nil
}

// Token acquires a user token for the given scopes, caching the user's
// identity on first success. Authentication errors propagate unchanged; a
// failed interactive login aborts the calling sample step.
func (a *UserAuthorizer) Token(ctx context.Context, scopes ...string) (azcore.AccessToken, error) {
	tk, err := a.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: scopes})
	if err != nil {
		return azcore.AccessToken{}, fmt.Errorf("acquire user token, %w", err)
	}

	if a.user == nil {
		user, err := identityFromToken(tk.Token)
		if err != nil {
			level.Debug(a.logger).Log("msg", "could not read identity claims from token", "err", err)
		} else {
			a.user = user
			level.Info(a.logger).Log("msg", "authenticated user", "user", user.UserID, "oid", user.ObjectID)
		}
	}

	return tk, nil
}

// Identity returns the cached user identity, or nil before the first
// successful acquisition.
func (a *UserAuthorizer) Identity() *UserIdentity {
	return a.user
}

// Credential exposes the underlying token credential for constructing SDK
// clients that must act as the user.
func (a *UserAuthorizer) Credential() azcore.TokenCredential {
	return a.cred
}

// identityFromToken reads the oid and user name claims from an access
// token. The signature is not verified; the token was just issued to us by
// the identity service and is only inspected, never trusted for authz.
func identityFromToken(raw string) (*UserIdentity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("parse access token, %w", err)
	}

	oid, _ := claims["oid"].(string)
	if oid == "" {
		return nil, fmt.Errorf("access token carries no oid claim")
	}

	userID, _ := claims["upn"].(string)
	if userID == "" {
		userID, _ = claims["unique_name"].(string)
	}
	if userID == "" {
		userID, _ = claims["preferred_username"].(string)
	}

	return &UserIdentity{UserID: userID, ObjectID: oid}, nil
}
