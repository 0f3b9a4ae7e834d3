// Package service defines interfaces for infrastructure services the
// application layer depends on.
package service

import "context"

// OAuthUser represents the profile returned by the identity provider after
// a successful code exchange.
type OAuthUser struct {
	ID            string // Provider-specific user ID (Google's 'sub').
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
}

// OAuthService defines the authorization-code flow against the identity
// provider. The exchange is terminal per attempt: authorization codes are
// single-use, so callers must not retry a failed exchange.
type OAuthService interface {
	// AuthorizationURL builds the provider authorization URL the browser is
	// sent to: configured client id, redirect URI <frontend>/auth/callback,
	// response type "code", scope "openid email profile".
	AuthorizationURL() string

	// ExchangeCode trades an authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchUser retrieves the user's profile with an access token.
	FetchUser(ctx context.Context, accessToken string) (*OAuthUser, error)
}
