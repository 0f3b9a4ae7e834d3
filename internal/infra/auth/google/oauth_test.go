package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantheon/config"
)

func newTestService() *OAuthService {
	cfg := &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			FrontendURL:  "http://localhost:5173",
		},
	}

	return NewOAuthService(cfg).(*OAuthService)
}

func TestAuthorizationURL(t *testing.T) {
	svc := newTestService()

	raw := svc.AuthorizationURL()
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", parsed.Host)
	query := parsed.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "http://localhost:5173/auth/callback", query.Get("redirect_uri"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "openid email profile", query.Get("scope"))
}

func TestExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token-123","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	svc := newTestService()
	svc.tokenURL = server.URL

	token, err := svc.ExchangeCode(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
}

func TestExchangeCode_RejectedCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	svc := newTestService()
	svc.tokenURL = server.URL

	_, err := svc.ExchangeCode(context.Background(), "stale-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestExchangeCode_EmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	svc := newTestService()
	svc.tokenURL = server.URL

	_, err := svc.ExchangeCode(context.Background(), "auth-code")
	assert.Error(t, err)
}

func TestFetchUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "1001",
			"email": "gardener@example.com",
			"name": "Gardener",
			"picture": "https://example.com/a.png",
			"verified_email": true
		}`))
	}))
	defer server.Close()

	svc := newTestService()
	svc.userInfoURL = server.URL

	user, err := svc.FetchUser(context.Background(), "token-123")
	require.NoError(t, err)
	assert.Equal(t, "1001", user.ID)
	assert.Equal(t, "gardener@example.com", user.Email)
	assert.Equal(t, "Gardener", user.Name)
	assert.Equal(t, "https://example.com/a.png", user.AvatarURL)
	assert.True(t, user.EmailVerified)
}

func TestExchangeCode_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := newTestService()
	svc.tokenURL = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ExchangeCode(ctx, "auth-code")
	assert.Error(t, err)
}
