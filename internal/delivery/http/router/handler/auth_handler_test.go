package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantheon/config"
	"plantheon/internal/domain/entity"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/usecase"

	"github.com/labstack/echo/v4"
)

// stubAuthUsecase drives the handlers without the real service.
type stubAuthUsecase struct {
	callbackOut *usecase.CallbackOutput
	callbackErr error
	session     *entity.Session
	signOutErr  error
	lastInput   *usecase.CallbackInput
}

func (s *stubAuthUsecase) SignInURL() string { return "https://accounts.google.com/auth?x=1" }

func (s *stubAuthUsecase) HandleCallback(_ context.Context, input *usecase.CallbackInput) (*usecase.CallbackOutput, error) {
	s.lastInput = input
	if s.callbackErr != nil {
		return nil, s.callbackErr
	}

	return s.callbackOut, nil
}

func (s *stubAuthUsecase) SignInMock(_ context.Context, email string) (*entity.User, error) {
	return &entity.User{Email: email, Name: strings.SplitN(email, "@", 2)[0]}, nil
}

func (s *stubAuthUsecase) SignOut(context.Context) error { return s.signOutErr }

func (s *stubAuthUsecase) RestoreSession(context.Context) error { return nil }

func (s *stubAuthUsecase) Current() *entity.Session {
	if s.session == nil {
		return &entity.Session{}
	}

	return s.session
}

func testConfig() *config.Config {
	return &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{FrontendURL: "http://localhost:5173"},
	}
}

func newAuthHandlerForTest(uc usecase.AuthUsecase) *AuthHandler {
	return NewAuthHandler(uc, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doJSON(t *testing.T, handlerFn echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handlerFn(c))

	return rec
}

func TestGoogleExchange_Success(t *testing.T) {
	uc := &stubAuthUsecase{callbackOut: &usecase.CallbackOutput{
		User:       &entity.User{Email: "gardener@example.com", Name: "Gardener", Image: "https://example.com/a.png"},
		RedirectTo: "/dashboard",
	}}
	h := newAuthHandlerForTest(uc)

	rec := doJSON(t, h.GoogleExchange, http.MethodPost, "/api/auth/google", `{"code":"auth-code"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"user":{"email":"gardener@example.com","name":"Gardener","image":"https://example.com/a.png"}}`,
		rec.Body.String())
	assert.Equal(t, "auth-code", uc.lastInput.Code)
}

func TestGoogleExchange_MissingCode(t *testing.T) {
	h := newAuthHandlerForTest(&stubAuthUsecase{})

	rec := doJSON(t, h.GoogleExchange, http.MethodPost, "/api/auth/google", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Authorization code is required"}`, rec.Body.String())
}

func TestGoogleExchange_ExchangeFailure(t *testing.T) {
	uc := &stubAuthUsecase{callbackErr: domainerrors.ErrOAuthExchangeFailed.WithDetails("invalid_grant")}
	h := newAuthHandlerForTest(uc)

	rec := doJSON(t, h.GoogleExchange, http.MethodPost, "/api/auth/google", `{"code":"stale"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication failed","details":"invalid_grant"}`, rec.Body.String())
}

func TestCallback_RedirectsToDashboard(t *testing.T) {
	uc := &stubAuthUsecase{callbackOut: &usecase.CallbackOutput{
		User:       &entity.User{Email: "gardener@example.com"},
		RedirectTo: "/dashboard",
	}}
	h := newAuthHandlerForTest(uc)

	rec := doJSON(t, h.Callback, http.MethodGet, "/api/auth/callback?code=auth-code", "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://localhost:5173/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestCallback_AbandonedFlowRedirectsHome(t *testing.T) {
	uc := &stubAuthUsecase{callbackOut: &usecase.CallbackOutput{RedirectTo: "/"}}
	h := newAuthHandlerForTest(uc)

	rec := doJSON(t, h.Callback, http.MethodGet, "/api/auth/callback?error=access_denied", "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://localhost:5173/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "access_denied", uc.lastInput.ErrorParam)
}

func TestCallback_FailureRedirectsHome(t *testing.T) {
	uc := &stubAuthUsecase{callbackErr: domainerrors.ErrOAuthExchangeFailed}
	h := newAuthHandlerForTest(uc)

	rec := doJSON(t, h.Callback, http.MethodGet, "/api/auth/callback?code=bad", "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://localhost:5173/", rec.Header().Get(echo.HeaderLocation))
}

func TestSession_Snapshot(t *testing.T) {
	uc := &stubAuthUsecase{session: &entity.Session{
		User:            &entity.User{Email: "gardener@example.com", Name: "Gardener"},
		IsAuthenticated: true,
	}}
	h := newAuthHandlerForTest(uc)

	rec := doJSON(t, h.Session, http.MethodGet, "/api/auth/session", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"isAuthenticated":true`)
	assert.Contains(t, body, `"gardener@example.com"`)
	assert.Contains(t, body, `"success":true`)
}

func TestMockSignIn(t *testing.T) {
	h := newAuthHandlerForTest(&stubAuthUsecase{})

	rec := doJSON(t, h.MockSignIn, http.MethodPost, "/api/auth/mock", `{"email":"demo@example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"demo@example.com"`)
}

func TestLogout(t *testing.T) {
	h := newAuthHandlerForTest(&stubAuthUsecase{})

	rec := doJSON(t, h.Logout, http.MethodPost, "/api/auth/logout", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully logged out")
}

func TestSignInURL(t *testing.T) {
	h := newAuthHandlerForTest(&stubAuthUsecase{})

	rec := doJSON(t, h.SignInURL, http.MethodGet, "/api/auth/google/url", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://accounts.google.com/auth?x=1")
}

func TestHealthCheck_ExactBody(t *testing.T) {
	rec := doJSON(t, HealthCheck, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Server is running"}`, rec.Body.String())
}
