package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantheon/internal/domain/entity"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/usecase"
)

type stubAuth struct {
	session *entity.Session
}

func (s *stubAuth) SignInURL() string { return "" }

func (s *stubAuth) HandleCallback(context.Context, *usecase.CallbackInput) (*usecase.CallbackOutput, error) {
	return nil, nil
}

func (s *stubAuth) SignInMock(context.Context, string) (*entity.User, error) { return nil, nil }

func (s *stubAuth) SignOut(context.Context) error { return nil }

func (s *stubAuth) RestoreSession(context.Context) error { return nil }

func (s *stubAuth) Current() *entity.Session { return s.session }

func TestRequireSession_RejectsAnonymous(t *testing.T) {
	m := NewSessionMiddleware(&stubAuth{session: &entity.Session{}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/bookings", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	next := func(echo.Context) error {
		t.Fatal("next should not run")

		return nil
	}

	err := m.RequireSession(next)(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestRequireSession_AdmitsSignedInUser(t *testing.T) {
	user := &entity.User{Email: "gardener@example.com"}
	m := NewSessionMiddleware(&stubAuth{session: &entity.Session{User: user, IsAuthenticated: true}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/bookings", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	next := func(inner echo.Context) error {
		called = true
		assert.Equal(t, user, SessionUser(inner))

		return nil
	}

	require.NoError(t, m.RequireSession(next)(c))
	assert.True(t, called)
}

func TestSessionUser_NilOnUnguardedRoute(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/gardens", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Nil(t, SessionUser(c))
}
