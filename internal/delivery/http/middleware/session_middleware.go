package middleware

import (
	"github.com/labstack/echo/v4"

	"plantheon/internal/domain/entity"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/usecase"
)

// sessionUserKey is where RequireSession stores the signed-in user on the
// echo context.
const sessionUserKey = "sessionUser"

// SessionMiddleware guards routes that need a signed-in user.
type SessionMiddleware struct {
	auth usecase.AuthUsecase
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(auth usecase.AuthUsecase) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

// RequireSession admits the request only when a session exists, and makes
// the session user available to handlers.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := m.auth.Current()
		if !session.IsAuthenticated {
			return domainerrors.ErrUnauthenticated
		}

		c.Set(sessionUserKey, session.User)

		return next(c)
	}
}

// SessionUser returns the user stored by RequireSession, or nil on
// unguarded routes.
func SessionUser(c echo.Context) *entity.User {
	user, _ := c.Get(sessionUserKey).(*entity.User)

	return user
}
