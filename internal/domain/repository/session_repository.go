package repository

import (
	"context"
	"errors"

	"plantheon/internal/domain/entity"
)

// ErrSessionNotFound is returned when no session record is persisted, or
// when the persisted record is malformed. The session manager treats both
// as "no session".
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists the current signed-in user so the session
// survives restarts. A single record exists at a time; it is written on
// sign-in and removed on sign-out.
type SessionRepository interface {
	// Load returns the persisted session user, or ErrSessionNotFound.
	Load(ctx context.Context) (*entity.User, error)

	// Save stores the session user, replacing any previous record.
	Save(ctx context.Context, user *entity.User) error

	// Clear removes the persisted session record.
	Clear(ctx context.Context) error
}
