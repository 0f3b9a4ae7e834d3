package repository

import (
	"context"
	"errors"

	"plantheon/internal/domain/entity"
)

// ErrUserDataNotFound is returned when no bundle exists for an email, or
// when the stored payload cannot be parsed. Corrupt data is absence, never
// an error surfaced to the caller.
var ErrUserDataNotFound = errors.New("user data not found")

// UserDataRepository is the per-user bundle store, keyed by email. Writes
// overwrite the full bundle (last-writer-wins; there is a single local
// client, so no merge or locking is needed).
type UserDataRepository interface {
	// Load returns the stored bundle for the email, or ErrUserDataNotFound
	// when none exists or the stored payload is malformed.
	Load(ctx context.Context, email string) (*entity.UserData, error)

	// Save overwrites the full bundle for the email.
	Save(ctx context.Context, email string, data *entity.UserData) error

	// Clear removes the bundle entirely. Used by account deletion.
	Clear(ctx context.Context, email string) error
}
