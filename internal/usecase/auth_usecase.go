// Package usecase defines the application-layer interfaces and their
// input/output types.
package usecase

import (
	"context"

	"plantheon/internal/domain/entity"
)

// CallbackInput carries what the browser brought back from the provider's
// consent screen. Exactly one of Code or ErrorParam is normally set.
type CallbackInput struct {
	Code       string `json:"code"`
	ErrorParam string `json:"error,omitempty"`
}

// CallbackOutput is the result of handling the provider callback.
type CallbackOutput struct {
	// User is set after a successful exchange, nil when the flow was
	// abandoned (provider returned an error parameter).
	User *entity.User

	// RedirectTo is where the browser should land next: the dashboard after
	// success, home after an abandoned flow.
	RedirectTo string
}

// AuthUsecase manages the sign-in flow and the current session. The service
// fronts a single local client, so one session exists at a time.
type AuthUsecase interface {
	// SignInURL returns the provider authorization URL to send the browser to.
	SignInURL() string

	// HandleCallback completes the flow. An error parameter from the
	// provider aborts without any network call; otherwise the code is
	// exchanged, the user record found or created, and the session
	// established and persisted.
	HandleCallback(ctx context.Context, input *CallbackInput) (*CallbackOutput, error)

	// SignInMock establishes a session for the given email without touching
	// the provider; the display name is the email's local part. Kept for
	// local development.
	SignInMock(ctx context.Context, email string) (*entity.User, error)

	// SignOut destroys the session in memory and removes the persisted
	// record. Signing out while signed out is a no-op.
	SignOut(ctx context.Context) error

	// RestoreSession rebuilds the in-memory session from the persisted
	// record. Called once at startup, before the server accepts requests.
	RestoreSession(ctx context.Context) error

	// Current returns a snapshot of the session state. The returned value
	// is a copy; mutating it does not affect the session.
	Current() *entity.Session
}
