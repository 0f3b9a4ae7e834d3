package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkg/errors"

	deliverycontext "plantheon/internal/delivery/context"
	"plantheon/internal/domain/entity"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/domain/repository"
	"plantheon/internal/domain/service"
	"plantheon/internal/usecase"
)

const (
	redirectHome      = "/"
	redirectDashboard = "/dashboard"
)

// authService implements the AuthUsecase interface. The in-memory session
// is the source of truth for guards; the persisted copy only exists so a
// restart can rebuild it.
type authService struct {
	txManager repository.TransactionManager
	oauth     service.OAuthService
	logger    *slog.Logger

	mu      sync.RWMutex
	current *entity.User
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	oauth service.OAuthService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager: txManager,
		oauth:     oauth,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignInURL returns the provider authorization URL.
func (srv *authService) SignInURL() string {
	return srv.oauth.AuthorizationURL()
}

// HandleCallback completes the sign-in flow.
func (srv *authService) HandleCallback(ctx context.Context, input *usecase.CallbackInput) (*usecase.CallbackOutput, error) {
	// The provider reported a denied or cancelled consent screen. The flow
	// ends here, without any network call and without touching the session.
	if input.ErrorParam != "" {
		srv.log(ctx).Info("OAuth flow abandoned", slog.String("error", input.ErrorParam))

		return &usecase.CallbackOutput{RedirectTo: redirectHome}, nil
	}

	if input.Code == "" {
		return nil, domainerrors.ErrOAuthCodeRequired
	}

	// Authorization codes are single-use: any failure past this point is
	// terminal for the attempt.
	token, err := srv.oauth.ExchangeCode(ctx, input.Code)
	if err != nil {
		srv.log(ctx).Error("Code exchange failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthExchangeFailed.WithDetails(err.Error())
	}

	profile, err := srv.oauth.FetchUser(ctx, token)
	if err != nil {
		srv.log(ctx).Error("User info fetch failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthExchangeFailed.WithDetails(err.Error())
	}

	user := &entity.User{
		Email: profile.Email,
		Name:  profile.Name,
		Image: profile.AvatarURL,
	}

	if err := srv.establishSession(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to establish session", slog.Any("error", err), slog.String("email", user.Email))

		return nil, domainerrors.ErrOAuthExchangeFailed.WithDetails(err.Error())
	}

	srv.log(ctx).Info("User signed in", slog.String("email", user.Email))

	return &usecase.CallbackOutput{User: user, RedirectTo: redirectDashboard}, nil
}

// SignInMock establishes a session without a provider round-trip.
func (srv *authService) SignInMock(ctx context.Context, email string) (*entity.User, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("a valid email is required")
	}

	user := &entity.User{
		Email: email,
		Name:  strings.SplitN(email, "@", 2)[0],
	}

	if err := srv.establishSession(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to establish mock session")
	}

	srv.log(ctx).Info("Mock user signed in", slog.String("email", email))

	return user, nil
}

// establishSession finds or creates the user record and persists the
// session, all in one transaction, then swaps the in-memory session.
func (srv *authService) establishSession(ctx context.Context, user *entity.User) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, err := userRepo.FindByEmail(ctx, user.Email)
		switch {
		case err == nil:
			// Known user; refresh the mutable fields from the provider.
			if user.Name == "" {
				user.Name = existing.Name
			}
			if user.Image == "" {
				user.Image = existing.Image
			}
		case errors.Is(err, repository.ErrUserNotFound):
			if err := userRepo.Create(ctx, user); err != nil {
				return errors.Wrap(err, "failed to create user")
			}
		default:
			return errors.Wrap(err, "failed to find user")
		}

		return repoFactory.SessionRepo().Save(ctx, user)
	})
	if err != nil {
		return err
	}

	srv.mu.Lock()
	srv.current = user
	srv.mu.Unlock()

	return nil
}

// SignOut destroys the session. Signing out while signed out is a no-op.
func (srv *authService) SignOut(ctx context.Context) error {
	srv.mu.Lock()
	srv.current = nil
	srv.mu.Unlock()

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SessionRepo().Clear(ctx)
	})
	if err != nil {
		return errors.Wrap(err, "failed to clear persisted session")
	}

	srv.log(ctx).Info("User signed out")

	return nil
}

// RestoreSession rebuilds the in-memory session from the persisted record.
func (srv *authService) RestoreSession(ctx context.Context) error {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		loaded, err := repoFactory.SessionRepo().Load(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to load persisted session")
		}
		user = loaded

		return nil
	})
	if err != nil {
		return err
	}

	if user == nil {
		srv.log(ctx).Debug("No persisted session to restore")

		return nil
	}

	srv.mu.Lock()
	srv.current = user
	srv.mu.Unlock()

	srv.log(ctx).Info("Session restored", slog.String("email", user.Email))

	return nil
}

// Current returns a snapshot of the session state.
func (srv *authService) Current() *entity.Session {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	session := &entity.Session{IsAuthenticated: srv.current != nil}
	if srv.current != nil {
		user := *srv.current
		session.User = &user
	}

	return session
}
