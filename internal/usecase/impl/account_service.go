package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	deliverycontext "plantheon/internal/delivery/context"
	"plantheon/internal/domain/entity"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/domain/repository"
	"plantheon/internal/usecase"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// loadOrInit returns the user's bundle, seeding a fresh one from the
// session identity when none exists.
func loadOrInit(ctx context.Context, dataRepo repository.UserDataRepository, user *entity.User) (*entity.UserData, error) {
	data, err := dataRepo.Load(ctx, user.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserDataNotFound) {
			return nil, errors.Wrap(err, "failed to load user data")
		}
		data = entity.NewUserData(user)
	}

	return data, nil
}

// GetProfile returns the stored profile.
func (srv *accountService) GetProfile(ctx context.Context, user *entity.User) (*entity.UserProfile, error) {
	var profile entity.UserProfile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		data, err := loadOrInit(ctx, repoFactory.UserDataRepo(), user)
		if err != nil {
			return err
		}
		profile = data.Profile

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdateProfile applies the given fields and returns the result.
func (srv *accountService) UpdateProfile(ctx context.Context, user *entity.User, input *usecase.UpdateProfileInput) (*entity.UserProfile, error) {
	var profile entity.UserProfile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dataRepo := repoFactory.UserDataRepo()

		data, err := loadOrInit(ctx, dataRepo, user)
		if err != nil {
			return err
		}

		if input.Name != nil {
			data.Profile.Name = *input.Name
		}
		if input.Phone != nil {
			data.Profile.Phone = *input.Phone
		}
		if input.Address != nil {
			data.Profile.Address = *input.Address
		}
		profile = data.Profile

		return dataRepo.Save(ctx, user.Email, data)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile updated", slog.String("email", user.Email))

	return &profile, nil
}

// ListPaymentMethods returns the stored payment instruments.
func (srv *accountService) ListPaymentMethods(ctx context.Context, user *entity.User) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		data, err := loadOrInit(ctx, repoFactory.UserDataRepo(), user)
		if err != nil {
			return err
		}
		methods = data.PaymentMethods

		return nil
	})
	if err != nil {
		return nil, err
	}
	if methods == nil {
		methods = []entity.PaymentMethod{}
	}

	return methods, nil
}

// AddPaymentMethod stores a new instrument. The first method, or one marked
// default, takes the default flag from the others.
func (srv *accountService) AddPaymentMethod(ctx context.Context, user *entity.User, input *usecase.AddPaymentMethodInput) (*entity.PaymentMethod, error) {
	method := entity.PaymentMethod{
		ID:        uuid.New().String(),
		Type:      input.Type,
		Details:   input.Details,
		IsDefault: input.IsDefault,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dataRepo := repoFactory.UserDataRepo()

		data, err := loadOrInit(ctx, dataRepo, user)
		if err != nil {
			return err
		}

		if len(data.PaymentMethods) == 0 {
			method.IsDefault = true
		}
		if method.IsDefault {
			for i := range data.PaymentMethods {
				data.PaymentMethods[i].IsDefault = false
			}
		}
		data.PaymentMethods = append(data.PaymentMethods, method)

		return dataRepo.Save(ctx, user.Email, data)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Payment method added", slog.String("email", user.Email), slog.String("method_id", method.ID))

	return &method, nil
}

// SetDefaultPaymentMethod moves the default flag to the given method.
func (srv *accountService) SetDefaultPaymentMethod(ctx context.Context, user *entity.User, methodID string) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dataRepo := repoFactory.UserDataRepo()

		data, err := loadOrInit(ctx, dataRepo, user)
		if err != nil {
			return err
		}

		found := false
		for i := range data.PaymentMethods {
			isTarget := data.PaymentMethods[i].ID == methodID
			data.PaymentMethods[i].IsDefault = isTarget
			found = found || isTarget
		}
		if !found {
			return domainerrors.ErrPaymentMethodNotFound
		}
		methods = data.PaymentMethods

		return dataRepo.Save(ctx, user.Email, data)
	})
	if err != nil {
		return nil, err
	}

	return methods, nil
}

// RemovePaymentMethod deletes an instrument.
func (srv *accountService) RemovePaymentMethod(ctx context.Context, user *entity.User, methodID string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dataRepo := repoFactory.UserDataRepo()

		data, err := loadOrInit(ctx, dataRepo, user)
		if err != nil {
			return err
		}

		kept := data.PaymentMethods[:0]
		found := false
		for _, method := range data.PaymentMethods {
			if method.ID == methodID {
				found = true

				continue
			}
			kept = append(kept, method)
		}
		if !found {
			return domainerrors.ErrPaymentMethodNotFound
		}
		data.PaymentMethods = kept

		return dataRepo.Save(ctx, user.Email, data)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Payment method removed", slog.String("email", user.Email), slog.String("method_id", methodID))

	return nil
}

// ListPaymentHistory returns past charges, newest first.
func (srv *accountService) ListPaymentHistory(ctx context.Context, user *entity.User) ([]entity.PaymentHistoryItem, error) {
	var history []entity.PaymentHistoryItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		data, err := loadOrInit(ctx, repoFactory.UserDataRepo(), user)
		if err != nil {
			return err
		}
		history = data.PaymentHistory

		return nil
	})
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []entity.PaymentHistoryItem{}
	}

	return history, nil
}

// DeleteAccount removes the user's bundle and persisted session.
func (srv *accountService) DeleteAccount(ctx context.Context, user *entity.User) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserDataRepo().Clear(ctx, user.Email); err != nil {
			return errors.Wrap(err, "failed to clear user data")
		}

		return repoFactory.SessionRepo().Clear(ctx)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Account deleted", slog.String("email", user.Email))

	return nil
}
