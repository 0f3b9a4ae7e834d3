package usecase

import (
	"context"

	"plantheon/internal/domain/entity"
)

// UpdateProfileInput carries the editable profile fields. Nil pointers
// leave the current value unchanged.
type UpdateProfileInput struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// AddPaymentMethodInput describes a new payment instrument.
type AddPaymentMethodInput struct {
	Type      string `json:"type" validate:"required"`
	Details   string `json:"details" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

// AccountUsecase covers the signed-in user's profile, payment methods,
// payment history and account deletion. All operations act on the caller's
// own bundle; the handler passes the session user.
type AccountUsecase interface {
	// GetProfile returns the stored profile, seeding one from the session
	// identity when no bundle exists yet.
	GetProfile(ctx context.Context, user *entity.User) (*entity.UserProfile, error)

	// UpdateProfile applies the given fields and returns the result.
	UpdateProfile(ctx context.Context, user *entity.User, input *UpdateProfileInput) (*entity.UserProfile, error)

	// ListPaymentMethods returns the stored payment instruments.
	ListPaymentMethods(ctx context.Context, user *entity.User) ([]entity.PaymentMethod, error)

	// AddPaymentMethod stores a new instrument. When it is marked default,
	// or it is the first one, the default flag moves to it.
	AddPaymentMethod(ctx context.Context, user *entity.User, input *AddPaymentMethodInput) (*entity.PaymentMethod, error)

	// SetDefaultPaymentMethod moves the default flag to the given method
	// and returns the updated list. At most one method is default.
	SetDefaultPaymentMethod(ctx context.Context, user *entity.User, methodID string) ([]entity.PaymentMethod, error)

	// RemovePaymentMethod deletes an instrument.
	RemovePaymentMethod(ctx context.Context, user *entity.User, methodID string) error

	// ListPaymentHistory returns past charges, newest first.
	ListPaymentHistory(ctx context.Context, user *entity.User) ([]entity.PaymentHistoryItem, error)

	// DeleteAccount removes the user's bundle and persisted session in one
	// transaction. The caller is responsible for dropping the in-memory
	// session afterwards.
	DeleteAccount(ctx context.Context, user *entity.User) error
}
