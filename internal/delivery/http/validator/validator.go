// Package validator plugs go-playground validation into echo.
package validator

import (
	validatorlib "github.com/go-playground/validator/v10"

	domainerrors "plantheon/internal/domain/errors"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validatorlib.Validate
}

// New creates the validator used by the HTTP server.
func New() *EchoValidator {
	return &EchoValidator{validate: validatorlib.New()}
}

// Validate checks struct tags and maps failures onto the domain's
// validation error so the error middleware renders them uniformly.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
