package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"plantheon/internal/delivery/http/middleware"
	"plantheon/internal/delivery/http/response"
	"plantheon/internal/usecase"
)

// AccountHandler serves the dashboard's profile, payment and account
// settings. Every route is behind the session guard.
type AccountHandler struct {
	uc   usecase.AccountUsecase
	auth usecase.AuthUsecase
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, auth usecase.AuthUsecase) *AccountHandler {
	return &AccountHandler{uc: uc, auth: auth}
}

// GetProfile returns the stored profile.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	profile, err := h.uc.GetProfile(c.Request().Context(), middleware.SessionUser(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}

// UpdateProfile applies partial profile edits.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), middleware.SessionUser(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated")
}

// ListPaymentMethods returns the stored payment instruments.
func (h *AccountHandler) ListPaymentMethods(c echo.Context) error {
	methods, err := h.uc.ListPaymentMethods(c.Request().Context(), middleware.SessionUser(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, methods, "")
}

// AddPaymentMethod stores a new instrument.
func (h *AccountHandler) AddPaymentMethod(c echo.Context) error {
	var input usecase.AddPaymentMethodInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment method input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	method, err := h.uc.AddPaymentMethod(c.Request().Context(), middleware.SessionUser(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, method, "Payment method added")
}

// SetDefaultPaymentMethod moves the default flag.
func (h *AccountHandler) SetDefaultPaymentMethod(c echo.Context) error {
	methods, err := h.uc.SetDefaultPaymentMethod(c.Request().Context(), middleware.SessionUser(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, methods, "Default payment method updated")
}

// RemovePaymentMethod deletes an instrument.
func (h *AccountHandler) RemovePaymentMethod(c echo.Context) error {
	if err := h.uc.RemovePaymentMethod(c.Request().Context(), middleware.SessionUser(c), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Payment method removed")
}

// ListPaymentHistory returns past charges.
func (h *AccountHandler) ListPaymentHistory(c echo.Context) error {
	history, err := h.uc.ListPaymentHistory(c.Request().Context(), middleware.SessionUser(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, history, "")
}

// DeleteAccount removes the user's data and signs out.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.uc.DeleteAccount(ctx, middleware.SessionUser(c)); err != nil {
		return errors.WithStack(err)
	}
	if err := h.auth.SignOut(ctx); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}
