package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"plantheon/config"
	"plantheon/internal/delivery/http/response"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/usecase"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc          usecase.AuthUsecase
	frontendURL string
	logger      *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	frontendURL := ""
	if cfg.GoogleOAuth != nil {
		frontendURL = cfg.GoogleOAuth.FrontendURL
	}

	return &AuthHandler{
		uc:          uc,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

type googleExchangeInput struct {
	Code string `json:"code"`
}

// GoogleExchange trades an authorization code for a signed-in user. The
// response bodies here are a fixed public contract and deliberately skip
// the envelope: 200 {"user":{...}}, 400 {"error":"Authorization code is
// required"}, 500 {"error":"Authentication failed","details":...}.
func (h *AuthHandler) GoogleExchange(c echo.Context) error {
	var input googleExchangeInput
	if err := c.Bind(&input); err != nil || input.Code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": domainerrors.ErrOAuthCodeRequired.Message(),
		})
	}

	out, err := h.uc.HandleCallback(c.Request().Context(), &usecase.CallbackInput{Code: input.Code})
	if err != nil {
		details := err.Error()
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			details = appErr.Details()
		}

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   domainerrors.ErrOAuthExchangeFailed.Message(),
			"details": details,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"user": out.User})
}

// SignInURL returns the provider authorization URL for the browser.
func (h *AuthHandler) SignInURL(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"url": h.uc.SignInURL()}, "")
}

// Callback handles the browser return leg of the flow with redirect
// semantics: success lands on the dashboard, an abandoned flow lands home.
func (h *AuthHandler) Callback(c echo.Context) error {
	input := &usecase.CallbackInput{
		Code:       c.QueryParam("code"),
		ErrorParam: c.QueryParam("error"),
	}

	out, err := h.uc.HandleCallback(c.Request().Context(), input)
	if err != nil {
		// The browser flow never renders an error page; it goes home.
		h.logger.Warn("OAuth callback failed", slog.Any("error", err))

		return c.Redirect(http.StatusFound, h.frontendURL+"/")
	}

	return c.Redirect(http.StatusFound, h.frontendURL+out.RedirectTo)
}

// Session returns the current session snapshot.
func (h *AuthHandler) Session(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.uc.Current(), "")
}

type mockSignInInput struct {
	Email string `json:"email"`
}

// MockSignIn establishes a session without the provider round-trip.
func (h *AuthHandler) MockSignIn(c echo.Context) error {
	var input mockSignInInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}

	user, err := h.uc.SignInMock(c.Request().Context(), input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Signed in")
}

// Logout destroys the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.uc.SignOut(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}
