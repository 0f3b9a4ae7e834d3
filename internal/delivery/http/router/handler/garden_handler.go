package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"plantheon/internal/delivery/http/response"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/usecase"
)

// GardenHandler serves the garden and plan catalog.
type GardenHandler struct {
	uc usecase.BookingUsecase
}

// NewGardenHandler is the constructor for GardenHandler, injected by Fx.
func NewGardenHandler(uc usecase.BookingUsecase) *GardenHandler {
	return &GardenHandler{uc: uc}
}

// ListGardens returns catalog entries, optionally filtered by type and
// location query parameters.
func (h *GardenHandler) ListGardens(c echo.Context) error {
	var filter usecase.GardenFilter
	if err := c.Bind(&filter); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid filter input")
	}

	return response.Success(c, http.StatusOK, h.uc.ListGardens(filter), "")
}

// GetGarden returns a single catalog entry.
func (h *GardenHandler) GetGarden(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domainerrors.ErrGardenNotFound
	}

	garden, err := h.uc.GetGarden(id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, garden, "")
}

// ListPlans returns the subscription tiers.
func (h *GardenHandler) ListPlans(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.uc.ListPlans(), "")
}
