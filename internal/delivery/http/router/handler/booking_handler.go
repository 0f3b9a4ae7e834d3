package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"plantheon/internal/delivery/http/middleware"
	"plantheon/internal/delivery/http/response"
	"plantheon/internal/domain/entity"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/usecase"
)

// BookingHandler drives the booking flow and the dashboard's booking
// management.
type BookingHandler struct {
	uc   usecase.BookingUsecase
	auth usecase.AuthUsecase
}

// NewBookingHandler is the constructor for BookingHandler, injected by Fx.
func NewBookingHandler(uc usecase.BookingUsecase, auth usecase.AuthUsecase) *BookingHandler {
	return &BookingHandler{uc: uc, auth: auth}
}

// StartFlow creates a fresh booking flow.
func (h *BookingHandler) StartFlow(c echo.Context) error {
	state, err := h.uc.StartFlow(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, state, "Booking flow started")
}

// GetFlow returns the flow's current snapshot.
func (h *BookingHandler) GetFlow(c echo.Context) error {
	state, err := h.uc.GetFlow(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

type selectGardenInput struct {
	GardenID int `json:"gardenId" validate:"required"`
}

// SelectGarden picks a garden for the flow.
func (h *BookingHandler) SelectGarden(c echo.Context) error {
	var input selectGardenInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid garden selection")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	state, err := h.uc.SelectGarden(c.Request().Context(), c.Param("id"), input.GardenID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

type selectDateInput struct {
	Date string `json:"date" validate:"required"`
}

// SelectDate sets the visit date.
func (h *BookingHandler) SelectDate(c echo.Context) error {
	var input selectDateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid date input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	state, err := h.uc.SelectDate(c.Request().Context(), c.Param("id"), input.Date)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

type selectTimeInput struct {
	Time string `json:"time" validate:"required"`
}

// SelectTime picks one of the garden's available slots.
func (h *BookingHandler) SelectTime(c echo.Context) error {
	var input selectTimeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid time input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	state, err := h.uc.SelectTime(c.Request().Context(), c.Param("id"), input.Time)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

type selectPlanInput struct {
	Type   string `json:"type" validate:"required,oneof=one-time subscription"`
	PlanID string `json:"planId"`
}

// SelectPlan picks the payment option: a subscription tier or a single
// visit.
func (h *BookingHandler) SelectPlan(c echo.Context) error {
	var input selectPlanInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid plan selection")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	var (
		state *usecase.FlowState
		err   error
	)
	if input.Type == string(entity.PaymentTypeSubscription) {
		if input.PlanID == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("planId is required for subscriptions")
		}
		state, err = h.uc.ChoosePlan(c.Request().Context(), c.Param("id"), input.PlanID)
	} else {
		state, err = h.uc.ChooseOneTime(c.Request().Context(), c.Param("id"))
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

// Back abandons the current selections.
func (h *BookingHandler) Back(c echo.Context) error {
	state, err := h.uc.Back(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

// Confirm finalizes the booking. The route is deliberately unguarded: an
// anonymous confirm must return the log-in notice while leaving the flow's
// selections in place, which the usecase handles.
func (h *BookingHandler) Confirm(c echo.Context) error {
	session := h.auth.Current()

	out, err := h.uc.Confirm(c.Request().Context(), session.User, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, out, out.Message)
}

// ListBookings returns the signed-in user's bookings.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	user := middleware.SessionUser(c)

	bookings, err := h.uc.ListBookings(c.Request().Context(), user.Email, c.QueryParam("search"), c.QueryParam("status"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bookings, "")
}

// GetBooking returns one of the signed-in user's bookings.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	user := middleware.SessionUser(c)

	booking, err := h.uc.GetBooking(c.Request().Context(), user.Email, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, booking, "")
}

// CancelBooking flips an upcoming booking to cancelled.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	user := middleware.SessionUser(c)

	booking, err := h.uc.CancelBooking(c.Request().Context(), user.Email, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, booking, "Booking cancelled")
}
