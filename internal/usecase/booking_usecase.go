package usecase

import (
	"context"

	"plantheon/internal/domain/entity"
)

// Flow step names, exposed to clients as-is.
const (
	StepBrowsing       = "browsing"
	StepGardenSelected = "gardenSelected"
	StepTimeSelected   = "timeSelected"
	StepPlanSelected   = "planSelected"
)

// GardenFilter narrows the garden listing. Empty values and the "All ..."
// placeholder labels match everything.
type GardenFilter struct {
	Type     string `json:"type" query:"type"`
	Location string `json:"location" query:"location"`
}

// FlowState is a snapshot of a booking flow. Selections accumulate as the
// flow advances; fields are nil or empty until their step is reached.
type FlowState struct {
	ID             string         `json:"id"`
	Step           string         `json:"step"`
	Garden         *entity.Garden `json:"garden,omitempty"`
	Date           string         `json:"date,omitempty"`
	Time           string         `json:"time,omitempty"`
	Plan           *entity.Plan   `json:"plan,omitempty"`
	IsSubscription bool           `json:"isSubscription"`
}

// ConfirmOutput is returned after a successful confirmation.
type ConfirmOutput struct {
	Booking entity.Booking `json:"booking"`
	Message string         `json:"message"`
	Flow    *FlowState     `json:"flow"`
}

// BookingUsecase covers the catalog, the selection flow, and booking
// management. Flow state lives server-side, keyed by an opaque flow ID.
type BookingUsecase interface {
	// ListGardens returns catalog entries matching the filter.
	ListGardens(filter GardenFilter) []entity.Garden

	// GetGarden returns a single catalog entry.
	GetGarden(id int) (*entity.Garden, error)

	// ListPlans returns the subscription tiers.
	ListPlans() []entity.Plan

	// StartFlow creates a fresh flow in the browsing step.
	StartFlow(ctx context.Context) (*FlowState, error)

	// GetFlow returns the current snapshot of a flow.
	GetFlow(flowID string) (*FlowState, error)

	// SelectGarden picks a garden. Picking a different garden than the
	// current one discards any time and plan already chosen.
	SelectGarden(ctx context.Context, flowID string, gardenID int) (*FlowState, error)

	// SelectDate sets the visit date. The date is independent of the step
	// and can change at any point before confirmation.
	SelectDate(ctx context.Context, flowID string, date string) (*FlowState, error)

	// SelectTime picks one of the garden's available slots.
	SelectTime(ctx context.Context, flowID string, slot string) (*FlowState, error)

	// ChoosePlan picks a subscription tier as the payment option.
	ChoosePlan(ctx context.Context, flowID string, planID string) (*FlowState, error)

	// ChooseOneTime picks single-visit payment. Rejected for gardens that
	// only admit subscribers.
	ChooseOneTime(ctx context.Context, flowID string) (*FlowState, error)

	// Back abandons the current selections and returns to browsing.
	Back(ctx context.Context, flowID string) (*FlowState, error)

	// Confirm finalizes the booking for the signed-in user, persists it,
	// and resets the flow to browsing. The flow is left untouched when
	// confirmation fails.
	Confirm(ctx context.Context, user *entity.User, flowID string) (*ConfirmOutput, error)

	// ListBookings returns the user's bookings, newest first, optionally
	// narrowed by a free-text search over garden name and type and by
	// status. Records with an unrecognized status are skipped.
	ListBookings(ctx context.Context, email string, search string, status string) ([]entity.Booking, error)

	// GetBooking returns a single booking from the user's bundle.
	GetBooking(ctx context.Context, email string, bookingID string) (*entity.Booking, error)

	// CancelBooking moves an upcoming booking to cancelled. Completed and
	// already-cancelled bookings are not cancellable.
	CancelBooking(ctx context.Context, email string, bookingID string) (*entity.Booking, error)
}
