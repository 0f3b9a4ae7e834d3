// Package impl contains the application-specific business rules implementations.
package impl

import (
	"plantheon/internal/domain/entity"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/usecase"
)

// bookingFlow is the selection state machine behind one booking attempt.
// It is a plain value with no locking; the owning service serializes
// access through its registry mutex.
type bookingFlow struct {
	id             string
	step           string
	garden         *entity.Garden
	date           string
	slot           string
	plan           *entity.Plan
	isSubscription bool
}

func newBookingFlow(id string) *bookingFlow {
	return &bookingFlow{id: id, step: usecase.StepBrowsing}
}

// selectGarden advances to gardenSelected. Switching to a different garden
// discards the time and payment choice; re-selecting the same garden keeps
// them.
func (f *bookingFlow) selectGarden(garden *entity.Garden) {
	if f.garden != nil && f.garden.ID == garden.ID {
		f.garden = garden

		return
	}

	f.garden = garden
	f.slot = ""
	f.plan = nil
	f.isSubscription = false
	f.step = usecase.StepGardenSelected
}

// selectDate never touches the step or the other selections.
func (f *bookingFlow) selectDate(date string) {
	f.date = date
}

// selectTime requires a garden and one of its listed slots. Re-picking a
// time drops any payment choice already made.
func (f *bookingFlow) selectTime(slot string) error {
	if f.garden == nil {
		return domainerrors.ErrInvalidTransition.WrapMessage("no garden selected")
	}
	if !f.garden.HasSlot(slot) {
		return domainerrors.ErrSlotUnavailable
	}

	f.slot = slot
	f.plan = nil
	f.isSubscription = false
	f.step = usecase.StepTimeSelected

	return nil
}

// choosePlan picks subscription payment with the given tier.
func (f *bookingFlow) choosePlan(plan *entity.Plan) error {
	if f.garden == nil || f.slot == "" {
		return domainerrors.ErrInvalidTransition.WrapMessage("no time selected")
	}

	f.plan = plan
	f.isSubscription = true
	f.step = usecase.StepPlanSelected

	return nil
}

// chooseOneTime picks single-visit payment.
func (f *bookingFlow) chooseOneTime() error {
	if f.garden == nil || f.slot == "" {
		return domainerrors.ErrInvalidTransition.WrapMessage("no time selected")
	}
	if f.garden.SubscriptionOnly {
		return domainerrors.ErrOneTimeUnavailable
	}

	f.plan = nil
	f.isSubscription = false
	f.step = usecase.StepPlanSelected

	return nil
}

// readyToConfirm reports whether every required selection is in place.
func (f *bookingFlow) readyToConfirm() bool {
	if f.step != usecase.StepPlanSelected || f.garden == nil || f.slot == "" {
		return false
	}

	return !f.isSubscription || f.plan != nil
}

// cost is the amount charged at confirmation: the tier's monthly price for
// subscriptions, the garden's single-visit price otherwise.
func (f *bookingFlow) cost() float64 {
	if f.isSubscription && f.plan != nil {
		return f.plan.MonthlyPrice
	}

	return f.garden.OneTimePrice
}

// reset returns the machine to browsing, discarding every selection.
func (f *bookingFlow) reset() {
	f.garden = nil
	f.date = ""
	f.slot = ""
	f.plan = nil
	f.isSubscription = false
	f.step = usecase.StepBrowsing
}

// snapshot builds an immutable view for callers.
func (f *bookingFlow) snapshot() *usecase.FlowState {
	state := &usecase.FlowState{
		ID:             f.id,
		Step:           f.step,
		Date:           f.date,
		Time:           f.slot,
		IsSubscription: f.isSubscription,
	}
	if f.garden != nil {
		garden := *f.garden
		state.Garden = &garden
	}
	if f.plan != nil {
		plan := *f.plan
		state.Plan = &plan
	}

	return state
}
