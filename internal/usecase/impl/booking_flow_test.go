package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/usecase"
)

func TestBookingFlow_HappyPath(t *testing.T) {
	flow := newBookingFlow("flow-1")
	assert.Equal(t, usecase.StepBrowsing, flow.step)

	garden, err := fakeCatalog{}.GardenByID(1)
	require.NoError(t, err)

	flow.selectGarden(garden)
	assert.Equal(t, usecase.StepGardenSelected, flow.step)

	require.NoError(t, flow.selectTime("9:00 AM"))
	assert.Equal(t, usecase.StepTimeSelected, flow.step)

	plan, err := fakeCatalog{}.PlanByID("premium")
	require.NoError(t, err)
	require.NoError(t, flow.choosePlan(plan))
	assert.Equal(t, usecase.StepPlanSelected, flow.step)

	assert.True(t, flow.readyToConfirm())
	assert.Equal(t, 99.0, flow.cost())
}

func TestBookingFlow_SelectTime_RequiresGarden(t *testing.T) {
	flow := newBookingFlow("flow-1")

	err := flow.selectTime("9:00 AM")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestBookingFlow_SelectTime_RejectsUnlistedSlot(t *testing.T) {
	flow := newBookingFlow("flow-1")
	garden, _ := fakeCatalog{}.GardenByID(1)
	flow.selectGarden(garden)

	err := flow.selectTime("3:33 PM")
	assert.ErrorIs(t, err, domainerrors.ErrSlotUnavailable)
	assert.Equal(t, usecase.StepGardenSelected, flow.step)
}

func TestBookingFlow_ChoosePlan_RequiresTime(t *testing.T) {
	flow := newBookingFlow("flow-1")
	garden, _ := fakeCatalog{}.GardenByID(1)
	flow.selectGarden(garden)
	plan, _ := fakeCatalog{}.PlanByID("basic")

	err := flow.choosePlan(plan)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestBookingFlow_ChooseOneTime_RejectsSubscriptionOnlyGarden(t *testing.T) {
	flow := newBookingFlow("flow-1")
	garden, _ := fakeCatalog{}.GardenByID(2)
	flow.selectGarden(garden)
	require.NoError(t, flow.selectTime("4:00 PM"))

	err := flow.chooseOneTime()
	assert.ErrorIs(t, err, domainerrors.ErrOneTimeUnavailable)
	assert.False(t, flow.readyToConfirm())
}

func TestBookingFlow_SwitchingGardenClearsTimeAndPlan(t *testing.T) {
	flow := newBookingFlow("flow-1")
	first, _ := fakeCatalog{}.GardenByID(1)
	flow.selectGarden(first)
	require.NoError(t, flow.selectTime("9:00 AM"))
	plan, _ := fakeCatalog{}.PlanByID("basic")
	require.NoError(t, flow.choosePlan(plan))

	second, _ := fakeCatalog{}.GardenByID(2)
	flow.selectGarden(second)

	assert.Equal(t, usecase.StepGardenSelected, flow.step)
	assert.Empty(t, flow.slot)
	assert.Nil(t, flow.plan)
	assert.False(t, flow.isSubscription)
}

func TestBookingFlow_ReselectingSameGardenKeepsSelections(t *testing.T) {
	flow := newBookingFlow("flow-1")
	garden, _ := fakeCatalog{}.GardenByID(1)
	flow.selectGarden(garden)
	require.NoError(t, flow.selectTime("9:00 AM"))

	same, _ := fakeCatalog{}.GardenByID(1)
	flow.selectGarden(same)

	assert.Equal(t, usecase.StepTimeSelected, flow.step)
	assert.Equal(t, "9:00 AM", flow.slot)
}

func TestBookingFlow_DateIsIndependentOfStep(t *testing.T) {
	flow := newBookingFlow("flow-1")

	flow.selectDate("2026-09-01")
	assert.Equal(t, usecase.StepBrowsing, flow.step)
	assert.Equal(t, "2026-09-01", flow.date)

	garden, _ := fakeCatalog{}.GardenByID(1)
	flow.selectGarden(garden)
	require.NoError(t, flow.selectTime("9:00 AM"))
	flow.selectDate("2026-09-02")
	assert.Equal(t, usecase.StepTimeSelected, flow.step)
	assert.Equal(t, "9:00 AM", flow.slot)
}

func TestBookingFlow_RepickingTimeClearsPaymentChoice(t *testing.T) {
	flow := newBookingFlow("flow-1")
	garden, _ := fakeCatalog{}.GardenByID(1)
	flow.selectGarden(garden)
	require.NoError(t, flow.selectTime("9:00 AM"))
	require.NoError(t, flow.chooseOneTime())

	require.NoError(t, flow.selectTime("11:00 AM"))
	assert.Equal(t, usecase.StepTimeSelected, flow.step)
	assert.False(t, flow.readyToConfirm())
}

func TestBookingFlow_ResetReturnsToBrowsing(t *testing.T) {
	flow := newBookingFlow("flow-1")
	garden, _ := fakeCatalog{}.GardenByID(1)
	flow.selectGarden(garden)
	flow.selectDate("2026-09-01")
	require.NoError(t, flow.selectTime("9:00 AM"))

	flow.reset()

	assert.Equal(t, usecase.StepBrowsing, flow.step)
	assert.Nil(t, flow.garden)
	assert.Empty(t, flow.date)
	assert.Empty(t, flow.slot)
}

func TestBookingFlow_SnapshotCopiesSelections(t *testing.T) {
	flow := newBookingFlow("flow-1")
	garden, _ := fakeCatalog{}.GardenByID(1)
	flow.selectGarden(garden)

	state := flow.snapshot()
	state.Garden.Name = "mutated"

	assert.Equal(t, "Skyline Serenity", flow.garden.Name)
	assert.Equal(t, "flow-1", state.ID)
}
