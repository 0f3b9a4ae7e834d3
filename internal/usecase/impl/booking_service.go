package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	deliverycontext "plantheon/internal/delivery/context"
	"plantheon/internal/domain/entity"
	domainerrors "plantheon/internal/domain/errors"
	"plantheon/internal/domain/repository"
	"plantheon/internal/usecase"
)

const dateLayout = "2006-01-02"

// bookingService implements the BookingUsecase interface. Flows live in an
// in-memory registry; they are scratch state and do not survive a restart.
type bookingService struct {
	catalog   repository.CatalogRepository
	txManager repository.TransactionManager
	logger    *slog.Logger

	mu    sync.Mutex
	flows map[string]*bookingFlow

	now func() time.Time
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(
	catalog repository.CatalogRepository,
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.BookingUsecase {
	return &bookingService{
		catalog:   catalog,
		txManager: txManager,
		logger:    logger,
		flows:     make(map[string]*bookingFlow),
		now:       time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// isWildcardFilter reports whether the value matches everything. The
// browsing UI sends "All Locations" / "All Types" for its placeholder
// options, so any "All ..." label counts.
func isWildcardFilter(value string) bool {
	return value == "" || strings.EqualFold(value, "all") || strings.HasPrefix(value, "All ")
}

// ListGardens returns catalog entries matching the filter.
func (srv *bookingService) ListGardens(filter usecase.GardenFilter) []entity.Garden {
	all := srv.catalog.Gardens()
	matched := make([]entity.Garden, 0, len(all))
	for _, garden := range all {
		if !isWildcardFilter(filter.Type) && garden.Type != filter.Type {
			continue
		}
		if !isWildcardFilter(filter.Location) && garden.Location != filter.Location {
			continue
		}
		matched = append(matched, garden)
	}

	return matched
}

// GetGarden returns a single catalog entry.
func (srv *bookingService) GetGarden(id int) (*entity.Garden, error) {
	garden, err := srv.catalog.GardenByID(id)
	if err != nil {
		return nil, domainerrors.ErrGardenNotFound
	}

	return garden, nil
}

// ListPlans returns the subscription tiers.
func (srv *bookingService) ListPlans() []entity.Plan {
	return srv.catalog.Plans()
}

// StartFlow creates a fresh flow in the browsing step.
func (srv *bookingService) StartFlow(ctx context.Context) (*usecase.FlowState, error) {
	flow := newBookingFlow(uuid.New().String())

	srv.mu.Lock()
	srv.flows[flow.id] = flow
	srv.mu.Unlock()

	srv.log(ctx).Debug("Booking flow started", slog.String("flow_id", flow.id))

	return flow.snapshot(), nil
}

// GetFlow returns the current snapshot of a flow.
func (srv *bookingService) GetFlow(flowID string) (*usecase.FlowState, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	flow, ok := srv.flows[flowID]
	if !ok {
		return nil, domainerrors.ErrFlowNotFound
	}

	return flow.snapshot(), nil
}

// withFlow runs fn against the named flow under the registry lock.
func (srv *bookingService) withFlow(flowID string, fn func(flow *bookingFlow) error) (*usecase.FlowState, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	flow, ok := srv.flows[flowID]
	if !ok {
		return nil, domainerrors.ErrFlowNotFound
	}

	if err := fn(flow); err != nil {
		return nil, err
	}

	return flow.snapshot(), nil
}

// SelectGarden picks a garden for the flow.
func (srv *bookingService) SelectGarden(ctx context.Context, flowID string, gardenID int) (*usecase.FlowState, error) {
	garden, err := srv.catalog.GardenByID(gardenID)
	if err != nil {
		return nil, domainerrors.ErrGardenNotFound
	}

	return srv.withFlow(flowID, func(flow *bookingFlow) error {
		flow.selectGarden(garden)

		return nil
	})
}

// SelectDate sets the visit date.
func (srv *bookingService) SelectDate(ctx context.Context, flowID string, date string) (*usecase.FlowState, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("date must be formatted YYYY-MM-DD")
	}

	return srv.withFlow(flowID, func(flow *bookingFlow) error {
		flow.selectDate(date)

		return nil
	})
}

// SelectTime picks one of the garden's available slots.
func (srv *bookingService) SelectTime(ctx context.Context, flowID string, slot string) (*usecase.FlowState, error) {
	return srv.withFlow(flowID, func(flow *bookingFlow) error {
		return flow.selectTime(slot)
	})
}

// ChoosePlan picks a subscription tier as the payment option.
func (srv *bookingService) ChoosePlan(ctx context.Context, flowID string, planID string) (*usecase.FlowState, error) {
	plan, err := srv.catalog.PlanByID(planID)
	if err != nil {
		return nil, domainerrors.ErrPlanNotFound
	}

	return srv.withFlow(flowID, func(flow *bookingFlow) error {
		return flow.choosePlan(plan)
	})
}

// ChooseOneTime picks single-visit payment.
func (srv *bookingService) ChooseOneTime(ctx context.Context, flowID string) (*usecase.FlowState, error) {
	return srv.withFlow(flowID, func(flow *bookingFlow) error {
		return flow.chooseOneTime()
	})
}

// Back abandons the current selections and returns to browsing.
func (srv *bookingService) Back(ctx context.Context, flowID string) (*usecase.FlowState, error) {
	return srv.withFlow(flowID, func(flow *bookingFlow) error {
		flow.reset()

		return nil
	})
}

// Confirm finalizes the booking. The flow is reset only after the bundle
// write commits; any failure leaves the selections in place.
func (srv *bookingService) Confirm(ctx context.Context, user *entity.User, flowID string) (*usecase.ConfirmOutput, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	flow, ok := srv.flows[flowID]
	if !ok {
		return nil, domainerrors.ErrFlowNotFound
	}

	if user == nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if !flow.readyToConfirm() {
		return nil, domainerrors.ErrIncompleteSelection
	}

	date := flow.date
	if date == "" {
		date = srv.now().Format(dateLayout)
	}

	paymentType := entity.PaymentTypeOneTime
	if flow.isSubscription {
		paymentType = entity.PaymentTypeSubscription
	}

	booking := entity.Booking{
		ID:          uuid.New().String(),
		Garden:      flow.garden.Name,
		Type:        flow.garden.Type,
		Date:        date,
		Time:        flow.slot,
		Status:      entity.BookingStatusUpcoming,
		Cost:        flow.cost(),
		Image:       flow.garden.Image,
		PaymentType: paymentType,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dataRepo := repoFactory.UserDataRepo()

		data, err := dataRepo.Load(ctx, user.Email)
		if err != nil {
			if !errors.Is(err, repository.ErrUserDataNotFound) {
				return errors.Wrap(err, "failed to load user data")
			}
			data = entity.NewUserData(user)
		}

		// Newest first, so the dashboard shows the fresh booking on top.
		data.Bookings = append([]entity.Booking{booking}, data.Bookings...)
		data.PaymentHistory = append([]entity.PaymentHistoryItem{{
			ID:     uuid.New().String(),
			Date:   srv.now().Format(dateLayout),
			Amount: booking.Cost,
			Method: defaultPaymentMethodLabel(data.PaymentMethods),
			Status: "Completed",
		}}, data.PaymentHistory...)

		return dataRepo.Save(ctx, user.Email, data)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to persist booking", slog.Any("error", err), slog.String("email", user.Email))

		return nil, errors.Wrap(err, "failed to confirm booking")
	}

	flow.reset()

	srv.log(ctx).Info("Booking confirmed",
		slog.String("email", user.Email),
		slog.String("booking_id", booking.ID),
		slog.String("garden", booking.Garden),
	)

	message := fmt.Sprintf("Booking confirmed for %s on %s at %s ($%.2f)",
		booking.Garden, booking.Date, booking.Time, booking.Cost)

	return &usecase.ConfirmOutput{
		Booking: booking,
		Message: message,
		Flow:    flow.snapshot(),
	}, nil
}

func defaultPaymentMethodLabel(methods []entity.PaymentMethod) string {
	for _, method := range methods {
		if method.IsDefault {
			return method.Details
		}
	}

	return "Card on file"
}

// ListBookings returns the user's bookings, insertion order preserved.
func (srv *bookingService) ListBookings(ctx context.Context, email string, search string, status string) ([]entity.Booking, error) {
	data, err := srv.loadUserData(ctx, email)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []entity.Booking{}, nil
	}

	search = strings.ToLower(strings.TrimSpace(search))
	matched := make([]entity.Booking, 0, len(data.Bookings))
	for _, booking := range data.Bookings {
		if !booking.Status.Valid() {
			continue
		}
		if !isWildcardFilter(status) && string(booking.Status) != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(booking.Garden), search) &&
			!strings.Contains(strings.ToLower(booking.Type), search) {
			continue
		}
		matched = append(matched, booking)
	}

	return matched, nil
}

// GetBooking returns a single booking from the user's bundle.
func (srv *bookingService) GetBooking(ctx context.Context, email string, bookingID string) (*entity.Booking, error) {
	data, err := srv.loadUserData(ctx, email)
	if err != nil {
		return nil, err
	}
	if data != nil {
		for _, booking := range data.Bookings {
			if booking.ID == bookingID {
				found := booking

				return &found, nil
			}
		}
	}

	return nil, domainerrors.ErrBookingNotFound
}

// CancelBooking flips one upcoming booking to cancelled.
func (srv *bookingService) CancelBooking(ctx context.Context, email string, bookingID string) (*entity.Booking, error) {
	var cancelled *entity.Booking

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dataRepo := repoFactory.UserDataRepo()

		data, err := dataRepo.Load(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserDataNotFound) {
				return domainerrors.ErrBookingNotFound
			}

			return errors.Wrap(err, "failed to load user data")
		}

		for i := range data.Bookings {
			if data.Bookings[i].ID != bookingID {
				continue
			}
			if data.Bookings[i].Status != entity.BookingStatusUpcoming {
				return domainerrors.ErrBookingNotCancellable
			}

			data.Bookings[i].Status = entity.BookingStatusCancelled
			found := data.Bookings[i]
			cancelled = &found

			return dataRepo.Save(ctx, email, data)
		}

		return domainerrors.ErrBookingNotFound
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Booking cancelled", slog.String("email", email), slog.String("booking_id", bookingID))

	return cancelled, nil
}

// loadUserData returns the bundle, or nil when none exists.
func (srv *bookingService) loadUserData(ctx context.Context, email string) (*entity.UserData, error) {
	var data *entity.UserData

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		loaded, err := repoFactory.UserDataRepo().Load(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserDataNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to load user data")
		}
		data = loaded

		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}
