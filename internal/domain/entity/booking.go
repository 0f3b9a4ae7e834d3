package entity

// BookingStatus is the lifecycle state of a booking. The only user-driven
// transition is upcoming to cancelled; bookings are never hard-deleted.
type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether the status is one of the recognized values. Listing
// skips records with an unrecognized status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusUpcoming, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentType distinguishes a single paid visit from a subscription booking.
type PaymentType string

const (
	PaymentTypeOneTime      PaymentType = "one-time"
	PaymentTypeSubscription PaymentType = "subscription"
)

// Booking is a confirmed garden reservation stored inside a user's data
// bundle.
type Booking struct {
	ID          string        `json:"id"`
	Garden      string        `json:"garden"`
	Type        string        `json:"type"`
	Date        string        `json:"date"` // Calendar date, formatted 2006-01-02.
	Time        string        `json:"time"` // Slot label, e.g. "9:00 AM".
	Status      BookingStatus `json:"status"`
	Cost        float64       `json:"cost"`
	Image       string        `json:"image,omitempty"`
	PaymentType PaymentType   `json:"paymentType"`
}
