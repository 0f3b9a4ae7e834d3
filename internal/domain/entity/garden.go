package entity

import "slices"

// Garden is a bookable rooftop venue from the catalog. Catalog entries are
// reference data: immutable at runtime and never persisted per user.
type Garden struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Location         string   `json:"location"`
	Image            string   `json:"image,omitempty"`
	OneTimePrice     float64  `json:"oneTimePrice"` // Price for a single 2-hour visit.
	Rating           float64  `json:"rating"`
	SubscriptionOnly bool     `json:"subscriptionOnly"` // When set, one-time bookings are rejected.
	AvailableTimes   []string `json:"availableTimes"`   // Fixed, pre-enumerated slot labels.
}

// HasSlot reports whether the slot label is one of the garden's listed
// available times.
func (g *Garden) HasSlot(slot string) bool {
	return slices.Contains(g.AvailableTimes, slot)
}

// Plan is a subscription tier with a fixed monthly price and benefit set.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MonthlyPrice float64  `json:"monthlyPrice"`
	AnnualPrice  float64  `json:"annualPrice"`
	Description  string   `json:"description,omitempty"`
	Benefits     []string `json:"benefits,omitempty"`
}
