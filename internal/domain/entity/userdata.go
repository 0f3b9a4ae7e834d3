package entity

// PaymentMethod is a stored payment instrument. At most one method per user
// carries IsDefault; the account service re-asserts this on every
// set-default write.
type PaymentMethod struct {
	ID        string `json:"id"`
	Type      string `json:"type"`    // e.g. "Credit Card", "PayPal".
	Details   string `json:"details"` // Display detail, e.g. "Visa ending 1234".
	IsDefault bool   `json:"isDefault"`
}

// PaymentHistoryItem is a past charge shown on the payments screen.
type PaymentHistoryItem struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Status  string  `json:"status"`
	Receipt string  `json:"receipt,omitempty"`
}

// UserProfile holds the editable account profile.
type UserProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Image   string `json:"image,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// UserData is the per-user bundle persisted under userData:<email>. There is
// at most one bundle per email; it is created lazily on the first booking
// and removed only by account deletion.
type UserData struct {
	Bookings       []Booking            `json:"bookings"`
	PaymentMethods []PaymentMethod      `json:"paymentMethods"`
	PaymentHistory []PaymentHistoryItem `json:"paymentHistory"`
	Profile        UserProfile          `json:"profile"`
}

// NewUserData builds an empty bundle seeded with the user's identity, used
// when a booking or settings write happens before any bundle exists.
func NewUserData(user *User) *UserData {
	data := &UserData{
		Bookings:       []Booking{},
		PaymentMethods: []PaymentMethod{},
		PaymentHistory: []PaymentHistoryItem{},
	}
	if user != nil {
		data.Profile = UserProfile{
			Name:  user.Name,
			Email: user.Email,
			Image: user.Image,
		}
	}

	return data
}
