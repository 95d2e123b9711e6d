package domain

import "time"

type BookingState string

const (
	BookingStarted   BookingState = "started"
	BookingVerified  BookingState = "verified"
	BookingCompleted BookingState = "completed"
)

// Booking is one guest stay, created at the start of check-in. Ref is the
// public reference code handed to the guest; RoomID is set at room
// assignment. Once a capability token has been minted for the booking the
// record is effectively frozen (re-assignment means a new Booking).
type Booking struct {
	ID          int64        `json:"id"`
	Ref         string       `json:"ref"`
	PropertyID  int64        `json:"property_id" validate:"required"`
	RoomID      *int64       `json:"room_id,omitempty"`
	GuestNames  []string     `json:"guest_names" gorm:"serializer:json"`
	Purpose     string       `json:"purpose,omitempty"`
	CheckoutAt  *time.Time   `json:"checkout_at,omitempty"`
	State       BookingState `json:"state"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}
