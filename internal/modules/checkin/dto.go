package checkin

import "time"

type StartCheckInRequest struct {
	PropertyID int64    `json:"property_id" binding:"required"`
	GuestNames []string `json:"guest_names" binding:"required,min=1"`
}

type StayDetailsRequest struct {
	Purpose    string    `json:"purpose"`
	CheckoutAt time.Time `json:"checkout_at" binding:"required"`
}

type AssignRoomRequest struct {
	RoomID int64 `json:"room_id" binding:"required"`
}

// CheckInResult is what the wizard's final step hands back: the booking
// reference and the capability token the guest's QR code will carry.
type CheckInResult struct {
	BookingRef string    `json:"booking_ref"`
	RoomID     int64     `json:"room_id"`
	GuestToken string    `json:"guest_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}
