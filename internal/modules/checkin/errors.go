package checkin

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingState     = errors.New("booking is not in the right state")
	ErrVerification     = errors.New("identity verification failed")
	ErrRoomNotAvailable = errors.New("room no longer available")
	ErrTokenIssuance    = errors.New("could not issue guest access token")
)
