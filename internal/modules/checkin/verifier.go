package checkin

import (
	"context"
	"log"
)

// AllowAllVerifier is the development stand-in for the external identity
// provider: it accepts any non-empty roster. Production wires a real
// verifier through the IdentityVerifier interface.
type AllowAllVerifier struct{}

func (AllowAllVerifier) VerifyGuest(ctx context.Context, bookingRef string, guestNames []string) error {
	if len(guestNames) == 0 {
		return ErrValidation
	}
	log.Printf("identity_verification booking_ref=%s guests=%d accepted=dev", bookingRef, len(guestNames))
	return nil
}
