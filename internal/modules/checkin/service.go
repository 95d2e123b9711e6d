package checkin

import (
	"context"
	"errors"
	"log"
	"time"

	"hotelops/internal/domain"
	"hotelops/internal/modules/roomstatus"
	"hotelops/internal/repository"

	"github.com/google/uuid"
)

// Service orchestrates the check-in wizard server-side. The steps are
// strictly ordered; the only multi-entity sequence is room assignment
// followed by token issuance, and a failure there is undone with a
// compensating Release, never left as a reserved room with no token.
type Service struct {
	bookings BookingRepository
	rooms    RoomRegistry
	tokens   TokenIssuer
	verifier IdentityVerifier

	guestTokenTTL time.Duration
	dineInTTL     time.Duration
	now           func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomRegistry,
	tokens TokenIssuer,
	verifier IdentityVerifier,
	guestTokenTTL time.Duration,
	dineInTTL time.Duration,
) *Service {
	return &Service{
		bookings:      bookings,
		rooms:         rooms,
		tokens:        tokens,
		verifier:      verifier,
		guestTokenTTL: guestTokenTTL,
		dineInTTL:     dineInTTL,
		now:           time.Now,
	}
}

// Start creates the Booking for one stay and returns it with its public
// reference code. Step 1 of the wizard (roster review) mutates nothing
// else.
func (s *Service) Start(ctx context.Context, propertyID int64, guestNames []string) (*domain.Booking, error) {
	if propertyID <= 0 || len(guestNames) == 0 {
		return nil, ErrValidation
	}

	b := &domain.Booking{
		Ref:        uuid.NewString(),
		PropertyID: propertyID,
		GuestNames: guestNames,
		State:      domain.BookingStarted,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// VerifyIdentity delegates step 2 to the external verifier.
func (s *Service) VerifyIdentity(ctx context.Context, bookingID int64) error {
	b, err := s.getStarted(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.verifier.VerifyGuest(ctx, b.Ref, b.GuestNames); err != nil {
		return ErrVerification
	}
	return nil
}

// CaptureStayDetails records purpose and checkout date (step 3). The
// checkout date later bounds the capability token's ttl.
func (s *Service) CaptureStayDetails(ctx context.Context, bookingID int64, purpose string, checkoutAt time.Time) error {
	b, err := s.getStarted(ctx, bookingID)
	if err != nil {
		return err
	}
	if !checkoutAt.After(s.now()) {
		return ErrValidation
	}
	return s.bookings.UpdateStayDetails(ctx, b.ID, purpose, checkoutAt)
}

// CompleteCheckIn runs steps 4-6: assign the room, issue the capability
// token, occupy the room, mark the booking verified. A room that cannot
// be assigned surfaces as ErrRoomNotAvailable so the desk can offer a
// different one; any later failure releases the room before returning.
func (s *Service) CompleteCheckIn(ctx context.Context, bookingID, roomID int64) (*CheckInResult, error) {
	b, err := s.getStarted(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CheckoutAt == nil {
		return nil, ErrBookingState
	}

	if err := s.rooms.Assign(ctx, roomID, b.Ref); err != nil {
		if errors.Is(err, roomstatus.ErrRoomNotAvailable) || errors.Is(err, roomstatus.ErrRoomNotFound) {
			return nil, ErrRoomNotAvailable
		}
		return nil, err
	}
	if err := s.bookings.SetRoom(ctx, b.ID, roomID); err != nil {
		s.rollbackAssignment(ctx, b.ID, roomID, "")
		return nil, err
	}

	ttl := s.guestTokenTTL
	if remaining := b.CheckoutAt.Sub(s.now()); remaining < ttl {
		ttl = remaining
	}

	value, err := s.tokens.Issue(ctx, b.PropertyID, domain.ScopeRoom, roomID, b.Ref, ttl)
	if err != nil {
		s.rollbackAssignment(ctx, b.ID, roomID, "")
		return nil, ErrTokenIssuance
	}

	if err := s.rooms.CheckInComplete(ctx, roomID, b.Ref); err != nil {
		s.rollbackAssignment(ctx, b.ID, roomID, b.Ref)
		return nil, err
	}
	if err := s.bookings.SetState(ctx, b.ID, domain.BookingVerified); err != nil {
		return nil, err
	}

	return &CheckInResult{
		BookingRef: b.Ref,
		RoomID:     roomID,
		GuestToken: value,
		ExpiresAt:  s.now().Add(ttl),
	}, nil
}

// StartDineIn issues a table-scoped token for a restaurant session. No
// booking is involved; the session reference is generated here.
func (s *Service) StartDineIn(ctx context.Context, propertyID, tableID int64) (string, string, error) {
	sessionRef := uuid.NewString()
	value, err := s.tokens.Issue(ctx, propertyID, domain.ScopeTable, tableID, sessionRef, s.dineInTTL)
	if err != nil {
		return "", "", err
	}
	return value, sessionRef, nil
}

// Checkout ends the stay: release the room, revoke every token minted
// for the booking, mark the booking completed.
func (s *Service) Checkout(ctx context.Context, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	if b.State == domain.BookingCompleted {
		return nil
	}

	if b.RoomID != nil {
		if err := s.rooms.Release(ctx, *b.RoomID); err != nil && !errors.Is(err, roomstatus.ErrInvalidTransition) {
			return err
		}
	}
	if err := s.tokens.RevokeSession(ctx, b.Ref); err != nil {
		return err
	}
	return s.bookings.SetState(ctx, b.ID, domain.BookingCompleted)
}

func (s *Service) getStarted(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.State != domain.BookingStarted {
		return nil, ErrBookingState
	}
	return b, nil
}

// rollbackAssignment is the compensating action for a failure after the
// room was reserved. Best effort: a failed rollback is logged, the room
// stays visible to staff in its current state.
func (s *Service) rollbackAssignment(ctx context.Context, bookingID, roomID int64, sessionRef string) {
	if sessionRef != "" {
		if err := s.tokens.RevokeSession(ctx, sessionRef); err != nil {
			log.Printf("checkin_rollback token revoke failed booking_id=%d: %v", bookingID, err)
		}
	}
	if err := s.rooms.Release(ctx, roomID); err != nil {
		log.Printf("checkin_rollback room release failed room_id=%d: %v", roomID, err)
	}
	if err := s.bookings.ClearRoom(ctx, bookingID); err != nil {
		log.Printf("checkin_rollback clear room failed booking_id=%d: %v", bookingID, err)
	}
}
