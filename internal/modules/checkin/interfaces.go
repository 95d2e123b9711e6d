package checkin

import (
	"context"
	"time"

	"hotelops/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStayDetails(ctx context.Context, id int64, purpose string, checkoutAt time.Time) error
	SetRoom(ctx context.Context, id, roomID int64) error
	ClearRoom(ctx context.Context, id int64) error
	SetState(ctx context.Context, id int64, state domain.BookingState) error
}

// RoomRegistry is the slice of the room status registry the workflow
// needs: reserve a room, occupy it, and give it back on rollback.
type RoomRegistry interface {
	Assign(ctx context.Context, roomID int64, bookingRef string) error
	CheckInComplete(ctx context.Context, roomID int64, bookingRef string) error
	Release(ctx context.Context, roomID int64) error
}

// TokenIssuer mints guest capability tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, propertyID int64, kind domain.ScopeKind, scopeID int64, sessionRef string, ttl time.Duration) (string, error)
	RevokeSession(ctx context.Context, sessionRef string) error
}

// IdentityVerifier is the external collaborator for step 2 of the
// wizard. The core never interprets documents itself.
type IdentityVerifier interface {
	VerifyGuest(ctx context.Context, bookingRef string, guestNames []string) error
}
