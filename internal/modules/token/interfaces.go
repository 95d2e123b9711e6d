package token

import (
	"context"

	"hotelops/internal/domain"
)

// IssuanceRepository persists and looks up token issuance records.
type IssuanceRepository interface {
	Create(ctx context.Context, iss *domain.TokenIssuance) error
	GetByToken(ctx context.Context, token string) (*domain.TokenIssuance, error)
	Revoke(ctx context.Context, token string) error
	RevokeBySessionRef(ctx context.Context, sessionRef string) error
}

// ScopeChecker verifies that a room or table exists under a property.
type ScopeChecker interface {
	RoomExists(ctx context.Context, propertyID, roomID int64) (bool, error)
	TableExists(ctx context.Context, propertyID, tableID int64) (bool, error)
}

// BookingReader lets validation reject tokens whose stay is over.
type BookingReader interface {
	GetByRef(ctx context.Context, ref string) (*domain.Booking, error)
}
