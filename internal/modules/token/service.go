package token

import (
	"context"
	"errors"
	"time"

	"hotelops/internal/domain"
	"hotelops/internal/repository"

	opaque "hotelops/internal/pkg/token"

	"github.com/jackc/pgx/v5/pgconn"
)

// issueRetries bounds regeneration on a token value collision. With
// 256-bit random values a collision means a broken RNG, not bad luck,
// but the unique index is there and we honor it.
const issueRetries = 3

type Service struct {
	issuances IssuanceRepository
	scopes    ScopeChecker
	bookings  BookingReader
	now       func() time.Time
}

func NewService(issuances IssuanceRepository, scopes ScopeChecker, bookings BookingReader) *Service {
	return &Service{
		issuances: issuances,
		scopes:    scopes,
		bookings:  bookings,
		now:       time.Now,
	}
}

// Issue mints a capability token bound to one room or table under the
// property. The token carries no guest identity: possession is the
// whole authorization.
func (s *Service) Issue(ctx context.Context, propertyID int64, kind domain.ScopeKind, scopeID int64, sessionRef string, ttl time.Duration) (string, error) {
	if !kind.Valid() || ttl <= 0 {
		return "", ErrInvalidScope
	}

	var exists bool
	var err error
	switch kind {
	case domain.ScopeRoom:
		exists, err = s.scopes.RoomExists(ctx, propertyID, scopeID)
	case domain.ScopeTable:
		exists, err = s.scopes.TableExists(ctx, propertyID, scopeID)
	}
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrInvalidScope
	}

	now := s.now()
	for attempt := 0; attempt < issueRetries; attempt++ {
		value, err := opaque.NewOpaque()
		if err != nil {
			return "", err
		}

		iss := &domain.TokenIssuance{
			Token:      value,
			PropertyID: propertyID,
			ScopeKind:  kind,
			ScopeID:    scopeID,
			SessionRef: sessionRef,
			IssuedAt:   now,
			ExpiresAt:  now.Add(ttl),
		}
		if err := s.issuances.Create(ctx, iss); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				continue
			}
			return "", err
		}
		return value, nil
	}
	return "", errors.New("token generation kept colliding")
}

// Validate resolves a presented token to its scope. It is a pure read
// over the issuance record and the clock: expiry is computed here, at
// call time, and the boundary is now >= expiresAt.
func (s *Service) Validate(ctx context.Context, value string) (*domain.TokenScope, error) {
	if value == "" {
		return nil, ErrMalformed
	}

	iss, err := s.issuances.GetByToken(ctx, value)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMalformed
		}
		return nil, err
	}

	if iss.RevokedAt != nil {
		return nil, ErrRevoked
	}
	if !s.now().Before(iss.ExpiresAt) {
		return nil, ErrExpired
	}

	// A room token dies with its stay even if the clock says otherwise.
	if iss.ScopeKind == domain.ScopeRoom && iss.SessionRef != "" {
		b, err := s.bookings.GetByRef(ctx, iss.SessionRef)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if b != nil && b.State == domain.BookingCompleted {
			return nil, ErrRevoked
		}
	}

	return &domain.TokenScope{
		PropertyID: iss.PropertyID,
		ScopeKind:  iss.ScopeKind,
		ScopeID:    iss.ScopeID,
		SessionRef: iss.SessionRef,
	}, nil
}

// Revoke is idempotent; revoking an unknown token is a no-op.
func (s *Service) Revoke(ctx context.Context, value string) error {
	return s.issuances.Revoke(ctx, value)
}

// RevokeSession revokes every token minted for a booking or dine-in
// session, used at checkout.
func (s *Service) RevokeSession(ctx context.Context, sessionRef string) error {
	return s.issuances.RevokeBySessionRef(ctx, sessionRef)
}
