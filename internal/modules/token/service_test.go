package token

import (
	"context"
	"testing"
	"time"

	"hotelops/internal/domain"
	"hotelops/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockIssuanceRepository struct {
	mock.Mock
}

func (m *MockIssuanceRepository) Create(ctx context.Context, iss *domain.TokenIssuance) error {
	args := m.Called(ctx, iss)
	if iss != nil {
		iss.ID = 42
	}
	return args.Error(0)
}

func (m *MockIssuanceRepository) GetByToken(ctx context.Context, token string) (*domain.TokenIssuance, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenIssuance), args.Error(1)
}

func (m *MockIssuanceRepository) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockIssuanceRepository) RevokeBySessionRef(ctx context.Context, sessionRef string) error {
	args := m.Called(ctx, sessionRef)
	return args.Error(0)
}

type MockScopeChecker struct {
	mock.Mock
}

func (m *MockScopeChecker) RoomExists(ctx context.Context, propertyID, roomID int64) (bool, error) {
	args := m.Called(ctx, propertyID, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScopeChecker) TableExists(ctx context.Context, propertyID, tableID int64) (bool, error) {
	args := m.Called(ctx, propertyID, tableID)
	return args.Bool(0), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func newTestService(issuances *MockIssuanceRepository, scopes *MockScopeChecker, bookings *MockBookingReader) *Service {
	return NewService(issuances, scopes, bookings)
}

func TestIssue_RoomScope_Success(t *testing.T) {
	issuances := new(MockIssuanceRepository)
	scopes := new(MockScopeChecker)
	bookings := new(MockBookingReader)

	scopes.On("RoomExists", mock.Anything, int64(1), int64(1205)).Return(true, nil)
	issuances.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(issuances, scopes, bookings)

	value, err := service.Issue(context.Background(), 1, domain.ScopeRoom, 1205, "B1", 48*time.Hour)

	assert.NoError(t, err)
	assert.NotEmpty(t, value)
	// 32 random bytes, unpadded base64url
	assert.Len(t, value, 43)
	issuances.AssertExpectations(t)
}

func TestIssue_TokensAreUnique(t *testing.T) {
	issuances := new(MockIssuanceRepository)
	scopes := new(MockScopeChecker)
	bookings := new(MockBookingReader)

	scopes.On("RoomExists", mock.Anything, int64(1), int64(1205)).Return(true, nil)
	issuances.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(issuances, scopes, bookings)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		value, err := service.Issue(context.Background(), 1, domain.ScopeRoom, 1205, "B1", time.Hour)
		assert.NoError(t, err)
		assert.False(t, seen[value], "token value repeated")
		seen[value] = true
	}
}

func TestIssue_UnknownScope(t *testing.T) {
	issuances := new(MockIssuanceRepository)
	scopes := new(MockScopeChecker)
	bookings := new(MockBookingReader)

	scopes.On("RoomExists", mock.Anything, int64(1), int64(9999)).Return(false, nil)

	service := newTestService(issuances, scopes, bookings)

	_, err := service.Issue(context.Background(), 1, domain.ScopeRoom, 9999, "B1", time.Hour)

	assert.ErrorIs(t, err, ErrInvalidScope)
	issuances.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIssue_ZeroTTL(t *testing.T) {
	issuances := new(MockIssuanceRepository)
	scopes := new(MockScopeChecker)
	bookings := new(MockBookingReader)

	service := newTestService(issuances, scopes, bookings)

	_, err := service.Issue(context.Background(), 1, domain.ScopeRoom, 1205, "B1", 0)

	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestValidate_Success(t *testing.T) {
	issuances := new(MockIssuanceRepository)
	scopes := new(MockScopeChecker)
	bookings := new(MockBookingReader)

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	issuances.On("GetByToken", mock.Anything, "tok").Return(&domain.TokenIssuance{
		Token:      "tok",
		PropertyID: 1,
		ScopeKind:  domain.ScopeRoom,
		ScopeID:    1205,
		SessionRef: "B1",
		IssuedAt:   now.Add(-time.Hour),
		ExpiresAt:  now.Add(time.Hour),
	}, nil)
	bookings.On("GetByRef", mock.Anything, "B1").Return(&domain.Booking{
		Ref:   "B1",
		State: domain.BookingVerified,
	}, nil)

	service := newTestService(issuances, scopes, bookings)
	service.now = func() time.Time { return now }

	scope, err := service.Validate(context.Background(), "tok")

	assert.NoError(t, err)
	assert.Equal(t, int64(1205), scope.ScopeID)
	assert.Equal(t, domain.ScopeRoom, scope.ScopeKind)
	assert.Equal(t, "B1", scope.SessionRef)
}

func TestValidate_UnknownToken(t *testing.T) {
	issuances := new(MockIssuanceRepository)
	scopes := new(MockScopeChecker)
	bookings := new(MockBookingReader)

	issuances.On("GetByToken", mock.Anything, "garbage").Return(nil, repository.ErrNotFound)

	service := newTestService(issuances, scopes, bookings)

	_, err := service.Validate(context.Background(), "garbage")

	assert.ErrorIs(t, err, ErrMalformed)
}

// The result flips from valid to expired exactly at now == expiresAt.
func TestValidate_ExpiryBoundary(t *testing.T) {
	expiresAt := time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC)

	iss := &domain.TokenIssuance{
		Token:     "tok",
		ScopeKind: domain.ScopeTable,
		ScopeID:   7,
		IssuedAt:  expiresAt.Add(-48 * time.Hour),
		ExpiresAt: expiresAt,
	}

	cases := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"one second before", expiresAt.Add(-time.Second), nil},
		{"exactly at expiry", expiresAt, ErrExpired},
		{"one second after", expiresAt.Add(time.Second), ErrExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issuances := new(MockIssuanceRepository)
			issuances.On("GetByToken", mock.Anything, "tok").Return(iss, nil)

			service := newTestService(issuances, new(MockScopeChecker), new(MockBookingReader))
			service.now = func() time.Time { return tc.now }

			_, err := service.Validate(context.Background(), "tok")

			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidate_Revoked(t *testing.T) {
	issuances := new(MockIssuanceRepository)
	now := time.Now()
	revokedAt := now.Add(-time.Minute)
	issuances.On("GetByToken", mock.Anything, "tok").Return(&domain.TokenIssuance{
		Token:     "tok",
		ScopeKind: domain.ScopeRoom,
		ScopeID:   1205,
		ExpiresAt: now.Add(time.Hour),
		RevokedAt: &revokedAt,
	}, nil)

	service := newTestService(issuances, new(MockScopeChecker), new(MockBookingReader))

	_, err := service.Validate(context.Background(), "tok")

	assert.ErrorIs(t, err, ErrRevoked)
}

func TestValidate_CompletedBooking(t *testing.T) {
	issuances := new(MockIssuanceRepository)
	bookings := new(MockBookingReader)

	now := time.Now()
	issuances.On("GetByToken", mock.Anything, "tok").Return(&domain.TokenIssuance{
		Token:      "tok",
		ScopeKind:  domain.ScopeRoom,
		ScopeID:    1205,
		SessionRef: "B1",
		ExpiresAt:  now.Add(time.Hour),
	}, nil)
	bookings.On("GetByRef", mock.Anything, "B1").Return(&domain.Booking{
		Ref:   "B1",
		State: domain.BookingCompleted,
	}, nil)

	service := newTestService(issuances, new(MockScopeChecker), bookings)

	_, err := service.Validate(context.Background(), "tok")

	assert.ErrorIs(t, err, ErrRevoked)
}

func TestRevoke_Idempotent(t *testing.T) {
	issuances := new(MockIssuanceRepository)
	issuances.On("Revoke", mock.Anything, "tok").Return(nil).Twice()

	service := newTestService(issuances, new(MockScopeChecker), new(MockBookingReader))

	assert.NoError(t, service.Revoke(context.Background(), "tok"))
	assert.NoError(t, service.Revoke(context.Background(), "tok"))
	issuances.AssertExpectations(t)
}
