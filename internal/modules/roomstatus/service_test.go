package roomstatus

import (
	"context"
	"testing"

	"hotelops/internal/domain"
	"hotelops/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Room, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) UpdateStatusCAS(ctx context.Context, roomID int64, from, to domain.RoomStatus, expectedRef *string, newRef *string) (bool, error) {
	args := m.Called(ctx, roomID, from, to, expectedRef, newRef)
	return args.Bool(0), args.Error(1)
}

type MockOpenWorkCounter struct {
	mock.Mock
}

func (m *MockOpenWorkCounter) CountOpenByRoom(ctx context.Context, roomID int64) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func availableRoom(id int64) *domain.Room {
	return &domain.Room{ID: id, PropertyID: 1, Number: "1205", Status: domain.RoomAvailable}
}

func TestAssign_Success(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(availableRoom(10), nil)
	rooms.On("UpdateStatusCAS", mock.Anything, int64(10), domain.RoomAvailable, domain.RoomReserved, (*string)(nil), mock.Anything).Return(true, nil)

	service := NewService(rooms, new(MockOpenWorkCounter), new(MockOpenWorkCounter))

	err := service.Assign(context.Background(), 10, "B1")

	assert.NoError(t, err)
	rooms.AssertExpectations(t)
}

// Two concurrent Assign calls: the conditional write lets exactly one
// through; the loser sees RoomNotAvailable, never a silent overwrite.
func TestAssign_LosesRace(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(availableRoom(10), nil)
	rooms.On("UpdateStatusCAS", mock.Anything, int64(10), domain.RoomAvailable, domain.RoomReserved, (*string)(nil), mock.Anything).Return(false, nil)

	service := NewService(rooms, new(MockOpenWorkCounter), new(MockOpenWorkCounter))

	err := service.Assign(context.Background(), 10, "B2")

	assert.ErrorIs(t, err, ErrRoomNotAvailable)
}

func TestAssign_RoomNotFound(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	service := NewService(rooms, new(MockOpenWorkCounter), new(MockOpenWorkCounter))

	err := service.Assign(context.Background(), 99, "B1")

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCheckInComplete_RefMismatch(t *testing.T) {
	rooms := new(MockRoomRepository)
	ref := "B-other"
	rooms.On("UpdateStatusCAS", mock.Anything, int64(10), domain.RoomReserved, domain.RoomOccupied, &ref, &ref).Return(false, nil)

	service := NewService(rooms, new(MockOpenWorkCounter), new(MockOpenWorkCounter))

	err := service.CheckInComplete(context.Background(), 10, "B-other")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdvance_IllegalTransitionLeavesStatusUnchanged(t *testing.T) {
	rooms := new(MockRoomRepository)
	service := NewService(rooms, new(MockOpenWorkCounter), new(MockOpenWorkCounter))

	// available -> occupied directly is never legal
	err := service.Advance(context.Background(), 10, domain.RoomAvailable, domain.RoomOccupied)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	rooms.AssertNotCalled(t, "UpdateStatusCAS", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvance_OccupiedToMaintenanceRejected(t *testing.T) {
	rooms := new(MockRoomRepository)
	service := NewService(rooms, new(MockOpenWorkCounter), new(MockOpenWorkCounter))

	err := service.Advance(context.Background(), 10, domain.RoomOccupied, domain.RoomMaintenance)

	assert.ErrorIs(t, err, ErrRoomOccupied)
}

func TestAdvance_MaintenanceCycle(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(availableRoom(10), nil)
	rooms.On("UpdateStatusCAS", mock.Anything, int64(10), domain.RoomAvailable, domain.RoomMaintenance, (*string)(nil), (*string)(nil)).Return(true, nil)

	service := NewService(rooms, new(MockOpenWorkCounter), new(MockOpenWorkCounter))

	err := service.Advance(context.Background(), 10, domain.RoomAvailable, domain.RoomMaintenance)

	assert.NoError(t, err)
	rooms.AssertExpectations(t)
}

// Releasing an occupied room with open work succeeds: the open request
// only produces a warning, staff may override.
func TestRelease_OpenWorkDoesNotBlock(t *testing.T) {
	ref := "B1"
	rooms := new(MockRoomRepository)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{
		ID:         10,
		Status:     domain.RoomOccupied,
		BookingRef: &ref,
	}, nil)
	rooms.On("UpdateStatusCAS", mock.Anything, int64(10), domain.RoomOccupied, domain.RoomAvailable, &ref, (*string)(nil)).Return(true, nil)

	orders := new(MockOpenWorkCounter)
	orders.On("CountOpenByRoom", mock.Anything, int64(10)).Return(int64(0), nil)
	requests := new(MockOpenWorkCounter)
	requests.On("CountOpenByRoom", mock.Anything, int64(10)).Return(int64(2), nil)

	service := NewService(rooms, orders, requests)

	err := service.Release(context.Background(), 10)

	assert.NoError(t, err)
	rooms.AssertExpectations(t)
}

func TestRelease_AvailableRoomRejected(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(availableRoom(10), nil)

	service := NewService(rooms, new(MockOpenWorkCounter), new(MockOpenWorkCounter))

	err := service.Release(context.Background(), 10)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}
