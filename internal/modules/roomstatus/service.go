package roomstatus

import (
	"context"
	"errors"
	"log"

	"hotelops/internal/domain"
	"hotelops/internal/repository"
)

// Service owns the room lifecycle. Every write goes through one
// conditional update against the durable store, so two staff members
// racing on the same room cannot both win: the loser sees
// ErrInvalidTransition (or ErrRoomNotAvailable on Assign) and re-fetches.
type Service struct {
	rooms    RoomRepository
	orders   OpenWorkCounter
	requests OpenWorkCounter
}

func NewService(rooms RoomRepository, orders, requests OpenWorkCounter) *Service {
	return &Service{rooms: rooms, orders: orders, requests: requests}
}

func (s *Service) Get(ctx context.Context, roomID int64) (*domain.Room, error) {
	r, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Room, error) {
	return s.rooms.ListByProperty(ctx, propertyID)
}

// Assign moves an available room to reserved and records the occupant
// booking reference. Exactly one of two concurrent callers succeeds.
func (s *Service) Assign(ctx context.Context, roomID int64, bookingRef string) error {
	if bookingRef == "" {
		return ErrRoomNotAvailable
	}
	if _, err := s.Get(ctx, roomID); err != nil {
		return err
	}
	ok, err := s.rooms.UpdateStatusCAS(ctx, roomID, domain.RoomAvailable, domain.RoomReserved, nil, &bookingRef)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRoomNotAvailable
	}
	return nil
}

// CheckInComplete moves reserved to occupied. The booking reference must
// match the one set at Assign; the CAS condition includes it so a room
// reassigned in between cannot be occupied under the old booking.
func (s *Service) CheckInComplete(ctx context.Context, roomID int64, bookingRef string) error {
	ok, err := s.rooms.UpdateStatusCAS(ctx, roomID, domain.RoomReserved, domain.RoomOccupied, &bookingRef, &bookingRef)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

// Advance performs a staff-driven transition conditional on the expected
// current status. Transitions touching an occupant reference have their
// own entry points (Assign, CheckInComplete, Release); Advance covers
// the maintenance cycle.
func (s *Service) Advance(ctx context.Context, roomID int64, from, to domain.RoomStatus) error {
	if !from.Valid() || !to.Valid() || !from.CanTransitionTo(to) {
		// reserved/occupied -> maintenance gets its own error: the
		// caller has to check the guest out first.
		if (from == domain.RoomReserved || from == domain.RoomOccupied) && to == domain.RoomMaintenance {
			return ErrRoomOccupied
		}
		return ErrInvalidTransition
	}

	// Transitions into reserved/occupied need a booking reference and go
	// through Assign / CheckInComplete instead.
	if to == domain.RoomReserved || to == domain.RoomOccupied {
		return ErrInvalidTransition
	}

	room, err := s.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if room.BookingRef != nil && to == domain.RoomMaintenance {
		return ErrRoomOccupied
	}

	ok, err := s.rooms.UpdateStatusCAS(ctx, roomID, from, to, nil, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

// Release clears the occupant and returns the room to available, from
// either occupied (checkout) or reserved (check-in rollback). Open
// orders or requests on the room produce a warning line, never a
// rejection: staff may override.
func (s *Service) Release(ctx context.Context, roomID int64) error {
	room, err := s.Get(ctx, roomID)
	if err != nil {
		return err
	}

	if room.Status != domain.RoomOccupied && room.Status != domain.RoomReserved {
		return ErrInvalidTransition
	}

	if openOrders, err := s.orders.CountOpenByRoom(ctx, roomID); err == nil && openOrders > 0 {
		log.Printf("room_release_warning room_id=%d open_orders=%d", roomID, openOrders)
	}
	if openRequests, err := s.requests.CountOpenByRoom(ctx, roomID); err == nil && openRequests > 0 {
		log.Printf("room_release_warning room_id=%d open_requests=%d", roomID, openRequests)
	}

	ok, err := s.rooms.UpdateStatusCAS(ctx, roomID, room.Status, domain.RoomAvailable, room.BookingRef, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}
