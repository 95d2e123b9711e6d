package roomstatus

import (
	"context"

	"hotelops/internal/domain"
)

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.Room, error)
	UpdateStatusCAS(ctx context.Context, roomID int64, from, to domain.RoomStatus, expectedRef *string, newRef *string) (bool, error)
}

// OpenWorkCounter reports open orders and service requests for a room.
// Release consults it for its warning; it never blocks on the answer.
type OpenWorkCounter interface {
	CountOpenByRoom(ctx context.Context, roomID int64) (int64, error)
}
