package ledger

import (
	"context"

	"hotelops/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	AdvanceStatus(ctx context.Context, id int64, from, to domain.OrderStatus, actor string) (bool, error)
	ListByScope(ctx context.Context, kind domain.ScopeKind, scopeID int64, limit, offset int) ([]domain.Order, error)
	History(ctx context.Context, id int64) ([]domain.OrderStatusEvent, error)
}

type RequestRepository interface {
	Create(ctx context.Context, sr *domain.ServiceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	AdvanceStatus(ctx context.Context, id int64, from, to domain.RequestStatus, actor string) (bool, error)
	ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.ServiceRequest, error)
}

// EventSink receives lifecycle notifications for the staff board. A nil
// sink is fine; delivery failures are never surfaced to the caller.
type EventSink interface {
	OrderEvent(propertyID int64, order *domain.Order)
	RequestEvent(propertyID int64, request *domain.ServiceRequest)
}
