package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo: linear pending -> preparing -> ready -> delivered,
// with cancelled reachable from any non-terminal status.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	switch s {
	case OrderPending:
		return to == OrderPreparing
	case OrderPreparing:
		return to == OrderReady
	case OrderReady:
		return to == OrderDelivered
	}
	return false
}

type OrderItem struct {
	ID         int64   `json:"id"`
	OrderID    int64   `json:"order_id"`
	MenuItemID int64   `json:"menu_item_id" validate:"required"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price" validate:"gte=0"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
}

type Order struct {
	ID         int64       `json:"id"`
	PropertyID int64       `json:"property_id"`
	ScopeKind  ScopeKind   `json:"scope_kind"`
	ScopeID    int64       `json:"scope_id"`
	SessionRef string      `json:"session_ref,omitempty"`
	Items      []OrderItem `json:"items,omitempty"`
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OrderStatusEvent is one row of the append-only order history. The
// order's current status is defined by its latest event.
type OrderStatusEvent struct {
	ID        int64       `json:"id"`
	OrderID   int64       `json:"order_id"`
	Status    OrderStatus `json:"status"`
	Actor     string      `json:"actor,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
