package ledger

import "hotelops/internal/domain"

type OrderItemInput struct {
	MenuItemID int64   `json:"menu_item_id" binding:"required"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderInput struct {
	Scope         domain.TokenScope
	Items         []OrderItemInput
	DeclaredTotal float64
}

type CreateRequestInput struct {
	Scope       domain.TokenScope
	Category    domain.RequestCategory
	Description string
}
