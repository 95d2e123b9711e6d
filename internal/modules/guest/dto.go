package guest

import "hotelops/internal/modules/ledger"

// CreateOrderRequest deliberately has no room or table field. Guests may
// send one anyway; the scope always comes from the validated token.
type CreateOrderRequest struct {
	Items         []ledger.OrderItemInput `json:"items" binding:"required,min=1,dive"`
	DeclaredTotal float64                 `json:"declared_total" binding:"gte=0"`
}

type CreateServiceRequestRequest struct {
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"max=2000"`
}
