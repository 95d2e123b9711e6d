package domain

import "time"

type Property struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Rooms  []Room  `json:"rooms,omitempty"`
	Tables []Table `json:"tables,omitempty"`
}

// Table is a restaurant table inside a property. Immutable once created;
// referenced by table-scoped capability tokens for dine-in ordering.
type Table struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	Number     int       `json:"number" validate:"required,gt=0"`
	CreatedAt  time.Time `json:"created_at"`
}
