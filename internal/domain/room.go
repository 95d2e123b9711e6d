package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomReserved    RoomStatus = "reserved"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomReserved, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

// roomTransitions lists the allowed status moves. reserved/occupied ->
// maintenance is intentionally absent: an occupant reference must be
// cleared by checkout before a room can go under maintenance.
var roomTransitions = map[RoomStatus][]RoomStatus{
	RoomAvailable:   {RoomReserved, RoomMaintenance},
	RoomReserved:    {RoomOccupied, RoomAvailable},
	RoomOccupied:    {RoomAvailable},
	RoomMaintenance: {RoomAvailable},
}

func (s RoomStatus) CanTransitionTo(to RoomStatus) bool {
	for _, t := range roomTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

type Room struct {
	ID         int64      `json:"id"`
	PropertyID int64      `json:"property_id"`
	Number     string     `json:"number" validate:"required"`
	Floor      int        `json:"floor"`
	Status     RoomStatus `json:"status"`

	// BookingRef is the occupant booking reference. Non-nil iff
	// Status is reserved or occupied.
	BookingRef *string `json:"booking_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
