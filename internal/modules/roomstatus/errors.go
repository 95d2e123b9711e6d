package roomstatus

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomNotAvailable  = errors.New("room is not available")
	ErrInvalidTransition = errors.New("invalid room status transition")
	ErrRoomOccupied      = errors.New("room has an occupant")
)
