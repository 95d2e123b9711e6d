package domain

import "time"

type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "in-progress"
	RequestCompleted  RequestStatus = "completed"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestInProgress, RequestCompleted:
		return true
	}
	return false
}

// CanTransitionTo: strictly linear, no skipping, no going back.
func (s RequestStatus) CanTransitionTo(to RequestStatus) bool {
	switch s {
	case RequestPending:
		return to == RequestInProgress
	case RequestInProgress:
		return to == RequestCompleted
	}
	return false
}

type RequestCategory string

const (
	RequestHousekeeping RequestCategory = "housekeeping"
	RequestMaintenance  RequestCategory = "maintenance"
	RequestConcierge    RequestCategory = "concierge"
	RequestOther        RequestCategory = "other"
)

func (c RequestCategory) Valid() bool {
	switch c {
	case RequestHousekeeping, RequestMaintenance, RequestConcierge, RequestOther:
		return true
	}
	return false
}

type ServiceRequest struct {
	ID          int64           `json:"id"`
	PropertyID  int64           `json:"property_id"`
	RoomID      int64           `json:"room_id"`
	SessionRef  string          `json:"session_ref,omitempty"`
	Category    RequestCategory `json:"category"`
	Description string          `json:"description,omitempty"`
	Status      RequestStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type RequestStatusEvent struct {
	ID        int64         `json:"id"`
	RequestID int64         `json:"request_id"`
	Status    RequestStatus `json:"status"`
	Actor     string        `json:"actor,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
