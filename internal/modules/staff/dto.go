package staff

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdvanceRoomRequest struct {
	ExpectedStatus string `json:"expected_status" binding:"required"`
	NewStatus      string `json:"new_status" binding:"required"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type StartDineInRequest struct {
	TableID int64 `json:"table_id" binding:"required"`
}

type RevokeTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
