package staff

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hotelops/internal/domain"
	"hotelops/internal/modules/checkin"
	"hotelops/internal/modules/ledger"
	"hotelops/internal/modules/roomstatus"
	"hotelops/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type tokenRevoker interface {
	Revoke(ctx context.Context, value string) error
}

type Handler struct {
	service *Service
	rooms   *roomstatus.Service
	checkin *checkin.Service
	ledger  *ledger.Service
	tokens  tokenRevoker
}

func NewHandler(service *Service, rooms *roomstatus.Service, checkinSvc *checkin.Service, ledgerSvc *ledger.Service, tokens tokenRevoker) *Handler {
	return &Handler{
		service: service,
		rooms:   rooms,
		checkin: checkinSvc,
		ledger:  ledgerSvc,
		tokens:  tokens,
	}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/staff/login", h.Login)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/staff")
	{
		g.GET("/rooms", h.ListRooms)
		g.POST("/rooms/:id/advance", h.AdvanceRoom)
		g.POST("/rooms/:id/release", h.ReleaseRoom)

		g.POST("/checkin", h.StartCheckIn)
		g.POST("/checkin/:id/verify", h.VerifyIdentity)
		g.POST("/checkin/:id/details", h.CaptureStayDetails)
		g.POST("/checkin/:id/complete", h.CompleteCheckIn)
		g.POST("/bookings/:id/checkout", h.Checkout)

		g.POST("/orders/:id/advance", h.AdvanceOrder)
		g.POST("/requests/:id/advance", h.AdvanceRequest)

		g.POST("/dinein", h.StartDineIn)
		g.POST("/tokens/revoke", h.RevokeToken)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

func (h *Handler) ListRooms(c *gin.Context) {
	propertyID := c.GetInt64("property_id")
	rooms, err := h.rooms.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list rooms")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) AdvanceRoom(c *gin.Context) {
	roomID, ok := idParam(c)
	if !ok {
		return
	}

	var req AdvanceRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.rooms.Advance(c.Request.Context(), roomID,
		domain.RoomStatus(req.ExpectedStatus), domain.RoomStatus(req.NewStatus))
	if err != nil {
		switch {
		case errors.Is(err, roomstatus.ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, roomstatus.ErrRoomOccupied):
			response.Error(c, http.StatusConflict, "ROOM_OCCUPIED", "Room has an occupant; check out first")
		case errors.Is(err, roomstatus.ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Room status changed; re-fetch and retry")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to advance room")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room_id": roomID, "status": req.NewStatus})
}

func (h *Handler) ReleaseRoom(c *gin.Context) {
	roomID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.rooms.Release(c.Request.Context(), roomID); err != nil {
		switch {
		case errors.Is(err, roomstatus.ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, roomstatus.ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Room is not reserved or occupied")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to release room")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room_id": roomID, "status": domain.RoomAvailable})
}

func (h *Handler) StartCheckIn(c *gin.Context) {
	var req checkin.StartCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.checkin.Start(c.Request.Context(), req.PropertyID, req.GuestNames)
	if err != nil {
		if errors.Is(err, checkin.ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Property and at least one guest are required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start check-in")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) VerifyIdentity(c *gin.Context) {
	bookingID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.checkin.VerifyIdentity(c.Request.Context(), bookingID); err != nil {
		h.checkinError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking_id": bookingID, "verified": true})
}

func (h *Handler) CaptureStayDetails(c *gin.Context) {
	bookingID, ok := idParam(c)
	if !ok {
		return
	}

	var req checkin.StayDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.checkin.CaptureStayDetails(c.Request.Context(), bookingID, req.Purpose, req.CheckoutAt); err != nil {
		h.checkinError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking_id": bookingID})
}

func (h *Handler) CompleteCheckIn(c *gin.Context) {
	bookingID, ok := idParam(c)
	if !ok {
		return
	}

	var req checkin.AssignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.checkin.CompleteCheckIn(c.Request.Context(), bookingID, req.RoomID)
	if err != nil {
		h.checkinError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Checkout(c *gin.Context) {
	bookingID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.checkin.Checkout(c.Request.Context(), bookingID); err != nil {
		h.checkinError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking_id": bookingID, "state": domain.BookingCompleted})
}

func (h *Handler) AdvanceOrder(c *gin.Context) {
	orderID, ok := idParam(c)
	if !ok {
		return
	}

	var req AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.ledger.AdvanceOrder(c.Request.Context(), orderID, domain.OrderStatus(req.Status), actor(c))
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) AdvanceRequest(c *gin.Context) {
	requestID, ok := idParam(c)
	if !ok {
		return
	}

	var req AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sr, err := h.ledger.AdvanceRequest(c.Request.Context(), requestID, domain.RequestStatus(req.Status), actor(c))
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": sr})
}

func (h *Handler) StartDineIn(c *gin.Context) {
	var req StartDineInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	propertyID := c.GetInt64("property_id")
	value, sessionRef, err := h.checkin.StartDineIn(c.Request.Context(), propertyID, req.TableID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_SCOPE", "Table does not exist under this property")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"guest_token": value,
		"session_ref": sessionRef,
	})
}

func (h *Handler) RevokeToken(c *gin.Context) {
	var req RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), req.Token); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to revoke token")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}

func (h *Handler) checkinError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkin.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check-in step input")
	case errors.Is(err, checkin.ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, checkin.ErrBookingState):
		response.Error(c, http.StatusConflict, "BOOKING_STATE", "Booking is not in the right state for this step")
	case errors.Is(err, checkin.ErrVerification):
		response.Error(c, http.StatusUnprocessableEntity, "VERIFICATION_FAILED", "Identity verification failed")
	case errors.Is(err, checkin.ErrRoomNotAvailable):
		response.Error(c, http.StatusConflict, "ROOM_NOT_AVAILABLE", "Room no longer available; pick a different room")
	case errors.Is(err, checkin.ErrTokenIssuance):
		response.Error(c, http.StatusServiceUnavailable, "TOKEN_ISSUANCE_FAILED", "Could not issue guest token; the room was released, retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Check-in step failed")
	}
}

func (h *Handler) ledgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Entry not found")
	case errors.Is(err, ledger.ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status changed; re-fetch and retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to advance status")
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func actor(c *gin.Context) string {
	return "staff:" + strconv.FormatInt(c.GetInt64("staff_id"), 10)
}
