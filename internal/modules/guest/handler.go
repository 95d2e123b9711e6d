package guest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hotelops/internal/domain"
	"hotelops/internal/modules/ledger"
	"hotelops/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// tokenHeader carries the capability token the guest scanned. It is the
// only credential the guest surface accepts.
const tokenHeader = "X-Guest-Token"

type TokenValidator interface {
	Validate(ctx context.Context, value string) (*domain.TokenScope, error)
}

// Handler is the boundary that accepts raw capability tokens from
// untrusted callers. Every mutating call validates the token first and
// takes its scope from the validation result, never from the body.
type Handler struct {
	tokens TokenValidator
	ledger *ledger.Service
}

func NewHandler(tokens TokenValidator, ledgerSvc *ledger.Service) *Handler {
	return &Handler{tokens: tokens, ledger: ledgerSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/guest")
	{
		g.GET("/session", h.Session)
		g.POST("/orders", h.CreateOrder)
		g.POST("/requests", h.CreateServiceRequest)
		g.GET("/entries", h.ListMine)
	}
}

// validate collapses every token failure into the same 401: the guest
// must not learn whether a probed value was expired, revoked or never
// issued.
func (h *Handler) validate(c *gin.Context) (*domain.TokenScope, bool) {
	scope, err := h.tokens.Validate(c.Request.Context(), c.GetHeader(tokenHeader))
	if err != nil {
		response.Unauthorized(c)
		return nil, false
	}
	return scope, true
}

// Session echoes the validated scope; the portal landing page calls it
// on every load.
func (h *Handler) Session(c *gin.Context) {
	scope, ok := h.validate(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scope": scope})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	scope, ok := h.validate(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.ledger.CreateOrder(c.Request.Context(), ledger.CreateOrderInput{
		Scope:         *scope,
		Items:         req.Items,
		DeclaredTotal: req.DeclaredTotal,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Order total does not match line items")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create order")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"order": o})
}

func (h *Handler) CreateServiceRequest(c *gin.Context) {
	scope, ok := h.validate(c)
	if !ok {
		return
	}

	var req CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sr, err := h.ledger.CreateRequest(c.Request.Context(), ledger.CreateRequestInput{
		Scope:       *scope,
		Category:    domain.RequestCategory(req.Category),
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category or scope for a service request")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create service request")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": sr})
}

func (h *Handler) ListMine(c *gin.Context) {
	scope, ok := h.validate(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.ledger.ListForScope(c.Request.Context(), *scope, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list entries")
		return
	}

	response.Success(c, http.StatusOK, entries)
}
