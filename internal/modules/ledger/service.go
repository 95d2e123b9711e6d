package ledger

import (
	"context"
	"errors"
	"math"

	"hotelops/internal/domain"
	"hotelops/internal/pkg/validator"
	"hotelops/internal/repository"
)

// totalEpsilon is the tolerance between the caller's declared total and
// the server-side sum of line items, in currency units.
const totalEpsilon = 0.01

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	orders   OrderRepository
	requests RequestRepository
	events   EventSink
}

func NewService(orders OrderRepository, requests RequestRepository, events EventSink) *Service {
	return &Service{orders: orders, requests: requests, events: events}
}

// CreateOrder validates and persists a food order. The declared total is
// recomputed from the line items in the same request; a mismatch beyond
// the epsilon rejects the whole order and nothing is written.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 || !in.Scope.ScopeKind.Valid() {
		return nil, ErrValidation
	}

	var sum float64
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		item := domain.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
		}
		if fields := validator.Validate(item); fields != nil {
			return nil, ErrValidation
		}
		sum += it.UnitPrice * float64(it.Quantity)
		items = append(items, item)
	}
	sum = math.Round(sum*100) / 100

	if math.Abs(in.DeclaredTotal-sum) > totalEpsilon {
		return nil, ErrValidation
	}

	o := &domain.Order{
		PropertyID: in.Scope.PropertyID,
		ScopeKind:  in.Scope.ScopeKind,
		ScopeID:    in.Scope.ScopeID,
		SessionRef: in.Scope.SessionRef,
		Items:      items,
		Total:      sum,
		Status:     domain.OrderPending,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.OrderEvent(o.PropertyID, o)
	}
	return o, nil
}

// AdvanceOrder appends the next status to the order's history. The
// repository write is conditional on the current status, so concurrent
// kitchen actors cannot both advance the same order.
func (s *Service) AdvanceOrder(ctx context.Context, orderID int64, to domain.OrderStatus, actor string) (*domain.Order, error) {
	if !to.Valid() {
		return nil, ErrInvalidTransition
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !o.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition
	}

	ok, err := s.orders.AdvanceStatus(ctx, orderID, o.Status, to, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	o.Status = to
	if s.events != nil {
		s.events.OrderEvent(o.PropertyID, o)
	}
	return o, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *Service) OrderHistory(ctx context.Context, orderID int64) ([]domain.OrderStatusEvent, error) {
	if _, err := s.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orders.History(ctx, orderID)
}

// CreateRequest persists a housekeeping/maintenance/concierge ask for a
// room. Table-scoped tokens cannot file service requests.
func (s *Service) CreateRequest(ctx context.Context, in CreateRequestInput) (*domain.ServiceRequest, error) {
	if in.Scope.ScopeKind != domain.ScopeRoom || !in.Category.Valid() {
		return nil, ErrValidation
	}

	sr := &domain.ServiceRequest{
		PropertyID:  in.Scope.PropertyID,
		RoomID:      in.Scope.ScopeID,
		SessionRef:  in.Scope.SessionRef,
		Category:    in.Category,
		Description: in.Description,
		Status:      domain.RequestPending,
	}
	if err := s.requests.Create(ctx, sr); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.RequestEvent(sr.PropertyID, sr)
	}
	return sr, nil
}

func (s *Service) AdvanceRequest(ctx context.Context, requestID int64, to domain.RequestStatus, actor string) (*domain.ServiceRequest, error) {
	if !to.Valid() {
		return nil, ErrInvalidTransition
	}

	sr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !sr.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition
	}

	ok, err := s.requests.AdvanceStatus(ctx, requestID, sr.Status, to, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	sr.Status = to
	if s.events != nil {
		s.events.RequestEvent(sr.PropertyID, sr)
	}
	return sr, nil
}

// ScopeEntries is the guest-facing listing: everything filed under the
// token's scope, newest first. Room scopes see orders and service
// requests; table scopes see orders only.
type ScopeEntries struct {
	Orders   []domain.Order          `json:"orders"`
	Requests []domain.ServiceRequest `json:"requests"`
}

func (s *Service) ListForScope(ctx context.Context, scope domain.TokenScope, limit, offset int) (*ScopeEntries, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	out := &ScopeEntries{
		Orders:   []domain.Order{},
		Requests: []domain.ServiceRequest{},
	}

	orders, err := s.orders.ListByScope(ctx, scope.ScopeKind, scope.ScopeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out.Orders = orders

	if scope.ScopeKind == domain.ScopeRoom {
		requests, err := s.requests.ListByRoom(ctx, scope.ScopeID, limit, offset)
		if err != nil {
			return nil, err
		}
		out.Requests = requests
	}

	return out, nil
}
