package ledger

import (
	"context"
	"testing"

	"hotelops/internal/domain"
	"hotelops/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	if o != nil {
		o.ID = 501
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) AdvanceStatus(ctx context.Context, id int64, from, to domain.OrderStatus, actor string) (bool, error) {
	args := m.Called(ctx, id, from, to, actor)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListByScope(ctx context.Context, kind domain.ScopeKind, scopeID int64, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, kind, scopeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) History(ctx context.Context, id int64) ([]domain.OrderStatusEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderStatusEvent), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, sr *domain.ServiceRequest) error {
	args := m.Called(ctx, sr)
	if sr != nil {
		sr.ID = 701
	}
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *MockRequestRepository) AdvanceStatus(ctx context.Context, id int64, from, to domain.RequestStatus, actor string) (bool, error) {
	args := m.Called(ctx, id, from, to, actor)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.ServiceRequest, error) {
	args := m.Called(ctx, roomID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceRequest), args.Error(1)
}

func roomScope(roomID int64) domain.TokenScope {
	return domain.TokenScope{
		PropertyID: 1,
		ScopeKind:  domain.ScopeRoom,
		ScopeID:    roomID,
		SessionRef: "B1",
	}
}

func TestCreateOrder_Success(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(orders, new(MockRequestRepository), nil)

	o, err := service.CreateOrder(context.Background(), CreateOrderInput{
		Scope: roomScope(1205),
		Items: []OrderItemInput{
			{MenuItemID: 1, Name: "Club sandwich", UnitPrice: 12.50, Quantity: 2},
			{MenuItemID: 2, Name: "Lemonade", UnitPrice: 4.00, Quantity: 1},
		},
		DeclaredTotal: 29.00,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(501), o.ID)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Equal(t, 29.00, o.Total)
	assert.Equal(t, int64(1205), o.ScopeID)
}

func TestCreateOrder_TotalMismatch(t *testing.T) {
	orders := new(MockOrderRepository)

	service := NewService(orders, new(MockRequestRepository), nil)

	_, err := service.CreateOrder(context.Background(), CreateOrderInput{
		Scope: roomScope(1205),
		Items: []OrderItemInput{
			{MenuItemID: 1, UnitPrice: 12.50, Quantity: 2},
		},
		DeclaredTotal: 20.00,
	})

	assert.ErrorIs(t, err, ErrValidation)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_TotalWithinEpsilon(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(orders, new(MockRequestRepository), nil)

	// 3 * 9.99 = 29.97; declaring 29.97 +/- float noise must pass
	_, err := service.CreateOrder(context.Background(), CreateOrderInput{
		Scope: roomScope(1205),
		Items: []OrderItemInput{
			{MenuItemID: 3, UnitPrice: 9.99, Quantity: 3},
		},
		DeclaredTotal: 29.97,
	})

	assert.NoError(t, err)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	service := NewService(new(MockOrderRepository), new(MockRequestRepository), nil)

	_, err := service.CreateOrder(context.Background(), CreateOrderInput{
		Scope:         roomScope(1205),
		DeclaredTotal: 0,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdvanceOrder_HappyPath(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("GetByID", mock.Anything, int64(501)).Return(&domain.Order{
		ID:     501,
		Status: domain.OrderPending,
	}, nil)
	orders.On("AdvanceStatus", mock.Anything, int64(501), domain.OrderPending, domain.OrderPreparing, "staff:7").Return(true, nil)

	service := NewService(orders, new(MockRequestRepository), nil)

	o, err := service.AdvanceOrder(context.Background(), 501, domain.OrderPreparing, "staff:7")

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderPreparing, o.Status)
	orders.AssertExpectations(t)
}

// pending -> preparing -> cancelled; cancelled is terminal, so a later
// advance to ready must fail.
func TestAdvanceOrder_CancelledIsTerminal(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("GetByID", mock.Anything, int64(501)).Return(&domain.Order{
		ID:     501,
		Status: domain.OrderCancelled,
	}, nil)

	service := NewService(orders, new(MockRequestRepository), nil)

	_, err := service.AdvanceOrder(context.Background(), 501, domain.OrderReady, "staff:7")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	orders.AssertNotCalled(t, "AdvanceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceOrder_CancelFromPreparing(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("GetByID", mock.Anything, int64(501)).Return(&domain.Order{
		ID:     501,
		Status: domain.OrderPreparing,
	}, nil)
	orders.On("AdvanceStatus", mock.Anything, int64(501), domain.OrderPreparing, domain.OrderCancelled, "staff:7").Return(true, nil)

	service := NewService(orders, new(MockRequestRepository), nil)

	o, err := service.AdvanceOrder(context.Background(), 501, domain.OrderCancelled, "staff:7")

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, o.Status)
}

func TestAdvanceOrder_NotFound(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	service := NewService(orders, new(MockRequestRepository), nil)

	_, err := service.AdvanceOrder(context.Background(), 404, domain.OrderPreparing, "staff:7")

	assert.ErrorIs(t, err, ErrNotFound)
}

// A concurrent writer advanced the order between the read and the
// conditional write: the CAS reports no row updated.
func TestAdvanceOrder_LosesRace(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("GetByID", mock.Anything, int64(501)).Return(&domain.Order{
		ID:     501,
		Status: domain.OrderPending,
	}, nil)
	orders.On("AdvanceStatus", mock.Anything, int64(501), domain.OrderPending, domain.OrderPreparing, "staff:7").Return(false, nil)

	service := NewService(orders, new(MockRequestRepository), nil)

	_, err := service.AdvanceOrder(context.Background(), 501, domain.OrderPreparing, "staff:7")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCreateRequest_TableScopeRejected(t *testing.T) {
	service := NewService(new(MockOrderRepository), new(MockRequestRepository), nil)

	_, err := service.CreateRequest(context.Background(), CreateRequestInput{
		Scope: domain.TokenScope{
			PropertyID: 1,
			ScopeKind:  domain.ScopeTable,
			ScopeID:    7,
		},
		Category: domain.RequestHousekeeping,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRequest_Success(t *testing.T) {
	requests := new(MockRequestRepository)
	requests.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(new(MockOrderRepository), requests, nil)

	sr, err := service.CreateRequest(context.Background(), CreateRequestInput{
		Scope:       roomScope(1205),
		Category:    domain.RequestHousekeeping,
		Description: "Extra towels please",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(701), sr.ID)
	assert.Equal(t, domain.RequestPending, sr.Status)
	assert.Equal(t, int64(1205), sr.RoomID)
}

// ServiceRequest transitions are strictly linear: no skipping pending ->
// completed, no going back.
func TestAdvanceRequest_NoSkipping(t *testing.T) {
	requests := new(MockRequestRepository)
	requests.On("GetByID", mock.Anything, int64(701)).Return(&domain.ServiceRequest{
		ID:     701,
		Status: domain.RequestPending,
	}, nil)

	service := NewService(new(MockOrderRepository), requests, nil)

	_, err := service.AdvanceRequest(context.Background(), 701, domain.RequestCompleted, "staff:7")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListForScope_TableSeesOnlyOrders(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("ListByScope", mock.Anything, domain.ScopeTable, int64(7), 50, 0).Return([]domain.Order{
		{ID: 2, ScopeKind: domain.ScopeTable, ScopeID: 7},
		{ID: 1, ScopeKind: domain.ScopeTable, ScopeID: 7},
	}, nil)
	requests := new(MockRequestRepository)

	service := NewService(orders, requests, nil)

	entries, err := service.ListForScope(context.Background(), domain.TokenScope{
		ScopeKind: domain.ScopeTable,
		ScopeID:   7,
	}, 0, 0)

	assert.NoError(t, err)
	assert.Len(t, entries.Orders, 2)
	assert.Empty(t, entries.Requests)
	requests.AssertNotCalled(t, "ListByRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
