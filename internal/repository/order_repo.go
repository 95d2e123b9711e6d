package repository

import (
	"context"
	"errors"
	"time"

	"hotelops/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	PropertyID int64     `gorm:"column:property_id;index"`
	ScopeKind  string    `gorm:"column:scope_kind"`
	ScopeID    int64     `gorm:"column:scope_id;index"`
	SessionRef string    `gorm:"column:session_ref"`
	Total      float64   `gorm:"column:total"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderModel) TableName() string { return "orders" }

type orderItemModel struct {
	ID         int64   `gorm:"column:id;primaryKey"`
	OrderID    int64   `gorm:"column:order_id;index"`
	MenuItemID int64   `gorm:"column:menu_item_id"`
	Name       string  `gorm:"column:name"`
	UnitPrice  float64 `gorm:"column:unit_price"`
	Quantity   int     `gorm:"column:quantity"`
}

func (orderItemModel) TableName() string { return "order_items" }

type orderStatusEventModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	OrderID   int64     `gorm:"column:order_id;index"`
	Status    string    `gorm:"column:status"`
	Actor     string    `gorm:"column:actor"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (orderStatusEventModel) TableName() string { return "order_status_events" }

func toDomainOrder(m orderModel, items []orderItemModel) *domain.Order {
	o := &domain.Order{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		ScopeKind:  domain.ScopeKind(m.ScopeKind),
		ScopeID:    m.ScopeID,
		SessionRef: m.SessionRef,
		Total:      m.Total,
		Status:     domain.OrderStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	for _, it := range items {
		o.Items = append(o.Items, domain.OrderItem{
			ID:         it.ID,
			OrderID:    it.OrderID,
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
		})
	}
	return o
}

// Create persists the order, its line items and the initial "pending"
// history event in one transaction, so no partial order is ever visible
// to readers.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := orderModel{
			PropertyID: o.PropertyID,
			ScopeKind:  string(o.ScopeKind),
			ScopeID:    o.ScopeID,
			SessionRef: o.SessionRef,
			Total:      o.Total,
			Status:     string(o.Status),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		for i := range o.Items {
			im := orderItemModel{
				OrderID:    m.ID,
				MenuItemID: o.Items[i].MenuItemID,
				Name:       o.Items[i].Name,
				UnitPrice:  o.Items[i].UnitPrice,
				Quantity:   o.Items[i].Quantity,
			}
			if err := tx.Create(&im).Error; err != nil {
				return err
			}
			o.Items[i].ID = im.ID
			o.Items[i].OrderID = m.ID
		}
		ev := orderStatusEventModel{
			OrderID: m.ID,
			Status:  string(o.Status),
			Actor:   o.SessionRef,
		}
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		o.ID = m.ID
		o.CreatedAt = m.CreatedAt
		o.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var m orderModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	var items []orderItemModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return toDomainOrder(m, items), nil
}

// AdvanceStatus appends a history event and flips the denormalized
// current status in one transaction. The status column update is
// conditional on the expected current value, so a concurrent writer that
// advanced the order first makes this call return false.
func (r *OrderRepository) AdvanceStatus(ctx context.Context, id int64, from, to domain.OrderStatus, actor string) (bool, error) {
	advanced := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table("orders").
			Where("id = ? AND status = ?", id, string(from)).
			Updates(map[string]any{"status": string(to), "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}
		ev := orderStatusEventModel{OrderID: id, Status: string(to), Actor: actor}
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		advanced = true
		return nil
	})
	return advanced, err
}

func (r *OrderRepository) ListByScope(ctx context.Context, kind domain.ScopeKind, scopeID int64, limit, offset int) ([]domain.Order, error) {
	var ms []orderModel
	tx := r.db.WithContext(ctx).
		Where("scope_kind = ? AND scope_id = ?", string(kind), scopeID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Order, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainOrder(m, nil))
	}
	return out, nil
}

func (r *OrderRepository) History(ctx context.Context, id int64) ([]domain.OrderStatusEvent, error) {
	var evs []orderStatusEventModel
	tx := r.db.WithContext(ctx).Where("order_id = ?", id).Order("id").Find(&evs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.OrderStatusEvent, 0, len(evs))
	for _, e := range evs {
		out = append(out, domain.OrderStatusEvent{
			ID:        e.ID,
			OrderID:   e.OrderID,
			Status:    domain.OrderStatus(e.Status),
			Actor:     e.Actor,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

// CountOpenByRoom counts room-scoped orders that are neither delivered
// nor cancelled. Checkout uses this for its non-blocking warning.
func (r *OrderRepository) CountOpenByRoom(ctx context.Context, roomID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("orders").
		Where("scope_kind = ? AND scope_id = ? AND status NOT IN ?",
			string(domain.ScopeRoom), roomID,
			[]string{string(domain.OrderDelivered), string(domain.OrderCancelled)}).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
