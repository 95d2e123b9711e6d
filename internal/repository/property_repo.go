package repository

import (
	"context"
	"errors"
	"time"

	"hotelops/internal/domain"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Address   string    `gorm:"column:address"`
	City      string    `gorm:"column:city"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (propertyModel) TableName() string { return "properties" }

type tableModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	PropertyID int64     `gorm:"column:property_id;index"`
	Number     int       `gorm:"column:number"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (tableModel) TableName() string { return "tables" }

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := propertyModel{Name: p.Name, Address: p.Address, City: p.City}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &domain.Property{ID: m.ID, Name: m.Name, Address: m.Address, City: m.City, CreatedAt: m.CreatedAt}, nil
}

func (r *PropertyRepository) CreateTable(ctx context.Context, t *domain.Table) error {
	m := tableModel{PropertyID: t.PropertyID, Number: t.Number}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	t.ID = m.ID
	t.CreatedAt = m.CreatedAt
	return nil
}

// RoomExists reports whether the room belongs to the property. Token
// issuance uses this to reject scopes outside the property.
func (r *PropertyRepository) RoomExists(ctx context.Context, propertyID, roomID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("rooms").
		Where("id = ? AND property_id = ?", roomID, propertyID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 1, nil
}

func (r *PropertyRepository) TableExists(ctx context.Context, propertyID, tableID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("tables").
		Where("id = ? AND property_id = ?", tableID, propertyID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 1, nil
}
