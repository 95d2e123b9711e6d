package repository

import (
	"context"
	"errors"
	"time"

	"hotelops/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	PropertyID int64     `gorm:"column:property_id;index"`
	Number     string    `gorm:"column:number"`
	Floor      int       `gorm:"column:floor"`
	Status     string    `gorm:"column:status"`
	BookingRef *string   `gorm:"column:booking_ref"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		Number:     m.Number,
		Floor:      m.Floor,
		Status:     domain.RoomStatus(m.Status),
		BookingRef: m.BookingRef,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := roomModel{
		PropertyID: room.PropertyID,
		Number:     room.Number,
		Floor:      room.Floor,
		Status:     string(room.Status),
		BookingRef: room.BookingRef,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Room, error) {
	var ms []roomModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("floor, number").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

// UpdateStatusCAS performs the single conditional write all room
// transitions go through: the row is updated only when its current
// status (and, when expectedRef is non-nil, its occupant reference)
// still matches what the caller read. Returns false when another writer
// got there first.
func (r *RoomRepository) UpdateStatusCAS(ctx context.Context, roomID int64, from, to domain.RoomStatus, expectedRef *string, newRef *string) (bool, error) {
	q := r.db.WithContext(ctx).
		Table("rooms").
		Where("id = ? AND status = ?", roomID, string(from))
	if expectedRef != nil {
		q = q.Where("booking_ref = ?", *expectedRef)
	}
	tx := q.Updates(map[string]any{
		"status":      string(to),
		"booking_ref": newRef,
		"updated_at":  time.Now(),
	})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
