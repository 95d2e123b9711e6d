package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotelops/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	Ref         string     `gorm:"column:ref;uniqueIndex"`
	PropertyID  int64      `gorm:"column:property_id;index"`
	RoomID      *int64     `gorm:"column:room_id"`
	GuestNames  string     `gorm:"column:guest_names;type:text"`
	Purpose     *string    `gorm:"column:purpose"`
	CheckoutAt  *time.Time `gorm:"column:checkout_at"`
	State       string     `gorm:"column:state"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var names []string
	if m.GuestNames != "" {
		_ = json.Unmarshal([]byte(m.GuestNames), &names)
	}
	var purpose string
	if m.Purpose != nil {
		purpose = *m.Purpose
	}
	return &domain.Booking{
		ID:          m.ID,
		Ref:         m.Ref,
		PropertyID:  m.PropertyID,
		RoomID:      m.RoomID,
		GuestNames:  names,
		Purpose:     purpose,
		CheckoutAt:  m.CheckoutAt,
		State:       domain.BookingState(m.State),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CompletedAt: m.CompletedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	names, err := json.Marshal(b.GuestNames)
	if err != nil {
		return err
	}
	var purpose *string
	if b.Purpose != "" {
		v := b.Purpose
		purpose = &v
	}
	m := bookingModel{
		Ref:        b.Ref,
		PropertyID: b.PropertyID,
		RoomID:     b.RoomID,
		GuestNames: string(names),
		Purpose:    purpose,
		CheckoutAt: b.CheckoutAt,
		State:      string(b.State),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("ref = ?", ref).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) UpdateStayDetails(ctx context.Context, id int64, purpose string, checkoutAt time.Time) error {
	return r.db.WithContext(ctx).
		Table("bookings").
		Where("id = ?", id).
		Updates(map[string]any{
			"purpose":     purpose,
			"checkout_at": checkoutAt,
			"updated_at":  time.Now(),
		}).Error
}

func (r *BookingRepository) SetRoom(ctx context.Context, id, roomID int64) error {
	return r.db.WithContext(ctx).
		Table("bookings").
		Where("id = ?", id).
		Updates(map[string]any{"room_id": roomID, "updated_at": time.Now()}).Error
}

func (r *BookingRepository) ClearRoom(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Table("bookings").
		Where("id = ?", id).
		Updates(map[string]any{"room_id": nil, "updated_at": time.Now()}).Error
}

func (r *BookingRepository) SetState(ctx context.Context, id int64, state domain.BookingState) error {
	updates := map[string]any{"state": string(state), "updated_at": time.Now()}
	if state == domain.BookingCompleted {
		updates["completed_at"] = time.Now()
	}
	return r.db.WithContext(ctx).
		Table("bookings").
		Where("id = ?", id).
		Updates(updates).Error
}
