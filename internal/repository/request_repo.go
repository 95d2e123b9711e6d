package repository

import (
	"context"
	"errors"
	"time"

	"hotelops/internal/domain"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type serviceRequestModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	PropertyID  int64     `gorm:"column:property_id;index"`
	RoomID      int64     `gorm:"column:room_id;index"`
	SessionRef  string    `gorm:"column:session_ref"`
	Category    string    `gorm:"column:category"`
	Description string    `gorm:"column:description;type:text"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (serviceRequestModel) TableName() string { return "service_requests" }

type requestStatusEventModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	RequestID int64     `gorm:"column:request_id;index"`
	Status    string    `gorm:"column:status"`
	Actor     string    `gorm:"column:actor"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (requestStatusEventModel) TableName() string { return "request_status_events" }

func toDomainRequest(m serviceRequestModel) *domain.ServiceRequest {
	return &domain.ServiceRequest{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		RoomID:      m.RoomID,
		SessionRef:  m.SessionRef,
		Category:    domain.RequestCategory(m.Category),
		Description: m.Description,
		Status:      domain.RequestStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *RequestRepository) Create(ctx context.Context, sr *domain.ServiceRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := serviceRequestModel{
			PropertyID:  sr.PropertyID,
			RoomID:      sr.RoomID,
			SessionRef:  sr.SessionRef,
			Category:    string(sr.Category),
			Description: sr.Description,
			Status:      string(sr.Status),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		ev := requestStatusEventModel{RequestID: m.ID, Status: string(sr.Status), Actor: sr.SessionRef}
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		*sr = *toDomainRequest(m)
		return nil
	})
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	var m serviceRequestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainRequest(m), nil
}

func (r *RequestRepository) AdvanceStatus(ctx context.Context, id int64, from, to domain.RequestStatus, actor string) (bool, error) {
	advanced := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table("service_requests").
			Where("id = ? AND status = ?", id, string(from)).
			Updates(map[string]any{"status": string(to), "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}
		ev := requestStatusEventModel{RequestID: id, Status: string(to), Actor: actor}
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		advanced = true
		return nil
	})
	return advanced, err
}

func (r *RequestRepository) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.ServiceRequest, error) {
	var ms []serviceRequestModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ServiceRequest, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRequest(m))
	}
	return out, nil
}

func (r *RequestRepository) CountOpenByRoom(ctx context.Context, roomID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("service_requests").
		Where("room_id = ? AND status <> ?", roomID, string(domain.RequestCompleted)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
