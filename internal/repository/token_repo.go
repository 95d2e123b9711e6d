package repository

import (
	"context"
	"errors"
	"time"

	"hotelops/internal/domain"

	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

type tokenIssuanceModel struct {
	ID         int64      `gorm:"column:id;primaryKey"`
	Token      string     `gorm:"column:token;uniqueIndex"`
	PropertyID int64      `gorm:"column:property_id"`
	ScopeKind  string     `gorm:"column:scope_kind"`
	ScopeID    int64      `gorm:"column:scope_id"`
	SessionRef string     `gorm:"column:session_ref;index"`
	IssuedAt   time.Time  `gorm:"column:issued_at"`
	ExpiresAt  time.Time  `gorm:"column:expires_at"`
	RevokedAt  *time.Time `gorm:"column:revoked_at"`
}

func (tokenIssuanceModel) TableName() string { return "token_issuances" }

func toDomainIssuance(m tokenIssuanceModel) *domain.TokenIssuance {
	return &domain.TokenIssuance{
		ID:         m.ID,
		Token:      m.Token,
		PropertyID: m.PropertyID,
		ScopeKind:  domain.ScopeKind(m.ScopeKind),
		ScopeID:    m.ScopeID,
		SessionRef: m.SessionRef,
		IssuedAt:   m.IssuedAt,
		ExpiresAt:  m.ExpiresAt,
		RevokedAt:  m.RevokedAt,
	}
}

func (r *TokenRepository) Create(ctx context.Context, iss *domain.TokenIssuance) error {
	m := tokenIssuanceModel{
		Token:      iss.Token,
		PropertyID: iss.PropertyID,
		ScopeKind:  string(iss.ScopeKind),
		ScopeID:    iss.ScopeID,
		SessionRef: iss.SessionRef,
		IssuedAt:   iss.IssuedAt,
		ExpiresAt:  iss.ExpiresAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	iss.ID = m.ID
	return nil
}

// GetByToken is the O(1) validation lookup: token value -> issuance row.
func (r *TokenRepository) GetByToken(ctx context.Context, token string) (*domain.TokenIssuance, error) {
	var m tokenIssuanceModel
	tx := r.db.WithContext(ctx).Where("token = ?", token).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainIssuance(m), nil
}

// Revoke marks the issuance revoked. Idempotent: revoking an already
// revoked token keeps the original revocation timestamp.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Table("token_issuances").
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", time.Now()).Error
}

func (r *TokenRepository) RevokeBySessionRef(ctx context.Context, sessionRef string) error {
	return r.db.WithContext(ctx).
		Table("token_issuances").
		Where("session_ref = ? AND revoked_at IS NULL", sessionRef).
		Update("revoked_at", time.Now()).Error
}
