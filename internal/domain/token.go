package domain

import "time"

type ScopeKind string

const (
	ScopeRoom  ScopeKind = "room"
	ScopeTable ScopeKind = "table"
)

func (k ScopeKind) Valid() bool {
	return k == ScopeRoom || k == ScopeTable
}

// TokenIssuance is the persisted record behind one capability token. The
// token value itself is the lookup key; it carries no guest identity.
type TokenIssuance struct {
	ID         int64      `json:"id"`
	Token      string     `json:"-"`
	PropertyID int64      `json:"property_id"`
	ScopeKind  ScopeKind  `json:"scope_kind"`
	ScopeID    int64      `json:"scope_id"`
	SessionRef string     `json:"session_ref"`
	IssuedAt   time.Time  `json:"issued_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

// TokenScope is what a successful validation yields: everything the
// gateway may trust about the caller.
type TokenScope struct {
	PropertyID int64     `json:"property_id"`
	ScopeKind  ScopeKind `json:"scope_kind"`
	ScopeID    int64     `json:"scope_id"`
	SessionRef string    `json:"session_ref"`
}
