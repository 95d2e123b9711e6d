package domain

import "time"

type StaffRole string

const (
	RoleFrontDesk StaffRole = "front_desk"
	RoleKitchen   StaffRole = "kitchen"
	RoleManager   StaffRole = "manager"
)

type StaffUser struct {
	ID           int64     `json:"id"`
	PropertyID   int64     `json:"property_id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         StaffRole `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
