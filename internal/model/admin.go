package model

import (
	"time"

	"github.com/google/uuid"
)

// Admin is the management user variant. Admins authenticate with a
// username and password and own the question pool.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateAdminRequest is the payload for creating a new admin account.
type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,min=6,max=20"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateAdminRequest is the payload for updating an existing admin.
// Passwords are never changed through this route.
type UpdateAdminRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,min=6,max=20"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	IsActive *bool  `json:"is_active" binding:"required"`
}
