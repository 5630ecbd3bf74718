package model

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is the exam-taking user variant. Candidates are identified by
// their hall ticket and carry no password.
type Candidate struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	HallTicket string    `json:"hall_ticket"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCandidateRequest is the payload for provisioning a candidate.
// HallTicket is optional; when omitted one is generated.
type CreateCandidateRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required,min=6,max=20"`
	HallTicket string `json:"hall_ticket" binding:"omitempty,len=11"`
}

// UpdateCandidateRequest is the payload for updating an existing candidate.
// The hall ticket is immutable after provisioning.
type UpdateCandidateRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,min=6,max=20"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

// LoginRequest is the polymorphic login payload. Admins send username and
// password; candidates send only their hall ticket.
type LoginRequest struct {
	UserType   string `json:"user_type" binding:"required,oneof=Admin Candidate"`
	Username   string `json:"username" binding:"omitempty,min=3,max=50"`
	Password   string `json:"password" binding:"omitempty,min=6,max=128"`
	HallTicket string `json:"hall_ticket" binding:"omitempty,len=11"`
}

// LoginResponse is returned after successful authentication.
type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
