package service

import (
	"context"
	"errors"

	"github.com/examportal/examportal-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AdminStore is the admin persistence surface the service needs.
type AdminStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	List(ctx context.Context, search string) ([]model.Admin, error)
	Create(ctx context.Context, a *model.Admin) error
	Update(ctx context.Context, a *model.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminService handles admin account management.
type AdminService struct {
	admins AdminStore
	auth   *AuthService
}

// NewAdminService creates a new AdminService.
func NewAdminService(admins AdminStore, auth *AuthService) *AdminService {
	return &AdminService{admins: admins, auth: auth}
}

// List retrieves admins with an optional search term.
func (s *AdminService) List(ctx context.Context, search string) ([]model.Admin, error) {
	admins, err := s.admins.List(ctx, search)
	if err != nil {
		return nil, err
	}
	if admins == nil {
		admins = []model.Admin{}
	}
	return admins, nil
}

// Get retrieves one admin.
func (s *AdminService) Get(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	a, err := s.admins.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	return a, err
}

// GetByUsername retrieves one admin by their login username.
func (s *AdminService) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	a, err := s.admins.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	return a, err
}

// Create registers a new admin with a hashed password.
func (s *AdminService) Create(ctx context.Context, req *model.CreateAdminRequest) (*model.Admin, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Username:     req.Username,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Update modifies an admin's basic info. Passwords are out of scope here.
func (s *AdminService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAdminRequest) (*model.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	admin.Name = req.Name
	admin.Email = req.Email
	admin.Phone = req.Phone
	admin.Username = req.Username
	admin.IsActive = *req.IsActive

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Delete removes an admin.
func (s *AdminService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.admins.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAdminNotFound
	}
	return err
}
