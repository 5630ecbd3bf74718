package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/examportal/examportal-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminRepository handles admin data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

const adminColumns = `id, name, email, phone, username, password_hash, is_active, created_at, updated_at`

func scanAdmin(row pgx.Row) (*model.Admin, error) {
	a := &model.Admin{}
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Username, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an admin by ID.
func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id,
	))
}

// GetByUsername retrieves an admin by their unique username.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE username = $1`, username,
	))
}

// List retrieves admins, newest first, with optional case-insensitive
// substring search over name, email and username.
func (r *AdminRepository) List(ctx context.Context, search string) ([]model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins`
	var args []interface{}

	if search = strings.TrimSpace(search); search != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'
			OR email ILIKE '%' || $1 || '%'
			OR username ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Username, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// Create inserts a new admin.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admins (name, email, phone, username, password_hash, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		a.Name, a.Email, a.Phone, a.Username, a.PasswordHash, a.IsActive,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	return mapAdminConstraint(err)
}

// Update modifies an admin's basic info (excluding password).
func (r *AdminRepository) Update(ctx context.Context, a *model.Admin) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET name = $1, email = $2, phone = $3, username = $4, is_active = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		a.Name, a.Email, a.Phone, a.Username, a.IsActive, a.ID,
	)
	return mapAdminConstraint(err)
}

// Delete removes an admin by ID.
func (r *AdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func mapAdminConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return ErrDuplicateUsername
		}
		return ErrDuplicateEmail
	}
	return err
}
