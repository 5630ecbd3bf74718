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

// CandidateRepository handles candidate data access.
type CandidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository creates a new CandidateRepository.
func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

const candidateColumns = `id, name, email, phone, hall_ticket, is_active, created_at, updated_at`

func scanCandidate(row pgx.Row) (*model.Candidate, error) {
	c := &model.Candidate{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.HallTicket, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a candidate by ID.
func (r *CandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	return scanCandidate(r.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id,
	))
}

// GetByHallTicket retrieves a candidate by their unique hall ticket.
func (r *CandidateRepository) GetByHallTicket(ctx context.Context, hallTicket string) (*model.Candidate, error) {
	return scanCandidate(r.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE hall_ticket = $1`, hallTicket,
	))
}

// List retrieves candidates, newest first. A non-empty search term matches
// name, email or hall ticket as a case-insensitive substring.
func (r *CandidateRepository) List(ctx context.Context, search string) ([]model.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates`
	var args []interface{}

	if search = strings.TrimSpace(search); search != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'
			OR email ILIKE '%' || $1 || '%'
			OR hall_ticket ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.HallTicket, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Count returns the total number of candidates.
func (r *CandidateRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n)
	return n, err
}

// LastHallTicketWithPrefix returns the lexicographically greatest hall
// ticket starting with prefix, or "" when none exists.
func (r *CandidateRepository) LastHallTicketWithPrefix(ctx context.Context, prefix string) (string, error) {
	var ticket string
	err := r.pool.QueryRow(ctx,
		`SELECT hall_ticket FROM candidates
		 WHERE hall_ticket LIKE $1 || '%'
		 ORDER BY hall_ticket DESC LIMIT 1`, prefix,
	).Scan(&ticket)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ticket, nil
}

// Create inserts a new candidate. The hall_ticket and email unique indexes
// are the concurrency safeguard for provisioning; violations are mapped to
// sentinel errors so the caller can retry with a fresh proposal.
func (r *CandidateRepository) Create(ctx context.Context, c *model.Candidate) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, email, phone, hall_ticket, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.HallTicket, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	return mapCandidateConstraint(err)
}

// Update modifies a candidate's contact info and active flag. The hall
// ticket is immutable.
func (r *CandidateRepository) Update(ctx context.Context, c *model.Candidate) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE candidates SET name = $1, email = $2, phone = $3, is_active = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		c.Name, c.Email, c.Phone, c.IsActive, c.ID,
	)
	return mapCandidateConstraint(err)
}

// Delete removes a candidate by ID.
func (r *CandidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func mapCandidateConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "hall_ticket") {
			return ErrDuplicateHallTicket
		}
		return ErrDuplicateEmail
	}
	return err
}
