package repository

import (
	"context"
	"strconv"

	"github.com/examportal/examportal-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, question, options, correct_answer, category, difficulty, is_active, created_by, created_at, updated_at`

func scanQuestionRows(rows pgx.Rows) ([]model.Question, error) {
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.Options, &q.CorrectAnswer, &q.Category, &q.Difficulty, &q.IsActive, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// List retrieves questions matching the filter, newest first.
func (r *QuestionRepository) List(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions`
	var args []interface{}
	var conds []string

	if filter.Category != nil {
		args = append(args, *filter.Category)
		conds = append(conds, `category = $`+strconv.Itoa(len(args)))
	}
	if filter.Difficulty != nil {
		args = append(args, *filter.Difficulty)
		conds = append(conds, `difficulty = $`+strconv.Itoa(len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, `is_active = $`+strconv.Itoa(len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanQuestionRows(rows)
}

// GetByID retrieves a single question including its answer key.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.QuestionText, &q.Options, &q.CorrectAnswer, &q.Category, &q.Difficulty, &q.IsActive, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetByIDs retrieves the questions whose IDs are in ids. Unknown IDs are
// silently absent from the result.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, err
	}
	return scanQuestionRows(rows)
}

// CountActive returns the number of active questions.
func (r *QuestionRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE is_active`).Scan(&n)
	return n, err
}

// SampleActive draws a uniform random sample of n active questions without
// replacement.
func (r *QuestionRepository) SampleActive(ctx context.Context, n int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE is_active ORDER BY random() LIMIT $1`, n,
	)
	if err != nil {
		return nil, err
	}
	return scanQuestionRows(rows)
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (question, options, correct_answer, category, difficulty, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		q.QuestionText, q.Options, q.CorrectAnswer, q.Category, q.Difficulty, q.IsActive, q.CreatedBy,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// BulkCreate inserts questions inside one transaction so a bulk import is
// all-or-nothing.
func (r *QuestionRepository) BulkCreate(ctx context.Context, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range questions {
		q := &questions[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO questions (question, options, correct_answer, category, difficulty, is_active, created_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at, updated_at`,
			q.QuestionText, q.Options, q.CorrectAnswer, q.Category, q.Difficulty, q.IsActive, q.CreatedBy,
		).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update modifies a question.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE questions SET question = $1, options = $2, correct_answer = $3, category = $4, difficulty = $5, is_active = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		q.QuestionText, q.Options, q.CorrectAnswer, q.Category, q.Difficulty, q.IsActive, q.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a question by ID.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
