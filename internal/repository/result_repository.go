package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/examportal/examportal-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultRepository handles exam result data access. Results are write-once:
// there is no Update method on purpose.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

const resultColumns = `id, candidate_id, candidate_name, hall_ticket, answers, questions,
	total_questions, attempted_questions, correct_answers, wrong_answers,
	score, percentage, time_taken, submitted_at`

func scanResult(row pgx.Row) (*model.Result, error) {
	res := &model.Result{}
	var answers, questions []byte
	err := row.Scan(
		&res.ID, &res.CandidateID, &res.CandidateName, &res.HallTicket,
		&answers, &questions,
		&res.TotalQuestions, &res.AttemptedQuestions, &res.CorrectAnswers, &res.WrongAnswers,
		&res.Score, &res.Percentage, &res.TimeTaken, &res.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(answers, &res.Answers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &res.Questions); err != nil {
		return nil, err
	}
	return res, nil
}

// Create persists a scored result. Answers and the per-question breakdown are
// stored as jsonb documents.
func (r *ResultRepository) Create(ctx context.Context, res *model.Result) error {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return err
	}
	questions, err := json.Marshal(res.Questions)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO results (candidate_id, candidate_name, hall_ticket, answers, questions,
			total_questions, attempted_questions, correct_answers, wrong_answers,
			score, percentage, time_taken)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, submitted_at`,
		res.CandidateID, res.CandidateName, res.HallTicket, answers, questions,
		res.TotalQuestions, res.AttemptedQuestions, res.CorrectAnswers, res.WrongAnswers,
		res.Score, res.Percentage, res.TimeTaken,
	).Scan(&res.ID, &res.SubmittedAt)
}

// GetByID retrieves one result.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Result, error) {
	return scanResult(r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM results WHERE id = $1`, id,
	))
}

// ListByCandidate retrieves all results of one candidate, newest first.
func (r *ResultRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]model.Result, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resultColumns+` FROM results WHERE candidate_id = $1 ORDER BY submitted_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, rows.Err()
}

// ListAll retrieves results for the admin view, newest first, each enriched
// with the owning candidate's live record when it still exists. Filters match
// the denormalized hall ticket and candidate name captured at submission time.
func (r *ResultRepository) ListAll(ctx context.Context, filter model.ResultFilter) ([]model.ResultWithCandidate, error) {
	query := `SELECT r.id, r.candidate_id, r.candidate_name, r.hall_ticket, r.answers, r.questions,
		r.total_questions, r.attempted_questions, r.correct_answers, r.wrong_answers,
		r.score, r.percentage, r.time_taken, r.submitted_at,
		c.id, c.name, c.email, c.hall_ticket
		FROM results r
		LEFT JOIN candidates c ON c.id = r.candidate_id`
	var args []interface{}
	var conds []string

	if s := strings.TrimSpace(filter.HallTicket); s != "" {
		args = append(args, s)
		conds = append(conds, `r.hall_ticket ILIKE '%' || $`+strconv.Itoa(len(args))+` || '%'`)
	}
	if s := strings.TrimSpace(filter.CandidateName); s != "" {
		args = append(args, s)
		conds = append(conds, `r.candidate_name ILIKE '%' || $`+strconv.Itoa(len(args))+` || '%'`)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY r.submitted_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.ResultWithCandidate
	for rows.Next() {
		var rc model.ResultWithCandidate
		var answers, questions []byte
		var candID *uuid.UUID
		var candName, candEmail, candTicket *string

		err := rows.Scan(
			&rc.ID, &rc.CandidateID, &rc.CandidateName, &rc.HallTicket,
			&answers, &questions,
			&rc.TotalQuestions, &rc.AttemptedQuestions, &rc.CorrectAnswers, &rc.WrongAnswers,
			&rc.Score, &rc.Percentage, &rc.TimeTaken, &rc.SubmittedAt,
			&candID, &candName, &candEmail, &candTicket,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &rc.Answers); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &rc.Questions); err != nil {
			return nil, err
		}
		if candID != nil {
			rc.Candidate = &model.CandidateSummary{
				ID:         *candID,
				Name:       *candName,
				Email:      *candEmail,
				HallTicket: *candTicket,
			}
		}
		results = append(results, rc)
	}
	return results, rows.Err()
}

// Count returns the total number of results.
func (r *ResultRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM results`).Scan(&n)
	return n, err
}

// Aggregates computes the score aggregation across all results. With no
// results every aggregate is zero.
func (r *ResultRepository) Aggregates(ctx context.Context) (*model.ScoreAggregates, error) {
	agg := &model.ScoreAggregates{}
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(score), 0), COALESCE(AVG(percentage), 0),
			COALESCE(MAX(score), 0), COALESCE(MIN(score), 0)
		 FROM results`,
	).Scan(&agg.AverageScore, &agg.AveragePercentage, &agg.MaxScore, &agg.MinScore)
	if err != nil {
		return nil, err
	}
	return agg, nil
}

// Delete removes a result by ID.
func (r *ResultRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM results WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
