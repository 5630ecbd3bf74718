package service

import (
	"context"
	"errors"
	"math"

	"github.com/examportal/examportal-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// CandidateReader is the candidate read surface the exam flow needs.
type CandidateReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	Count(ctx context.Context) (int, error)
}

// QuestionReader is the question read surface the exam flow needs.
type QuestionReader interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error)
	CountActive(ctx context.Context) (int, error)
}

// ResultStore is the result persistence surface the exam flow needs.
type ResultStore interface {
	Create(ctx context.Context, res *model.Result) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Result, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]model.Result, error)
	ListAll(ctx context.Context, filter model.ResultFilter) ([]model.ResultWithCandidate, error)
	Count(ctx context.Context) (int, error)
	Aggregates(ctx context.Context) (*model.ScoreAggregates, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatsCache caches the statistics snapshot. Get returns (nil, nil) on a miss.
type StatsCache interface {
	Get(ctx context.Context) (*model.Statistics, error)
	Set(ctx context.Context, stats *model.Statistics) error
	Invalidate(ctx context.Context) error
}

// SubmissionPublisher fans a submission event out to monitoring admins.
type SubmissionPublisher interface {
	Publish(ctx context.Context, event model.SubmissionEvent) error
}

// ExamService handles exam submission scoring, result access, and statistics.
type ExamService struct {
	candidates CandidateReader
	questions  QuestionReader
	results    ResultStore
	cache      StatsCache
	events     SubmissionPublisher
}

// NewExamService creates a new ExamService. cache and events may be nil, in
// which case caching and submission broadcasting are disabled.
func NewExamService(
	candidates CandidateReader,
	questions QuestionReader,
	results ResultStore,
	cache StatsCache,
	events SubmissionPublisher,
) *ExamService {
	return &ExamService{
		candidates: candidates,
		questions:  questions,
		results:    results,
		cache:      cache,
		events:     events,
	}
}

// SubmitExam scores a submission and persists the result. A candidate may
// submit any number of times; every attempt produces its own immutable
// record. The candidate's name and hall ticket are copied onto the result so
// it survives candidate deletion.
func (s *ExamService) SubmitExam(ctx context.Context, candidateID uuid.UUID, req *model.SubmitExamRequest) (*model.Result, error) {
	if req.Answers == nil {
		return nil, ErrInvalidSubmission
	}

	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.Answers))
	for raw := range req.Answers {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidSubmission
		}
		ids = append(ids, id)
	}

	var questions []model.Question
	if len(ids) > 0 {
		questions, err = s.questions.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	breakdown, attempted, correct, wrong := scoreAnswers(questions, req.Answers)
	score := correct - wrong

	result := &model.Result{
		CandidateID:        candidate.ID,
		CandidateName:      candidate.Name,
		HallTicket:         candidate.HallTicket,
		Answers:            req.Answers,
		Questions:          breakdown,
		TotalQuestions:     ExamQuestionCount,
		AttemptedQuestions: attempted,
		CorrectAnswers:     correct,
		WrongAnswers:       wrong,
		Score:              score,
		Percentage:         round2(float64(score) / ExamQuestionCount * 100),
		TimeTaken:          req.TimeTaken,
	}

	if err := s.results.Create(ctx, result); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Error().Err(err).Msg("invalidate statistics cache")
		}
	}
	if s.events != nil {
		event := model.SubmissionEvent{
			ResultID:      result.ID,
			CandidateID:   result.CandidateID,
			CandidateName: result.CandidateName,
			HallTicket:    result.HallTicket,
			Score:         result.Score,
			Percentage:    result.Percentage,
			SubmittedAt:   result.SubmittedAt,
		}
		if err := s.events.Publish(ctx, event); err != nil {
			log.Error().Err(err).Msg("publish submission event")
		}
	}

	return result, nil
}

// scoreAnswers builds the per-question breakdown for attempted questions.
// Any non-empty answer counts as attempted, whitespace included; answers are
// compared against the correct option with case-sensitive equality.
func scoreAnswers(questions []model.Question, answers map[string]string) (breakdown []model.QuestionResult, attempted, correct, wrong int) {
	breakdown = []model.QuestionResult{}
	for i := range questions {
		q := &questions[i]
		answer, ok := answers[q.ID.String()]
		if !ok || answer == "" {
			continue
		}

		attempted++
		isCorrect := answer == q.CorrectAnswer
		if isCorrect {
			correct++
		} else {
			wrong++
		}

		breakdown = append(breakdown, model.QuestionResult{
			QuestionID:    q.ID,
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    answer,
			IsCorrect:     isCorrect,
		})
	}
	return breakdown, attempted, correct, wrong
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetMyResults lists a candidate's own results, newest first.
func (s *ExamService) GetMyResults(ctx context.Context, candidateID uuid.UUID) ([]model.Result, error) {
	results, err := s.results.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.Result{}
	}
	return results, nil
}

// GetAllResults lists results for the admin view.
func (s *ExamService) GetAllResults(ctx context.Context, filter model.ResultFilter) ([]model.ResultWithCandidate, error) {
	results, err := s.results.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.ResultWithCandidate{}
	}
	return results, nil
}

// GetResult retrieves one result. A non-nil requester restricts access to the
// result's owner; admins pass nil.
func (s *ExamService) GetResult(ctx context.Context, id uuid.UUID, requester *uuid.UUID) (*model.Result, error) {
	result, err := s.results.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	if requester != nil && result.CandidateID != *requester {
		return nil, ErrForbidden
	}
	return result, nil
}

// DeleteResult removes a result and drops the statistics cache.
func (s *ExamService) DeleteResult(ctx context.Context, id uuid.UUID) error {
	err := s.results.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrResultNotFound
	}
	if err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Error().Err(err).Msg("invalidate statistics cache")
		}
	}
	return nil
}

// GetStatistics returns the statistics snapshot, served from cache when
// available and recomputed on a miss.
func (s *ExamService) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Error().Err(err).Msg("read statistics cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.ComputeStatistics(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			log.Error().Err(err).Msg("write statistics cache")
		}
	}
	return stats, nil
}

// ComputeStatistics rebuilds the statistics snapshot from the store.
func (s *ExamService) ComputeStatistics(ctx context.Context) (*model.Statistics, error) {
	totalResults, err := s.results.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCandidates, err := s.candidates.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalQuestions, err := s.questions.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	agg, err := s.results.Aggregates(ctx)
	if err != nil {
		return nil, err
	}

	agg.AverageScore = round2(agg.AverageScore)
	agg.AveragePercentage = round2(agg.AveragePercentage)

	return &model.Statistics{
		TotalResults:    totalResults,
		TotalCandidates: totalCandidates,
		TotalQuestions:  totalQuestions,
		Statistics:      *agg,
	}, nil
}
