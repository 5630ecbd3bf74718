package service

import (
	"context"
	"errors"

	"github.com/examportal/examportal-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExamQuestionCount is the fixed size of an exam paper.
const ExamQuestionCount = 45

// QuestionStore is the question persistence surface the service needs.
type QuestionStore interface {
	List(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	CountActive(ctx context.Context) (int, error)
	SampleActive(ctx context.Context, n int) ([]model.Question, error)
	Create(ctx context.Context, q *model.Question) error
	BulkCreate(ctx context.Context, questions []model.Question) error
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuestionService handles question pool management and exam paper sampling.
type QuestionService struct {
	questions QuestionStore
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore) *QuestionService {
	return &QuestionService{questions: questions}
}

// List retrieves questions matching the filter.
func (s *QuestionService) List(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	questions, err := s.questions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Get retrieves one question including its answer key.
func (s *QuestionService) Get(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuestionNotFound
	}
	return q, err
}

// SampleExamQuestions draws a random exam paper of ExamQuestionCount active
// questions with answer keys stripped. The pool is counted first so a short
// pool fails with a precise message instead of a short paper.
func (s *QuestionService) SampleExamQuestions(ctx context.Context) ([]model.ExamQuestionView, error) {
	available, err := s.questions.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	if available < ExamQuestionCount {
		return nil, &InsufficientQuestionsError{Required: ExamQuestionCount, Available: available}
	}

	questions, err := s.questions.SampleActive(ctx, ExamQuestionCount)
	if err != nil {
		return nil, err
	}

	views := make([]model.ExamQuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, questions[i].View())
	}
	return views, nil
}

// Create validates and stores a new question.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest, createdBy uuid.UUID) (*model.Question, error) {
	q, err := buildQuestion(req, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// BulkCreate validates and stores a batch of questions atomically. The first
// invalid entry fails the whole batch before anything is written.
func (s *QuestionService) BulkCreate(ctx context.Context, req *model.BulkCreateQuestionsRequest, createdBy uuid.UUID) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i := range req.Questions {
		q, err := buildQuestion(&req.Questions[i], createdBy)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	if err := s.questions.BulkCreate(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Update validates and modifies a question.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateQuestionRequest) (*model.Question, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateOptions(req.Options, req.CorrectAnswer); err != nil {
		return nil, err
	}

	q.QuestionText = req.QuestionText
	q.Options = req.Options
	q.CorrectAnswer = req.CorrectAnswer
	q.Category = model.Category(req.Category)
	q.Difficulty = model.Difficulty(req.Difficulty)
	q.IsActive = *req.IsActive

	if err := s.questions.Update(ctx, q); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.questions.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrQuestionNotFound
	}
	return err
}

func buildQuestion(req *model.CreateQuestionRequest, createdBy uuid.UUID) (*model.Question, error) {
	if err := validateOptions(req.Options, req.CorrectAnswer); err != nil {
		return nil, err
	}

	q := &model.Question{
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Category:      model.Category(req.Category),
		Difficulty:    model.DifficultyMedium,
		IsActive:      true,
		CreatedBy:     &createdBy,
	}
	if req.Difficulty != "" {
		q.Difficulty = model.Difficulty(req.Difficulty)
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	return q, nil
}

func validateOptions(options []string, correctAnswer string) error {
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if _, dup := seen[opt]; dup {
			return ErrOptionsNotUnique
		}
		seen[opt] = struct{}{}
	}
	if _, ok := seen[correctAnswer]; !ok {
		return ErrAnswerNotInOption
	}
	return nil
}
