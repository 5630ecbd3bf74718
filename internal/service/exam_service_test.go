package service

import (
	"context"
	"errors"
	"testing"

	"github.com/examportal/examportal-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeCandidateReader struct {
	candidates map[uuid.UUID]*model.Candidate
	count      int
}

func (f *fakeCandidateReader) GetByID(_ context.Context, id uuid.UUID) (*model.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCandidateReader) Count(_ context.Context) (int, error) {
	return f.count, nil
}

type fakeQuestionReader struct {
	questions   []model.Question
	activeCount int
}

func (f *fakeQuestionReader) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.Question, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.Question
	for _, q := range f.questions {
		if want[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionReader) CountActive(_ context.Context) (int, error) {
	return f.activeCount, nil
}

type fakeResultStore struct {
	created    []*model.Result
	results    map[uuid.UUID]*model.Result
	aggregates model.ScoreAggregates
	deleted    []uuid.UUID
}

func (f *fakeResultStore) Create(_ context.Context, res *model.Result) error {
	res.ID = uuid.New()
	f.created = append(f.created, res)
	return nil
}

func (f *fakeResultStore) GetByID(_ context.Context, id uuid.UUID) (*model.Result, error) {
	res, ok := f.results[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return res, nil
}

func (f *fakeResultStore) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]model.Result, error) {
	var out []model.Result
	for _, res := range f.results {
		if res.CandidateID == candidateID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (f *fakeResultStore) ListAll(_ context.Context, _ model.ResultFilter) ([]model.ResultWithCandidate, error) {
	return nil, nil
}

func (f *fakeResultStore) Count(_ context.Context) (int, error) {
	return len(f.results), nil
}

func (f *fakeResultStore) Aggregates(_ context.Context) (*model.ScoreAggregates, error) {
	agg := f.aggregates
	return &agg, nil
}

func (f *fakeResultStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.results[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.results, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestQuestion(text, correct string) model.Question {
	return model.Question{
		ID:            uuid.New(),
		QuestionText:  text,
		Options:       []string{correct, "optB", "optC", "optD"},
		CorrectAnswer: correct,
		Category:      model.CategoryGeneral,
		Difficulty:    model.DifficultyMedium,
		IsActive:      true,
	}
}

func newExamFixture(questions ...model.Question) (*ExamService, *model.Candidate, *fakeResultStore) {
	candidate := &model.Candidate{
		ID:         uuid.New(),
		Name:       "Asha Rao",
		HallTicket: "2025J140001",
		IsActive:   true,
	}
	results := &fakeResultStore{results: map[uuid.UUID]*model.Result{}}
	svc := NewExamService(
		&fakeCandidateReader{candidates: map[uuid.UUID]*model.Candidate{candidate.ID: candidate}},
		&fakeQuestionReader{questions: questions},
		results,
		nil,
		nil,
	)
	return svc, candidate, results
}

func TestSubmitExamScoring(t *testing.T) {
	q1 := newTestQuestion("Capital of France?", "Paris")
	q2 := newTestQuestion("Capital of England?", "London")
	svc, candidate, results := newExamFixture(q1, q2)

	res, err := svc.SubmitExam(context.Background(), candidate.ID, &model.SubmitExamRequest{
		Answers: map[string]string{
			q1.ID.String(): "Paris",
			q2.ID.String(): "optB",
		},
		TimeTaken: 120,
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}

	if res.AttemptedQuestions != 2 {
		t.Errorf("attempted = %d, want 2", res.AttemptedQuestions)
	}
	if res.CorrectAnswers != 1 || res.WrongAnswers != 1 {
		t.Errorf("correct/wrong = %d/%d, want 1/1", res.CorrectAnswers, res.WrongAnswers)
	}
	if res.Score != 0 {
		t.Errorf("score = %d, want 0", res.Score)
	}
	if res.Percentage != 0 {
		t.Errorf("percentage = %v, want 0", res.Percentage)
	}
	if res.TotalQuestions != ExamQuestionCount {
		t.Errorf("total questions = %d, want %d", res.TotalQuestions, ExamQuestionCount)
	}
	if res.CandidateName != "Asha Rao" || res.HallTicket != "2025J140001" {
		t.Errorf("denormalized candidate fields = %q/%q", res.CandidateName, res.HallTicket)
	}
	if len(results.created) != 1 {
		t.Fatalf("created %d results, want 1", len(results.created))
	}
}

func TestSubmitExamNegativePercentage(t *testing.T) {
	q1 := newTestQuestion("q1", "Paris")
	q2 := newTestQuestion("q2", "London")
	q3 := newTestQuestion("q3", "Berlin")
	svc, candidate, _ := newExamFixture(q1, q2, q3)

	res, err := svc.SubmitExam(context.Background(), candidate.ID, &model.SubmitExamRequest{
		Answers: map[string]string{
			q1.ID.String(): "optB",
			q2.ID.String(): "optC",
			q3.ID.String(): "optD",
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}

	if res.Score != -3 {
		t.Errorf("score = %d, want -3", res.Score)
	}
	// -3 out of 45, rounded to two decimals.
	if res.Percentage != -6.67 {
		t.Errorf("percentage = %v, want -6.67", res.Percentage)
	}
}

func TestSubmitExamSkipsUnattempted(t *testing.T) {
	q1 := newTestQuestion("q1", "Paris")
	q2 := newTestQuestion("q2", "London")
	svc, candidate, _ := newExamFixture(q1, q2)

	res, err := svc.SubmitExam(context.Background(), candidate.ID, &model.SubmitExamRequest{
		Answers: map[string]string{
			q1.ID.String(): "Paris",
			q2.ID.String(): "",
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}

	if res.AttemptedQuestions != 1 {
		t.Errorf("attempted = %d, want 1", res.AttemptedQuestions)
	}
	if res.WrongAnswers != 0 {
		t.Errorf("wrong = %d, want 0", res.WrongAnswers)
	}
	if len(res.Questions) != 1 {
		t.Fatalf("breakdown has %d entries, want 1", len(res.Questions))
	}
	if res.Questions[0].QuestionID != q1.ID {
		t.Errorf("breakdown entry is for %s, want %s", res.Questions[0].QuestionID, q1.ID)
	}
}

// A whitespace-only answer is still an answer: it counts as attempted and,
// since it cannot equal any option, as wrong.
func TestSubmitExamWhitespaceAnswerCountsAttempted(t *testing.T) {
	q := newTestQuestion("Capital of France?", "Paris")
	svc, candidate, _ := newExamFixture(q)

	res, err := svc.SubmitExam(context.Background(), candidate.ID, &model.SubmitExamRequest{
		Answers: map[string]string{q.ID.String(): "   "},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}

	if res.AttemptedQuestions != 1 || res.WrongAnswers != 1 {
		t.Errorf("attempted/wrong = %d/%d, want 1/1", res.AttemptedQuestions, res.WrongAnswers)
	}
	if res.Score != -1 {
		t.Errorf("score = %d, want -1", res.Score)
	}
	if len(res.Questions) != 1 || res.Questions[0].IsCorrect {
		t.Errorf("breakdown = %+v, want one wrong entry", res.Questions)
	}
}

func TestSubmitExamNilAnswers(t *testing.T) {
	svc, candidate, _ := newExamFixture()

	_, err := svc.SubmitExam(context.Background(), candidate.ID, &model.SubmitExamRequest{})
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("err = %v, want ErrInvalidSubmission", err)
	}

	// Input validation runs before candidate resolution, so an unknown
	// candidate with a nil answer map is still a bad request.
	_, err = svc.SubmitExam(context.Background(), uuid.New(), &model.SubmitExamRequest{})
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("unknown candidate err = %v, want ErrInvalidSubmission", err)
	}
}

func TestSubmitExamUnknownCandidate(t *testing.T) {
	svc, _, _ := newExamFixture()

	_, err := svc.SubmitExam(context.Background(), uuid.New(), &model.SubmitExamRequest{
		Answers: map[string]string{},
	})
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Errorf("err = %v, want ErrCandidateNotFound", err)
	}
}

func TestSubmitExamRepeatedAttemptsAllowed(t *testing.T) {
	q := newTestQuestion("q1", "Paris")
	svc, candidate, results := newExamFixture(q)

	req := &model.SubmitExamRequest{Answers: map[string]string{q.ID.String(): "Paris"}}
	for i := 0; i < 3; i++ {
		if _, err := svc.SubmitExam(context.Background(), candidate.ID, req); err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	if len(results.created) != 3 {
		t.Errorf("created %d results, want 3", len(results.created))
	}
}

// Deleting a candidate must not take their results with them: the stored
// record keeps serving reads through its denormalized name and hall ticket.
func TestResultSurvivesCandidateDeletion(t *testing.T) {
	q := newTestQuestion("q1", "Paris")
	svc, candidate, results := newExamFixture(q)

	res, err := svc.SubmitExam(context.Background(), candidate.ID, &model.SubmitExamRequest{
		Answers: map[string]string{q.ID.String(): "Paris"},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	results.results[res.ID] = res

	// Simulate the candidate being removed after submission.
	delete(svc.candidates.(*fakeCandidateReader).candidates, candidate.ID)

	got, err := svc.GetResult(context.Background(), res.ID, nil)
	if err != nil {
		t.Fatalf("GetResult after candidate deletion: %v", err)
	}
	if got.CandidateName != "Asha Rao" || got.HallTicket != "2025J140001" {
		t.Errorf("denormalized fields = %q/%q, want Asha Rao/2025J140001", got.CandidateName, got.HallTicket)
	}

	mine, err := svc.GetMyResults(context.Background(), candidate.ID)
	if err != nil {
		t.Fatalf("GetMyResults after candidate deletion: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("listed %d results, want 1", len(mine))
	}
}

func TestGetResultOwnership(t *testing.T) {
	owner := uuid.New()
	resultID := uuid.New()
	results := &fakeResultStore{results: map[uuid.UUID]*model.Result{
		resultID: {ID: resultID, CandidateID: owner},
	}}
	svc := NewExamService(&fakeCandidateReader{}, &fakeQuestionReader{}, results, nil, nil)

	if _, err := svc.GetResult(context.Background(), resultID, &owner); err != nil {
		t.Errorf("owner access: %v", err)
	}

	stranger := uuid.New()
	if _, err := svc.GetResult(context.Background(), resultID, &stranger); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger access err = %v, want ErrForbidden", err)
	}

	// Admin passes nil and sees everything.
	if _, err := svc.GetResult(context.Background(), resultID, nil); err != nil {
		t.Errorf("admin access: %v", err)
	}

	if _, err := svc.GetResult(context.Background(), uuid.New(), nil); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("missing result err = %v, want ErrResultNotFound", err)
	}
}

func TestDeleteResult(t *testing.T) {
	resultID := uuid.New()
	results := &fakeResultStore{results: map[uuid.UUID]*model.Result{
		resultID: {ID: resultID},
	}}
	svc := NewExamService(&fakeCandidateReader{}, &fakeQuestionReader{}, results, nil, nil)

	if err := svc.DeleteResult(context.Background(), resultID); err != nil {
		t.Fatalf("DeleteResult: %v", err)
	}
	if err := svc.DeleteResult(context.Background(), resultID); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("second delete err = %v, want ErrResultNotFound", err)
	}
}

func TestComputeStatisticsRounding(t *testing.T) {
	results := &fakeResultStore{
		results: map[uuid.UUID]*model.Result{
			uuid.New(): {},
			uuid.New(): {},
			uuid.New(): {},
		},
		aggregates: model.ScoreAggregates{
			AverageScore:      10.0 / 3,
			AveragePercentage: 100.0 / 3,
			MaxScore:          12,
			MinScore:          -2,
		},
	}
	svc := NewExamService(
		&fakeCandidateReader{count: 7},
		&fakeQuestionReader{activeCount: 50},
		results,
		nil,
		nil,
	)

	stats, err := svc.ComputeStatistics(context.Background())
	if err != nil {
		t.Fatalf("ComputeStatistics: %v", err)
	}

	if stats.TotalResults != 3 || stats.TotalCandidates != 7 || stats.TotalQuestions != 50 {
		t.Errorf("totals = %d/%d/%d, want 3/7/50", stats.TotalResults, stats.TotalCandidates, stats.TotalQuestions)
	}
	if stats.Statistics.AverageScore != 3.33 {
		t.Errorf("average score = %v, want 3.33", stats.Statistics.AverageScore)
	}
	if stats.Statistics.AveragePercentage != 33.33 {
		t.Errorf("average percentage = %v, want 33.33", stats.Statistics.AveragePercentage)
	}
	if stats.Statistics.MaxScore != 12 || stats.Statistics.MinScore != -2 {
		t.Errorf("max/min = %d/%d, want 12/-2", stats.Statistics.MaxScore, stats.Statistics.MinScore)
	}
}
