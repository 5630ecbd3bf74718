package service

import (
	"context"
	"errors"
	"testing"

	"github.com/examportal/examportal-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeQuestionStore struct {
	questions map[uuid.UUID]*model.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: map[uuid.UUID]*model.Question{}}
}

func (f *fakeQuestionStore) addActive(n int) {
	for i := 0; i < n; i++ {
		q := newTestQuestion("q", "Paris")
		f.questions[q.ID] = &q
	}
}

func (f *fakeQuestionStore) List(_ context.Context, _ model.QuestionFilter) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQuestionStore) GetByID(_ context.Context, id uuid.UUID) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuestionStore) CountActive(_ context.Context) (int, error) {
	n := 0
	for _, q := range f.questions {
		if q.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeQuestionStore) SampleActive(_ context.Context, n int) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.questions {
		if !q.IsActive {
			continue
		}
		out = append(out, *q)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) Create(_ context.Context, q *model.Question) error {
	q.ID = uuid.New()
	cp := *q
	f.questions[q.ID] = &cp
	return nil
}

func (f *fakeQuestionStore) BulkCreate(_ context.Context, questions []model.Question) error {
	for i := range questions {
		questions[i].ID = uuid.New()
		cp := questions[i]
		f.questions[cp.ID] = &cp
	}
	return nil
}

func (f *fakeQuestionStore) Update(_ context.Context, q *model.Question) error {
	if _, ok := f.questions[q.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *q
	f.questions[q.ID] = &cp
	return nil
}

func (f *fakeQuestionStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.questions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.questions, id)
	return nil
}

func TestSampleExamQuestions(t *testing.T) {
	store := newFakeQuestionStore()
	store.addActive(ExamQuestionCount)
	svc := NewQuestionService(store)

	views, err := svc.SampleExamQuestions(context.Background())
	if err != nil {
		t.Fatalf("SampleExamQuestions: %v", err)
	}
	if len(views) != ExamQuestionCount {
		t.Fatalf("got %d questions, want %d", len(views), ExamQuestionCount)
	}

	// The paper has no repeats and never leaks the answer key.
	seen := map[uuid.UUID]bool{}
	for _, v := range views {
		if seen[v.ID] {
			t.Errorf("question %s appears more than once", v.ID)
		}
		seen[v.ID] = true
	}
}

func TestSampleExamQuestionsInsufficientPool(t *testing.T) {
	store := newFakeQuestionStore()
	store.addActive(ExamQuestionCount - 1)
	svc := NewQuestionService(store)

	_, err := svc.SampleExamQuestions(context.Background())
	var insufficient *InsufficientQuestionsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientQuestionsError", err)
	}
	if insufficient.Required != ExamQuestionCount || insufficient.Available != ExamQuestionCount-1 {
		t.Errorf("required/available = %d/%d, want %d/%d",
			insufficient.Required, insufficient.Available, ExamQuestionCount, ExamQuestionCount-1)
	}
	want := "Not enough active questions. Required: 45, Available: 44"
	if insufficient.Error() != want {
		t.Errorf("message = %q, want %q", insufficient.Error(), want)
	}
}

func TestSampleExamQuestionsIgnoresInactive(t *testing.T) {
	store := newFakeQuestionStore()
	store.addActive(ExamQuestionCount)
	inactive := newTestQuestion("hidden", "Paris")
	inactive.IsActive = false
	store.questions[inactive.ID] = &inactive
	svc := NewQuestionService(store)

	views, err := svc.SampleExamQuestions(context.Background())
	if err != nil {
		t.Fatalf("SampleExamQuestions: %v", err)
	}
	for _, v := range views {
		if v.ID == inactive.ID {
			t.Errorf("inactive question %s was sampled", inactive.ID)
		}
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionStore())
	admin := uuid.New()

	tests := []struct {
		name    string
		req     model.CreateQuestionRequest
		wantErr error
	}{
		{
			name: "valid",
			req: model.CreateQuestionRequest{
				QuestionText:  "Capital of France?",
				Options:       []string{"Paris", "London", "Berlin", "Madrid"},
				CorrectAnswer: "Paris",
				Category:      "General",
			},
		},
		{
			name: "duplicate options",
			req: model.CreateQuestionRequest{
				QuestionText:  "q",
				Options:       []string{"Paris", "Paris", "Berlin", "Madrid"},
				CorrectAnswer: "Paris",
				Category:      "General",
			},
			wantErr: ErrOptionsNotUnique,
		},
		{
			name: "answer not in options",
			req: model.CreateQuestionRequest{
				QuestionText:  "q",
				Options:       []string{"Paris", "London", "Berlin", "Madrid"},
				CorrectAnswer: "Rome",
				Category:      "General",
			},
			wantErr: ErrAnswerNotInOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := svc.Create(context.Background(), &tt.req, admin)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if !q.IsActive {
					t.Error("new question is not active by default")
				}
				if q.Difficulty != model.DifficultyMedium {
					t.Errorf("difficulty = %s, want Medium default", q.Difficulty)
				}
				if q.CreatedBy == nil || *q.CreatedBy != admin {
					t.Error("created_by not recorded")
				}
			}
		})
	}
}

func TestBulkCreateFailsOnFirstInvalid(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewQuestionService(store)

	req := &model.BulkCreateQuestionsRequest{Questions: []model.CreateQuestionRequest{
		{
			QuestionText:  "good",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
			Category:      "General",
		},
		{
			QuestionText:  "bad",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "z",
			Category:      "General",
		},
	}}

	if _, err := svc.BulkCreate(context.Background(), req, uuid.New()); !errors.Is(err, ErrAnswerNotInOption) {
		t.Fatalf("err = %v, want ErrAnswerNotInOption", err)
	}
	if len(store.questions) != 0 {
		t.Errorf("store has %d questions after failed bulk create, want 0", len(store.questions))
	}
}

func TestUpdateQuestionNotFound(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionStore())

	active := true
	req := &model.UpdateQuestionRequest{
		QuestionText:  "q",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "a",
		Category:      "General",
		Difficulty:    "Easy",
		IsActive:      &active,
	}
	if _, err := svc.Update(context.Background(), uuid.New(), req); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("err = %v, want ErrQuestionNotFound", err)
	}
}
