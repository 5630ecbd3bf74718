package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/examportal/examportal-backend/internal/hallticket"
	"github.com/examportal/examportal-backend/internal/model"
	"github.com/examportal/examportal-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type stubCandidateStore struct {
	lastTicket string
	lastErr    error
}

func (s *stubCandidateStore) GetByID(context.Context, uuid.UUID) (*model.Candidate, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubCandidateStore) GetByHallTicket(context.Context, string) (*model.Candidate, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubCandidateStore) List(context.Context, string) ([]model.Candidate, error) {
	return nil, nil
}

func (s *stubCandidateStore) LastHallTicketWithPrefix(context.Context, string) (string, error) {
	return s.lastTicket, s.lastErr
}

func (s *stubCandidateStore) Create(context.Context, *model.Candidate) error { return nil }

func (s *stubCandidateStore) Update(context.Context, *model.Candidate) error { return nil }

func (s *stubCandidateStore) Delete(context.Context, uuid.UUID) error { return nil }

func newHallTicketTestRouter(store *stubCandidateStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHallTicketHandler(service.NewCandidateService(store))
	r := gin.New()
	r.GET("/hall-ticket/generate", h.Generate)
	return r
}

func TestGenerateHallTicket(t *testing.T) {
	prefix := hallticket.Prefix(time.Now())
	r := newHallTicketTestRouter(&stubCandidateStore{lastTicket: prefix + "0041"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hall-ticket/generate", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			HallTicket string `json:"hall_ticket"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Data.HallTicket != prefix+"0042" {
		t.Errorf("body = %s, want hall_ticket %s0042", w.Body.String(), prefix)
	}
}

// When the daily sequence runs out the endpoint reports a conflict, not a
// generic server error.
func TestGenerateHallTicketSequenceExhausted(t *testing.T) {
	prefix := hallticket.Prefix(time.Now())
	r := newHallTicketTestRouter(&stubCandidateStore{lastTicket: prefix + "9999"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hall-ticket/generate", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Success || body.Message != hallticket.ErrSequenceExhausted.Error() {
		t.Errorf("body = %s, want exhaustion message", w.Body.String())
	}
}
