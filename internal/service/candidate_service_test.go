package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/examportal/examportal-backend/internal/hallticket"
	"github.com/examportal/examportal-backend/internal/model"
	"github.com/examportal/examportal-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeCandidateStore struct {
	byTicket map[string]*model.Candidate
	// failCreates makes the next n Creates fail with a hall ticket conflict
	// without recording the row, simulating a concurrent winner.
	failCreates int
	lookupErr   error
}

func newFakeCandidateStore() *fakeCandidateStore {
	return &fakeCandidateStore{byTicket: map[string]*model.Candidate{}}
}

func (f *fakeCandidateStore) GetByID(_ context.Context, id uuid.UUID) (*model.Candidate, error) {
	for _, c := range f.byTicket {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCandidateStore) GetByHallTicket(_ context.Context, ticket string) (*model.Candidate, error) {
	c, ok := f.byTicket[ticket]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCandidateStore) List(_ context.Context, _ string) ([]model.Candidate, error) {
	var out []model.Candidate
	for _, c := range f.byTicket {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCandidateStore) LastHallTicketWithPrefix(_ context.Context, prefix string) (string, error) {
	if f.lookupErr != nil {
		return "", f.lookupErr
	}
	last := ""
	for ticket := range f.byTicket {
		if strings.HasPrefix(ticket, prefix) && ticket > last {
			last = ticket
		}
	}
	return last, nil
}

func (f *fakeCandidateStore) Create(_ context.Context, c *model.Candidate) error {
	if f.failCreates > 0 {
		f.failCreates--
		return repository.ErrDuplicateHallTicket
	}
	if _, ok := f.byTicket[c.HallTicket]; ok {
		return repository.ErrDuplicateHallTicket
	}
	c.ID = uuid.New()
	cp := *c
	f.byTicket[c.HallTicket] = &cp
	return nil
}

func (f *fakeCandidateStore) Update(_ context.Context, c *model.Candidate) error {
	f.byTicket[c.HallTicket] = c
	return nil
}

func (f *fakeCandidateStore) Delete(_ context.Context, id uuid.UUID) error {
	for ticket, c := range f.byTicket {
		if c.ID == id {
			delete(f.byTicket, ticket)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newCandidateFixture(store CandidateStore, at time.Time) *CandidateService {
	svc := NewCandidateService(store)
	svc.now = func() time.Time { return at }
	return svc
}

var fixedDay = time.Date(2025, time.October, 14, 9, 0, 0, 0, time.UTC)

func createReq() *model.CreateCandidateRequest {
	return &model.CreateCandidateRequest{
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Phone: "9876543210",
	}
}

func TestCreateCandidateGeneratesSequentialTickets(t *testing.T) {
	store := newFakeCandidateStore()
	svc := newCandidateFixture(store, fixedDay)

	first, err := svc.Create(context.Background(), createReq())
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.HallTicket != "2025J140001" {
		t.Errorf("first ticket = %s, want 2025J140001", first.HallTicket)
	}

	second, err := svc.Create(context.Background(), &model.CreateCandidateRequest{
		Name:  "Ravi Kumar",
		Email: "ravi@example.com",
		Phone: "9876543211",
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.HallTicket != "2025J140002" {
		t.Errorf("second ticket = %s, want 2025J140002", second.HallTicket)
	}
}

func TestCreateCandidateRetriesOnConflict(t *testing.T) {
	store := newFakeCandidateStore()
	store.failCreates = 2
	svc := newCandidateFixture(store, fixedDay)

	c, err := svc.Create(context.Background(), createReq())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !hallticket.Validate(c.HallTicket) {
		t.Errorf("allocated ticket %q is malformed", c.HallTicket)
	}
}

func TestCreateCandidateRetryBudgetExhausted(t *testing.T) {
	store := newFakeCandidateStore()
	store.failCreates = hallTicketRetries
	svc := newCandidateFixture(store, fixedDay)

	_, err := svc.Create(context.Background(), createReq())
	if !errors.Is(err, ErrHallTicketRetries) {
		t.Errorf("err = %v, want ErrHallTicketRetries", err)
	}
}

func TestCreateCandidateExplicitTicket(t *testing.T) {
	store := newFakeCandidateStore()
	svc := newCandidateFixture(store, fixedDay)

	req := createReq()
	req.HallTicket = "2024A050123"
	c, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.HallTicket != "2024A050123" {
		t.Errorf("ticket = %s, want the explicit one", c.HallTicket)
	}

	// A second candidate with the same ticket is a conflict, not a retry.
	req2 := createReq()
	req2.Email = "other@example.com"
	req2.HallTicket = "2024A050123"
	if _, err := svc.Create(context.Background(), req2); !errors.Is(err, repository.ErrDuplicateHallTicket) {
		t.Errorf("err = %v, want ErrDuplicateHallTicket", err)
	}
}

func TestCreateCandidateRejectsMalformedTicket(t *testing.T) {
	svc := newCandidateFixture(newFakeCandidateStore(), fixedDay)

	req := createReq()
	req.HallTicket = "2025Z140001"
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Error("malformed explicit ticket was accepted")
	}
}

func TestCreateCandidateRandomFallbackOnLookupFailure(t *testing.T) {
	store := newFakeCandidateStore()
	store.lookupErr = errors.New("connection reset")
	svc := newCandidateFixture(store, fixedDay)

	c, err := svc.Create(context.Background(), createReq())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !hallticket.Validate(c.HallTicket) {
		t.Errorf("fallback ticket %q is malformed", c.HallTicket)
	}
	if !strings.HasPrefix(c.HallTicket, "2025J14") {
		t.Errorf("fallback ticket %q does not carry today's prefix", c.HallTicket)
	}
}

func TestProposeHallTicketDoesNotReserve(t *testing.T) {
	store := newFakeCandidateStore()
	svc := newCandidateFixture(store, fixedDay)

	first, err := svc.ProposeHallTicket(context.Background())
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	second, err := svc.ProposeHallTicket(context.Background())
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if first != second {
		t.Errorf("proposals differ without an intervening insert: %s vs %s", first, second)
	}
	if first != "2025J140001" {
		t.Errorf("proposal = %s, want 2025J140001", first)
	}
}

func TestUpdateCandidateKeepsHallTicket(t *testing.T) {
	store := newFakeCandidateStore()
	svc := newCandidateFixture(store, fixedDay)

	c, err := svc.Create(context.Background(), createReq())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	active := false
	updated, err := svc.Update(context.Background(), c.ID, &model.UpdateCandidateRequest{
		Name:     "Asha R",
		Email:    "asha.r@example.com",
		Phone:    "9876500000",
		IsActive: &active,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.HallTicket != c.HallTicket {
		t.Errorf("hall ticket changed on update: %s -> %s", c.HallTicket, updated.HallTicket)
	}
	if updated.IsActive {
		t.Error("is_active not applied")
	}
}

func TestDeleteCandidateNotFound(t *testing.T) {
	svc := newCandidateFixture(newFakeCandidateStore(), fixedDay)

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrCandidateNotFound) {
		t.Errorf("err = %v, want ErrCandidateNotFound", err)
	}
}
