package service

import (
	"context"
	"errors"
	"time"

	"github.com/examportal/examportal-backend/internal/hallticket"
	"github.com/examportal/examportal-backend/internal/model"
	"github.com/examportal/examportal-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// hallTicketRetries bounds the provisioning retry loop. Each retry re-reads
// the latest allocated ticket, so collisions only happen under concurrent
// provisioning for the same day.
const hallTicketRetries = 5

// CandidateStore is the candidate persistence surface the service needs.
type CandidateStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	GetByHallTicket(ctx context.Context, hallTicket string) (*model.Candidate, error)
	List(ctx context.Context, search string) ([]model.Candidate, error)
	LastHallTicketWithPrefix(ctx context.Context, prefix string) (string, error)
	Create(ctx context.Context, c *model.Candidate) error
	Update(ctx context.Context, c *model.Candidate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CandidateService handles candidate provisioning and management.
type CandidateService struct {
	candidates CandidateStore
	now        func() time.Time
}

// NewCandidateService creates a new CandidateService.
func NewCandidateService(candidates CandidateStore) *CandidateService {
	return &CandidateService{candidates: candidates, now: time.Now}
}

// List retrieves candidates with an optional search term.
func (s *CandidateService) List(ctx context.Context, search string) ([]model.Candidate, error) {
	candidates, err := s.candidates.List(ctx, search)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []model.Candidate{}
	}
	return candidates, nil
}

// Get retrieves one candidate.
func (s *CandidateService) Get(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	c, err := s.candidates.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCandidateNotFound
	}
	return c, err
}

// GetByHallTicket retrieves one candidate by hall ticket.
func (s *CandidateService) GetByHallTicket(ctx context.Context, ticket string) (*model.Candidate, error) {
	c, err := s.candidates.GetByHallTicket(ctx, ticket)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCandidateNotFound
	}
	return c, err
}

// Create provisions a candidate. When the request carries a hall ticket it is
// validated and used as-is; otherwise one is generated. Uniqueness is enforced
// by the store's unique index, so generation proposes a ticket, attempts the
// insert, and retries with a fresh proposal when a concurrent insert won.
func (s *CandidateService) Create(ctx context.Context, req *model.CreateCandidateRequest) (*model.Candidate, error) {
	candidate := &model.Candidate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
	}

	if req.HallTicket != "" {
		if !hallticket.Validate(req.HallTicket) {
			return nil, errors.New("invalid hall ticket format")
		}
		candidate.HallTicket = req.HallTicket
		if err := s.candidates.Create(ctx, candidate); err != nil {
			return nil, err
		}
		return candidate, nil
	}

	prefix := hallticket.Prefix(s.now())
	for attempt := 0; attempt < hallTicketRetries; attempt++ {
		ticket, err := s.proposeWithPrefix(ctx, prefix)
		if err != nil {
			return nil, err
		}

		candidate.HallTicket = ticket
		err = s.candidates.Create(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, repository.ErrDuplicateHallTicket) {
			return nil, err
		}
		log.Warn().Str("hall_ticket", ticket).Int("attempt", attempt+1).
			Msg("hall ticket collision, retrying with fresh proposal")
	}

	return nil, ErrHallTicketRetries
}

// ProposeHallTicket returns the next hall ticket that would be allocated
// today. It does not reserve anything; the value may be taken by the time it
// is used.
func (s *CandidateService) ProposeHallTicket(ctx context.Context) (string, error) {
	return s.proposeWithPrefix(ctx, hallticket.Prefix(s.now()))
}

func (s *CandidateService) proposeWithPrefix(ctx context.Context, prefix string) (string, error) {
	last, err := s.candidates.LastHallTicketWithPrefix(ctx, prefix)
	if err != nil {
		// Sequence lookup failed; fall back to a random ticket for today so
		// provisioning stays available.
		log.Error().Err(err).Msg("hall ticket sequence lookup failed, using random fallback")
		return hallticket.Random(prefix), nil
	}
	return hallticket.Next(prefix, last)
}

// Update modifies a candidate's contact info and active flag.
func (s *CandidateService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCandidateRequest) (*model.Candidate, error) {
	candidate, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	candidate.Name = req.Name
	candidate.Email = req.Email
	candidate.Phone = req.Phone
	candidate.IsActive = *req.IsActive

	if err := s.candidates.Update(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// Delete removes a candidate.
func (s *CandidateService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.candidates.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCandidateNotFound
	}
	return err
}
