package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionEvent is the message broadcast to monitoring admins whenever a
// candidate submits an exam.
type SubmissionEvent struct {
	ResultID      uuid.UUID `json:"result_id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	HallTicket    string    `json:"hall_ticket"`
	Score         int       `json:"score"`
	Percentage    float64   `json:"percentage"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
