package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionResult is the per-question breakdown entry recorded for every
// attempted question of a submission.
type QuestionResult struct {
	QuestionID    uuid.UUID `json:"question_id"`
	QuestionText  string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	UserAnswer    string    `json:"user_answer"`
	IsCorrect     bool      `json:"is_correct"`
}

// Result is the immutable scored record of one exam attempt. Candidate name
// and hall ticket are denormalized copies captured at submission time.
type Result struct {
	ID                 uuid.UUID         `json:"id"`
	CandidateID        uuid.UUID         `json:"candidate_id"`
	CandidateName      string            `json:"candidate_name"`
	HallTicket         string            `json:"hall_ticket"`
	Answers            map[string]string `json:"answers"`
	Questions          []QuestionResult  `json:"questions"`
	TotalQuestions     int               `json:"total_questions"`
	AttemptedQuestions int               `json:"attempted_questions"`
	CorrectAnswers     int               `json:"correct_answers"`
	WrongAnswers       int               `json:"wrong_answers"`
	Score              int               `json:"score"`
	Percentage         float64           `json:"percentage"`
	TimeTaken          int               `json:"time_taken"`
	SubmittedAt        time.Time         `json:"submitted_at"`
}

// CandidateSummary is the live candidate projection attached to admin-facing
// result listings (as opposed to the denormalized copy inside Result).
type CandidateSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	HallTicket string    `json:"hall_ticket"`
}

// ResultWithCandidate pairs a result with the current state of its owner.
type ResultWithCandidate struct {
	Result
	Candidate *CandidateSummary `json:"candidate,omitempty"`
}

// SubmitExamRequest is the exam submission payload: question ID → chosen
// option text, plus elapsed seconds.
type SubmitExamRequest struct {
	Answers   map[string]string `json:"answers"`
	TimeTaken int               `json:"time_taken" binding:"omitempty,min=0"`
}

// ResultFilter narrows admin result listings. Both fields are
// case-insensitive substring matches.
type ResultFilter struct {
	HallTicket    string
	CandidateName string
}

// ScoreAggregates holds the score aggregation across all results.
type ScoreAggregates struct {
	AverageScore      float64 `json:"averageScore"`
	AveragePercentage float64 `json:"averagePercentage"`
	MaxScore          int     `json:"maxScore"`
	MinScore          int     `json:"minScore"`
}

// Statistics is the admin statistics snapshot.
type Statistics struct {
	TotalResults    int             `json:"totalResults"`
	TotalCandidates int             `json:"totalCandidates"`
	TotalQuestions  int             `json:"totalQuestions"`
	Statistics      ScoreAggregates `json:"statistics"`
}
