package service

import (
	"errors"
	"fmt"
)

// Common service errors. Handlers map these onto HTTP statuses.
var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrAdminNotFound     = errors.New("admin not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrResultNotFound    = errors.New("result not found")
	ErrForbidden         = errors.New("access denied")

	ErrInvalidSubmission = errors.New("answers are required")
	ErrOptionsNotUnique  = errors.New("options must be distinct")
	ErrAnswerNotInOption = errors.New("correct answer must be one of the options")

	// ErrHallTicketRetries means every generated hall ticket collided with a
	// concurrent insert within the retry budget.
	ErrHallTicketRetries = errors.New("could not allocate a unique hall ticket, please retry")
)

// InsufficientQuestionsError is returned when the active pool is smaller than
// an exam paper.
type InsufficientQuestionsError struct {
	Required  int
	Available int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("Not enough active questions. Required: %d, Available: %d", e.Required, e.Available)
}
