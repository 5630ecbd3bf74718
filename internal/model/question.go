package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a question by subject area.
type Category string

const (
	CategoryGeneral   Category = "General"
	CategoryTechnical Category = "Technical"
	CategoryAptitude  Category = "Aptitude"
	CategoryLogical   Category = "Logical"
)

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Question is a single multiple-choice question. Exactly 4 options, and the
// correct answer must be one of them. Questions are never mutated by the
// scoring path.
type Question struct {
	ID            uuid.UUID  `json:"id"`
	QuestionText  string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correct_answer"`
	Category      Category   `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
	IsActive      bool       `json:"is_active"`
	CreatedBy     *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ExamQuestionView is a question as served to a candidate: the correct
// answer is stripped.
type ExamQuestionView struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question"`
	Options      []string  `json:"options"`
	Category     Category  `json:"category"`
}

// View returns the answer-key-stripped projection of q.
func (q *Question) View() ExamQuestionView {
	return ExamQuestionView{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Options:      q.Options,
		Category:     q.Category,
	}
}

// CreateQuestionRequest is the payload for creating a question.
type CreateQuestionRequest struct {
	QuestionText  string   `json:"question" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,len=4,dive,required,max=500"`
	CorrectAnswer string   `json:"correct_answer" binding:"required,max=500"`
	Category      string   `json:"category" binding:"required,oneof=General Technical Aptitude Logical"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	IsActive      *bool    `json:"is_active" binding:"omitempty"`
}

// UpdateQuestionRequest is the payload for editing a question.
type UpdateQuestionRequest struct {
	QuestionText  string   `json:"question" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,len=4,dive,required,max=500"`
	CorrectAnswer string   `json:"correct_answer" binding:"required,max=500"`
	Category      string   `json:"category" binding:"required,oneof=General Technical Aptitude Logical"`
	Difficulty    string   `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	IsActive      *bool    `json:"is_active" binding:"required"`
}

// BulkCreateQuestionsRequest is the payload for bulk question import.
type BulkCreateQuestionsRequest struct {
	Questions []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// QuestionFilter narrows question listings.
type QuestionFilter struct {
	Category   *Category
	Difficulty *Difficulty
	IsActive   *bool
}
