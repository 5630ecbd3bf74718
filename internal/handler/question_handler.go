package handler

import (
	"errors"
	"net/http"

	"github.com/examportal/examportal-backend/internal/middleware"
	"github.com/examportal/examportal-backend/internal/model"
	"github.com/examportal/examportal-backend/internal/response"
	"github.com/examportal/examportal-backend/internal/service"
	"github.com/examportal/examportal-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuestionHandler handles question pool endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// List godoc
// GET /api/v1/questions?category=&difficulty=&isActive=
// Admins see full questions; candidates get answer-key-stripped views.
func (h *QuestionHandler) List(c *gin.Context) {
	filter := model.QuestionFilter{}
	if v := c.Query("category"); v != "" {
		cat := model.Category(v)
		filter.Category = &cat
	}
	if v := c.Query("difficulty"); v != "" {
		diff := model.Difficulty(v)
		filter.Difficulty = &diff
	}
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	claims := middleware.GetClaims(c)
	if claims != nil && claims.TokenType == service.TokenTypeCandidate {
		// Candidates never see inactive questions or answer keys.
		active := true
		filter.IsActive = &active
	}

	questions, err := h.questionService.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if claims != nil && claims.TokenType == service.TokenTypeCandidate {
		views := make([]model.ExamQuestionView, 0, len(questions))
		for i := range questions {
			views = append(views, questions[i].View())
		}
		response.SuccessCount(c, http.StatusOK, len(views), views)
		return
	}

	response.SuccessCount(c, http.StatusOK, len(questions), questions)
}

// Random godoc
// GET /api/v1/questions/random
// Returns a freshly sampled exam paper for the candidate.
func (h *QuestionHandler) Random(c *gin.Context) {
	views, err := h.questionService.SampleExamQuestions(c.Request.Context())
	if err != nil {
		var insufficient *service.InsufficientQuestionsError
		if errors.As(err, &insufficient) {
			response.Fail(c, http.StatusBadRequest, insufficient.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessCount(c, http.StatusOK, len(views), views)
}

// Get godoc
// GET /api/v1/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid question ID")
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, question)
}

// Create godoc
// POST /api/v1/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Fail(c, http.StatusBadRequest, validator.Describe(fields))
		return
	}

	createdBy, ok := requireUserID(c)
	if !ok {
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req, createdBy)
	if err != nil {
		if errors.Is(err, service.ErrOptionsNotUnique) || errors.Is(err, service.ErrAnswerNotInOption) {
			response.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, question)
}

// BulkCreate godoc
// POST /api/v1/questions/bulk
func (h *QuestionHandler) BulkCreate(c *gin.Context) {
	var req model.BulkCreateQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Fail(c, http.StatusBadRequest, validator.Describe(fields))
		return
	}

	createdBy, ok := requireUserID(c)
	if !ok {
		return
	}

	questions, err := h.questionService.BulkCreate(c.Request.Context(), &req, createdBy)
	if err != nil {
		if errors.Is(err, service.ErrOptionsNotUnique) || errors.Is(err, service.ErrAnswerNotInOption) {
			response.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessCount(c, http.StatusCreated, len(questions), questions)
}

// Update godoc
// PUT /api/v1/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid question ID")
		return
	}

	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Fail(c, http.StatusBadRequest, validator.Describe(fields))
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			response.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrOptionsNotUnique), errors.Is(err, service.ErrAnswerNotInOption):
			response.Fail(c, http.StatusBadRequest, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, question)
}

// Delete godoc
// DELETE /api/v1/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid question ID")
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Question deleted successfully")
}

// requireUserID extracts the authenticated principal's UUID or fails the
// request.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return uuid.Nil, false
	}
	return id, true
}
