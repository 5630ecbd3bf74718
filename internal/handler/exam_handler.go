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

// ExamHandler handles exam submission, results, and statistics endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// Submit godoc
// POST /api/v1/exams/submit
// Scores the candidate's answers and returns the persisted result.
func (h *ExamHandler) Submit(c *gin.Context) {
	candidateID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req model.SubmitExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Fail(c, http.StatusBadRequest, validator.Describe(fields))
		return
	}

	result, err := h.examService.SubmitExam(c.Request.Context(), candidateID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSubmission):
			response.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCandidateNotFound):
			response.Fail(c, http.StatusNotFound, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// MyResults godoc
// GET /api/v1/exams/results/me
func (h *ExamHandler) MyResults(c *gin.Context) {
	candidateID, ok := requireUserID(c)
	if !ok {
		return
	}

	results, err := h.examService.GetMyResults(c.Request.Context(), candidateID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessCount(c, http.StatusOK, len(results), results)
}

// AllResults godoc
// GET /api/v1/exams/results?hallTicket=&candidateName=
func (h *ExamHandler) AllResults(c *gin.Context) {
	filter := model.ResultFilter{
		HallTicket:    c.Query("hallTicket"),
		CandidateName: c.Query("candidateName"),
	}

	results, err := h.examService.GetAllResults(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessCount(c, http.StatusOK, len(results), results)
}

// GetResult godoc
// GET /api/v1/exams/results/:id
// Candidates may only read their own results; admins may read any.
func (h *ExamHandler) GetResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid result ID")
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var requester *uuid.UUID
	if claims.TokenType == service.TokenTypeCandidate {
		candidateID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		requester = &candidateID
	}

	result, err := h.examService.GetResult(c.Request.Context(), id, requester)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResultNotFound):
			response.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			response.Fail(c, http.StatusForbidden, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// DeleteResult godoc
// DELETE /api/v1/exams/results/:id
func (h *ExamHandler) DeleteResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid result ID")
		return
	}

	if err := h.examService.DeleteResult(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			response.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Result deleted successfully")
}

// Statistics godoc
// GET /api/v1/exams/statistics
func (h *ExamHandler) Statistics(c *gin.Context) {
	stats, err := h.examService.GetStatistics(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
