package handler

import (
	"errors"
	"net/http"

	"github.com/examportal/examportal-backend/internal/hallticket"
	"github.com/examportal/examportal-backend/internal/model"
	"github.com/examportal/examportal-backend/internal/repository"
	"github.com/examportal/examportal-backend/internal/response"
	"github.com/examportal/examportal-backend/internal/service"
	"github.com/examportal/examportal-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CandidateHandler handles admin-facing candidate management endpoints.
type CandidateHandler struct {
	candidateService *service.CandidateService
	authService      *service.AuthService
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(candidateService *service.CandidateService, authService *service.AuthService) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService, authService: authService}
}

// List godoc
// GET /api/v1/candidates?search=
func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.candidateService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessCount(c, http.StatusOK, len(candidates), candidates)
}

// Get godoc
// GET /api/v1/candidates/:id
func (h *CandidateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	candidate, err := h.candidateService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, candidate)
}

// Create godoc
// POST /api/v1/candidates
// Provisions a candidate, generating a hall ticket when none is supplied.
func (h *CandidateHandler) Create(c *gin.Context) {
	var req model.CreateCandidateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Fail(c, http.StatusBadRequest, validator.Describe(fields))
		return
	}

	candidate, err := h.candidateService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateHallTicket), errors.Is(err, repository.ErrDuplicateEmail),
			errors.Is(err, hallticket.ErrSequenceExhausted):
			response.Fail(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrHallTicketRetries):
			response.Fail(c, http.StatusServiceUnavailable, err.Error())
		default:
			response.Fail(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, candidate)
}

// Update godoc
// PUT /api/v1/candidates/:id
func (h *CandidateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	var req model.UpdateCandidateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Fail(c, http.StatusBadRequest, validator.Describe(fields))
		return
	}

	candidate, err := h.candidateService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateNotFound):
			response.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrDuplicateEmail):
			response.Fail(c, http.StatusConflict, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, candidate)
}

// Delete godoc
// DELETE /api/v1/candidates/:id
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	if err := h.candidateService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Candidate deleted successfully")
}

// ResetSession godoc
// POST /api/v1/candidates/:id/reset-session
// Clears the candidate's single-device session so they can log in again.
func (h *CandidateHandler) ResetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	// Confirm the candidate exists so a typo'd ID is reported instead of
	// silently deleting nothing.
	if _, err := h.candidateService.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.authService.ResetCandidateSession(c.Request.Context(), id.String()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Session reset successfully")
}
