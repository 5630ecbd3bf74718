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

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService      *service.AuthService
	candidateService *service.CandidateService
	adminService     *service.AdminService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	candidateService *service.CandidateService,
	adminService *service.AdminService,
) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		candidateService: candidateService,
		adminService:     adminService,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Polymorphic login: admins send username+password, candidates send only
// their hall ticket.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Fail(c, http.StatusBadRequest, validator.Describe(fields))
		return
	}

	switch req.UserType {
	case "Admin":
		h.adminLogin(c, &req)
	case "Candidate":
		h.candidateLogin(c, &req)
	}
}

func (h *AuthHandler) adminLogin(c *gin.Context, req *model.LoginRequest) {
	if req.Username == "" || req.Password == "" {
		response.Fail(c, http.StatusBadRequest, "username and password are required")
		return
	}

	admin, err := h.adminService.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}
	if !admin.IsActive {
		response.Fail(c, http.StatusForbidden, response.ErrAccountInactive)
		return
	}
	if err := h.authService.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateAdminToken(admin.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{Token: token, User: admin})
}

func (h *AuthHandler) candidateLogin(c *gin.Context, req *model.LoginRequest) {
	if req.HallTicket == "" {
		response.Fail(c, http.StatusBadRequest, "hall_ticket is required")
		return
	}

	candidate, err := h.candidateService.GetByHallTicket(c.Request.Context(), req.HallTicket)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}
	if !candidate.IsActive {
		response.Fail(c, http.StatusForbidden, response.ErrAccountInactive)
		return
	}

	token, err := h.authService.GenerateCandidateToken(c.Request.Context(), candidate.ID)
	if err != nil {
		if errors.Is(err, service.ErrSessionAlreadyActive) {
			response.Fail(c, http.StatusConflict, response.ErrSessionActive)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{Token: token, User: candidate})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile of the authenticated principal.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	switch claims.TokenType {
	case service.TokenTypeAdmin:
		admin, err := h.adminService.Get(c.Request.Context(), id)
		if err != nil {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Success(c, http.StatusOK, admin)
	case service.TokenTypeCandidate:
		candidate, err := h.candidateService.Get(c.Request.Context(), id)
		if err != nil {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Success(c, http.StatusOK, candidate)
	default:
		response.Fail(c, http.StatusForbidden, response.ErrTokenInvalid)
	}
}

// Logout godoc
// POST /api/v1/auth/logout
// Releases the candidate's single-device session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.ResetCandidateSession(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Logged out successfully")
}
