package handler

import (
	"errors"
	"net/http"

	"github.com/examportal/examportal-backend/internal/model"
	"github.com/examportal/examportal-backend/internal/repository"
	"github.com/examportal/examportal-backend/internal/response"
	"github.com/examportal/examportal-backend/internal/service"
	"github.com/examportal/examportal-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminUserHandler handles admin account management endpoints.
type AdminUserHandler struct {
	adminService *service.AdminService
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(adminService *service.AdminService) *AdminUserHandler {
	return &AdminUserHandler{adminService: adminService}
}

// List godoc
// GET /api/v1/admins?search=
func (h *AdminUserHandler) List(c *gin.Context) {
	admins, err := h.adminService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessCount(c, http.StatusOK, len(admins), admins)
}

// Create godoc
// POST /api/v1/admins
func (h *AdminUserHandler) Create(c *gin.Context) {
	var req model.CreateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Fail(c, http.StatusBadRequest, validator.Describe(fields))
		return
	}

	admin, err := h.adminService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) || errors.Is(err, repository.ErrDuplicateEmail) {
			response.Fail(c, http.StatusConflict, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, admin)
}

// Update godoc
// PUT /api/v1/admins/:id
func (h *AdminUserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid admin ID")
		return
	}

	var req model.UpdateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Fail(c, http.StatusBadRequest, validator.Describe(fields))
		return
	}

	admin, err := h.adminService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrDuplicateUsername), errors.Is(err, repository.ErrDuplicateEmail):
			response.Fail(c, http.StatusConflict, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, admin)
}

// Delete godoc
// DELETE /api/v1/admins/:id
func (h *AdminUserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid admin ID")
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			response.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Admin deleted successfully")
}
