package handler

import (
	"errors"
	"net/http"

	"github.com/examportal/examportal-backend/internal/hallticket"
	"github.com/examportal/examportal-backend/internal/response"
	"github.com/examportal/examportal-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// HallTicketHandler exposes hall ticket utilities for admins.
type HallTicketHandler struct {
	candidateService *service.CandidateService
}

// NewHallTicketHandler creates a new HallTicketHandler.
func NewHallTicketHandler(candidateService *service.CandidateService) *HallTicketHandler {
	return &HallTicketHandler{candidateService: candidateService}
}

// Generate godoc
// GET /api/v1/hall-ticket/generate
// Returns the next hall ticket that would be allocated today. Nothing is
// reserved; provisioning a candidate may allocate a different number.
func (h *HallTicketHandler) Generate(c *gin.Context) {
	ticket, err := h.candidateService.ProposeHallTicket(c.Request.Context())
	if err != nil {
		if errors.Is(err, hallticket.ErrSequenceExhausted) {
			response.Fail(c, http.StatusConflict, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hall_ticket": ticket})
}

// Validate godoc
// GET /api/v1/hall-ticket/validate/:ticket
func (h *HallTicketHandler) Validate(c *gin.Context) {
	ticket := c.Param("ticket")
	response.Success(c, http.StatusOK, gin.H{
		"hall_ticket": ticket,
		"valid":       hallticket.Validate(ticket),
	})
}

// Parse godoc
// GET /api/v1/hall-ticket/parse/:ticket
// Decodes the date and sequence embedded in a hall ticket.
func (h *HallTicketHandler) Parse(c *gin.Context) {
	raw := c.Param("ticket")
	ticket, ok := hallticket.Parse(raw)
	if !ok {
		response.Fail(c, http.StatusBadRequest, "invalid hall ticket format")
		return
	}

	response.Success(c, http.StatusOK, ticket)
}
