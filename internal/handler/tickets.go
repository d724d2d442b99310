package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"railchat/internal/model"
	"railchat/internal/service"
)

// TicketHandler handles reservation-related HTTP requests
type TicketHandler struct {
	auth *service.AuthService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(auth *service.AuthService) *TicketHandler {
	return &TicketHandler{
		auth: auth,
	}
}

// Reserve handles POST /api/v1/tickets
func (h *TicketHandler) Reserve(c *gin.Context) {
	var req model.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ticket, err := h.auth.ReserveTicket(c.Request.Context(), c.GetInt64(userIDKey), req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, ticket)
	case errors.Is(err, service.ErrTrainNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSeatTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidSeat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve ticket"})
	}
}

// List handles GET /api/v1/tickets
func (h *TicketHandler) List(c *gin.Context) {
	tickets, err := h.auth.ListTickets(c.Request.Context(), c.GetInt64(userIDKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"total":   len(tickets),
	})
}
