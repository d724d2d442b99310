package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"railchat/internal/model"
	"railchat/internal/service"
)

// ChatHandler handles assistant-related HTTP requests
type ChatHandler struct {
	assistant *service.Assistant
	maxLength int
}

// NewChatHandler creates a new chat handler. Messages longer than maxLength runes are rejected.
func NewChatHandler(assistant *service.Assistant, maxLength int) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		maxLength: maxLength,
	}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if h.maxLength > 0 && len([]rune(req.Message)) > h.maxLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message too long"})
		return
	}

	// Store failures are already turned into a degraded reply
	response := h.assistant.Respond(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, response)
}

// Stations handles GET /api/v1/stations
func (h *ChatHandler) Stations(c *gin.Context) {
	stations := h.assistant.Stations(c.Request.Context())
	c.JSON(http.StatusOK, model.StationsResponse{
		Stations: stations,
		Total:    len(stations),
	})
}
