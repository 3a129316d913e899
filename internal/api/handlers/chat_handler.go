package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhosasa/Real-State/internal/services"
)

// ChatHandler handles the assistant endpoint.
type ChatHandler struct {
	chatService services.IChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService services.IChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Text string `json:"text" binding:"required"`
}

// ProcessMessage handles POST /v1/chat. One user message yields one or
// more bot replies.
func (h *ChatHandler) ProcessMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	messages, err := h.chatService.ProcessMessage(c.Request.Context(), req.Text)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
