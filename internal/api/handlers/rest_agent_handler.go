package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhosasa/Real-State/internal/services"
	"github.com/jhosasa/Real-State/internal/utils"
)

// RestAgentHandler handles REST requests for the agent directory.
type RestAgentHandler struct {
	agentService services.IAgentService
}

// NewRestAgentHandler creates a new RestAgentHandler.
func NewRestAgentHandler(agentService services.IAgentService) *RestAgentHandler {
	return &RestAgentHandler{agentService: agentService}
}

// ListAgents handles GET /v1/agent.
func (h *RestAgentHandler) ListAgents(c *gin.Context) {
	agents, err := h.agentService.GetAgents(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list agents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": agents})
}

// GetAgentByID handles GET /v1/agent/:id.
func (h *RestAgentHandler) GetAgentByID(c *gin.Context) {
	id, err := utils.ParseSixID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent ID format"})
		return
	}

	agent, err := h.agentService.GetAgentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAgentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve agent"})
		return
	}

	c.JSON(http.StatusOK, agent)
}
