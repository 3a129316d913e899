package services

import (
	"context"
	"errors"

	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/utils"
)

// ErrAgentNotFound is returned when an agent lookup has no match.
var ErrAgentNotFound = errors.New("agent not found")

// IAgentService exposes the seeded agent directory. Listings reference
// agents by ID; the reference is lookup-only.
type IAgentService interface {
	GetAgents(ctx context.Context) ([]models.Agent, error)
	GetAgentByID(ctx context.Context, agentID utils.SixID) (*models.Agent, error)
}

// agentService implements IAgentService over the in-memory directory.
type agentService struct {
	agents []models.Agent
	byID   map[utils.SixID]models.Agent
}

// NewAgentService creates a new AgentService from seeded agents.
func NewAgentService(agents []models.Agent) IAgentService {
	byID := make(map[utils.SixID]models.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}
	return &agentService{agents: agents, byID: byID}
}

func (s *agentService) GetAgents(ctx context.Context) ([]models.Agent, error) {
	out := make([]models.Agent, len(s.agents))
	copy(out, s.agents)
	return out, nil
}

func (s *agentService) GetAgentByID(ctx context.Context, agentID utils.SixID) (*models.Agent, error) {
	a, ok := s.byID[agentID]
	if !ok {
		return nil, ErrAgentNotFound
	}
	return &a, nil
}
