package primary

import "context"

// AgentService defines the primary port for agent pool management.
type AgentService interface {
	// RegisterAgent adds an agent to a warehouse's pool.
	RegisterAgent(ctx context.Context, req RegisterAgentRequest) (*RegisterAgentResponse, error)

	// GetAgent retrieves an agent by ID.
	GetAgent(ctx context.Context, companyID, agentID string) (*Agent, error)

	// ListAgents lists agents with optional filters, including each
	// agent's current open-task count.
	ListAgents(ctx context.Context, filters AgentFilters) ([]*Agent, error)

	// SetAvailability marks an agent available or unavailable for
	// assignment.
	SetAvailability(ctx context.Context, companyID, agentID string, available bool) error
}

// Agent is the agent DTO exposed to callers.
type Agent struct {
	ID          string
	CompanyID   string
	WarehouseID string
	Name        string
	Kind        string
	Available   bool
	OpenTasks   int
	CreatedAt   string
}

// RegisterAgentRequest describes a new agent.
type RegisterAgentRequest struct {
	CompanyID   string
	WarehouseID string
	Name        string
	Kind        string // "human" or "robot"
}

// RegisterAgentResponse carries the new agent's id.
type RegisterAgentResponse struct {
	AgentID string
	Agent   *Agent
}

// AgentFilters contains filter options for listing agents.
type AgentFilters struct {
	CompanyID     string
	WarehouseID   string
	Kind          string
	AvailableOnly bool
}
