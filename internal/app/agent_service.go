package app

import (
	"context"
	"fmt"

	"github.com/example/dispatch/internal/core/lifecycle"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// AgentServiceImpl implements the AgentService interface.
type AgentServiceImpl struct {
	agentRepo     secondary.AgentRepository
	taskRepo      secondary.TaskRepository
	warehouseRepo secondary.WarehouseRepository
}

// NewAgentService creates a new AgentService with injected dependencies.
func NewAgentService(
	agentRepo secondary.AgentRepository,
	taskRepo secondary.TaskRepository,
	warehouseRepo secondary.WarehouseRepository,
) *AgentServiceImpl {
	return &AgentServiceImpl{
		agentRepo:     agentRepo,
		taskRepo:      taskRepo,
		warehouseRepo: warehouseRepo,
	}
}

func recordToAgent(r *secondary.AgentRecord) *primary.Agent {
	return &primary.Agent{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		WarehouseID: r.WarehouseID,
		Name:        r.Name,
		Kind:        r.Kind,
		Available:   r.Available,
		CreatedAt:   r.CreatedAt,
	}
}

// RegisterAgent adds an agent to a warehouse's pool.
func (s *AgentServiceImpl) RegisterAgent(ctx context.Context, req primary.RegisterAgentRequest) (*primary.RegisterAgentResponse, error) {
	if req.CompanyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}
	if !lifecycle.ValidKind(lifecycle.AgentKind(req.Kind)) {
		return nil, fmt.Errorf("unknown agent kind %q", req.Kind)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("agent name must not be empty")
	}

	exists, err := s.warehouseRepo.Exists(ctx, req.CompanyID, req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate warehouse: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("warehouse %s: %w", req.WarehouseID, primary.ErrWarehouseNotFound)
	}

	id, err := s.agentRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate agent ID: %w", err)
	}

	record := &secondary.AgentRecord{
		ID:          id,
		CompanyID:   req.CompanyID,
		WarehouseID: req.WarehouseID,
		Name:        req.Name,
		Kind:        req.Kind,
		Available:   true,
	}
	if err := s.agentRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	created, err := s.agentRepo.GetByID(ctx, req.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created agent: %w", err)
	}

	return &primary.RegisterAgentResponse{
		AgentID: id,
		Agent:   recordToAgent(created),
	}, nil
}

// GetAgent retrieves an agent by ID.
func (s *AgentServiceImpl) GetAgent(ctx context.Context, companyID, agentID string) (*primary.Agent, error) {
	if companyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}
	record, err := s.agentRepo.GetByID(ctx, companyID, agentID)
	if err != nil {
		return nil, err
	}
	return recordToAgent(record), nil
}

// ListAgents lists agents with their current open-task counts.
func (s *AgentServiceImpl) ListAgents(ctx context.Context, filters primary.AgentFilters) ([]*primary.Agent, error) {
	if filters.CompanyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}

	records, err := s.agentRepo.List(ctx, secondary.AgentFilters{
		CompanyID:     filters.CompanyID,
		WarehouseID:   filters.WarehouseID,
		Kind:          filters.Kind,
		AvailableOnly: filters.AvailableOnly,
	})
	if err != nil {
		return nil, err
	}

	// Open counts are per-warehouse; collect once per distinct warehouse.
	counts := make(map[string]map[string]int)
	agents := make([]*primary.Agent, 0, len(records))
	for _, r := range records {
		warehouseCounts, ok := counts[r.WarehouseID]
		if !ok {
			warehouseCounts, err = s.taskRepo.OpenCountByAgent(ctx, filters.CompanyID, r.WarehouseID)
			if err != nil {
				return nil, fmt.Errorf("failed to count open tasks: %w", err)
			}
			counts[r.WarehouseID] = warehouseCounts
		}

		agent := recordToAgent(r)
		agent.OpenTasks = warehouseCounts[r.ID]
		agents = append(agents, agent)
	}
	return agents, nil
}

// SetAvailability marks an agent available or unavailable for assignment.
func (s *AgentServiceImpl) SetAvailability(ctx context.Context, companyID, agentID string, available bool) error {
	if companyID == "" {
		return primary.ErrCompanyContextMissing
	}
	return s.agentRepo.SetAvailability(ctx, companyID, agentID, available)
}

// Ensure AgentServiceImpl implements the interface
var _ primary.AgentService = (*AgentServiceImpl)(nil)
