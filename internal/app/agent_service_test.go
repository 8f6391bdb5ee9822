package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

func newAgentFixture() (*AgentServiceImpl, *mockAgentRepo, *mockTaskRepo) {
	agentRepo := newMockAgentRepo()
	taskRepo := newMockTaskRepo()
	svc := NewAgentService(agentRepo, taskRepo, newMockWarehouseRepo("WH-001"))
	return svc, agentRepo, taskRepo
}

func TestAgentService_RegisterAgent(t *testing.T) {
	svc, agentRepo, _ := newAgentFixture()

	resp, err := svc.RegisterAgent(context.Background(), primary.RegisterAgentRequest{
		CompanyID: "COMP-001", WarehouseID: "WH-001", Name: "AMR-7", Kind: "robot",
	})
	if err != nil {
		t.Fatalf("RegisterAgent failed: %v", err)
	}
	if resp.AgentID != "AGENT-001" {
		t.Errorf("expected AGENT-001, got %s", resp.AgentID)
	}
	if !agentRepo.agents[resp.AgentID].Available {
		t.Error("new agents must register as available")
	}
	if resp.Agent.Kind != "robot" {
		t.Errorf("expected kind robot, got %s", resp.Agent.Kind)
	}
}

func TestAgentService_RegisterAgent_Validation(t *testing.T) {
	svc, _, _ := newAgentFixture()
	ctx := context.Background()

	if _, err := svc.RegisterAgent(ctx, primary.RegisterAgentRequest{
		CompanyID: "COMP-001", WarehouseID: "WH-001", Name: "Dana", Kind: "drone",
	}); err == nil {
		t.Error("expected rejection for unknown kind")
	}

	if _, err := svc.RegisterAgent(ctx, primary.RegisterAgentRequest{
		CompanyID: "COMP-001", WarehouseID: "WH-001", Kind: "human",
	}); err == nil {
		t.Error("expected rejection for empty name")
	}

	_, err := svc.RegisterAgent(ctx, primary.RegisterAgentRequest{
		CompanyID: "COMP-001", WarehouseID: "WH-404", Name: "Dana", Kind: "human",
	})
	if !errors.Is(err, primary.ErrWarehouseNotFound) {
		t.Errorf("expected ErrWarehouseNotFound, got %v", err)
	}
}

func TestAgentService_ListAgents_IncludesOpenCounts(t *testing.T) {
	svc, agentRepo, taskRepo := newAgentFixture()
	agentRepo.agents["AGENT-001"] = &secondary.AgentRecord{ID: "AGENT-001", CompanyID: "COMP-001", WarehouseID: "WH-001", Name: "Dana", Kind: "human", Available: true}
	agentRepo.agents["AGENT-002"] = &secondary.AgentRecord{ID: "AGENT-002", CompanyID: "COMP-001", WarehouseID: "WH-001", Name: "AMR-7", Kind: "robot", Available: true}

	taskRepo.add(&secondary.TaskRecord{ID: "TASK-0001", CompanyID: "COMP-001", WarehouseID: "WH-001", Status: "assigned", AssigneeID: "AGENT-001"})
	taskRepo.add(&secondary.TaskRecord{ID: "TASK-0002", CompanyID: "COMP-001", WarehouseID: "WH-001", Status: "in_progress", AssigneeID: "AGENT-001"})
	taskRepo.add(&secondary.TaskRecord{ID: "TASK-0003", CompanyID: "COMP-001", WarehouseID: "WH-001", Status: "completed", AssigneeID: "AGENT-002"})

	agents, err := svc.ListAgents(context.Background(), primary.AgentFilters{CompanyID: "COMP-001", WarehouseID: "WH-001"})
	if err != nil {
		t.Fatalf("ListAgents failed: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(agents))
	}

	byID := make(map[string]*primary.Agent)
	for _, a := range agents {
		byID[a.ID] = a
	}
	if byID["AGENT-001"].OpenTasks != 2 {
		t.Errorf("expected AGENT-001 open count 2, got %d", byID["AGENT-001"].OpenTasks)
	}
	if byID["AGENT-002"].OpenTasks != 0 {
		t.Errorf("completed tasks must not count, got %d", byID["AGENT-002"].OpenTasks)
	}
}

func TestAgentService_SetAvailability(t *testing.T) {
	svc, agentRepo, _ := newAgentFixture()
	agentRepo.agents["AGENT-001"] = &secondary.AgentRecord{ID: "AGENT-001", CompanyID: "COMP-001", WarehouseID: "WH-001", Available: true}

	if err := svc.SetAvailability(context.Background(), "COMP-001", "AGENT-001", false); err != nil {
		t.Fatalf("SetAvailability failed: %v", err)
	}
	if agentRepo.agents["AGENT-001"].Available {
		t.Error("expected agent unavailable")
	}

	err := svc.SetAvailability(context.Background(), "COMP-001", "AGENT-404", true)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
