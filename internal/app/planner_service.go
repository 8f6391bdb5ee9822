// Package app contains the application services that implement the
// primary ports. Services orchestrate repositories and pure core logic;
// all business rules live in internal/core.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/dispatch/internal/core/lifecycle"
	"github.com/example/dispatch/internal/core/planning"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// DefaultTaskType is stamped on planned tasks when the request leaves
// the type empty.
const DefaultTaskType = "pick"

// PlannerServiceImpl implements the PlannerService interface.
type PlannerServiceImpl struct {
	taskRepo      secondary.TaskRepository
	orderRepo     secondary.OrderRepository
	productRepo   secondary.ProductRepository
	agentRepo     secondary.AgentRepository
	warehouseRepo secondary.WarehouseRepository
	broadcaster   secondary.Broadcaster

	defaultPriority  int
	maxTasksPerAgent int
	now              func() time.Time
}

// NewPlannerService creates a new PlannerService with injected dependencies.
func NewPlannerService(
	taskRepo secondary.TaskRepository,
	orderRepo secondary.OrderRepository,
	productRepo secondary.ProductRepository,
	agentRepo secondary.AgentRepository,
	warehouseRepo secondary.WarehouseRepository,
	broadcaster secondary.Broadcaster,
	defaultPriority int,
	maxTasksPerAgent int,
) *PlannerServiceImpl {
	return &PlannerServiceImpl{
		taskRepo:         taskRepo,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		agentRepo:        agentRepo,
		warehouseRepo:    warehouseRepo,
		broadcaster:      broadcaster,
		defaultPriority:  defaultPriority,
		maxTasksPerAgent: maxTasksPerAgent,
		now:              time.Now,
	}
}

// checkWarehouse validates the tenancy context shared by both planner
// entry points.
func (s *PlannerServiceImpl) checkWarehouse(ctx context.Context, companyID, warehouseID string) error {
	if companyID == "" {
		return primary.ErrCompanyContextMissing
	}
	exists, err := s.warehouseRepo.Exists(ctx, companyID, warehouseID)
	if err != nil {
		return fmt.Errorf("failed to validate warehouse: %w", err)
	}
	if !exists {
		return fmt.Errorf("warehouse %s: %w", warehouseID, primary.ErrWarehouseNotFound)
	}
	return nil
}

// PlanFromOrders materializes pending work tasks from order lines.
// Partial-success: every creatable task is committed; ineligible lines
// are reported in Skipped.
func (s *PlannerServiceImpl) PlanFromOrders(ctx context.Context, req primary.PlanFromOrdersRequest) (*primary.TaskPlanResult, error) {
	if err := s.checkWarehouse(ctx, req.CompanyID, req.WarehouseID); err != nil {
		return nil, err
	}

	taskType := req.TaskType
	if taskType == "" {
		taskType = DefaultTaskType
	}

	result := &primary.TaskPlanResult{}

	orders, productIDs, err := s.loadOrders(ctx, req, taskType, result)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.GetByIDs(ctx, req.CompanyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	for i := range orders {
		for j := range orders[i].Lines {
			line := &orders[i].Lines[j]
			if p, ok := products[line.ProductID]; ok {
				line.ProductKnown = true
				line.ProductActive = p.Active
				line.PreferredBin = p.DefaultBinID
			}
		}
	}

	drafts, skips := planning.BuildTaskDrafts(planning.DecomposeInput{
		WarehouseID:     req.WarehouseID,
		TaskType:        taskType,
		DefaultPriority: s.defaultPriority,
		Orders:          orders,
	})

	for _, skip := range skips {
		result.Skipped = append(result.Skipped, primary.ItemError{
			ID:     skip.OrderID + "/" + skip.LineID,
			Code:   string(skip.Reason),
			Reason: skip.Detail,
		})
	}

	for _, draft := range drafts {
		if err := ctx.Err(); err != nil {
			// Committed tasks stay committed; report what we have.
			return result, err
		}

		id, err := s.taskRepo.GetNextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate task ID: %w", err)
		}

		record := &secondary.TaskRecord{
			ID:            id,
			CompanyID:     req.CompanyID,
			WarehouseID:   req.WarehouseID,
			Type:          draft.Type,
			Priority:      draft.Priority,
			Status:        string(lifecycle.InitialStatus()),
			ProductID:     draft.ProductID,
			Quantity:      draft.Quantity,
			BinID:         draft.BinID,
			SourceOrderID: draft.SourceOrderID,
		}

		err = s.taskRepo.Create(ctx, record)
		if errors.Is(err, secondary.ErrDuplicateTask) {
			// Lost a create race; same outcome as the pre-check skip.
			result.Skipped = append(result.Skipped, primary.ItemError{
				ID:     draft.SourceOrderID + "/" + draft.ProductID,
				Code:   primary.CodeDuplicateTask,
				Reason: err.Error(),
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create task: %w", err)
		}

		result.CreatedTaskIDs = append(result.CreatedTaskIDs, id)

		_ = s.broadcaster.TaskTransitioned(ctx, secondary.TaskTransition{
			TaskID:      id,
			CompanyID:   req.CompanyID,
			WarehouseID: req.WarehouseID,
			ActorID:     req.ActorID,
			FromStatus:  "",
			ToStatus:    string(lifecycle.StatusPending),
			Detail:      "planned from order " + draft.SourceOrderID,
		})
	}

	return result, nil
}

// loadOrders fetches the named orders with their lines and live-task
// flags, recording per-order failures as skips.
func (s *PlannerServiceImpl) loadOrders(ctx context.Context, req primary.PlanFromOrdersRequest, taskType string, result *primary.TaskPlanResult) ([]planning.OrderInput, []string, error) {
	var orders []planning.OrderInput
	var productIDs []string
	seen := make(map[string]bool)

	for _, orderID := range req.OrderIDs {
		record, err := s.orderRepo.GetByID(ctx, req.CompanyID, orderID)
		if errors.Is(err, secondary.ErrNotFound) {
			result.Skipped = append(result.Skipped, primary.ItemError{
				ID:     orderID,
				Code:   primary.CodeOrderNotFound,
				Reason: "order " + orderID + " not found",
			})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load order: %w", err)
		}

		lines, err := s.orderRepo.ListLines(ctx, orderID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load order lines: %w", err)
		}

		order := planning.OrderInput{
			OrderID:     record.ID,
			WarehouseID: record.WarehouseID,
			Priority:    record.Priority,
			HasPriority: record.HasPriority,
		}

		for _, line := range lines {
			live, err := s.taskRepo.HasLiveTask(ctx, req.CompanyID, orderID, line.ProductID, taskType)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to check for live task: %w", err)
			}

			order.Lines = append(order.Lines, planning.LineInput{
				LineID:      line.ID,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				HasLiveTask: live,
			})

			if !seen[line.ProductID] {
				seen[line.ProductID] = true
				productIDs = append(productIDs, line.ProductID)
			}
		}

		orders = append(orders, order)
	}

	return orders, productIDs, nil
}

// AssignToAgents distributes pending tasks across the warehouse's
// available agent pool, balancing open-task counts.
func (s *PlannerServiceImpl) AssignToAgents(ctx context.Context, req primary.AssignRequest) (*primary.AssignResult, error) {
	if err := s.checkWarehouse(ctx, req.CompanyID, req.WarehouseID); err != nil {
		return nil, err
	}

	result := &primary.AssignResult{}

	records, err := s.taskRepo.GetByIDs(ctx, req.CompanyID, req.WarehouseID, req.TaskIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	byID := make(map[string]*secondary.TaskRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	// Classify each requested id; only pending tasks enter planning.
	var pending []planning.TaskInput
	for _, id := range req.TaskIDs {
		record, ok := byID[id]
		if !ok {
			result.Errors = append(result.Errors, primary.ItemError{
				ID:     id,
				Code:   primary.CodeTaskNotFound,
				Reason: "task " + id + " not found",
			})
			continue
		}

		status := lifecycle.Status(record.Status)
		guard := lifecycle.CanAssign(lifecycle.AssignContext{
			TaskID:            id,
			Status:            status,
			CurrentAssigneeID: record.AssigneeID,
		})
		if !guard.Allowed {
			code := primary.CodeTaskAlreadyAssigned
			if status.Terminal() {
				code = primary.CodeTaskAlreadyTerminal
			}
			result.Errors = append(result.Errors, primary.ItemError{
				ID:     id,
				Code:   code,
				Reason: guard.Reason,
			})
			continue
		}

		createdAt, perr := time.Parse(time.RFC3339, record.CreatedAt)
		if perr != nil {
			// A malformed timestamp sorts as newly created, never ahead
			// of well-formed peers.
			createdAt = s.now().UTC()
		}
		pending = append(pending, planning.TaskInput{
			ID:        id,
			Priority:  record.Priority,
			CreatedAt: createdAt,
		})
	}

	if len(pending) == 0 {
		return result, nil
	}

	agents, err := s.agentRepo.List(ctx, secondary.AgentFilters{
		CompanyID:     req.CompanyID,
		WarehouseID:   req.WarehouseID,
		AvailableOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load agents: %w", err)
	}

	openCounts, err := s.taskRepo.OpenCountByAgent(ctx, req.CompanyID, req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count open tasks: %w", err)
	}

	pool := make([]planning.AgentInput, 0, len(agents))
	for _, a := range agents {
		pool = append(pool, planning.AgentInput{
			ID:        a.ID,
			Kind:      lifecycle.AgentKind(a.Kind),
			OpenTasks: openCounts[a.ID],
		})
	}

	planned, skips := planning.PlanAssignments(planning.AssignmentPlanInput{
		Tasks:            pending,
		Agents:           pool,
		MaxTasksPerAgent: s.maxTasksPerAgent,
	})

	for _, skip := range skips {
		result.Errors = append(result.Errors, primary.ItemError{
			ID:     skip.TaskID,
			Code:   string(skip.Reason),
			Reason: skip.Detail,
		})
	}

	for _, pa := range planned {
		if err := ctx.Err(); err != nil {
			// Committed assignments stay committed; report what we have.
			return result, err
		}

		transition := lifecycle.ApplyAssign(s.now().UTC())

		ok, err := s.taskRepo.AssignIfPending(ctx, pa.TaskID, pa.AgentID, string(pa.Kind),
			transition.AssignedAt.Format(time.RFC3339))
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			return nil, fmt.Errorf("failed to assign task: %w", err)
		}
		if !ok {
			// Another dispatcher won the task between snapshot and write.
			result.Errors = append(result.Errors, primary.ItemError{
				ID:     pa.TaskID,
				Code:   primary.CodeTaskAlreadyAssigned,
				Reason: "task " + pa.TaskID + " was concurrently assigned",
			})
			continue
		}

		result.AssignedCount++
		result.AssignedTaskIDs = append(result.AssignedTaskIDs, pa.TaskID)

		_ = s.broadcaster.TaskTransitioned(ctx, secondary.TaskTransition{
			TaskID:      pa.TaskID,
			CompanyID:   req.CompanyID,
			WarehouseID: req.WarehouseID,
			ActorID:     req.ActorID,
			FromStatus:  string(lifecycle.StatusPending),
			ToStatus:    string(transition.NewStatus),
			Detail:      "assigned to " + pa.AgentID,
		})
	}

	return result, nil
}

// Ensure PlannerServiceImpl implements the interface
var _ primary.PlannerService = (*PlannerServiceImpl)(nil)
