package primary

import "context"

// PlannerService defines the primary port for demand decomposition and
// task assignment.
type PlannerService interface {
	// PlanFromOrders materializes pending work tasks from order lines.
	// Partial-success: every creatable task is committed; ineligible
	// lines are reported in Skipped, never as a call failure.
	PlanFromOrders(ctx context.Context, req PlanFromOrdersRequest) (*TaskPlanResult, error)

	// AssignToAgents distributes pending tasks across the warehouse's
	// available agent pool, balancing open-task counts. Each transition
	// is a conditional write; lost races surface as per-id errors.
	AssignToAgents(ctx context.Context, req AssignRequest) (*AssignResult, error)
}

// PlanFromOrdersRequest identifies the orders to decompose.
type PlanFromOrdersRequest struct {
	CompanyID   string
	WarehouseID string
	OrderIDs    []string

	// TaskType is the work task type stamped on every created task
	// (e.g. "pick" for sales order lines). Defaults to "pick".
	TaskType string

	// ActorID is recorded on the broadcast events, empty for system.
	ActorID string
}

// TaskPlanResult reports the outcome of a decomposition run.
type TaskPlanResult struct {
	CreatedTaskIDs []string
	Skipped        []ItemError
}

// AssignRequest identifies the pending tasks to distribute.
type AssignRequest struct {
	CompanyID   string
	WarehouseID string
	TaskIDs     []string
	ActorID     string
}

// AssignResult reports the outcome of an assignment run.
type AssignResult struct {
	AssignedCount   int
	AssignedTaskIDs []string
	Errors          []ItemError
}
