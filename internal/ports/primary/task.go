package primary

import "context"

// TaskService defines the primary port for agent-facing task operations.
type TaskService interface {
	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, companyID, taskID string) (*Task, error)

	// ListTasks lists tasks with optional filters.
	ListTasks(ctx context.Context, filters TaskFilters) ([]*Task, error)

	// StartTask moves an assigned task to in_progress.
	StartTask(ctx context.Context, req TransitionRequest) error

	// CompleteTask marks an assigned or in-progress task completed, with
	// optional free-text notes.
	CompleteTask(ctx context.Context, req TransitionRequest) error

	// CancelTask cancels any non-terminal task with a reason.
	CancelTask(ctx context.Context, req TransitionRequest) error

	// DeleteTask soft-deletes a task for audit retention.
	DeleteTask(ctx context.Context, companyID, taskID string) error
}

// Task is the work task DTO exposed to callers.
type Task struct {
	ID            string
	CompanyID     string
	WarehouseID   string
	Type          string
	Priority      int
	Status        string
	ProductID     string
	Quantity      float64
	BinID         string
	LocationCode  string
	AssigneeID    string
	AssigneeKind  string
	SourceOrderID string
	Notes         string
	CancelReason  string
	Deleted       bool
	CreatedAt     string
	UpdatedAt     string
	AssignedAt    string
	StartedAt     string
	CompletedAt   string
}

// TaskFilters contains filter options for listing tasks.
type TaskFilters struct {
	CompanyID      string
	WarehouseID    string
	Status         string
	Type           string
	AssigneeID     string
	SourceOrderID  string
	IncludeDeleted bool
	Limit          int
}

// TransitionRequest names a task for a lifecycle transition.
type TransitionRequest struct {
	CompanyID string
	TaskID    string
	ActorID   string

	// Notes is used by CompleteTask; Reason by CancelTask.
	Notes  string
	Reason string
}
