package secondary

import "context"

// TaskTransition describes one committed task state change for
// broadcast to interested consumers.
type TaskTransition struct {
	TaskID      string
	CompanyID   string
	WarehouseID string
	ActorID     string
	FromStatus  string
	ToStatus    string
	Detail      string
}

// Broadcaster defines the secondary port for the task-state-change
// sink. Broadcast failures never roll back the transition that was
// already committed; callers treat them as best-effort.
type Broadcaster interface {
	// TaskTransitioned publishes a committed state change.
	TaskTransitioned(ctx context.Context, transition TaskTransition) error
}
