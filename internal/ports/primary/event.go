package primary

import "context"

// EventService defines the primary port for the task event audit trail.
type EventService interface {
	// ListEvents retrieves task state-change events, newest first.
	ListEvents(ctx context.Context, filters EventFilters) ([]*TaskEvent, error)
}

// TaskEvent is one recorded task state change.
type TaskEvent struct {
	ID          string
	TaskID      string
	CompanyID   string
	WarehouseID string
	ActorID     string
	FromStatus  string
	ToStatus    string
	Detail      string
	CreatedAt   string
}

// EventFilters contains filter options for listing events.
type EventFilters struct {
	CompanyID   string
	WarehouseID string
	TaskID      string
	Limit       int
}
