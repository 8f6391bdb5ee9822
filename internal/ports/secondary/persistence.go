// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application
// drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound marks a lookup miss. Repositories wrap it with the entity
// id so callers can classify per-item failures with errors.Is.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateTask marks a create that lost to the live-triple unique
// index: a non-cancelled task for the same (source order, product, type)
// already exists. Planning treats this as a skip, not a failure.
var ErrDuplicateTask = errors.New("live task already exists for this order line")

// TaskRepository defines the secondary port for work task persistence.
// Status-changing methods are conditional writes: they only apply when
// the task is still in the expected prior state, and report false
// (without error) when another caller got there first.
type TaskRepository interface {
	// Create persists a new pending task. Returns ErrDuplicateTask when
	// a live task already holds the same (source order, product, type).
	Create(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task scoped to a company.
	GetByID(ctx context.Context, companyID, id string) (*TaskRecord, error)

	// GetByIDs retrieves the named tasks scoped to a company and
	// warehouse. Missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, companyID, warehouseID string, ids []string) ([]*TaskRecord, error)

	// List retrieves tasks matching the given filters.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// HasLiveTask reports whether a non-cancelled task exists for the
	// (source order, product, type) triple.
	HasLiveTask(ctx context.Context, companyID, sourceOrderID, productID, taskType string) (bool, error)

	// AssignIfPending sets status=assigned with the given assignee, only
	// if the task is still pending. Returns false when the task was
	// concurrently moved (or does not exist).
	AssignIfPending(ctx context.Context, id, assigneeID, assigneeKind, assignedAt string) (bool, error)

	// StartIfAssigned sets status=in_progress only if currently assigned.
	StartIfAssigned(ctx context.Context, id, startedAt string) (bool, error)

	// CompleteIfActive sets status=completed with optional notes, only
	// if currently assigned or in progress.
	CompleteIfActive(ctx context.Context, id, notes, completedAt string) (bool, error)

	// CancelIfActive sets status=cancelled with a reason, only if the
	// task is not already terminal.
	CancelIfActive(ctx context.Context, id, reason string) (bool, error)

	// SoftDelete marks a task deleted for audit retention. The status is
	// untouched; deleted tasks drop out of default listings.
	SoftDelete(ctx context.Context, companyID, id string) error

	// OpenCountByAgent returns the open-task count (assigned +
	// in_progress, excluding deleted) per assignee in a warehouse.
	OpenCountByAgent(ctx context.Context, companyID, warehouseID string) (map[string]int, error)

	// GetNextID returns the next available task ID.
	GetNextID(ctx context.Context) (string, error)
}

// TaskRecord represents a work task as stored in persistence.
// Timestamps are RFC3339 strings; empty means unset.
type TaskRecord struct {
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

// TaskFilters contains filter options for querying tasks.
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

// AgentRepository defines the secondary port for agent pool persistence.
type AgentRepository interface {
	// Create persists a new agent.
	Create(ctx context.Context, agent *AgentRecord) error

	// GetByID retrieves an agent scoped to a company.
	GetByID(ctx context.Context, companyID, id string) (*AgentRecord, error)

	// List retrieves agents matching the given filters.
	List(ctx context.Context, filters AgentFilters) ([]*AgentRecord, error)

	// SetAvailability marks an agent available or unavailable.
	SetAvailability(ctx context.Context, companyID, id string, available bool) error

	// GetNextID returns the next available agent ID.
	GetNextID(ctx context.Context) (string, error)
}

// AgentRecord represents an agent as stored in persistence.
type AgentRecord struct {
	ID          string
	CompanyID   string
	WarehouseID string
	Name        string
	Kind        string
	Available   bool
	CreatedAt   string
	UpdatedAt   string
}

// AgentFilters contains filter options for querying agents.
type AgentFilters struct {
	CompanyID     string
	WarehouseID   string
	Kind          string
	AvailableOnly bool
}

// OrderRepository defines the secondary port for order demand lookup.
// Orders are read-only to the planning core.
type OrderRepository interface {
	// GetByID retrieves an order scoped to a company.
	GetByID(ctx context.Context, companyID, id string) (*OrderRecord, error)

	// ListLines retrieves the lines of an order in line-number order.
	ListLines(ctx context.Context, orderID string) ([]*OrderLineRecord, error)

	// List retrieves orders matching the given filters.
	List(ctx context.Context, filters OrderFilters) ([]*OrderRecord, error)
}

// OrderRecord represents an order as stored in persistence.
type OrderRecord struct {
	ID          string
	CompanyID   string
	WarehouseID string
	Status      string
	Priority    int
	HasPriority bool
	CreatedAt   string
}

// OrderLineRecord represents one order line.
type OrderLineRecord struct {
	ID        string
	OrderID   string
	LineNo    int
	ProductID string
	Quantity  float64
}

// OrderFilters contains filter options for querying orders.
type OrderFilters struct {
	CompanyID   string
	WarehouseID string
	Status      string
	Limit       int
}

// ProductRepository defines the secondary port for product lookup.
type ProductRepository interface {
	// GetByIDs retrieves the named products keyed by id. Missing ids are
	// absent from the map.
	GetByIDs(ctx context.Context, companyID string, ids []string) (map[string]*ProductRecord, error)
}

// ProductRecord represents a product as stored in persistence.
type ProductRecord struct {
	ID           string
	CompanyID    string
	Name         string
	Active       bool
	DefaultBinID string
}

// MapBinRepository defines the secondary port for warehouse map lookup.
// The zone/aisle/rack hierarchy is collapsed: the resolver only needs
// the flat bin set with coordinates.
type MapBinRepository interface {
	// ListByWarehouse retrieves all bins of a warehouse.
	ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*BinRecord, error)
}

// BinRecord represents a map bin as stored in persistence.
type BinRecord struct {
	ID          string
	RackID      string
	WarehouseID string
	Code        string
	X           float64
	Y           float64
}

// WarehouseRepository defines the secondary port for warehouse lookup.
type WarehouseRepository interface {
	// Exists reports whether the warehouse belongs to the company.
	Exists(ctx context.Context, companyID, warehouseID string) (bool, error)

	// GetByID retrieves a warehouse scoped to a company.
	GetByID(ctx context.Context, companyID, id string) (*WarehouseRecord, error)
}

// WarehouseRecord represents a warehouse as stored in persistence.
type WarehouseRecord struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt string
}

// TaskEventRepository defines the secondary port for the task event
// audit trail.
type TaskEventRepository interface {
	// Create persists a task state-change event.
	Create(ctx context.Context, event *TaskEventRecord) error

	// List retrieves events matching the given filters, newest first.
	List(ctx context.Context, filters TaskEventFilters) ([]*TaskEventRecord, error)
}

// TaskEventRecord represents one task state-change event.
type TaskEventRecord struct {
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

// TaskEventFilters contains filter options for querying task events.
type TaskEventFilters struct {
	CompanyID   string
	WarehouseID string
	TaskID      string
	Limit       int
}
