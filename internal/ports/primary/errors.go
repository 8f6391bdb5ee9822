package primary

import "errors"

// Call-aborting errors. Per-item failures inside a batch are collected
// as ItemError values instead; only a missing tenancy context, an
// unknown warehouse or a storage failure aborts a whole call.
var (
	// ErrCompanyContextMissing is returned when a call arrives without a
	// company id.
	ErrCompanyContextMissing = errors.New("company context missing")

	// ErrWarehouseNotFound is returned when the named warehouse does not
	// belong to the company.
	ErrWarehouseNotFound = errors.New("warehouse not found")
)

// Per-item error codes carried in batch results.
const (
	CodeTaskNotFound         = "task_not_found"
	CodeTaskAlreadyAssigned  = "task_already_assigned"
	CodeTaskAlreadyTerminal  = "task_already_terminal"
	CodeNoAvailableAgent     = "no_available_agent"
	CodeDuplicateTask        = "duplicate_task"
	CodeUnresolvableLocation = "unresolvable_location"
	CodeProductUnknown       = "product_unknown"
	CodeProductInactive      = "product_inactive"
	CodeInvalidQuantity      = "invalid_quantity"
	CodeWarehouseMismatch    = "warehouse_mismatch"
	CodeOrderNotFound        = "order_not_found"
	CodeStorageFailure       = "storage_failure"
)

// ItemError records one per-item failure inside a batch operation.
type ItemError struct {
	// ID identifies the failing item: a task id, or order/line for
	// planning skips.
	ID     string
	Code   string
	Reason string
}
