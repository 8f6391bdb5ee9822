// Package planning contains the pure business logic for turning order
// demand into work task drafts and for balancing assignments across an
// agent pool. All input data is pre-fetched by the caller - no I/O here.
package planning

// SkipReason classifies why a line or task was skipped during planning.
type SkipReason string

const (
	SkipDuplicateTask     SkipReason = "duplicate_task"
	SkipProductInactive   SkipReason = "product_inactive"
	SkipProductUnknown    SkipReason = "product_unknown"
	SkipInvalidQuantity   SkipReason = "invalid_quantity"
	SkipWarehouseMismatch SkipReason = "warehouse_mismatch"
	SkipNoAvailableAgent  SkipReason = "no_available_agent"
)

// LineInput represents one order line for decomposition purposes.
type LineInput struct {
	LineID        string
	ProductID     string
	Quantity      float64
	ProductKnown  bool
	ProductActive bool
	PreferredBin  string // product's default bin, empty if unknown
	HasLiveTask   bool   // a live task already exists for (order, product, type)
}

// OrderInput represents one order for decomposition purposes.
type OrderInput struct {
	OrderID     string
	WarehouseID string
	Priority    int
	HasPriority bool
	Lines       []LineInput
}

// DecomposeInput contains the inputs for a decomposition run.
type DecomposeInput struct {
	WarehouseID     string
	TaskType        string
	DefaultPriority int // used when an order declares no priority
	Orders          []OrderInput
}

// TaskDraft describes a pending work task to be created.
type TaskDraft struct {
	SourceOrderID string
	ProductID     string
	Type          string
	Priority      int
	Quantity      float64
	BinID         string // empty means unresolved; routing places it last
}

// LineSkip records one skipped order line with its reason.
type LineSkip struct {
	OrderID string
	LineID  string
	Reason  SkipReason
	Detail  string
}

// BuildTaskDrafts decomposes orders into work task drafts, one per
// eligible line. Ineligible lines are recorded as skips, never errors:
// decomposition is partial-success by design. Duplicate lines (a live
// task already exists for the triple) are skips too, which makes
// re-planning the same order idempotent.
func BuildTaskDrafts(in DecomposeInput) ([]TaskDraft, []LineSkip) {
	var drafts []TaskDraft
	var skips []LineSkip

	for _, order := range in.Orders {
		priority := in.DefaultPriority
		if order.HasPriority {
			priority = order.Priority
		}

		for _, line := range order.Lines {
			if skip, reason := checkLine(order, line, in.WarehouseID); skip {
				skips = append(skips, LineSkip{
					OrderID: order.OrderID,
					LineID:  line.LineID,
					Reason:  reason,
					Detail:  skipDetail(reason, order, line),
				})
				continue
			}

			drafts = append(drafts, TaskDraft{
				SourceOrderID: order.OrderID,
				ProductID:     line.ProductID,
				Type:          in.TaskType,
				Priority:      priority,
				Quantity:      line.Quantity,
				BinID:         line.PreferredBin,
			})
		}
	}

	return drafts, skips
}

func checkLine(order OrderInput, line LineInput, warehouseID string) (bool, SkipReason) {
	switch {
	case order.WarehouseID != warehouseID:
		return true, SkipWarehouseMismatch
	case !line.ProductKnown:
		return true, SkipProductUnknown
	case !line.ProductActive:
		return true, SkipProductInactive
	case line.Quantity <= 0:
		return true, SkipInvalidQuantity
	case line.HasLiveTask:
		return true, SkipDuplicateTask
	}
	return false, ""
}

func skipDetail(reason SkipReason, order OrderInput, line LineInput) string {
	switch reason {
	case SkipWarehouseMismatch:
		return "order " + order.OrderID + " belongs to warehouse " + order.WarehouseID
	case SkipProductUnknown:
		return "product " + line.ProductID + " not found"
	case SkipProductInactive:
		return "product " + line.ProductID + " is inactive"
	case SkipInvalidQuantity:
		return "line " + line.LineID + " has non-positive quantity"
	case SkipDuplicateTask:
		return "a live task already exists for product " + line.ProductID
	}
	return ""
}
