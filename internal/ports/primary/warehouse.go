package primary

import "context"

// MapService defines the primary port for warehouse map queries.
type MapService interface {
	// ResolveLocation resolves a bin id or location code to coordinates.
	// Resolved=false is a valid outcome, not an error.
	ResolveLocation(ctx context.Context, req ResolveLocationRequest) (*ResolvedLocation, error)

	// ListBins lists a warehouse's bins with coordinates.
	ListBins(ctx context.Context, companyID, warehouseID string) ([]*MapBin, error)
}

// ResolveLocationRequest names a bin id or location code to resolve.
// BinID takes precedence when both are set.
type ResolveLocationRequest struct {
	CompanyID   string
	WarehouseID string
	BinID       string
	Code        string
}

// ResolvedLocation is the outcome of a resolve.
type ResolvedLocation struct {
	Resolved bool
	X        float64
	Y        float64
}

// MapBin is the map bin DTO exposed to callers.
type MapBin struct {
	ID          string
	RackID      string
	WarehouseID string
	Code        string
	X           float64
	Y           float64
}

// OrderService defines the primary port for order demand queries.
type OrderService interface {
	// GetOrder retrieves an order with its lines.
	GetOrder(ctx context.Context, companyID, orderID string) (*Order, error)

	// ListOrders lists orders with optional filters.
	ListOrders(ctx context.Context, filters OrderFilters) ([]*Order, error)
}

// Order is the order DTO exposed to callers.
type Order struct {
	ID          string
	CompanyID   string
	WarehouseID string
	Status      string
	Priority    int
	HasPriority bool
	CreatedAt   string
	Lines       []OrderLine
}

// OrderLine is one line of an order.
type OrderLine struct {
	ID        string
	LineNo    int
	ProductID string
	Quantity  float64
}

// OrderFilters contains filter options for listing orders.
type OrderFilters struct {
	CompanyID   string
	WarehouseID string
	Status      string
	Limit       int
}
