package secondary

import "context"

// Coordinate is a resolved 2-D map position.
type Coordinate struct {
	X float64
	Y float64
}

// CoordinateResolver defines the secondary port for resolving a bin id
// or free-text location code to map coordinates. A miss is reported via
// the boolean, never as an error: callers decide unresolved-location
// policy (routing appends unresolved tasks last at zero cost).
type CoordinateResolver interface {
	// ResolveBin resolves a bin id to coordinates.
	ResolveBin(ctx context.Context, companyID, warehouseID, binID string) (Coordinate, bool, error)

	// ResolveCode resolves a location code to coordinates.
	ResolveCode(ctx context.Context, companyID, warehouseID, code string) (Coordinate, bool, error)

	// Invalidate drops any cached index for a warehouse, forcing a
	// rebuild on the next resolve.
	Invalidate(warehouseID string)
}
