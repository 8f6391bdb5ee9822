package primary

import "context"

// RoutingService defines the primary port for route computation.
type RoutingService interface {
	// OptimalSequence orders the named tasks into a travel-efficient
	// visiting sequence from the given start position. Read-only: it
	// never mutates task or agent state.
	OptimalSequence(ctx context.Context, req RouteRequest) (*RouteResult, error)
}

// RouteRequest describes a routing problem. The start position is given
// either as an explicit coordinate (HasStartCoord) or as a bin id to
// resolve; an explicit coordinate wins when both are present.
type RouteRequest struct {
	CompanyID     string
	WarehouseID   string
	TaskIDs       []string
	StartBinID    string
	StartX        float64
	StartY        float64
	HasStartCoord bool
}

// RouteResult is the computed visiting sequence. Unresolved tasks sit
// at the tail of OrderedTaskIDs in input order and are itemized in
// Errors with code unresolvable_location; they contribute nothing to
// EstimatedTotalDistance.
type RouteResult struct {
	OrderedTaskIDs         []string
	EstimatedTotalDistance float64
	Errors                 []ItemError
}
