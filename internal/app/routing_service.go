package app

import (
	"context"
	"fmt"

	"github.com/example/dispatch/internal/core/routing"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// RoutingServiceImpl implements the RoutingService interface. Routing is
// read-only: it never mutates task or agent state.
type RoutingServiceImpl struct {
	taskRepo      secondary.TaskRepository
	warehouseRepo secondary.WarehouseRepository
	resolver      secondary.CoordinateResolver
}

// NewRoutingService creates a new RoutingService with injected dependencies.
func NewRoutingService(
	taskRepo secondary.TaskRepository,
	warehouseRepo secondary.WarehouseRepository,
	resolver secondary.CoordinateResolver,
) *RoutingServiceImpl {
	return &RoutingServiceImpl{
		taskRepo:      taskRepo,
		warehouseRepo: warehouseRepo,
		resolver:      resolver,
	}
}

// OptimalSequence orders the named tasks into a travel-efficient
// visiting sequence from the given start position.
func (s *RoutingServiceImpl) OptimalSequence(ctx context.Context, req primary.RouteRequest) (*primary.RouteResult, error) {
	if req.CompanyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}
	exists, err := s.warehouseRepo.Exists(ctx, req.CompanyID, req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate warehouse: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("warehouse %s: %w", req.WarehouseID, primary.ErrWarehouseNotFound)
	}

	start, err := s.resolveStart(ctx, req)
	if err != nil {
		return nil, err
	}

	records, err := s.taskRepo.GetByIDs(ctx, req.CompanyID, req.WarehouseID, req.TaskIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	byID := make(map[string]*secondary.TaskRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	result := &primary.RouteResult{}

	// Stops keep the request's task order so unresolved tasks land at
	// the tail deterministically.
	var stops []routing.Stop
	for _, id := range req.TaskIDs {
		record, ok := byID[id]
		if !ok {
			result.Errors = append(result.Errors, primary.ItemError{
				ID:     id,
				Code:   primary.CodeTaskNotFound,
				Reason: "task " + id + " not found",
			})
			continue
		}

		target, resolved, err := s.resolveTask(ctx, req, record)
		if err != nil {
			return nil, err
		}

		stop := routing.Stop{TaskID: id, Priority: record.Priority}
		if resolved {
			stop.Target = &target
		} else {
			result.Errors = append(result.Errors, primary.ItemError{
				ID:     id,
				Code:   primary.CodeUnresolvableLocation,
				Reason: "task " + id + " has no resolvable location",
			})
		}
		stops = append(stops, stop)
	}

	seq := routing.NearestNeighbor(start, stops)
	result.OrderedTaskIDs = seq.OrderedTaskIDs
	result.EstimatedTotalDistance = seq.TotalDistance
	return result, nil
}

// resolveStart determines the route's start position. An explicit
// coordinate wins over a start bin; with neither, routing starts at the
// map origin.
func (s *RoutingServiceImpl) resolveStart(ctx context.Context, req primary.RouteRequest) (routing.Point, error) {
	if req.HasStartCoord {
		return routing.Point{X: req.StartX, Y: req.StartY}, nil
	}
	if req.StartBinID != "" {
		c, ok, err := s.resolver.ResolveBin(ctx, req.CompanyID, req.WarehouseID, req.StartBinID)
		if err != nil {
			return routing.Point{}, fmt.Errorf("failed to resolve start bin: %w", err)
		}
		if ok {
			return routing.Point{X: c.X, Y: c.Y}, nil
		}
	}
	return routing.Point{}, nil
}

// resolveTask resolves a task's target position: bin id first, then the
// free-text location code.
func (s *RoutingServiceImpl) resolveTask(ctx context.Context, req primary.RouteRequest, record *secondary.TaskRecord) (routing.Point, bool, error) {
	if record.BinID != "" {
		c, ok, err := s.resolver.ResolveBin(ctx, req.CompanyID, req.WarehouseID, record.BinID)
		if err != nil {
			return routing.Point{}, false, fmt.Errorf("failed to resolve bin: %w", err)
		}
		if ok {
			return routing.Point{X: c.X, Y: c.Y}, true, nil
		}
	}
	if record.LocationCode != "" {
		c, ok, err := s.resolver.ResolveCode(ctx, req.CompanyID, req.WarehouseID, record.LocationCode)
		if err != nil {
			return routing.Point{}, false, fmt.Errorf("failed to resolve location code: %w", err)
		}
		if ok {
			return routing.Point{X: c.X, Y: c.Y}, true, nil
		}
	}
	return routing.Point{}, false, nil
}

// Ensure RoutingServiceImpl implements the interface
var _ primary.RoutingService = (*RoutingServiceImpl)(nil)
