package app

import (
	"context"
	"fmt"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// MapServiceImpl implements the MapService interface.
type MapServiceImpl struct {
	binRepo       secondary.MapBinRepository
	warehouseRepo secondary.WarehouseRepository
	resolver      secondary.CoordinateResolver
}

// NewMapService creates a new MapService with injected dependencies.
func NewMapService(
	binRepo secondary.MapBinRepository,
	warehouseRepo secondary.WarehouseRepository,
	resolver secondary.CoordinateResolver,
) *MapServiceImpl {
	return &MapServiceImpl{
		binRepo:       binRepo,
		warehouseRepo: warehouseRepo,
		resolver:      resolver,
	}
}

// ResolveLocation resolves a bin id or location code to coordinates.
// BinID takes precedence when both are set; resolved=false is a valid
// outcome, not an error.
func (s *MapServiceImpl) ResolveLocation(ctx context.Context, req primary.ResolveLocationRequest) (*primary.ResolvedLocation, error) {
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

	if req.BinID != "" {
		c, ok, err := s.resolver.ResolveBin(ctx, req.CompanyID, req.WarehouseID, req.BinID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve bin: %w", err)
		}
		if ok {
			return &primary.ResolvedLocation{Resolved: true, X: c.X, Y: c.Y}, nil
		}
		return &primary.ResolvedLocation{}, nil
	}

	if req.Code != "" {
		c, ok, err := s.resolver.ResolveCode(ctx, req.CompanyID, req.WarehouseID, req.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve location code: %w", err)
		}
		if ok {
			return &primary.ResolvedLocation{Resolved: true, X: c.X, Y: c.Y}, nil
		}
	}

	return &primary.ResolvedLocation{}, nil
}

// ListBins lists a warehouse's bins with coordinates.
func (s *MapServiceImpl) ListBins(ctx context.Context, companyID, warehouseID string) ([]*primary.MapBin, error) {
	if companyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}

	records, err := s.binRepo.ListByWarehouse(ctx, companyID, warehouseID)
	if err != nil {
		return nil, err
	}

	bins := make([]*primary.MapBin, 0, len(records))
	for _, r := range records {
		bins = append(bins, &primary.MapBin{
			ID:          r.ID,
			RackID:      r.RackID,
			WarehouseID: r.WarehouseID,
			Code:        r.Code,
			X:           r.X,
			Y:           r.Y,
		})
	}
	return bins, nil
}

// Ensure MapServiceImpl implements the interface
var _ primary.MapService = (*MapServiceImpl)(nil)
