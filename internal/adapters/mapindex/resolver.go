// Package mapindex implements the coordinate resolver over the map bin
// store with a per-warehouse in-memory index cache.
package mapindex

import (
	"context"
	"sync"

	"github.com/example/dispatch/internal/core/warehousemap"
	"github.com/example/dispatch/internal/ports/secondary"
)

// Resolver caches one coordinate index per warehouse. The map is small
// and changes rarely; Invalidate drops the cache after map edits.
type Resolver struct {
	bins secondary.MapBinRepository

	mu      sync.Mutex
	indexes map[string]*warehousemap.Index
}

// NewResolver creates a resolver over the given bin repository.
func NewResolver(bins secondary.MapBinRepository) *Resolver {
	return &Resolver{
		bins:    bins,
		indexes: make(map[string]*warehousemap.Index),
	}
}

// index returns the cached index for a warehouse, loading it on first use.
func (r *Resolver) index(ctx context.Context, companyID, warehouseID string) (*warehousemap.Index, error) {
	r.mu.Lock()
	ix, ok := r.indexes[warehouseID]
	r.mu.Unlock()
	if ok {
		return ix, nil
	}

	records, err := r.bins.ListByWarehouse(ctx, companyID, warehouseID)
	if err != nil {
		return nil, err
	}

	bins := make([]warehousemap.Bin, 0, len(records))
	for _, rec := range records {
		bins = append(bins, warehousemap.Bin{
			ID:   rec.ID,
			Code: rec.Code,
			X:    rec.X,
			Y:    rec.Y,
		})
	}

	ix = warehousemap.BuildIndex(bins)
	r.mu.Lock()
	r.indexes[warehouseID] = ix
	r.mu.Unlock()
	return ix, nil
}

// ResolveBin resolves a bin id to coordinates.
func (r *Resolver) ResolveBin(ctx context.Context, companyID, warehouseID, binID string) (secondary.Coordinate, bool, error) {
	ix, err := r.index(ctx, companyID, warehouseID)
	if err != nil {
		return secondary.Coordinate{}, false, err
	}
	c, ok := ix.ByID(binID)
	return secondary.Coordinate{X: c.X, Y: c.Y}, ok, nil
}

// ResolveCode resolves a location code to coordinates.
func (r *Resolver) ResolveCode(ctx context.Context, companyID, warehouseID, code string) (secondary.Coordinate, bool, error) {
	ix, err := r.index(ctx, companyID, warehouseID)
	if err != nil {
		return secondary.Coordinate{}, false, err
	}
	c, ok := ix.ByCode(code)
	return secondary.Coordinate{X: c.X, Y: c.Y}, ok, nil
}

// Invalidate drops the cached index for a warehouse.
func (r *Resolver) Invalidate(warehouseID string) {
	r.mu.Lock()
	delete(r.indexes, warehouseID)
	r.mu.Unlock()
}

// Ensure Resolver implements the interface
var _ secondary.CoordinateResolver = (*Resolver)(nil)
