package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/dispatch/internal/ports/secondary"
)

// MapBinRepository implements secondary.MapBinRepository with SQLite.
// The zone/aisle/rack levels exist in the schema for warehouse admin
// tooling; the resolver only needs the flat bin set.
type MapBinRepository struct {
	db *sql.DB
}

// NewMapBinRepository creates a new SQLite map bin repository.
func NewMapBinRepository(db *sql.DB) *MapBinRepository {
	return &MapBinRepository{db: db}
}

// ListByWarehouse retrieves all bins of a warehouse. The company scope
// is enforced through the warehouse join.
func (r *MapBinRepository) ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*secondary.BinRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.rack_id, b.warehouse_id, b.code, b.x, b.y
		 FROM map_bins b
		 JOIN warehouses w ON w.id = b.warehouse_id
		 WHERE w.company_id = ? AND b.warehouse_id = ?
		 ORDER BY b.id ASC`,
		companyID, warehouseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bins: %w", err)
	}
	defer rows.Close()

	var bins []*secondary.BinRecord
	for rows.Next() {
		var code sql.NullString
		record := &secondary.BinRecord{}
		if err := rows.Scan(&record.ID, &record.RackID, &record.WarehouseID, &code, &record.X, &record.Y); err != nil {
			return nil, fmt.Errorf("failed to scan bin: %w", err)
		}
		record.Code = code.String
		bins = append(bins, record)
	}
	return bins, rows.Err()
}

// Ensure MapBinRepository implements the interface
var _ secondary.MapBinRepository = (*MapBinRepository)(nil)
