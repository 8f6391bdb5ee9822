package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/dispatch/internal/ports/secondary"
)

// WarehouseRepository implements secondary.WarehouseRepository with SQLite.
type WarehouseRepository struct {
	db *sql.DB
}

// NewWarehouseRepository creates a new SQLite warehouse repository.
func NewWarehouseRepository(db *sql.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

// Exists reports whether the warehouse belongs to the company.
func (r *WarehouseRepository) Exists(ctx context.Context, companyID, warehouseID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM warehouses WHERE id = ? AND company_id = ?",
		warehouseID, companyID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check warehouse: %w", err)
	}
	return count > 0, nil
}

// GetByID retrieves a warehouse by its ID, scoped to a company.
func (r *WarehouseRepository) GetByID(ctx context.Context, companyID, id string) (*secondary.WarehouseRecord, error) {
	var createdAt time.Time
	record := &secondary.WarehouseRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, company_id, name, created_at FROM warehouses WHERE id = ? AND company_id = ?",
		id, companyID,
	).Scan(&record.ID, &record.CompanyID, &record.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("warehouse %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure WarehouseRepository implements the interface
var _ secondary.WarehouseRepository = (*WarehouseRepository)(nil)
