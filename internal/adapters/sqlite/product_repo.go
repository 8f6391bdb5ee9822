package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/dispatch/internal/ports/secondary"
)

// ProductRepository implements secondary.ProductRepository with SQLite.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new SQLite product repository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByIDs retrieves the named products keyed by id.
func (r *ProductRepository) GetByIDs(ctx context.Context, companyID string, ids []string) (map[string]*secondary.ProductRecord, error) {
	result := make(map[string]*secondary.ProductRecord, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := "SELECT id, company_id, name, active, default_bin_id FROM products WHERE company_id = ? AND id IN ("
	args := []any{companyID}
	for i, id := range ids {
		if i > 0 {
			query += ", "
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var defaultBin sql.NullString
		record := &secondary.ProductRecord{}
		if err := rows.Scan(&record.ID, &record.CompanyID, &record.Name, &record.Active, &defaultBin); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		record.DefaultBinID = defaultBin.String
		result[record.ID] = record
	}
	return result, rows.Err()
}

// Ensure ProductRepository implements the interface
var _ secondary.ProductRepository = (*ProductRepository)(nil)
