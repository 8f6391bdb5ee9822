package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/dispatch/internal/ports/secondary"
)

// OrderRepository implements secondary.OrderRepository with SQLite.
// Orders are read-only to the planning core.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new SQLite order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderSelectCols = "id, company_id, warehouse_id, status, priority, created_at"

func scanOrder(scanner interface {
	Scan(dest ...any) error
}) (*secondary.OrderRecord, error) {
	var (
		priority  sql.NullInt64
		createdAt time.Time
	)

	record := &secondary.OrderRecord{}
	err := scanner.Scan(
		&record.ID, &record.CompanyID, &record.WarehouseID, &record.Status,
		&priority, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if priority.Valid {
		record.Priority = int(priority.Int64)
		record.HasPriority = true
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// GetByID retrieves an order by its ID, scoped to a company.
func (r *OrderRepository) GetByID(ctx context.Context, companyID, id string) (*secondary.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderSelectCols+" FROM orders WHERE id = ? AND company_id = ?",
		id, companyID,
	)

	record, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return record, nil
}

// ListLines retrieves the lines of an order in line-number order.
func (r *OrderRepository) ListLines(ctx context.Context, orderID string) ([]*secondary.OrderLineRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, order_id, line_no, product_id, quantity FROM order_lines WHERE order_id = ? ORDER BY line_no ASC",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list order lines: %w", err)
	}
	defer rows.Close()

	var lines []*secondary.OrderLineRecord
	for rows.Next() {
		record := &secondary.OrderLineRecord{}
		if err := rows.Scan(&record.ID, &record.OrderID, &record.LineNo, &record.ProductID, &record.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, record)
	}
	return lines, rows.Err()
}

// List retrieves orders matching the given filters.
func (r *OrderRepository) List(ctx context.Context, filters secondary.OrderFilters) ([]*secondary.OrderRecord, error) {
	query := "SELECT " + orderSelectCols + " FROM orders WHERE company_id = ?"
	args := []any{filters.CompanyID}

	if filters.WarehouseID != "" {
		query += " AND warehouse_id = ?"
		args = append(args, filters.WarehouseID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*secondary.OrderRecord
	for rows.Next() {
		record, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, record)
	}
	return orders, rows.Err()
}

// Ensure OrderRepository implements the interface
var _ secondary.OrderRepository = (*OrderRepository)(nil)
