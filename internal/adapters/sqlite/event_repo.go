package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/dispatch/internal/ports/secondary"
)

// TaskEventRepository implements secondary.TaskEventRepository with SQLite.
type TaskEventRepository struct {
	db *sql.DB
}

// NewTaskEventRepository creates a new SQLite task event repository.
func NewTaskEventRepository(db *sql.DB) *TaskEventRepository {
	return &TaskEventRepository{db: db}
}

// Create persists a task state-change event.
func (r *TaskEventRepository) Create(ctx context.Context, event *secondary.TaskEventRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO task_events (id, task_id, company_id, warehouse_id, actor_id, from_status, to_status, detail) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		event.ID, event.TaskID, event.CompanyID, event.WarehouseID,
		nullable(event.ActorID), event.FromStatus, event.ToStatus, nullable(event.Detail),
	)
	if err != nil {
		return fmt.Errorf("failed to create task event: %w", err)
	}
	return nil
}

// List retrieves events matching the given filters, newest first.
func (r *TaskEventRepository) List(ctx context.Context, filters secondary.TaskEventFilters) ([]*secondary.TaskEventRecord, error) {
	query := "SELECT id, task_id, company_id, warehouse_id, actor_id, from_status, to_status, detail, created_at FROM task_events WHERE company_id = ?"
	args := []any{filters.CompanyID}

	if filters.WarehouseID != "" {
		query += " AND warehouse_id = ?"
		args = append(args, filters.WarehouseID)
	}
	if filters.TaskID != "" {
		query += " AND task_id = ?"
		args = append(args, filters.TaskID)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list task events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.TaskEventRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			detail    sql.NullString
			createdAt time.Time
		)
		record := &secondary.TaskEventRecord{}
		err := rows.Scan(
			&record.ID, &record.TaskID, &record.CompanyID, &record.WarehouseID,
			&actorID, &record.FromStatus, &record.ToStatus, &detail, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task event: %w", err)
		}
		record.ActorID = actorID.String
		record.Detail = detail.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		events = append(events, record)
	}
	return events, rows.Err()
}

// Ensure TaskEventRepository implements the interface
var _ secondary.TaskEventRepository = (*TaskEventRepository)(nil)
