// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/example/dispatch/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelectCols = "id, company_id, warehouse_id, type, priority, status, product_id, quantity, bin_id, location_code, assignee_id, assignee_kind, source_order_id, notes, cancel_reason, deleted, created_at, updated_at, assigned_at, started_at, completed_at"

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var (
		productID     sql.NullString
		binID         sql.NullString
		locationCode  sql.NullString
		assigneeID    sql.NullString
		assigneeKind  sql.NullString
		sourceOrderID sql.NullString
		notes         sql.NullString
		cancelReason  sql.NullString
		deleted       bool
		createdAt     time.Time
		updatedAt     time.Time
		assignedAt    sql.NullTime
		startedAt     sql.NullTime
		completedAt   sql.NullTime
	)

	record := &secondary.TaskRecord{}
	err := scanner.Scan(
		&record.ID, &record.CompanyID, &record.WarehouseID, &record.Type, &record.Priority,
		&record.Status, &productID, &record.Quantity, &binID, &locationCode,
		&assigneeID, &assigneeKind, &sourceOrderID, &notes, &cancelReason,
		&deleted, &createdAt, &updatedAt, &assignedAt, &startedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ProductID = productID.String
	record.BinID = binID.String
	record.LocationCode = locationCode.String
	record.AssigneeID = assigneeID.String
	record.AssigneeKind = assigneeKind.String
	record.SourceOrderID = sourceOrderID.String
	record.Notes = notes.String
	record.CancelReason = cancelReason.String
	record.Deleted = deleted
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	if assignedAt.Valid {
		record.AssignedAt = assignedAt.Time.Format(time.RFC3339)
	}
	if startedAt.Valid {
		record.StartedAt = startedAt.Time.Format(time.RFC3339)
	}
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// isUniqueViolation reports whether err is a unique constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// Create persists a new pending task. Creation races on the live-triple
// unique index surface as secondary.ErrDuplicateTask.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (id, company_id, warehouse_id, type, priority, status, product_id, quantity, bin_id, location_code, source_order_id) VALUES (?, ?, ?, ?, ?, 'pending', ?, ?, ?, ?, ?)",
		task.ID, task.CompanyID, task.WarehouseID, task.Type, task.Priority,
		nullable(task.ProductID), task.Quantity, nullable(task.BinID),
		nullable(task.LocationCode), nullable(task.SourceOrderID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("task for order %s product %s: %w", task.SourceOrderID, task.ProductID, secondary.ErrDuplicateTask)
		}
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by its ID, scoped to a company.
func (r *TaskRepository) GetByID(ctx context.Context, companyID, id string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE id = ? AND company_id = ?",
		id, companyID,
	)

	record, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return record, nil
}

// GetByIDs retrieves the named tasks scoped to a company and warehouse.
func (r *TaskRepository) GetByIDs(ctx context.Context, companyID, warehouseID string, ids []string) ([]*secondary.TaskRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := "SELECT " + taskSelectCols + " FROM tasks WHERE company_id = ? AND warehouse_id = ? AND id IN ("
	args := []any{companyID, warehouseID}
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
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}
	return tasks, rows.Err()
}

// List retrieves tasks matching the given filters.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE company_id = ?"
	args := []any{filters.CompanyID}

	if !filters.IncludeDeleted {
		query += " AND deleted = 0"
	}
	if filters.WarehouseID != "" {
		query += " AND warehouse_id = ?"
		args = append(args, filters.WarehouseID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Type != "" {
		query += " AND type = ?"
		args = append(args, filters.Type)
	}
	if filters.AssigneeID != "" {
		query += " AND assignee_id = ?"
		args = append(args, filters.AssigneeID)
	}
	if filters.SourceOrderID != "" {
		query += " AND source_order_id = ?"
		args = append(args, filters.SourceOrderID)
	}

	query += " ORDER BY priority DESC, created_at ASC, id ASC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}
	return tasks, rows.Err()
}

// HasLiveTask reports whether a non-cancelled task exists for the triple.
func (r *TaskRepository) HasLiveTask(ctx context.Context, companyID, sourceOrderID, productID, taskType string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE company_id = ? AND source_order_id = ? AND product_id = ? AND type = ? AND status != 'cancelled'",
		companyID, sourceOrderID, productID, taskType,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check for live task: %w", err)
	}
	return count > 0, nil
}

// AssignIfPending is the conditional assignment write: it only applies
// while the task is still pending, so two racing dispatchers cannot
// both win the same task.
func (r *TaskRepository) AssignIfPending(ctx context.Context, id, assigneeID, assigneeKind, assignedAt string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = 'assigned', assignee_id = ?, assignee_kind = ?, assigned_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = 'pending' AND deleted = 0",
		assigneeID, assigneeKind, assignedAt, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to assign task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// StartIfAssigned moves an assigned task to in_progress.
func (r *TaskRepository) StartIfAssigned(ctx context.Context, id, startedAt string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = 'in_progress', started_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = 'assigned' AND deleted = 0",
		startedAt, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to start task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// CompleteIfActive completes an assigned or in-progress task.
func (r *TaskRepository) CompleteIfActive(ctx context.Context, id, notes, completedAt string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = 'completed', notes = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status IN ('assigned', 'in_progress') AND deleted = 0",
		nullable(notes), completedAt, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to complete task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// CancelIfActive cancels any non-terminal task.
func (r *TaskRepository) CancelIfActive(ctx context.Context, id, reason string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = 'cancelled', cancel_reason = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status IN ('pending', 'assigned', 'in_progress') AND deleted = 0",
		nullable(reason), id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to cancel task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// SoftDelete marks a task deleted for audit retention.
func (r *TaskRepository) SoftDelete(ctx context.Context, companyID, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET deleted = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND company_id = ?",
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("task %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// OpenCountByAgent returns the open-task count per assignee.
func (r *TaskRepository) OpenCountByAgent(ctx context.Context, companyID, warehouseID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT assignee_id, COUNT(*) FROM tasks WHERE company_id = ? AND warehouse_id = ? AND status IN ('assigned', 'in_progress') AND deleted = 0 AND assignee_id IS NOT NULL GROUP BY assignee_id",
		companyID, warehouseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count open tasks: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var assignee string
		var count int
		if err := rows.Scan(&assignee, &count); err != nil {
			return nil, fmt.Errorf("failed to scan open count: %w", err)
		}
		counts[assignee] = count
	}
	return counts, rows.Err()
}

// GetNextID returns the next available task ID.
func (r *TaskRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM tasks",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next task ID: %w", err)
	}

	return fmt.Sprintf("TASK-%04d", maxID+1), nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
