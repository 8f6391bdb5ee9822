package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/dispatch/internal/ports/secondary"
)

// AgentRepository implements secondary.AgentRepository with SQLite.
type AgentRepository struct {
	db *sql.DB
}

// NewAgentRepository creates a new SQLite agent repository.
func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

const agentSelectCols = "id, company_id, warehouse_id, name, kind, available, created_at, updated_at"

func scanAgent(scanner interface {
	Scan(dest ...any) error
}) (*secondary.AgentRecord, error) {
	var (
		available bool
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.AgentRecord{}
	err := scanner.Scan(
		&record.ID, &record.CompanyID, &record.WarehouseID, &record.Name,
		&record.Kind, &available, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Available = available
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new agent.
func (r *AgentRepository) Create(ctx context.Context, agent *secondary.AgentRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO agents (id, company_id, warehouse_id, name, kind, available) VALUES (?, ?, ?, ?, ?, ?)",
		agent.ID, agent.CompanyID, agent.WarehouseID, agent.Name, agent.Kind, agent.Available,
	)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

// GetByID retrieves an agent by its ID, scoped to a company.
func (r *AgentRepository) GetByID(ctx context.Context, companyID, id string) (*secondary.AgentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+agentSelectCols+" FROM agents WHERE id = ? AND company_id = ?",
		id, companyID,
	)

	record, err := scanAgent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("agent %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return record, nil
}

// List retrieves agents matching the given filters.
func (r *AgentRepository) List(ctx context.Context, filters secondary.AgentFilters) ([]*secondary.AgentRecord, error) {
	query := "SELECT " + agentSelectCols + " FROM agents WHERE company_id = ?"
	args := []any{filters.CompanyID}

	if filters.WarehouseID != "" {
		query += " AND warehouse_id = ?"
		args = append(args, filters.WarehouseID)
	}
	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}
	if filters.AvailableOnly {
		query += " AND available = 1"
	}

	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []*secondary.AgentRecord
	for rows.Next() {
		record, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, record)
	}
	return agents, rows.Err()
}

// SetAvailability marks an agent available or unavailable.
func (r *AgentRepository) SetAvailability(ctx context.Context, companyID, id string, available bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE agents SET available = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND company_id = ?",
		available, id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update agent availability: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("agent %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available agent ID.
func (r *AgentRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 7) AS INTEGER)), 0) FROM agents",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next agent ID: %w", err)
	}

	return fmt.Sprintf("AGENT-%03d", maxID+1), nil
}

// Ensure AgentRepository implements the interface
var _ secondary.AgentRepository = (*AgentRepository)(nil)
