package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_cancel_reason_to_tasks",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_live_triple_unique_index",
		Up:      migrationV2,
	},
}

// LatestVersion returns the newest migration version.
func LatestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}

// RunMigrations applies all pending migrations in order.
func RunMigrations(database *sql.DB) error {
	// Create schema_version table if it doesn't exist
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 adds the cancel_reason column to tasks.
// Early installs recorded cancellation reasons only in task_events.
func migrationV1(database *sql.DB) error {
	var count int
	err := database.QueryRow("SELECT COUNT(*) FROM pragma_table_info('tasks') WHERE name = 'cancel_reason'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = database.Exec("ALTER TABLE tasks ADD COLUMN cancel_reason TEXT")
	return err
}

// migrationV2 adds the partial unique index enforcing at most one live
// task per (source_order_id, product_id, type) triple.
func migrationV2(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_live_triple
			ON tasks(source_order_id, product_id, type)
			WHERE status != 'cancelled' AND source_order_id IS NOT NULL
	`)
	return err
}
