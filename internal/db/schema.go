package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh dispatch installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests load it via GetSchemaSQL(), so code that references a column missing
// here fails immediately with "no such column" at test time.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Warehouses (tenancy scope: company_id + warehouse id on every call)
CREATE TABLE IF NOT EXISTS warehouses (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Agents (human pickers and robotic units)
CREATE TABLE IF NOT EXISTS agents (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	warehouse_id TEXT NOT NULL,
	name TEXT NOT NULL,
	kind TEXT NOT NULL CHECK(kind IN ('human', 'robot')),
	available INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (warehouse_id) REFERENCES warehouses(id)
);

-- Products (read-only to the planning core)
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	name TEXT NOT NULL,
	active INTEGER NOT NULL DEFAULT 1,
	default_bin_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Orders (demand source for decomposition)
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	warehouse_id TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'open',
	priority INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (warehouse_id) REFERENCES warehouses(id)
);

CREATE TABLE IF NOT EXISTS order_lines (
	id TEXT PRIMARY KEY,
	order_id TEXT NOT NULL,
	line_no INTEGER NOT NULL,
	product_id TEXT NOT NULL,
	quantity REAL NOT NULL,
	FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
	UNIQUE(order_id, line_no)
);

-- Warehouse map hierarchy: zone -> aisle -> rack -> bin.
-- Only bins carry coordinates; the levels above are organizational.
CREATE TABLE IF NOT EXISTS map_zones (
	id TEXT PRIMARY KEY,
	warehouse_id TEXT NOT NULL,
	name TEXT NOT NULL,
	FOREIGN KEY (warehouse_id) REFERENCES warehouses(id)
);

CREATE TABLE IF NOT EXISTS map_aisles (
	id TEXT PRIMARY KEY,
	zone_id TEXT NOT NULL,
	name TEXT NOT NULL,
	FOREIGN KEY (zone_id) REFERENCES map_zones(id)
);

CREATE TABLE IF NOT EXISTS map_racks (
	id TEXT PRIMARY KEY,
	aisle_id TEXT NOT NULL,
	name TEXT NOT NULL,
	FOREIGN KEY (aisle_id) REFERENCES map_aisles(id)
);

CREATE TABLE IF NOT EXISTS map_bins (
	id TEXT PRIMARY KEY,
	rack_id TEXT NOT NULL,
	warehouse_id TEXT NOT NULL,
	code TEXT,
	x REAL NOT NULL,
	y REAL NOT NULL,
	FOREIGN KEY (rack_id) REFERENCES map_racks(id),
	FOREIGN KEY (warehouse_id) REFERENCES warehouses(id)
);

CREATE INDEX IF NOT EXISTS idx_map_bins_warehouse ON map_bins(warehouse_id);

-- Work tasks (the unit of physical warehouse work)
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	warehouse_id TEXT NOT NULL,
	type TEXT NOT NULL,
	priority INTEGER NOT NULL DEFAULT 5,
	status TEXT NOT NULL CHECK(status IN ('pending', 'assigned', 'in_progress', 'completed', 'cancelled')) DEFAULT 'pending',
	product_id TEXT,
	quantity REAL NOT NULL,
	bin_id TEXT,
	location_code TEXT,
	assignee_id TEXT,
	assignee_kind TEXT CHECK(assignee_kind IN ('human', 'robot') OR assignee_kind IS NULL),
	source_order_id TEXT,
	notes TEXT,
	cancel_reason TEXT,
	deleted INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	assigned_at DATETIME,
	started_at DATETIME,
	completed_at DATETIME,
	FOREIGN KEY (warehouse_id) REFERENCES warehouses(id)
);

-- Duplicate protection: at most one live (non-cancelled) task per
-- (source order, product, type) triple. A racing duplicate create hits
-- this index and degrades to a skip instead of a second task.
CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_live_triple
	ON tasks(source_order_id, product_id, type)
	WHERE status != 'cancelled' AND source_order_id IS NOT NULL;

CREATE INDEX IF NOT EXISTS idx_tasks_warehouse_status ON tasks(company_id, warehouse_id, status);
CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id) WHERE assignee_id IS NOT NULL;

-- Task state-change events (audit + broadcast sink)
CREATE TABLE IF NOT EXISTS task_events (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	company_id TEXT NOT NULL,
	warehouse_id TEXT NOT NULL,
	actor_id TEXT,
	from_status TEXT NOT NULL,
	to_status TEXT NOT NULL,
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_task_events_task ON task_events(task_id);
`

// InitSchema creates the schema on a fresh database or runs pending
// migrations on an existing one.
func InitSchema(database *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Completely fresh install - create modern schema directly and mark
		// all migrations as applied so they never re-run.
		if _, err := database.Exec(SchemaSQL); err != nil {
			return err
		}
		if _, err := database.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
		}
		return nil
	}

	return RunMigrations(database)
}

// GetSchemaSQL returns the authoritative schema SQL for test setup.
func GetSchemaSQL() string {
	return SchemaSQL
}

// CurrentSchemaVersion returns the highest applied migration version.
func CurrentSchemaVersion(database *sql.DB) (int, error) {
	var version int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
