// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup functions use db.GetSchemaSQL() so tests run
// against the authoritative schema; repository code referencing a
// column missing from schema.go fails here with "no such column".
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/dispatch/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedWarehouse inserts a test warehouse and returns its ID.
func seedWarehouse(t *testing.T, db *sql.DB, id, companyID string) string {
	t.Helper()
	if id == "" {
		id = "WH-001"
	}
	if companyID == "" {
		companyID = "COMP-001"
	}
	_, err := db.Exec("INSERT INTO warehouses (id, company_id, name) VALUES (?, ?, 'Test Warehouse')", id, companyID)
	if err != nil {
		t.Fatalf("failed to seed warehouse: %v", err)
	}
	return id
}

// seedAgent inserts a test agent and returns its ID.
func seedAgent(t *testing.T, db *sql.DB, id, warehouseID, kind string) string {
	t.Helper()
	if id == "" {
		id = "AGENT-001"
	}
	if warehouseID == "" {
		warehouseID = "WH-001"
	}
	if kind == "" {
		kind = "human"
	}
	_, err := db.Exec(
		"INSERT INTO agents (id, company_id, warehouse_id, name, kind, available) VALUES (?, 'COMP-001', ?, 'Test Agent', ?, 1)",
		id, warehouseID, kind,
	)
	if err != nil {
		t.Fatalf("failed to seed agent: %v", err)
	}
	return id
}

// seedTask inserts a test task and returns its ID.
func seedTask(t *testing.T, db *sql.DB, id, warehouseID, status string, priority int) string {
	t.Helper()
	if id == "" {
		id = "TASK-0001"
	}
	if warehouseID == "" {
		warehouseID = "WH-001"
	}
	if status == "" {
		status = "pending"
	}
	_, err := db.Exec(
		"INSERT INTO tasks (id, company_id, warehouse_id, type, priority, status, quantity) VALUES (?, 'COMP-001', ?, 'pick', ?, ?, 1)",
		id, warehouseID, priority, status,
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return id
}

// seedBin inserts a map bin with its zone/aisle/rack ancestry.
func seedBin(t *testing.T, db *sql.DB, id, warehouseID, code string, x, y float64) string {
	t.Helper()
	if id == "" {
		id = "BIN-0001"
	}
	if warehouseID == "" {
		warehouseID = "WH-001"
	}

	// Ancestry rows are idempotent per warehouse.
	_, _ = db.Exec("INSERT OR IGNORE INTO map_zones (id, warehouse_id, name) VALUES ('ZONE-T', ?, 'Zone T')", warehouseID)
	_, _ = db.Exec("INSERT OR IGNORE INTO map_aisles (id, zone_id, name) VALUES ('AISLE-T', 'ZONE-T', 'Aisle T')")
	_, _ = db.Exec("INSERT OR IGNORE INTO map_racks (id, aisle_id, name) VALUES ('RACK-T', 'AISLE-T', 'Rack T')")

	var codeArg any
	if code != "" {
		codeArg = code
	}
	_, err := db.Exec(
		"INSERT INTO map_bins (id, rack_id, warehouse_id, code, x, y) VALUES (?, 'RACK-T', ?, ?, ?, ?)",
		id, warehouseID, codeArg, x, y,
	)
	if err != nil {
		t.Fatalf("failed to seed bin: %v", err)
	}
	return id
}

// seedOrder inserts an order with one line and returns the order ID.
func seedOrder(t *testing.T, db *sql.DB, id, warehouseID, productID string, qty float64) string {
	t.Helper()
	if id == "" {
		id = "ORD-1001"
	}
	if warehouseID == "" {
		warehouseID = "WH-001"
	}
	_, err := db.Exec(
		"INSERT INTO orders (id, company_id, warehouse_id, status, priority) VALUES (?, 'COMP-001', ?, 'open', 7)",
		id, warehouseID,
	)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	_, err = db.Exec(
		"INSERT INTO order_lines (id, order_id, line_no, product_id, quantity) VALUES (?, ?, 1, ?, ?)",
		id+"-L1", id, productID, qty,
	)
	if err != nil {
		t.Fatalf("failed to seed order line: %v", err)
	}
	return id
}

// seedProduct inserts a product and returns its ID.
func seedProduct(t *testing.T, db *sql.DB, id string, active bool, defaultBin string) string {
	t.Helper()
	if id == "" {
		id = "PROD-001"
	}
	var binArg any
	if defaultBin != "" {
		binArg = defaultBin
	}
	_, err := db.Exec(
		"INSERT INTO products (id, company_id, name, active, default_bin_id) VALUES (?, 'COMP-001', 'Test Product', ?, ?)",
		id, active, binArg,
	)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return id
}
