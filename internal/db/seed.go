package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures: a small
// warehouse with a mapped zone/aisle/rack/bin tree, products, agents and
// an open sales order ready for planning.
func SeedFixtures(database *sql.DB) error {
	if _, err := database.Exec(
		"INSERT INTO warehouses (id, company_id, name) VALUES (?, ?, ?)",
		"WH-001", "COMP-001", "North Fulfillment Center",
	); err != nil {
		return fmt.Errorf("seed warehouses: %w", err)
	}

	// Map tree: one zone, two aisles, one rack each, bins laid out on a grid.
	if _, err := database.Exec(
		"INSERT INTO map_zones (id, warehouse_id, name) VALUES (?, ?, ?)",
		"ZONE-A", "WH-001", "Zone A",
	); err != nil {
		return fmt.Errorf("seed zones: %w", err)
	}

	aisles := []struct{ id, name string }{
		{"AISLE-A1", "Aisle A1"},
		{"AISLE-A2", "Aisle A2"},
	}
	for _, a := range aisles {
		if _, err := database.Exec(
			"INSERT INTO map_aisles (id, zone_id, name) VALUES (?, ?, ?)",
			a.id, "ZONE-A", a.name,
		); err != nil {
			return fmt.Errorf("seed aisles: %w", err)
		}
	}

	racks := []struct{ id, aisle, name string }{
		{"RACK-A1-1", "AISLE-A1", "Rack A1-1"},
		{"RACK-A2-1", "AISLE-A2", "Rack A2-1"},
	}
	for _, r := range racks {
		if _, err := database.Exec(
			"INSERT INTO map_racks (id, aisle_id, name) VALUES (?, ?, ?)",
			r.id, r.aisle, r.name,
		); err != nil {
			return fmt.Errorf("seed racks: %w", err)
		}
	}

	bins := []struct {
		id, rack, code string
		x, y           float64
	}{
		{"BIN-0001", "RACK-A1-1", "A1-1-01", 1.0, 2.0},
		{"BIN-0002", "RACK-A1-1", "A1-1-02", 1.0, 4.0},
		{"BIN-0003", "RACK-A1-1", "A1-1-03", 1.0, 6.0},
		{"BIN-0004", "RACK-A2-1", "A2-1-01", 5.0, 2.0},
		{"BIN-0005", "RACK-A2-1", "A2-1-02", 5.0, 4.0},
	}
	for _, b := range bins {
		if _, err := database.Exec(
			"INSERT INTO map_bins (id, rack_id, warehouse_id, code, x, y) VALUES (?, ?, ?, ?, ?, ?)",
			b.id, b.rack, "WH-001", b.code, b.x, b.y,
		); err != nil {
			return fmt.Errorf("seed bins: %w", err)
		}
	}

	products := []struct {
		id, name, bin string
		active        bool
	}{
		{"PROD-001", "Widget 12mm", "BIN-0001", true},
		{"PROD-002", "Bracket L", "BIN-0004", true},
		{"PROD-003", "Gasket Kit", "", true},
		{"PROD-004", "Discontinued Valve", "BIN-0002", false},
	}
	for _, p := range products {
		var bin sql.NullString
		if p.bin != "" {
			bin = sql.NullString{String: p.bin, Valid: true}
		}
		if _, err := database.Exec(
			"INSERT INTO products (id, company_id, name, active, default_bin_id) VALUES (?, ?, ?, ?, ?)",
			p.id, "COMP-001", p.name, p.active, bin,
		); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
	}

	agents := []struct {
		id, name, kind string
	}{
		{"AGENT-001", "Dana", "human"},
		{"AGENT-002", "Lee", "human"},
		{"AGENT-003", "AMR-7", "robot"},
	}
	for _, a := range agents {
		if _, err := database.Exec(
			"INSERT INTO agents (id, company_id, warehouse_id, name, kind, available) VALUES (?, ?, ?, ?, ?, 1)",
			a.id, "COMP-001", "WH-001", a.name, a.kind,
		); err != nil {
			return fmt.Errorf("seed agents: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT INTO orders (id, company_id, warehouse_id, status, priority) VALUES (?, ?, ?, 'open', ?)",
		"ORD-1001", "COMP-001", "WH-001", 8,
	); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	lines := []struct {
		id      string
		lineNo  int
		product string
		qty     float64
	}{
		{"LINE-1001-1", 1, "PROD-001", 12},
		{"LINE-1001-2", 2, "PROD-002", 3},
		{"LINE-1001-3", 3, "PROD-003", 1.5},
	}
	for _, l := range lines {
		if _, err := database.Exec(
			"INSERT INTO order_lines (id, order_id, line_no, product_id, quantity) VALUES (?, ?, ?, ?, ?)",
			l.id, "ORD-1001", l.lineNo, l.product, l.qty,
		); err != nil {
			return fmt.Errorf("seed order lines: %w", err)
		}
	}

	return nil
}
