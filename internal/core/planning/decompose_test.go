package planning

import "testing"

func TestBuildTaskDrafts(t *testing.T) {
	base := DecomposeInput{
		WarehouseID:     "WH-001",
		TaskType:        "pick",
		DefaultPriority: 5,
	}

	t.Run("eligible lines become drafts", func(t *testing.T) {
		in := base
		in.Orders = []OrderInput{{
			OrderID:     "ORD-1001",
			WarehouseID: "WH-001",
			Priority:    8,
			HasPriority: true,
			Lines: []LineInput{
				{LineID: "L1", ProductID: "PROD-001", Quantity: 12, ProductKnown: true, ProductActive: true, PreferredBin: "BIN-0001"},
				{LineID: "L2", ProductID: "PROD-002", Quantity: 3, ProductKnown: true, ProductActive: true},
			},
		}}

		drafts, skips := BuildTaskDrafts(in)
		if len(skips) != 0 {
			t.Fatalf("skips = %v, want none", skips)
		}
		if len(drafts) != 2 {
			t.Fatalf("drafts = %d, want 2", len(drafts))
		}
		if drafts[0].Priority != 8 {
			t.Errorf("draft priority = %d, want order priority 8", drafts[0].Priority)
		}
		if drafts[0].BinID != "BIN-0001" {
			t.Errorf("draft bin = %q, want product preferred bin", drafts[0].BinID)
		}
		if drafts[1].BinID != "" {
			t.Errorf("draft bin = %q, want empty for product without preferred bin", drafts[1].BinID)
		}
		if drafts[0].SourceOrderID != "ORD-1001" || drafts[0].Type != "pick" {
			t.Errorf("draft provenance = %s/%s, want ORD-1001/pick", drafts[0].SourceOrderID, drafts[0].Type)
		}
	})

	t.Run("order without priority falls back to default", func(t *testing.T) {
		in := base
		in.Orders = []OrderInput{{
			OrderID:     "ORD-1002",
			WarehouseID: "WH-001",
			Lines: []LineInput{
				{LineID: "L1", ProductID: "PROD-001", Quantity: 1, ProductKnown: true, ProductActive: true},
			},
		}}

		drafts, _ := BuildTaskDrafts(in)
		if len(drafts) != 1 || drafts[0].Priority != 5 {
			t.Fatalf("drafts = %v, want one draft at default priority 5", drafts)
		}
	})

	t.Run("bad lines are skipped without aborting the batch", func(t *testing.T) {
		in := base
		in.Orders = []OrderInput{{
			OrderID:     "ORD-1003",
			WarehouseID: "WH-001",
			Lines: []LineInput{
				{LineID: "L1", ProductID: "PROD-001", Quantity: 2, ProductKnown: true, ProductActive: true},
				{LineID: "L2", ProductID: "PROD-404", Quantity: 2},
				{LineID: "L3", ProductID: "PROD-004", Quantity: 2, ProductKnown: true, ProductActive: false},
				{LineID: "L4", ProductID: "PROD-001", Quantity: 0, ProductKnown: true, ProductActive: true},
			},
		}}

		drafts, skips := BuildTaskDrafts(in)
		if len(drafts) != 1 {
			t.Fatalf("drafts = %d, want 1 (good line still planned)", len(drafts))
		}
		if len(skips) != 3 {
			t.Fatalf("skips = %d, want 3", len(skips))
		}
		wantReasons := []SkipReason{SkipProductUnknown, SkipProductInactive, SkipInvalidQuantity}
		for i, want := range wantReasons {
			if skips[i].Reason != want {
				t.Errorf("skip[%d].Reason = %s, want %s", i, skips[i].Reason, want)
			}
		}
	})

	t.Run("warehouse mismatch skips whole order lines", func(t *testing.T) {
		in := base
		in.Orders = []OrderInput{{
			OrderID:     "ORD-1004",
			WarehouseID: "WH-002",
			Lines: []LineInput{
				{LineID: "L1", ProductID: "PROD-001", Quantity: 2, ProductKnown: true, ProductActive: true},
			},
		}}

		drafts, skips := BuildTaskDrafts(in)
		if len(drafts) != 0 {
			t.Fatalf("drafts = %d, want 0", len(drafts))
		}
		if len(skips) != 1 || skips[0].Reason != SkipWarehouseMismatch {
			t.Fatalf("skips = %v, want one warehouse_mismatch", skips)
		}
	})

	t.Run("replanning with live tasks skips every line", func(t *testing.T) {
		in := base
		in.Orders = []OrderInput{{
			OrderID:     "ORD-1001",
			WarehouseID: "WH-001",
			Lines: []LineInput{
				{LineID: "L1", ProductID: "PROD-001", Quantity: 12, ProductKnown: true, ProductActive: true, HasLiveTask: true},
				{LineID: "L2", ProductID: "PROD-002", Quantity: 3, ProductKnown: true, ProductActive: true, HasLiveTask: true},
			},
		}}

		drafts, skips := BuildTaskDrafts(in)
		if len(drafts) != 0 {
			t.Fatalf("drafts = %d, want 0 on idempotent re-plan", len(drafts))
		}
		if len(skips) != 2 {
			t.Fatalf("skips = %d, want 2", len(skips))
		}
		for _, s := range skips {
			if s.Reason != SkipDuplicateTask {
				t.Errorf("skip reason = %s, want %s", s.Reason, SkipDuplicateTask)
			}
		}
	})
}
