package broadcast

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/example/dispatch/internal/ports/secondary"
)

type stubEventRepo struct {
	created []*secondary.TaskEventRecord
	err     error
}

func (s *stubEventRepo) Create(ctx context.Context, event *secondary.TaskEventRecord) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, event)
	return nil
}

func (s *stubEventRepo) List(ctx context.Context, filters secondary.TaskEventFilters) ([]*secondary.TaskEventRecord, error) {
	return s.created, nil
}

func TestEventBroadcaster_TaskTransitioned(t *testing.T) {
	repo := &stubEventRepo{}
	b := NewEventBroadcaster(repo, zerolog.Nop())

	err := b.TaskTransitioned(context.Background(), secondary.TaskTransition{
		TaskID:      "TASK-0001",
		CompanyID:   "COMP-001",
		WarehouseID: "WH-001",
		ActorID:     "AGENT-001",
		FromStatus:  "pending",
		ToStatus:    "assigned",
		Detail:      "planner assignment",
	})
	if err != nil {
		t.Fatalf("TaskTransitioned failed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.created))
	}
	got := repo.created[0]
	if got.ID == "" {
		t.Error("expected generated event id")
	}
	if got.TaskID != "TASK-0001" || got.FromStatus != "pending" || got.ToStatus != "assigned" {
		t.Errorf("unexpected event: %+v", got)
	}
	if got.Detail != "planner assignment" {
		t.Errorf("expected detail, got %q", got.Detail)
	}
}

func TestEventBroadcaster_WrapsStoreError(t *testing.T) {
	wantErr := errors.New("disk full")
	b := NewEventBroadcaster(&stubEventRepo{err: wantErr}, zerolog.Nop())

	err := b.TaskTransitioned(context.Background(), secondary.TaskTransition{TaskID: "TASK-0001"})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
