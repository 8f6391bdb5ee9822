// Package broadcast implements the task-transition sink: every
// committed state change is appended to the event audit trail and
// logged structurally.
package broadcast

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/dispatch/internal/ports/secondary"
)

// EventBroadcaster records task transitions as audit events.
type EventBroadcaster struct {
	events secondary.TaskEventRepository
	logger zerolog.Logger
}

// NewEventBroadcaster creates a broadcaster over the event repository.
func NewEventBroadcaster(events secondary.TaskEventRepository, logger zerolog.Logger) *EventBroadcaster {
	return &EventBroadcaster{events: events, logger: logger}
}

// TaskTransitioned appends one audit event for a committed transition.
func (b *EventBroadcaster) TaskTransitioned(ctx context.Context, transition secondary.TaskTransition) error {
	record := &secondary.TaskEventRecord{
		ID:          uuid.New().String(),
		TaskID:      transition.TaskID,
		CompanyID:   transition.CompanyID,
		WarehouseID: transition.WarehouseID,
		ActorID:     transition.ActorID,
		FromStatus:  transition.FromStatus,
		ToStatus:    transition.ToStatus,
		Detail:      transition.Detail,
	}

	if err := b.events.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to record task transition: %w", err)
	}

	b.logger.Info().
		Str("task_id", transition.TaskID).
		Str("warehouse_id", transition.WarehouseID).
		Str("from", transition.FromStatus).
		Str("to", transition.ToStatus).
		Str("actor_id", transition.ActorID).
		Msg("task transitioned")

	return nil
}

// Ensure EventBroadcaster implements the interface
var _ secondary.Broadcaster = (*EventBroadcaster)(nil)
