package app

import (
	"context"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// EventServiceImpl implements the EventService interface.
type EventServiceImpl struct {
	eventRepo secondary.TaskEventRepository
}

// NewEventService creates a new EventService with injected dependencies.
func NewEventService(eventRepo secondary.TaskEventRepository) *EventServiceImpl {
	return &EventServiceImpl{eventRepo: eventRepo}
}

// ListEvents retrieves task state-change events, newest first.
func (s *EventServiceImpl) ListEvents(ctx context.Context, filters primary.EventFilters) ([]*primary.TaskEvent, error) {
	if filters.CompanyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}

	records, err := s.eventRepo.List(ctx, secondary.TaskEventFilters{
		CompanyID:   filters.CompanyID,
		WarehouseID: filters.WarehouseID,
		TaskID:      filters.TaskID,
		Limit:       filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	events := make([]*primary.TaskEvent, 0, len(records))
	for _, r := range records {
		events = append(events, &primary.TaskEvent{
			ID:          r.ID,
			TaskID:      r.TaskID,
			CompanyID:   r.CompanyID,
			WarehouseID: r.WarehouseID,
			ActorID:     r.ActorID,
			FromStatus:  r.FromStatus,
			ToStatus:    r.ToStatus,
			Detail:      r.Detail,
			CreatedAt:   r.CreatedAt,
		})
	}
	return events, nil
}

// Ensure EventServiceImpl implements the interface
var _ primary.EventService = (*EventServiceImpl)(nil)
