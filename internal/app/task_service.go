package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/dispatch/internal/core/lifecycle"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo    secondary.TaskRepository
	broadcaster secondary.Broadcaster
	now         func() time.Time
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(taskRepo secondary.TaskRepository, broadcaster secondary.Broadcaster) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo:    taskRepo,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// recordToTask converts a storage record to the primary port DTO.
func recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:            r.ID,
		CompanyID:     r.CompanyID,
		WarehouseID:   r.WarehouseID,
		Type:          r.Type,
		Priority:      r.Priority,
		Status:        r.Status,
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		BinID:         r.BinID,
		LocationCode:  r.LocationCode,
		AssigneeID:    r.AssigneeID,
		AssigneeKind:  r.AssigneeKind,
		SourceOrderID: r.SourceOrderID,
		Notes:         r.Notes,
		CancelReason:  r.CancelReason,
		Deleted:       r.Deleted,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		AssignedAt:    r.AssignedAt,
		StartedAt:     r.StartedAt,
		CompletedAt:   r.CompletedAt,
	}
}

// GetTask retrieves a task by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, companyID, taskID string) (*primary.Task, error) {
	if companyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}
	record, err := s.taskRepo.GetByID(ctx, companyID, taskID)
	if err != nil {
		return nil, err
	}
	return recordToTask(record), nil
}

// ListTasks lists tasks with optional filters.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filters primary.TaskFilters) ([]*primary.Task, error) {
	if filters.CompanyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}
	records, err := s.taskRepo.List(ctx, secondary.TaskFilters{
		CompanyID:      filters.CompanyID,
		WarehouseID:    filters.WarehouseID,
		Status:         filters.Status,
		Type:           filters.Type,
		AssigneeID:     filters.AssigneeID,
		SourceOrderID:  filters.SourceOrderID,
		IncludeDeleted: filters.IncludeDeleted,
		Limit:          filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	tasks := make([]*primary.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, recordToTask(r))
	}
	return tasks, nil
}

// StartTask moves an assigned task to in_progress.
func (s *TaskServiceImpl) StartTask(ctx context.Context, req primary.TransitionRequest) error {
	record, err := s.getForTransition(ctx, req)
	if err != nil {
		return err
	}

	guard := lifecycle.CanStart(lifecycle.StartContext{
		TaskID: record.ID,
		Status: lifecycle.Status(record.Status),
	})
	if err := guard.Error(); err != nil {
		return err
	}

	transition := lifecycle.ApplyStart(s.now().UTC())
	ok, err := s.taskRepo.StartIfAssigned(ctx, record.ID, transition.StartedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to start task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %s was concurrently moved", record.ID)
	}

	_ = s.broadcaster.TaskTransitioned(ctx, secondary.TaskTransition{
		TaskID:      record.ID,
		CompanyID:   record.CompanyID,
		WarehouseID: record.WarehouseID,
		ActorID:     req.ActorID,
		FromStatus:  record.Status,
		ToStatus:    string(transition.NewStatus),
	})
	return nil
}

// CompleteTask marks an assigned or in-progress task completed.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, req primary.TransitionRequest) error {
	record, err := s.getForTransition(ctx, req)
	if err != nil {
		return err
	}

	guard := lifecycle.CanComplete(lifecycle.CompleteContext{
		TaskID: record.ID,
		Status: lifecycle.Status(record.Status),
	})
	if err := guard.Error(); err != nil {
		return err
	}

	transition := lifecycle.ApplyComplete(s.now().UTC())
	ok, err := s.taskRepo.CompleteIfActive(ctx, record.ID, req.Notes, transition.CompletedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %s was concurrently moved", record.ID)
	}

	_ = s.broadcaster.TaskTransitioned(ctx, secondary.TaskTransition{
		TaskID:      record.ID,
		CompanyID:   record.CompanyID,
		WarehouseID: record.WarehouseID,
		ActorID:     req.ActorID,
		FromStatus:  record.Status,
		ToStatus:    string(transition.NewStatus),
		Detail:      req.Notes,
	})
	return nil
}

// CancelTask cancels any non-terminal task with a reason.
func (s *TaskServiceImpl) CancelTask(ctx context.Context, req primary.TransitionRequest) error {
	record, err := s.getForTransition(ctx, req)
	if err != nil {
		return err
	}

	guard := lifecycle.CanCancel(lifecycle.CancelContext{
		TaskID: record.ID,
		Status: lifecycle.Status(record.Status),
	})
	if err := guard.Error(); err != nil {
		return err
	}

	transition := lifecycle.ApplyCancel()
	ok, err := s.taskRepo.CancelIfActive(ctx, record.ID, req.Reason)
	if err != nil {
		return fmt.Errorf("failed to cancel task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %s was concurrently moved", record.ID)
	}

	_ = s.broadcaster.TaskTransitioned(ctx, secondary.TaskTransition{
		TaskID:      record.ID,
		CompanyID:   record.CompanyID,
		WarehouseID: record.WarehouseID,
		ActorID:     req.ActorID,
		FromStatus:  record.Status,
		ToStatus:    string(transition.NewStatus),
		Detail:      req.Reason,
	})
	return nil
}

// DeleteTask soft-deletes a task for audit retention.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, companyID, taskID string) error {
	if companyID == "" {
		return primary.ErrCompanyContextMissing
	}
	return s.taskRepo.SoftDelete(ctx, companyID, taskID)
}

func (s *TaskServiceImpl) getForTransition(ctx context.Context, req primary.TransitionRequest) (*secondary.TaskRecord, error) {
	if req.CompanyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}
	return s.taskRepo.GetByID(ctx, req.CompanyID, req.TaskID)
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
