package lifecycle

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
// NoOp marks a transition that is permitted but changes nothing
// (idempotent re-assign to the same agent).
type GuardResult struct {
	Allowed bool
	NoOp    bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// AssignContext provides context for assignment guards.
type AssignContext struct {
	TaskID            string
	Status            Status
	CurrentAssigneeID string // empty if unassigned
	NewAssigneeID     string
	NewAssigneeKind   AgentKind
}

// CanAssign evaluates whether a task can be assigned to an agent.
// A zero NewAssigneeID asks whether the task is eligible for assignment
// to any agent; the identity checks are skipped.
// Rules:
//   - Terminal tasks reject all transitions
//   - Re-assigning the identical agent is a permitted no-op
//   - An already-assigned task cannot move to a different agent
//   - Only pending tasks accept a first assignment
func CanAssign(ctx AssignContext) GuardResult {
	if ctx.NewAssigneeID != "" && !ValidKind(ctx.NewAssigneeKind) {
		return GuardResult{Reason: fmt.Sprintf("task %s: unknown agent kind %q", ctx.TaskID, ctx.NewAssigneeKind)}
	}
	if ctx.Status.Terminal() {
		return GuardResult{Reason: fmt.Sprintf("task %s is %s", ctx.TaskID, ctx.Status)}
	}
	if ctx.CurrentAssigneeID != "" {
		if ctx.CurrentAssigneeID == ctx.NewAssigneeID {
			return GuardResult{Allowed: true, NoOp: true}
		}
		return GuardResult{Reason: fmt.Sprintf("task %s is already assigned to %s", ctx.TaskID, ctx.CurrentAssigneeID)}
	}
	if ctx.Status != StatusPending {
		return GuardResult{Reason: fmt.Sprintf("task %s is %s, not pending", ctx.TaskID, ctx.Status)}
	}
	return GuardResult{Allowed: true}
}

// StartContext provides context for start guards.
type StartContext struct {
	TaskID string
	Status Status
}

// CanStart evaluates whether a task can move to in_progress.
// Only assigned tasks can be started.
func CanStart(ctx StartContext) GuardResult {
	if ctx.Status.Terminal() {
		return GuardResult{Reason: fmt.Sprintf("task %s is %s", ctx.TaskID, ctx.Status)}
	}
	if ctx.Status != StatusAssigned {
		return GuardResult{Reason: fmt.Sprintf("task %s is %s, not assigned", ctx.TaskID, ctx.Status)}
	}
	return GuardResult{Allowed: true}
}

// CompleteContext provides context for completion guards.
type CompleteContext struct {
	TaskID string
	Status Status
}

// CanComplete evaluates whether a task can be completed.
// Assigned and in-progress tasks can complete; terminal tasks cannot.
func CanComplete(ctx CompleteContext) GuardResult {
	if ctx.Status.Terminal() {
		return GuardResult{Reason: fmt.Sprintf("task %s is %s", ctx.TaskID, ctx.Status)}
	}
	if ctx.Status != StatusAssigned && ctx.Status != StatusInProgress {
		return GuardResult{Reason: fmt.Sprintf("task %s is %s, not assigned or in progress", ctx.TaskID, ctx.Status)}
	}
	return GuardResult{Allowed: true}
}

// CancelContext provides context for cancellation guards.
type CancelContext struct {
	TaskID string
	Status Status
}

// CanCancel evaluates whether a task can be cancelled.
// Any non-terminal task can be cancelled.
func CanCancel(ctx CancelContext) GuardResult {
	if ctx.Status.Terminal() {
		return GuardResult{Reason: fmt.Sprintf("task %s is %s", ctx.TaskID, ctx.Status)}
	}
	return GuardResult{Allowed: true}
}
