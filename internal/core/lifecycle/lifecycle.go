// Package lifecycle contains the pure business logic for the work task
// state machine. Guards evaluate preconditions without side effects;
// transition functions compute the resulting status and timestamps.
package lifecycle

import "time"

// Status represents the possible states of a work task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether the status accepts no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AgentKind is the closed set of assignee kinds. Keeping it closed means
// assignment logic cannot branch on an unrecognized kind.
type AgentKind string

const (
	KindHuman AgentKind = "human"
	KindRobot AgentKind = "robot"
)

// ValidKind reports whether k is a known agent kind.
func ValidKind(k AgentKind) bool {
	return k == KindHuman || k == KindRobot
}

// TransitionResult contains the result of a status transition.
// This is a value object that captures both the new status and the
// timestamp side effect of the transition. Each timestamp is set by
// exactly one transition and never mutated afterwards.
type TransitionResult struct {
	NewStatus   Status
	AssignedAt  *time.Time // set by Assign
	StartedAt   *time.Time // set by Start
	CompletedAt *time.Time // set by Complete
}

// ApplyAssign computes the result of assigning a pending task.
// The caller passes the current time to enable testing.
func ApplyAssign(now time.Time) TransitionResult {
	return TransitionResult{NewStatus: StatusAssigned, AssignedAt: &now}
}

// ApplyStart computes the result of starting an assigned task.
func ApplyStart(now time.Time) TransitionResult {
	return TransitionResult{NewStatus: StatusInProgress, StartedAt: &now}
}

// ApplyComplete computes the result of completing a task.
func ApplyComplete(now time.Time) TransitionResult {
	return TransitionResult{NewStatus: StatusCompleted, CompletedAt: &now}
}

// ApplyCancel computes the result of cancelling a task.
func ApplyCancel() TransitionResult {
	return TransitionResult{NewStatus: StatusCancelled}
}

// InitialStatus returns the status for a newly planned task.
func InitialStatus() Status {
	return StatusPending
}
