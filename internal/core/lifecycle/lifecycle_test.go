package lifecycle

import (
	"testing"
	"time"
)

func TestTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusAssigned, false},
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestApplyTransitions(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("assign sets assigned_at only", func(t *testing.T) {
		result := ApplyAssign(now)
		if result.NewStatus != StatusAssigned {
			t.Errorf("NewStatus = %s, want %s", result.NewStatus, StatusAssigned)
		}
		if result.AssignedAt == nil || !result.AssignedAt.Equal(now) {
			t.Errorf("AssignedAt = %v, want %v", result.AssignedAt, now)
		}
		if result.StartedAt != nil || result.CompletedAt != nil {
			t.Error("assign must not set started_at or completed_at")
		}
	})

	t.Run("start sets started_at only", func(t *testing.T) {
		result := ApplyStart(now)
		if result.NewStatus != StatusInProgress {
			t.Errorf("NewStatus = %s, want %s", result.NewStatus, StatusInProgress)
		}
		if result.StartedAt == nil || !result.StartedAt.Equal(now) {
			t.Errorf("StartedAt = %v, want %v", result.StartedAt, now)
		}
		if result.AssignedAt != nil || result.CompletedAt != nil {
			t.Error("start must not set assigned_at or completed_at")
		}
	})

	t.Run("complete sets completed_at only", func(t *testing.T) {
		result := ApplyComplete(now)
		if result.NewStatus != StatusCompleted {
			t.Errorf("NewStatus = %s, want %s", result.NewStatus, StatusCompleted)
		}
		if result.CompletedAt == nil || !result.CompletedAt.Equal(now) {
			t.Errorf("CompletedAt = %v, want %v", result.CompletedAt, now)
		}
	})

	t.Run("cancel sets no timestamps", func(t *testing.T) {
		result := ApplyCancel()
		if result.NewStatus != StatusCancelled {
			t.Errorf("NewStatus = %s, want %s", result.NewStatus, StatusCancelled)
		}
		if result.AssignedAt != nil || result.StartedAt != nil || result.CompletedAt != nil {
			t.Error("cancel must not set any timestamps")
		}
	})
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(); got != StatusPending {
		t.Errorf("InitialStatus() = %s, want %s", got, StatusPending)
	}
}

func TestValidKind(t *testing.T) {
	if !ValidKind(KindHuman) || !ValidKind(KindRobot) {
		t.Error("human and robot must be valid kinds")
	}
	if ValidKind(AgentKind("forklift")) {
		t.Error("unknown kind must not validate")
	}
}
