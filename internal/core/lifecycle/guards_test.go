package lifecycle

import "testing"

func TestCanAssign(t *testing.T) {
	tests := []struct {
		name        string
		ctx         AssignContext
		wantAllowed bool
		wantNoOp    bool
		wantReason  string
	}{
		{
			name: "can assign pending unassigned task",
			ctx: AssignContext{
				TaskID:          "TASK-0001",
				Status:          StatusPending,
				NewAssigneeID:   "AGENT-001",
				NewAssigneeKind: KindHuman,
			},
			wantAllowed: true,
		},
		{
			name: "can assign to robot",
			ctx: AssignContext{
				TaskID:          "TASK-0001",
				Status:          StatusPending,
				NewAssigneeID:   "AGENT-003",
				NewAssigneeKind: KindRobot,
			},
			wantAllowed: true,
		},
		{
			name: "re-assign to same agent is a no-op",
			ctx: AssignContext{
				TaskID:            "TASK-0001",
				Status:            StatusAssigned,
				CurrentAssigneeID: "AGENT-001",
				NewAssigneeID:     "AGENT-001",
				NewAssigneeKind:   KindHuman,
			},
			wantAllowed: true,
			wantNoOp:    true,
		},
		{
			name: "cannot re-assign to different agent",
			ctx: AssignContext{
				TaskID:            "TASK-0001",
				Status:            StatusAssigned,
				CurrentAssigneeID: "AGENT-001",
				NewAssigneeID:     "AGENT-002",
				NewAssigneeKind:   KindHuman,
			},
			wantAllowed: false,
			wantReason:  "task TASK-0001 is already assigned to AGENT-001",
		},
		{
			name: "cannot assign completed task",
			ctx: AssignContext{
				TaskID:          "TASK-0001",
				Status:          StatusCompleted,
				NewAssigneeID:   "AGENT-001",
				NewAssigneeKind: KindHuman,
			},
			wantAllowed: false,
			wantReason:  "task TASK-0001 is completed",
		},
		{
			name: "cannot assign cancelled task",
			ctx: AssignContext{
				TaskID:          "TASK-0001",
				Status:          StatusCancelled,
				NewAssigneeID:   "AGENT-001",
				NewAssigneeKind: KindHuman,
			},
			wantAllowed: false,
			wantReason:  "task TASK-0001 is cancelled",
		},
		{
			name: "empty assignee checks eligibility for any agent",
			ctx: AssignContext{
				TaskID: "TASK-0001",
				Status: StatusPending,
			},
			wantAllowed: true,
		},
		{
			name: "eligibility check rejects already-assigned task",
			ctx: AssignContext{
				TaskID:            "TASK-0001",
				Status:            StatusAssigned,
				CurrentAssigneeID: "AGENT-001",
			},
			wantAllowed: false,
			wantReason:  "task TASK-0001 is already assigned to AGENT-001",
		},
		{
			name: "eligibility check rejects terminal task",
			ctx: AssignContext{
				TaskID: "TASK-0001",
				Status: StatusCompleted,
			},
			wantAllowed: false,
			wantReason:  "task TASK-0001 is completed",
		},
		{
			name: "cannot assign with unknown kind",
			ctx: AssignContext{
				TaskID:          "TASK-0001",
				Status:          StatusPending,
				NewAssigneeID:   "AGENT-001",
				NewAssigneeKind: AgentKind("drone"),
			},
			wantAllowed: false,
			wantReason:  `task TASK-0001: unknown agent kind "drone"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanAssign(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.NoOp != tt.wantNoOp {
				t.Errorf("NoOp = %v, want %v", result.NoOp, tt.wantNoOp)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanStart(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		wantAllowed bool
	}{
		{"assigned task can start", StatusAssigned, true},
		{"pending task cannot start", StatusPending, false},
		{"in-progress task cannot start again", StatusInProgress, false},
		{"completed task cannot start", StatusCompleted, false},
		{"cancelled task cannot start", StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanStart(StartContext{TaskID: "TASK-0001", Status: tt.status})
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
		})
	}
}

func TestCanComplete(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		wantAllowed bool
	}{
		{"assigned task can complete", StatusAssigned, true},
		{"in-progress task can complete", StatusInProgress, true},
		{"pending task cannot complete", StatusPending, false},
		{"completed task cannot complete again", StatusCompleted, false},
		{"cancelled task cannot complete", StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanComplete(CompleteContext{TaskID: "TASK-0001", Status: tt.status})
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		wantAllowed bool
	}{
		{"pending task can cancel", StatusPending, true},
		{"assigned task can cancel", StatusAssigned, true},
		{"in-progress task can cancel", StatusInProgress, true},
		{"completed task cannot cancel", StatusCompleted, false},
		{"cancelled task cannot cancel again", StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCancel(CancelContext{TaskID: "TASK-0001", Status: tt.status})
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
		})
	}
}
