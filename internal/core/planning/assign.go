package planning

import (
	"sort"
	"time"

	"github.com/example/dispatch/internal/core/lifecycle"
)

// TaskInput represents one pending task for assignment planning.
type TaskInput struct {
	ID        string
	Priority  int
	CreatedAt time.Time
}

// AgentInput represents one available agent with its open-task count
// (assigned + in_progress) at snapshot time.
type AgentInput struct {
	ID        string
	Kind      lifecycle.AgentKind
	OpenTasks int
}

// AssignmentPlanInput contains the inputs for an assignment run.
type AssignmentPlanInput struct {
	Tasks            []TaskInput
	Agents           []AgentInput
	MaxTasksPerAgent int
}

// PlannedAssignment pairs one task with its chosen agent.
type PlannedAssignment struct {
	TaskID  string
	AgentID string
	Kind    lifecycle.AgentKind
}

// AssignmentSkip records one task that could not be planned.
type AssignmentSkip struct {
	TaskID string
	Reason SkipReason
	Detail string
}

// PlanAssignments balances tasks across the agent pool. Tasks are taken
// in priority-descending order with created-at ascending as the stable
// tie-break, so older high-priority work is never starved. Each task
// goes to the agent with the currently lowest open-task count; the count
// is incremented in the working set before the next pick. This is
// greedy, online load balancing over a per-call snapshot - agents move
// and batches race, so a globally optimal static assignment would be
// stale before it committed.
//
// Agents at the MaxTasksPerAgent ceiling are not eligible; when every
// agent is at the ceiling, remaining tasks are skipped with
// no_available_agent and stay pending.
func PlanAssignments(in AssignmentPlanInput) ([]PlannedAssignment, []AssignmentSkip) {
	tasks := make([]TaskInput, len(in.Tasks))
	copy(tasks, in.Tasks)
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority > tasks[j].Priority
		}
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})

	agents := make([]AgentInput, len(in.Agents))
	copy(agents, in.Agents)

	var planned []PlannedAssignment
	var skips []AssignmentSkip

	for _, task := range tasks {
		idx := pickAgent(agents, in.MaxTasksPerAgent)
		if idx < 0 {
			skips = append(skips, AssignmentSkip{
				TaskID: task.ID,
				Reason: SkipNoAvailableAgent,
				Detail: "all agents are at capacity",
			})
			continue
		}

		planned = append(planned, PlannedAssignment{
			TaskID:  task.ID,
			AgentID: agents[idx].ID,
			Kind:    agents[idx].Kind,
		})
		agents[idx].OpenTasks++
	}

	return planned, skips
}

// pickAgent returns the index of the eligible agent with the lowest open
// count, breaking ties on agent id for determinism. Returns -1 if no
// agent is below the ceiling.
func pickAgent(agents []AgentInput, ceiling int) int {
	best := -1
	for i, a := range agents {
		if a.OpenTasks >= ceiling {
			continue
		}
		if best < 0 || a.OpenTasks < agents[best].OpenTasks ||
			(a.OpenTasks == agents[best].OpenTasks && a.ID < agents[best].ID) {
			best = i
		}
	}
	return best
}
