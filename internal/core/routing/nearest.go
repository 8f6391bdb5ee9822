// Package routing contains the pure business logic for sequencing work
// tasks into a travel-efficient visiting order. True TSP is NP-hard and
// unwarranted at warehouse task-list scale; a nearest-neighbor pass is
// the chosen heuristic.
package routing

import "math"

// Point is a 2-D position in warehouse map units.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance to other.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Stop is one task to visit. A nil Target means the task's location
// could not be resolved.
type Stop struct {
	TaskID   string
	Priority int
	Target   *Point
}

// Sequence is the computed visiting order. Unresolved stops are listed
// both at the tail of OrderedTaskIDs (original input order) and in
// UnresolvedTaskIDs; they contribute nothing to TotalDistance since
// routing cannot penalize what it cannot locate.
type Sequence struct {
	OrderedTaskIDs    []string
	UnresolvedTaskIDs []string
	TotalDistance     float64
}

// NearestNeighbor orders stops by repeatedly visiting the closest
// remaining resolved stop from the current position, starting at start.
// Exact distance ties go to the higher-priority stop, then to the lower
// task id, so the sequence is fully deterministic.
func NearestNeighbor(start Point, stops []Stop) Sequence {
	var seq Sequence

	remaining := make([]Stop, 0, len(stops))
	for _, s := range stops {
		if s.Target == nil {
			seq.UnresolvedTaskIDs = append(seq.UnresolvedTaskIDs, s.TaskID)
			continue
		}
		remaining = append(remaining, s)
	}

	current := start
	for len(remaining) > 0 {
		best := 0
		bestDist := current.Distance(*remaining[0].Target)
		for i := 1; i < len(remaining); i++ {
			d := current.Distance(*remaining[i].Target)
			if closer(d, remaining[i], bestDist, remaining[best]) {
				best = i
				bestDist = d
			}
		}

		chosen := remaining[best]
		seq.OrderedTaskIDs = append(seq.OrderedTaskIDs, chosen.TaskID)
		seq.TotalDistance += bestDist
		current = *chosen.Target
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	seq.OrderedTaskIDs = append(seq.OrderedTaskIDs, seq.UnresolvedTaskIDs...)
	return seq
}

// closer reports whether candidate at distance d beats the incumbent at
// distance bestDist under the tie-break rules.
func closer(d float64, candidate Stop, bestDist float64, incumbent Stop) bool {
	if d != bestDist {
		return d < bestDist
	}
	if candidate.Priority != incumbent.Priority {
		return candidate.Priority > incumbent.Priority
	}
	return candidate.TaskID < incumbent.TaskID
}
