package cpm

import (
	"math"

	"github.com/slacklinehq/slackline/pkg/project"
)

// Tolerance is the numerical tolerance for criticality: a task is critical
// when |slack| < Tolerance. Duration arithmetic is exact in practice, so the
// tolerance only absorbs floating-point noise from override values.
const Tolerance = 1e-9

// Schedule is the engine's output for one computation: per-task timing
// bounds, slack, the critical set, and the total project duration. It is
// fully determined by (tasks, dependency edges, minStart overrides) and has
// no lifecycle of its own; every relevant input change recomputes it.
type Schedule struct {
	ES    map[string]float64 `json:"es"`
	EF    map[string]float64 `json:"ef"`
	LS    map[string]float64 `json:"ls"`
	LF    map[string]float64 `json:"lf"`
	Slack map[string]float64 `json:"slack"`

	// Critical holds the ids of zero-slack tasks.
	Critical map[string]bool `json:"critical"`

	// Order is the topological order the schedule was computed over.
	Order []string `json:"order"`

	// Omitted lists tasks excluded from the schedule because they are part
	// of a cycle or depend on an unknown id. Omitted tasks have no entries
	// in the timing maps.
	Omitted []string `json:"omitted,omitempty"`

	// Duration is the total project duration: the maximum EF, 0 when empty.
	Duration float64 `json:"duration"`
}

// IsCritical reports whether the task is on the critical path.
func (s *Schedule) IsCritical(id string) bool { return s.Critical[id] }

// CriticalPath returns the critical task ids in topological order.
func (s *Schedule) CriticalPath() []string {
	var path []string
	for _, id := range s.Order {
		if s.Critical[id] {
			path = append(path, id)
		}
	}
	return path
}

// Compute runs the full CPM computation: forward pass, backward pass, slack
// and criticality. minStart maps task ids to a lower bound on their start,
// used to pin tasks during interactive dragging; it may be nil. Compute
// never mutates its inputs.
//
// Tasks that cannot be topologically ordered (cycle or unknown dependency)
// receive no schedule entries and are listed in Schedule.Omitted. A
// dependency on an id outside the schedule contributes no constraint. A
// non-positive duration is clamped to 1 defensively; validation belongs to
// the editing layer (project.Validate).
func Compute(tasks []project.Task, minStart map[string]float64) *Schedule {
	order, _ := Order(tasks)

	byID := make(map[string]project.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	scheduled := make(map[string]bool, len(order))
	for _, id := range order {
		scheduled[id] = true
	}

	s := &Schedule{
		ES:       make(map[string]float64, len(order)),
		EF:       make(map[string]float64, len(order)),
		LS:       make(map[string]float64, len(order)),
		LF:       make(map[string]float64, len(order)),
		Slack:    make(map[string]float64, len(order)),
		Critical: make(map[string]bool),
		Order:    order,
	}
	for _, t := range tasks {
		if !scheduled[t.ID] {
			s.Omitted = append(s.Omitted, t.ID)
		}
	}

	// Forward pass: ES = max(0, max predecessor EF, override), EF = ES + d.
	for _, id := range order {
		t := byID[id]
		es := 0.0
		for _, dep := range t.Deps {
			if ef, ok := s.EF[dep]; ok && ef > es {
				es = ef
			}
		}
		if floor, ok := minStart[id]; ok && floor > es {
			es = floor
		}
		s.ES[id] = es
		s.EF[id] = es + duration(t)
	}

	for _, ef := range s.EF {
		if ef > s.Duration {
			s.Duration = ef
		}
	}

	// Backward pass over the successor map, in reverse topological order.
	// Sink tasks may finish at project completion without delaying anything.
	successors := make(map[string][]string, len(order))
	for _, id := range order {
		for _, dep := range byID[id].Deps {
			if scheduled[dep] {
				successors[dep] = append(successors[dep], id)
			}
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		t := byID[id]

		lf := s.Duration
		for _, succ := range successors[id] {
			if ls := s.LS[succ]; ls < lf {
				lf = ls
			}
		}
		s.LF[id] = lf
		s.LS[id] = lf - duration(t)

		slack := s.LS[id] - s.ES[id]
		s.Slack[id] = slack
		if math.Abs(slack) < Tolerance {
			s.Critical[id] = true
		}
	}

	return s
}

// duration returns the task's duration clamped to at least 1.
// The engine must not crash or produce negative spans on malformed input.
func duration(t project.Task) float64 {
	if t.Duration < 1 {
		return 1
	}
	return float64(t.Duration)
}
