package cpm

import (
	"github.com/slacklinehq/slackline/pkg/errors"
	"github.com/slacklinehq/slackline/pkg/project"
)

// Order computes a topological order of the tasks using Kahn's algorithm.
//
// The in-degree of a task is the number of its declared predecessors. The
// queue is seeded with all zero-in-degree tasks in input order, and ties keep
// input order throughout, so independent tasks appear in the order the
// project lists them.
//
// If the graph contains a cycle, or a task depends (directly or transitively)
// on an id that does not exist, those tasks never reach in-degree zero. Order
// then returns the partial order covering the sortable tasks together with an
// ErrCodeCycle diagnostic; callers may log the diagnostic and continue with
// the partial order.
func Order(tasks []project.Task) ([]string, error) {
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	// Successor map and in-degrees. A dependency on an unknown id still
	// counts toward the in-degree: it can never be satisfied, which is what
	// keeps the dependent task out of the order.
	successors := make(map[string][]string, len(tasks))
	inDegree := make(map[string]int, len(tasks))
	for _, t := range tasks {
		inDegree[t.ID] = len(t.Deps)
		for _, dep := range t.Deps {
			if known[dep] {
				successors[dep] = append(successors[dep], t.ID)
			}
		}
	}

	queue := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if inDegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	order := make([]string, 0, len(tasks))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, succ := range successors[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) != len(tasks) {
		return order, errors.New(errors.ErrCodeCycle,
			"task graph has a cycle or unknown dependency (%d of %d tasks sortable)",
			len(order), len(tasks))
	}
	return order, nil
}
