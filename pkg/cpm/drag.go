package cpm

import "github.com/slacklinehq/slackline/pkg/project"

// Propagate pins task id to a tentative new start and pushes the resulting
// timing floors through the successor graph. It returns a fresh minStart
// override map; sched, tasks and minStart are never modified.
//
// The tentative start is first clamped so the task can never begin before
// its precedence floor: the maximum EF of its predecessors in the current,
// pre-drag schedule. Precedence is inviolable; a drag can consume or exceed
// slack, but it can never pull a predecessor forward.
//
// Successor floors are then raised with a conservative per-predecessor
// finish estimate — max(override, original ES) plus duration — instead of a
// full forward pass per step. The traversal uses an explicit worklist keyed
// by task id; overrides are monotonically non-decreasing over an acyclic
// graph, so the traversal terminates. Re-running Compute over the returned
// map yields the updated schedule, including a possibly different critical
// set and project duration.
func Propagate(id string, start float64, sched *Schedule, tasks []project.Task, minStart map[string]float64) map[string]float64 {
	byID := make(map[string]project.Task, len(tasks))
	successors := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	for _, t := range tasks {
		for _, dep := range t.Deps {
			if _, ok := byID[dep]; ok {
				successors[dep] = append(successors[dep], t.ID)
			}
		}
	}

	out := make(map[string]float64, len(minStart)+1)
	for k, v := range minStart {
		out[k] = v
	}

	if _, ok := byID[id]; !ok {
		return out
	}

	// Clamp against the pre-drag schedule: no earlier than any predecessor's
	// EF, and never negative.
	floor := 0.0
	for _, dep := range byID[id].Deps {
		if ef, ok := sched.EF[dep]; ok && ef > floor {
			floor = ef
		}
	}
	if start < floor {
		start = floor
	}
	out[id] = start

	// estFinish is the conservative finish estimate used during propagation:
	// override if present, else the original ES, plus the duration.
	estFinish := func(p string) float64 {
		es := sched.ES[p]
		if o, ok := out[p]; ok && o > es {
			es = o
		}
		return es + duration(byID[p])
	}

	worklist := append([]string(nil), successors[id]...)
	for len(worklist) > 0 {
		v := worklist[0]
		worklist = worklist[1:]

		vFloor := 0.0
		for _, p := range byID[v].Deps {
			if _, ok := byID[p]; !ok {
				continue
			}
			if f := estFinish(p); f > vFloor {
				vFloor = f
			}
		}

		current := sched.ES[v]
		if o, ok := out[v]; ok && o > current {
			current = o
		}
		if vFloor > current+Tolerance {
			out[v] = vFloor
			worklist = append(worklist, successors[v]...)
		}
	}

	return out
}
