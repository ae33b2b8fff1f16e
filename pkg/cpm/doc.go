// Package cpm implements the Critical Path Method scheduling engine.
//
// Given a project's tasks (durations plus finish-to-start predecessor sets),
// the engine computes for every task its earliest start/finish (ES/EF),
// latest start/finish (LS/LF), slack (LS − ES), and whether it lies on the
// critical path. The total project duration is the maximum EF.
//
// # Pipeline
//
// Scheduling is a two-stage computation:
//
//  1. Order: a topological order over the task graph (Kahn's algorithm)
//  2. Compute: forward pass (ES/EF), backward pass (LS/LF), slack derivation
//
// Interactive "what-if" dragging is handled by Propagate, which pins a task
// to a tentative start, clamps it against its predecessors, and pushes the
// resulting floors through the successor graph. The returned override map is
// then fed back into Compute for a full recomputation; the backward pass
// depends on global structure and cannot be patched incrementally.
//
// # Purity
//
// Every function in this package is pure: inputs are treated as read-only
// snapshots and results are freshly allocated. The engine holds no state
// across calls, so it can be used from any concurrency model without
// synchronization.
//
// # Malformed graphs
//
// Cycles and dependencies on unknown task ids make a complete topological
// order impossible. Order returns the sortable prefix together with a
// structured diagnostic error; Compute schedules only the sortable tasks and
// lists the rest in Schedule.Omitted. Callers decide whether to surface the
// diagnostic or proceed with the partial schedule.
package cpm
