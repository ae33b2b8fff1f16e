package cpm

import (
	"testing"

	"github.com/slacklinehq/slackline/pkg/project"
)

func TestPropagate_DragConsumesAndExceedsSlack(t *testing.T) {
	tasks := houseTasks()
	sched := Compute(tasks, nil)

	// Drag b from its natural start 4 to 6. The floor cascades:
	// d waits for b's estimated finish 9, e for d's finish 14.
	overrides := Propagate("b", 6, sched, tasks, nil)

	want := map[string]float64{"b": 6, "d": 9, "e": 14}
	if len(overrides) != len(want) {
		t.Fatalf("overrides = %v, want %v", overrides, want)
	}
	for id, v := range want {
		if overrides[id] != v {
			t.Errorf("override[%s] = %v, want %v", id, overrides[id], v)
		}
	}

	// Full recomputation over the new overrides shifts the project end.
	next := Compute(tasks, overrides)
	if next.Duration != 17 {
		t.Errorf("Duration after drag = %v, want 17", next.Duration)
	}
}

func TestPropagate_ClampedToPredecessorFloor(t *testing.T) {
	tasks := houseTasks()
	sched := Compute(tasks, nil)

	// b cannot start before EF[a] = 4 no matter how far left it is dragged.
	overrides := Propagate("b", -10, sched, tasks, nil)

	if overrides["b"] != 4 {
		t.Errorf("override[b] = %v, want clamp to 4", overrides["b"])
	}
	// A drag back to the natural start raises no successor floors.
	if _, ok := overrides["d"]; ok {
		t.Errorf("no successor override expected, got %v", overrides)
	}
}

func TestPropagate_SourceTaskClampsToZero(t *testing.T) {
	tasks := houseTasks()
	sched := Compute(tasks, nil)

	overrides := Propagate("a", -3, sched, tasks, nil)
	if overrides["a"] != 0 {
		t.Errorf("override[a] = %v, want 0 (no artificial floor below zero)", overrides["a"])
	}
}

func TestPropagate_WithinSlackDoesNotPropagate(t *testing.T) {
	// A(5) → B(1) → D(1); A(5) → C(10) → D(1). B has 9 units of slack;
	// dragging it 3 right stays inside the slack and must not move d.
	tasks := []project.Task{
		task("a", 5),
		task("b", 1, "a"),
		task("c", 10, "a"),
		task("d", 1, "b", "c"),
	}
	sched := Compute(tasks, nil)

	overrides := Propagate("b", 8, sched, tasks, nil)

	if overrides["b"] != 8 {
		t.Errorf("override[b] = %v, want 8", overrides["b"])
	}
	if _, ok := overrides["d"]; ok {
		t.Error("d's floor (15 via c) is not exceeded; no override expected")
	}

	next := Compute(tasks, overrides)
	if next.Duration != sched.Duration {
		t.Errorf("Duration changed from %v to %v inside slack", sched.Duration, next.Duration)
	}
}

func TestPropagate_Monotonicity(t *testing.T) {
	tasks := houseTasks()
	sched := Compute(tasks, nil)

	overrides := Propagate("a", 3, sched, tasks, nil)
	next := Compute(tasks, overrides)

	// No resulting minStart may be lower than the pre-drag ES, and
	// precedence must hold everywhere after recomputation.
	for id, v := range overrides {
		if v < sched.ES[id] {
			t.Errorf("override[%s] = %v below pre-drag ES %v", id, v, sched.ES[id])
		}
	}
	byID := make(map[string]project.Task)
	for _, tk := range tasks {
		byID[tk.ID] = tk
	}
	for _, id := range next.Order {
		for _, dep := range byID[id].Deps {
			if next.ES[id]+Tolerance < next.EF[dep] {
				t.Errorf("precedence violated after drag: ES[%s] < EF[%s]", id, dep)
			}
		}
	}
}

func TestPropagate_PreservesInputMap(t *testing.T) {
	tasks := houseTasks()
	minStart := map[string]float64{"c": 5}
	sched := Compute(tasks, minStart)

	overrides := Propagate("b", 6, sched, tasks, minStart)

	if len(minStart) != 1 || minStart["c"] != 5 {
		t.Errorf("input map mutated: %v", minStart)
	}
	if overrides["c"] != 5 {
		t.Errorf("existing overrides should carry over, got %v", overrides)
	}
}

func TestPropagate_UnknownTask(t *testing.T) {
	tasks := houseTasks()
	sched := Compute(tasks, nil)

	overrides := Propagate("ghost", 10, sched, tasks, nil)
	if len(overrides) != 0 {
		t.Errorf("unknown task should change nothing, got %v", overrides)
	}
}

func TestPropagate_DeepChainTerminates(t *testing.T) {
	// A long chain with a wide fan-in at the end: the worklist must visit
	// each task a bounded number of times and still raise every floor.
	var tasks []project.Task
	tasks = append(tasks, task(id(0), 1))
	for i := 1; i < 50; i++ {
		tasks = append(tasks, task(id(i), 1, id(i-1)))
	}
	sched := Compute(tasks, nil)

	overrides := Propagate(id(0), 10, sched, tasks, nil)

	if overrides[id(0)] != 10 {
		t.Fatalf("override[%s] = %v, want 10", id(0), overrides[id(0)])
	}
	if overrides[id(49)] != 59 {
		t.Errorf("override[%s] = %v, want 59", id(49), overrides[id(49)])
	}

	next := Compute(tasks, overrides)
	if next.Duration != 60 {
		t.Errorf("Duration = %v, want 60", next.Duration)
	}
}

func id(i int) string {
	return "t" + string(rune('0'+i/10)) + string(rune('0'+i%10))
}
