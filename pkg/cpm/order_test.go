package cpm

import (
	"reflect"
	"testing"

	"github.com/slacklinehq/slackline/pkg/errors"
	"github.com/slacklinehq/slackline/pkg/project"
)

func task(id string, duration int, deps ...string) project.Task {
	return project.Task{ID: id, Name: id, Duration: duration, Deps: deps}
}

func TestOrder_LinearChain(t *testing.T) {
	tasks := []project.Task{
		task("a", 1),
		task("b", 1, "a"),
		task("c", 1, "b"),
	}

	order, err := Order(tasks)
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(order, want) {
		t.Errorf("Order() = %v, want %v", order, want)
	}
}

func TestOrder_TieBreakKeepsInputOrder(t *testing.T) {
	// Three independent roots listed out of alphabetical order: the queue
	// must preserve the input order, not re-sort it.
	tasks := []project.Task{
		task("c", 1),
		task("a", 1),
		task("b", 1),
		task("d", 1, "a", "c"),
	}

	order, err := Order(tasks)
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if want := []string{"c", "a", "b", "d"}; !reflect.DeepEqual(order, want) {
		t.Errorf("Order() = %v, want %v", order, want)
	}
}

func TestOrder_Diamond(t *testing.T) {
	tasks := []project.Task{
		task("a", 1),
		task("b", 3, "a"),
		task("c", 3, "a"),
		task("d", 1, "b", "c"),
	}

	order, err := Order(tasks)
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if want := []string{"a", "b", "c", "d"}; !reflect.DeepEqual(order, want) {
		t.Errorf("Order() = %v, want %v", order, want)
	}
}

func TestOrder_Cycle_PartialOrderAndDiagnostic(t *testing.T) {
	tasks := []project.Task{
		task("a", 1, "b"),
		task("b", 1, "a"),
	}

	order, err := Order(tasks)
	if err == nil {
		t.Fatal("Order() on a cycle should return a diagnostic")
	}
	if !errors.Is(err, errors.ErrCodeCycle) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeCycle)
	}
	if len(order) != 0 {
		t.Errorf("Order() = %v, want empty partial order", order)
	}
}

func TestOrder_CycleDownstreamOfValidTasks(t *testing.T) {
	// a is sortable; b and c form a cycle and d depends on it.
	tasks := []project.Task{
		task("a", 1),
		task("b", 1, "c"),
		task("c", 1, "b"),
		task("d", 1, "b"),
	}

	order, err := Order(tasks)
	if err == nil {
		t.Fatal("expected diagnostic")
	}
	if want := []string{"a"}; !reflect.DeepEqual(order, want) {
		t.Errorf("partial order = %v, want %v", order, want)
	}
}

func TestOrder_UnknownDependency(t *testing.T) {
	// b depends on a missing id: it (and its dependents) are omitted.
	tasks := []project.Task{
		task("a", 1),
		task("b", 1, "ghost"),
		task("c", 1, "b"),
	}

	order, err := Order(tasks)
	if err == nil {
		t.Fatal("expected diagnostic")
	}
	if want := []string{"a"}; !reflect.DeepEqual(order, want) {
		t.Errorf("partial order = %v, want %v", order, want)
	}
}

func TestOrder_Empty(t *testing.T) {
	order, err := Order(nil)
	if err != nil {
		t.Fatalf("Order(nil) error = %v", err)
	}
	if len(order) != 0 {
		t.Errorf("Order(nil) = %v, want empty", order)
	}
}
