package project

import (
	"bytes"
	"testing"

	"github.com/slacklinehq/slackline/pkg/errors"
)

func validTasks() []Task {
	return []Task{
		{ID: "a", Name: "A", Duration: 4},
		{ID: "b", Name: "B", Duration: 3, Deps: []string{"a"}},
		{ID: "c", Name: "C", Duration: 3, Deps: []string{"a"}},
		{ID: "d", Name: "D", Duration: 5, Deps: []string{"b", "c"}},
	}
}

func TestNew_AssignsUUID(t *testing.T) {
	p := New("Demo", validTasks())
	if p.ID == "" {
		t.Error("New should assign a project id")
	}
	q := New("Demo", validTasks())
	if p.ID == q.ID {
		t.Error("two projects should not share an id")
	}
}

func TestValidate_OK(t *testing.T) {
	p := New("Demo", validTasks())
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Project)
		wantCode errors.Code
	}{
		{
			"empty task id",
			func(p *Project) { p.Tasks[0].ID = "" },
			errors.ErrCodeInvalidTask,
		},
		{
			"zero duration",
			func(p *Project) { p.Tasks[1].Duration = 0 },
			errors.ErrCodeInvalidDuration,
		},
		{
			"duplicate id",
			func(p *Project) { p.Tasks[2].ID = "a" },
			errors.ErrCodeDuplicateTask,
		},
		{
			"unknown dependency",
			func(p *Project) { p.Tasks[3].Deps = []string{"ghost"} },
			errors.ErrCodeUnknownDependency,
		},
		{
			"self dependency",
			func(p *Project) { p.Tasks[1].Deps = []string{"b"} },
			errors.ErrCodeCycle,
		},
		{
			"empty project name",
			func(p *Project) { p.Name = " " },
			errors.ErrCodeInvalidProject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("Demo", validTasks())
			tt.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestTask_Lookup(t *testing.T) {
	p := New("Demo", validTasks())

	task, ok := p.Task("b")
	if !ok {
		t.Fatal("Task(b) not found")
	}
	if task.Duration != 3 {
		t.Errorf("Duration = %d, want 3", task.Duration)
	}

	if _, ok := p.Task("missing"); ok {
		t.Error("Task(missing) should not be found")
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	p := New("Demo", validTasks())

	var buf bytes.Buffer
	if err := WriteJSON(p, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.ID != p.ID || got.Name != p.Name {
		t.Errorf("round trip changed identity: got %s/%s", got.ID, got.Name)
	}
	if len(got.Tasks) != len(p.Tasks) {
		t.Fatalf("round trip changed task count: %d != %d", len(got.Tasks), len(p.Tasks))
	}
	if got.Tasks[3].Deps[1] != "c" {
		t.Errorf("deps lost in round trip: %v", got.Tasks[3].Deps)
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	if _, err := ReadJSON(bytes.NewBufferString("{not json")); err == nil {
		t.Error("malformed JSON accepted")
	}

	// Structurally valid JSON that fails project validation.
	bad := `{"id":"x","name":"X","tasks":[{"id":"a","name":"A","duration":0}]}`
	if _, err := ReadJSON(bytes.NewBufferString(bad)); err == nil {
		t.Error("invalid project accepted")
	}
}
