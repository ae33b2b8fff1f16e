// Package project defines the task and project data model for Slackline.
//
// A Project is an ordered collection of Tasks. Each Task has an integer
// duration in abstract time units and a set of predecessor task ids (Deps)
// expressing finish-to-start precedence. The scheduling engine in pkg/cpm
// treats projects as read-only snapshots; all editing happens here or in the
// surfaces built on top of this package.
//
// Projects can be described in TOML manifests (see LoadManifest) or JSON
// (see ReadJSON/WriteJSON), and are persisted through pkg/store.
package project

import (
	"github.com/google/uuid"

	"github.com/slacklinehq/slackline/pkg/errors"
)

// Task is a single unit of work in a project plan.
type Task struct {
	ID       string   `json:"id" toml:"id"`
	Name     string   `json:"name" toml:"name"`
	Duration int      `json:"duration" toml:"duration"`
	Deps     []string `json:"deps,omitempty" toml:"deps"`
}

// Project is an ordered collection of tasks. The task order affects row
// layout in renderings only, never the computed schedule.
type Project struct {
	ID    string `json:"id" toml:"id"`
	Name  string `json:"name" toml:"name"`
	Tasks []Task `json:"tasks" toml:"tasks"`
}

// New creates a project with a fresh UUID.
func New(name string, tasks []Task) *Project {
	return &Project{
		ID:    uuid.NewString(),
		Name:  name,
		Tasks: tasks,
	}
}

// Task returns the task with the given id and true, or a zero Task and false.
func (p *Project) Task(id string) (Task, bool) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Validate checks the project's tasks for well-formedness:
// non-empty ids and names, durations >= 1, unique ids, and dependency
// references that resolve within the project.
//
// The first problem found is returned as a structured error. Dangling
// dependency references are reported here as ErrCodeUnknownDependency even
// though the engine itself tolerates them (it skips missing predecessors);
// editing surfaces run Validate before handing tasks to the engine.
func (p *Project) Validate() error {
	if err := errors.ValidateProjectName(p.Name); err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if err := errors.ValidateTaskID(t.ID); err != nil {
			return err
		}
		if err := errors.ValidateTaskName(t.Name); err != nil {
			return err
		}
		if err := errors.ValidateDuration(t.Duration); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDuration, err, "task %s", t.ID)
		}
		if seen[t.ID] {
			return errors.New(errors.ErrCodeDuplicateTask, "duplicate task id %q", t.ID)
		}
		seen[t.ID] = true
	}

	for _, t := range p.Tasks {
		for _, dep := range t.Deps {
			if !seen[dep] {
				return errors.New(errors.ErrCodeUnknownDependency,
					"task %q depends on unknown task %q", t.ID, dep)
			}
			if dep == t.ID {
				return errors.New(errors.ErrCodeCycle, "task %q depends on itself", t.ID)
			}
		}
	}

	return nil
}
