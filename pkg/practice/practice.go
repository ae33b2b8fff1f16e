// Package practice implements the pedagogical layer of Slackline.
//
// Learners compute ES/EF/LS/LF values by hand and enter them; Check compares
// the entries against the engine's schedule and returns a list of per-task
// expected-value messages. Mismatches are feedback, not errors: the caller
// renders them as hints, never as failures.
//
// The package also builds the read-only report payload that the surrounding
// UI submits to an external evaluation endpoint (see report.go). The core
// engine has no knowledge of either feature.
package practice

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/errors"
)

// Answer holds a learner's hand-computed values for one task.
// Nil fields were left blank and are not checked.
type Answer struct {
	TaskID string   `json:"task" toml:"task"`
	ES     *float64 `json:"es,omitempty" toml:"es"`
	EF     *float64 `json:"ef,omitempty" toml:"ef"`
	LS     *float64 `json:"ls,omitempty" toml:"ls"`
	LF     *float64 `json:"lf,omitempty" toml:"lf"`
}

// Mismatch is one expected-value message for a learner.
type Mismatch struct {
	TaskID  string  `json:"task"`
	Field   string  `json:"field"` // "ES", "EF", "LS", "LF" or "task"
	Got     float64 `json:"got"`
	Want    float64 `json:"want"`
	Message string  `json:"message"`
}

// Check compares learner answers against the computed schedule.
// It returns one Mismatch per wrong field, in answer order. Correct and
// blank fields produce nothing. An answer for a task the schedule does not
// cover yields a single "task" mismatch.
func Check(sched *cpm.Schedule, answers []Answer) []Mismatch {
	var mismatches []Mismatch

	for _, a := range answers {
		if _, ok := sched.ES[a.TaskID]; !ok {
			mismatches = append(mismatches, Mismatch{
				TaskID:  a.TaskID,
				Field:   "task",
				Message: fmt.Sprintf("task %q is not part of the computed schedule", a.TaskID),
			})
			continue
		}

		fields := []struct {
			name string
			got  *float64
			want float64
		}{
			{"ES", a.ES, sched.ES[a.TaskID]},
			{"EF", a.EF, sched.EF[a.TaskID]},
			{"LS", a.LS, sched.LS[a.TaskID]},
			{"LF", a.LF, sched.LF[a.TaskID]},
		}

		for _, f := range fields {
			if f.got == nil {
				continue
			}
			if math.Abs(*f.got-f.want) < cpm.Tolerance {
				continue
			}
			mismatches = append(mismatches, Mismatch{
				TaskID:  a.TaskID,
				Field:   f.name,
				Got:     *f.got,
				Want:    f.want,
				Message: fmt.Sprintf("task %s: expected %s = %g, got %g", a.TaskID, f.name, f.want, *f.got),
			})
		}
	}

	return mismatches
}

// answerFile mirrors the TOML answers layout:
//
//	[[answer]]
//	task = "found"
//	es = 0
//	ef = 4
type answerFile struct {
	Answers []Answer `toml:"answer"`
}

// ParseAnswers decodes a TOML answers file.
func ParseAnswers(data []byte) ([]Answer, error) {
	var f answerFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse answers")
	}
	for _, a := range f.Answers {
		if a.TaskID == "" {
			return nil, errors.New(errors.ErrCodeInvalidAnswer, "answer entry without a task id")
		}
	}
	return f.Answers, nil
}

// LoadAnswers reads and parses a TOML answers file from path.
func LoadAnswers(path string) ([]Answer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "answers %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read answers %s", path)
	}
	return ParseAnswers(data)
}
