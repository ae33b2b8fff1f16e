package errors

import (
	"strings"
	"unicode"
)

// ValidateTaskID validates a task identifier.
// Task ids are tokens used as map keys, file name fragments and DOT node
// names, so the rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - Maximum length of 64 characters
func ValidateTaskID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTask, "task id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidTask, "task id too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidTask, "task id %q contains whitespace or control characters", id)
		}
	}

	return nil
}

// ValidateTaskName validates a task display name.
// Names are free-form but must be non-empty and printable.
func ValidateTaskName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidTask, "task name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidTask, "task name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTask, "task name contains control characters")
		}
	}

	return nil
}

// ValidateDuration validates a task duration.
// Durations are abstract time units and must be at least 1; zero or negative
// durations would collapse precedence constraints in the schedule.
func ValidateDuration(d int) error {
	if d < 1 {
		return New(ErrCodeInvalidDuration, "duration must be >= 1, got %d", d)
	}
	return nil
}

// ValidateProjectName validates a project display name.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidProject, "project name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidProject, "project name too long (max 256 characters)")
	}
	return nil
}
