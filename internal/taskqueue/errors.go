package taskqueue

import (
	"errors"
	"fmt"
	"strings"
)

// Error contract shared by the engine and every TaskStore implementation.
var (
	// ErrTaskNotFound is returned when a referenced task id does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTransition is returned when a status change violates the
	// state machine, including any change attempted on a terminal task.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrMissingCancelReason is returned when a task is cancelled without a
	// non-empty reason.
	ErrMissingCancelReason = errors.New("cancellation requires a reason")

	// ErrEmptyNote is returned when a note is blank after trimming.
	ErrEmptyNote = errors.New("note text is empty")

	// ErrTerminalTaskImmutable is returned when a non-status mutation is
	// attempted on a completed or cancelled task.
	ErrTerminalTaskImmutable = errors.New("task is closed and cannot be modified")

	// ErrStaleWrite is returned when the task row changed since it was read.
	// Callers may retry after a fresh read.
	ErrStaleWrite = errors.New("task was modified concurrently")
)

// FieldViolation names one invalid input field and why it was rejected.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violation found in a request, not just the
// first, so callers can surface them together.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, reason string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Reason: reason})
}
