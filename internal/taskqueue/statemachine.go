package taskqueue

import (
	"strings"
	"time"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
)

// The lifecycle is deliberately loose between active states: clinic work
// rarely moves in a straight line, so any active status may move to any other
// status. The machine only enforces the hard rules: terminal states are
// frozen, completion stamps its timestamp, cancellation requires a reason.

// CanTransition reports whether a task in status from may move to status to.
func CanTransition(from, to model.TaskStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from.Terminal() {
		return false
	}
	return from != to
}

// ApplyTransition validates the requested status change and applies it to
// task in place, stamping StatusChangedAt (and CompletedAt / CancelledReason
// where the target requires it) at instant now.
func ApplyTransition(task *model.Task, target model.TaskStatus, reason string, now time.Time) error {
	if !CanTransition(task.Status, target) {
		return ErrInvalidTransition
	}

	if target == model.StatusCancelled {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return ErrMissingCancelReason
		}
		task.CancelledReason = &reason
	}

	if target == model.StatusCompleted {
		completed := now
		task.CompletedAt = &completed
	}

	task.Status = target
	task.StatusChangedAt = now
	return nil
}
