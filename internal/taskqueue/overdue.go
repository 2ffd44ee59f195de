package taskqueue

import (
	"time"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
)

// Time-bucket classification. All functions are pure in (task, now); callers
// supply an already-localized now, the engine never reads the system clock.

// IsOverdue reports whether an active task's deadline has passed. Completed
// and cancelled tasks are never overdue regardless of their due date.
func IsOverdue(task *model.Task, now time.Time) bool {
	return task.Status.Active() && task.DueAt.Before(now)
}

// IsDueToday reports whether the task's deadline falls on the same calendar
// date as now, in now's location.
func IsDueToday(task *model.Task, now time.Time) bool {
	due := task.DueAt.In(now.Location())
	return due.Year() == now.Year() && due.YearDay() == now.YearDay()
}

// IsDueThisWeek reports whether the deadline lies in [now, now+7d], both ends
// inclusive. Past-due tasks are not "this week"; they are already late.
func IsDueThisWeek(task *model.Task, now time.Time) bool {
	return !task.DueAt.Before(now) && !task.DueAt.After(now.Add(7*24*time.Hour))
}
