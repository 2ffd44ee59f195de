package taskqueue

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
)

// QuickFilter is a named time-bucket shortcut for queue listings.
type QuickFilter string

const (
	QuickAll     QuickFilter = "all"
	QuickOverdue QuickFilter = "overdue"
	QuickToday   QuickFilter = "today"
	QuickWeek    QuickFilter = "week"
)

func (q QuickFilter) Valid() bool {
	switch q {
	case QuickAll, QuickOverdue, QuickToday, QuickWeek:
		return true
	}
	return false
}

// QueueFilter is one queue view selection. Nil pointer fields mean "all".
// All criteria compose with logical AND.
type QueueFilter struct {
	Quick       QuickFilter
	Type        *model.TaskType
	Status      *model.TaskStatus
	OwnerType   *model.OwnerType
	ClinicianID *uuid.UUID

	// Retention is the trailing window during which completed and cancelled
	// tasks stay visible, measured against their exit timestamp. Zero or
	// negative hides terminal tasks entirely. Active tasks are never subject
	// to it.
	Retention time.Duration
}

func (f QueueFilter) matches(task *model.Task, now time.Time) bool {
	if f.Type != nil && task.Type != *f.Type {
		return false
	}
	if f.Status != nil && task.Status != *f.Status {
		return false
	}
	if f.OwnerType != nil && task.OwnerType != *f.OwnerType {
		return false
	}
	if f.ClinicianID != nil && task.AssignedClinicianID != *f.ClinicianID {
		return false
	}

	if exit := task.ExitAt(); exit != nil {
		if f.Retention <= 0 {
			return false
		}
		if exit.Before(now.Add(-f.Retention)) {
			return false
		}
	}

	switch f.Quick {
	case QuickOverdue:
		return IsOverdue(task, now)
	case QuickToday:
		return IsDueToday(task, now)
	case QuickWeek:
		return IsDueThisWeek(task, now)
	}
	return true
}

// sortRank buckets a task for queue ordering: blocked work first, then
// overdue, then the rest of the active queue, closed tasks last.
func sortRank(task *model.Task, now time.Time) int {
	switch {
	case task.Status.Terminal():
		return 3
	case task.Status == model.StatusBlocked:
		return 0
	case IsOverdue(task, now):
		return 1
	}
	return 2
}

// ApplyFilter returns the tasks matching f, in the deterministic queue order:
// blocked before overdue before the remaining active tasks, each ascending by
// due date, then terminal tasks by most recently closed. The sort is stable,
// so equal keys keep their input order.
func ApplyFilter(tasks []model.Task, f QueueFilter, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if f.matches(&tasks[i], now) {
			out = append(out, tasks[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		ra, rb := sortRank(a, now), sortRank(b, now)
		if ra != rb {
			return ra < rb
		}
		if ra == 3 {
			// Most recently closed first.
			return b.ExitAt().Before(*a.ExitAt())
		}
		return a.DueAt.Before(b.DueAt)
	})
	return out
}
