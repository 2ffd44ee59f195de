package taskqueue_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/taskqueue"
)

func queueTask(status model.TaskStatus, due time.Time) model.Task {
	task := newTask(status)
	task.ID = uuid.New()
	task.DueAt = due
	return *task
}

func TestApplyFilter_SortPrecedence(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	blocked := queueTask(model.StatusBlocked, now.Add(24*time.Hour))
	overdue := queueTask(model.StatusOpen, now.Add(-24*time.Hour))
	upcoming := queueTask(model.StatusOpen, now.Add(48*time.Hour))

	// Input deliberately out of order.
	got := taskqueue.ApplyFilter(
		[]model.Task{upcoming, overdue, blocked},
		taskqueue.QueueFilter{Quick: taskqueue.QuickAll},
		now,
	)

	require.Len(t, got, 3)
	assert.Equal(t, blocked.ID, got[0].ID)
	assert.Equal(t, overdue.ID, got[1].ID)
	assert.Equal(t, upcoming.ID, got[2].ID)
}

func TestApplyFilter_BlockedSortsByDueDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	later := queueTask(model.StatusBlocked, now.Add(72*time.Hour))
	sooner := queueTask(model.StatusBlocked, now.Add(24*time.Hour))

	got := taskqueue.ApplyFilter(
		[]model.Task{later, sooner},
		taskqueue.QueueFilter{Quick: taskqueue.QuickAll},
		now,
	)

	require.Len(t, got, 2)
	assert.Equal(t, sooner.ID, got[0].ID)
	assert.Equal(t, later.ID, got[1].ID)
}

func TestApplyFilter_StableOnEqualKeys(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(24 * time.Hour)

	first := queueTask(model.StatusOpen, due)
	second := queueTask(model.StatusInProgress, due)
	third := queueTask(model.StatusWaitingOnPatient, due)

	got := taskqueue.ApplyFilter(
		[]model.Task{first, second, third},
		taskqueue.QueueFilter{Quick: taskqueue.QuickAll},
		now,
	)

	require.Len(t, got, 3)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
	assert.Equal(t, third.ID, got[2].ID)
}

func TestApplyFilter_TerminalSortLast_MostRecentlyClosedFirst(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	open := queueTask(model.StatusOpen, now.Add(24*time.Hour))

	oldDone := queueTask(model.StatusCompleted, now.Add(-time.Hour))
	oldExit := now.Add(-48 * time.Hour)
	oldDone.CompletedAt = &oldExit

	newDone := queueTask(model.StatusCompleted, now.Add(-time.Hour))
	newExit := now.Add(-2 * time.Hour)
	newDone.CompletedAt = &newExit

	got := taskqueue.ApplyFilter(
		[]model.Task{oldDone, newDone, open},
		taskqueue.QueueFilter{Quick: taskqueue.QuickAll, Retention: 30 * 24 * time.Hour},
		now,
	)

	require.Len(t, got, 3)
	assert.Equal(t, open.ID, got[0].ID)
	assert.Equal(t, newDone.ID, got[1].ID)
	assert.Equal(t, oldDone.ID, got[2].ID)
}

func TestApplyFilter_RetentionWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cancelled := queueTask(model.StatusCancelled, now.Add(-20*24*time.Hour))
	cancelled.StatusChangedAt = now.Add(-10 * 24 * time.Hour)
	reason := "duplicate"
	cancelled.CancelledReason = &reason

	sevenDays := taskqueue.QueueFilter{Quick: taskqueue.QuickAll, Retention: 7 * 24 * time.Hour}
	thirtyDays := taskqueue.QueueFilter{Quick: taskqueue.QuickAll, Retention: 30 * 24 * time.Hour}

	assert.Empty(t, taskqueue.ApplyFilter([]model.Task{cancelled}, sevenDays, now))
	assert.Len(t, taskqueue.ApplyFilter([]model.Task{cancelled}, thirtyDays, now), 1)
}

func TestApplyFilter_RetentionNeverHidesActiveTasks(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	stale := queueTask(model.StatusWaitingOnPatient, now.Add(-60*24*time.Hour))
	stale.StatusChangedAt = now.Add(-60 * 24 * time.Hour)

	got := taskqueue.ApplyFilter([]model.Task{stale}, taskqueue.QueueFilter{Quick: taskqueue.QuickAll}, now)
	assert.Len(t, got, 1)
}

func TestApplyFilter_QuickOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	late := queueTask(model.StatusOpen, now.Add(-time.Hour))
	onTime := queueTask(model.StatusOpen, now.Add(time.Hour))
	doneLate := queueTask(model.StatusCompleted, now.Add(-time.Hour))
	exit := now.Add(-time.Minute)
	doneLate.CompletedAt = &exit

	got := taskqueue.ApplyFilter(
		[]model.Task{late, onTime, doneLate},
		taskqueue.QueueFilter{Quick: taskqueue.QuickOverdue, Retention: 24 * time.Hour},
		now,
	)

	require.Len(t, got, 1)
	assert.Equal(t, late.ID, got[0].ID)
}

func TestApplyFilter_CriteriaComposeWithAND(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clinicianID := uuid.New()

	match := queueTask(model.StatusOpen, now.Add(time.Hour))
	match.Type = model.TypeCallBack
	match.OwnerType = model.OwnerClinician
	match.AssignedClinicianID = clinicianID

	wrongType := match
	wrongType.ID = uuid.New()
	wrongType.Type = model.TypeLetter

	wrongClinician := match
	wrongClinician.ID = uuid.New()
	wrongClinician.AssignedClinicianID = uuid.New()

	taskType := model.TypeCallBack
	ownerType := model.OwnerClinician
	status := model.StatusOpen
	filter := taskqueue.QueueFilter{
		Quick:       taskqueue.QuickAll,
		Type:        &taskType,
		Status:      &status,
		OwnerType:   &ownerType,
		ClinicianID: &clinicianID,
	}

	got := taskqueue.ApplyFilter([]model.Task{match, wrongType, wrongClinician}, filter, now)
	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].ID)
}
