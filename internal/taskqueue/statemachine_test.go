package taskqueue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/taskqueue"
)

var activeStatuses = []model.TaskStatus{
	model.StatusOpen,
	model.StatusInProgress,
	model.StatusWaitingOnClinician,
	model.StatusWaitingOnPatient,
	model.StatusBlocked,
}

func newTask(status model.TaskStatus) *model.Task {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &model.Task{
		Status:          status,
		DueAt:           created.Add(48 * time.Hour),
		CreatedAt:       created,
		StatusChangedAt: created,
		Version:         1,
	}
}

func TestApplyTransition_ActiveStatesAreFullyConnected(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for _, from := range activeStatuses {
		for _, to := range activeStatuses {
			if from == to {
				continue
			}
			task := newTask(from)
			err := taskqueue.ApplyTransition(task, to, "", now)
			assert.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, task.Status)
			assert.Equal(t, now, task.StatusChangedAt)
		}
	}
}

func TestApplyTransition_SameStatusRejected(t *testing.T) {
	now := time.Now()
	for _, status := range activeStatuses {
		task := newTask(status)
		err := taskqueue.ApplyTransition(task, status, "", now)
		assert.ErrorIs(t, err, taskqueue.ErrInvalidTransition)
	}
}

func TestApplyTransition_TerminalStatesAreImmutable(t *testing.T) {
	now := time.Now()
	targets := append(activeStatuses, model.StatusCompleted, model.StatusCancelled)

	for _, from := range []model.TaskStatus{model.StatusCompleted, model.StatusCancelled} {
		for _, to := range targets {
			task := newTask(from)
			err := taskqueue.ApplyTransition(task, to, "some reason", now)
			assert.ErrorIs(t, err, taskqueue.ErrInvalidTransition, "%s -> %s", from, to)
		}
	}
}

func TestApplyTransition_CompletionStampsTimestamp(t *testing.T) {
	task := newTask(model.StatusInProgress)
	prior := task.StatusChangedAt
	now := prior.Add(3 * time.Hour)

	err := taskqueue.ApplyTransition(task, model.StatusCompleted, "", now)

	assert.NoError(t, err)
	assert.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
	assert.True(t, !task.CompletedAt.Before(prior))
	assert.Nil(t, task.CancelledReason)
}

func TestApplyTransition_CancelRequiresReason(t *testing.T) {
	now := time.Now()

	task := newTask(model.StatusOpen)
	err := taskqueue.ApplyTransition(task, model.StatusCancelled, "", now)
	assert.ErrorIs(t, err, taskqueue.ErrMissingCancelReason)
	assert.Equal(t, model.StatusOpen, task.Status)

	err = taskqueue.ApplyTransition(task, model.StatusCancelled, "   ", now)
	assert.ErrorIs(t, err, taskqueue.ErrMissingCancelReason)

	err = taskqueue.ApplyTransition(task, model.StatusCancelled, "patient declined", now)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, task.Status)
	assert.NotNil(t, task.CancelledReason)
	assert.Equal(t, "patient declined", *task.CancelledReason)
	assert.Nil(t, task.CompletedAt)
}

func TestApplyTransition_UnknownStatusRejected(t *testing.T) {
	task := newTask(model.StatusOpen)
	err := taskqueue.ApplyTransition(task, model.TaskStatus("PAUSED"), "", time.Now())
	assert.ErrorIs(t, err, taskqueue.ErrInvalidTransition)
}
