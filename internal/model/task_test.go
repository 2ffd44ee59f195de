package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
)

func TestTaskStatus_Sets(t *testing.T) {
	assert.True(t, model.StatusOpen.Active())
	assert.True(t, model.StatusBlocked.Active())
	assert.False(t, model.StatusCompleted.Active())
	assert.True(t, model.StatusCompleted.Terminal())
	assert.True(t, model.StatusCancelled.Terminal())
	assert.False(t, model.TaskStatus("PAUSED").Valid())
	assert.False(t, model.TaskStatus("PAUSED").Active())
}

func TestTaskType_Catalogs(t *testing.T) {
	assert.True(t, model.TypeCallBack.ValidFor(model.OwnerClinician))
	assert.False(t, model.TypeCallBack.ValidFor(model.OwnerAdmin))
	assert.True(t, model.TypeResendForms.ValidFor(model.OwnerAdmin))
	assert.False(t, model.TypeResendForms.ValidFor(model.OwnerClinician))
	assert.False(t, model.TaskType("FAX_EVERYONE").Valid())
}

func TestTask_ExitAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	open := model.Task{Status: model.StatusOpen, StatusChangedAt: now}
	assert.Nil(t, open.ExitAt())

	completedAt := now.Add(-time.Hour)
	done := model.Task{Status: model.StatusCompleted, StatusChangedAt: now, CompletedAt: &completedAt}
	if assert.NotNil(t, done.ExitAt()) {
		assert.Equal(t, completedAt, *done.ExitAt())
	}

	cancelled := model.Task{Status: model.StatusCancelled, StatusChangedAt: now}
	if assert.NotNil(t, cancelled.ExitAt()) {
		assert.Equal(t, now, *cancelled.ExitAt())
	}
}
