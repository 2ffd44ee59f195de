package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/taskqueue"
)

// TaskRepository is the gorm-backed TaskStore. Concurrency control is
// optimistic: every task row carries a version counter and updates are a
// compare-and-swap on it, so two racing mutations can never interleave into
// an inconsistent row.
type TaskRepository struct {
	db *gorm.DB
}

var _ taskqueue.TaskStore = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) TaskByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskqueue.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("created_at").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskVersioned persists the engine-mutated fields of task, guarded by
// its version. On success the in-memory version is advanced to match the row.
func (r *TaskRepository) UpdateTaskVersioned(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"status":                task.Status,
			"status_changed_at":     task.StatusChangedAt,
			"completed_at":          task.CompletedAt,
			"cancelled_reason":      task.CancelledReason,
			"assigned_clinician_id": task.AssignedClinicianID,
			"version":               task.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the task is gone or someone else bumped the version.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", task.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return taskqueue.ErrTaskNotFound
		}
		return taskqueue.ErrStaleWrite
	}
	task.Version++
	return nil
}

func (r *TaskRepository) CreateNote(ctx context.Context, note *model.TaskNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *TaskRepository) NotesByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.TaskNote, error) {
	var notes []model.TaskNote
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at, id").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}
