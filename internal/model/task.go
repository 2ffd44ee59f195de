package model

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType is the work queue a task belongs to. It never changes after
// creation and is independent from the assigned clinician.
type OwnerType string

const (
	OwnerAdmin     OwnerType = "ADMIN"
	OwnerClinician OwnerType = "CLINICIAN"
)

func (o OwnerType) Valid() bool {
	return o == OwnerAdmin || o == OwnerClinician
}

// TaskSource records who originated the task.
type TaskSource string

const (
	SourceAdmin         TaskSource = "ADMIN"
	SourceClinician     TaskSource = "CLINICIAN"
	SourcePatientPortal TaskSource = "PATIENT_PORTAL"
)

func (s TaskSource) Valid() bool {
	return s == SourceAdmin || s == SourceClinician || s == SourcePatientPortal
}

// TaskCategory is a cross-cutting classification for reporting only.
type TaskCategory string

const (
	CategoryClinicalExecution TaskCategory = "CLINICAL_EXECUTION"
	CategoryAdminExecution    TaskCategory = "ADMIN_EXECUTION"
	CategoryCoordination      TaskCategory = "COORDINATION"
)

func (c TaskCategory) Valid() bool {
	return c == CategoryClinicalExecution || c == CategoryAdminExecution || c == CategoryCoordination
}

// TaskPriority affects display emphasis only, never queue ordering.
type TaskPriority string

const (
	PriorityNormal TaskPriority = "NORMAL"
	PriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityNormal || p == PriorityHigh
}

type Task struct {
	ID                  uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Type                TaskType     `gorm:"type:varchar(32);not null"`
	Source              TaskSource   `gorm:"type:varchar(16);not null"`
	OwnerType           OwnerType    `gorm:"type:varchar(16);not null;index"`
	Category            TaskCategory `gorm:"type:varchar(32);not null"`
	Priority            TaskPriority `gorm:"type:varchar(8);not null"`
	Status              TaskStatus   `gorm:"type:varchar(32);not null;index"`
	AssignedClinicianID uuid.UUID    `gorm:"type:uuid;not null;index"`
	CreatedBy           uuid.UUID    `gorm:"type:uuid;not null"`
	PatientName         string
	PatientID           string     `gorm:"type:varchar(64)"`
	EpisodeID           string     `gorm:"type:varchar(64)"`
	Description         string     `gorm:"not null"`
	LetterSubtype       string     `gorm:"type:varchar(32)"`
	DueAt               time.Time  `gorm:"not null;index"`
	CreatedAt           time.Time  `gorm:"not null"`
	StatusChangedAt     time.Time  `gorm:"not null"`
	CompletedAt         *time.Time
	CancelledReason     *string
	Version             int `gorm:"not null;default:1"`

	Assignee Clinician `gorm:"foreignKey:AssignedClinicianID"`
}

// ExitAt returns the instant a terminal task left active work: the completion
// timestamp for COMPLETED, the last status change for CANCELLED. It returns
// nil for tasks that are still active.
func (t *Task) ExitAt() *time.Time {
	switch t.Status {
	case StatusCompleted:
		return t.CompletedAt
	case StatusCancelled:
		exit := t.StatusChangedAt
		return &exit
	}
	return nil
}
