package taskqueue

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
)

// TaskStore is the persistence boundary the engine mutates through. It holds
// no business logic. UpdateTaskVersioned must be a compare-and-swap on the
// task's version and return ErrStaleWrite when the row changed since it was
// read, so concurrent mutations on one task never interleave.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	TaskByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	UpdateTaskVersioned(ctx context.Context, task *model.Task) error
	CreateNote(ctx context.Context, note *model.TaskNote) error
	NotesByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.TaskNote, error)
}

// ClinicianDirectory resolves clinician ids for assignment validation and
// display. The directory is owned by a collaborator; lookups return (nil, nil)
// for unknown ids.
type ClinicianDirectory interface {
	LookupClinician(ctx context.Context, id uuid.UUID) (*model.Clinician, error)
}

// CreateTaskInput carries the caller-supplied fields for a new task. Source,
// Category and Priority default when empty (ADMIN, the owner queue's
// execution category, NORMAL).
type CreateTaskInput struct {
	Type                model.TaskType
	Source              model.TaskSource
	OwnerType           model.OwnerType
	Category            model.TaskCategory
	Priority            model.TaskPriority
	AssignedClinicianID uuid.UUID
	CreatedBy           uuid.UUID
	PatientName         string
	PatientID           string
	EpisodeID           string
	Description         string
	LetterSubtype       string
	DueAt               time.Time
}

// Service is the composition root for the communication task queue.
type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*model.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListQueue(ctx context.Context, filter QueueFilter, now time.Time) ([]model.Task, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, target model.TaskStatus, reason string) (*model.Task, error)
	Reassign(ctx context.Context, id uuid.UUID, clinicianID uuid.UUID) (*model.Task, error)
	AddNote(ctx context.Context, id uuid.UUID, authorID uuid.UUID, text string) ([]model.TaskNote, error)
	NotesForTask(ctx context.Context, id uuid.UUID) ([]model.TaskNote, error)
}

type service struct {
	store      TaskStore
	clinicians ClinicianDirectory
	events     EventPublisher
	now        func() time.Time
}

// NewService wires the engine. A nil now falls back to time.Now; tests inject
// a fixed clock. A nil events publisher logs events.
func NewService(store TaskStore, clinicians ClinicianDirectory, events EventPublisher, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	if events == nil {
		events = LogPublisher{}
	}
	return &service{store: store, clinicians: clinicians, events: events, now: now}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*model.Task, error) {
	verr := &ValidationError{}

	if strings.TrimSpace(input.Description) == "" {
		verr.add("description", "must not be empty")
	}
	if input.DueAt.IsZero() {
		verr.add("due_at", "is required")
	}
	if !input.OwnerType.Valid() {
		verr.add("owner_type", "must be ADMIN or CLINICIAN")
	} else if !input.Type.ValidFor(input.OwnerType) {
		verr.add("type", "is not in the "+string(input.OwnerType)+" catalog")
	}
	if input.Source == "" {
		input.Source = model.SourceAdmin
	} else if !input.Source.Valid() {
		verr.add("source", "is not a known source")
	}
	if input.Priority == "" {
		input.Priority = model.PriorityNormal
	} else if !input.Priority.Valid() {
		verr.add("priority", "must be NORMAL or HIGH")
	}
	if input.Category == "" {
		if input.OwnerType == model.OwnerClinician {
			input.Category = model.CategoryClinicalExecution
		} else {
			input.Category = model.CategoryAdminExecution
		}
	} else if !input.Category.Valid() {
		verr.add("category", "is not a known category")
	}
	if input.LetterSubtype != "" && input.Type != model.TypeLetter {
		verr.add("letter_subtype", "is only valid for LETTER tasks")
	}

	if input.AssignedClinicianID == uuid.Nil {
		verr.add("assigned_clinician_id", "is required")
	} else {
		clinician, err := s.clinicians.LookupClinician(ctx, input.AssignedClinicianID)
		if err != nil {
			return nil, err
		}
		if clinician == nil {
			verr.add("assigned_clinician_id", "does not match a known clinician")
		}
	}

	if len(verr.Violations) > 0 {
		return nil, verr
	}

	now := s.now()
	task := &model.Task{
		ID:                  uuid.New(),
		Type:                input.Type,
		Source:              input.Source,
		OwnerType:           input.OwnerType,
		Category:            input.Category,
		Priority:            input.Priority,
		Status:              model.StatusOpen,
		AssignedClinicianID: input.AssignedClinicianID,
		CreatedBy:           input.CreatedBy,
		PatientName:         input.PatientName,
		PatientID:           input.PatientID,
		EpisodeID:           input.EpisodeID,
		Description:         input.Description,
		LetterSubtype:       input.LetterSubtype,
		DueAt:               input.DueAt,
		CreatedAt:           now,
		StatusChangedAt:     now,
		Version:             1,
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.events.Publish(Event{Kind: EventTaskCreated, Task: *task, OccurredAt: now})
	return task, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return s.store.TaskByID(ctx, id)
}

func (s *service) ListQueue(ctx context.Context, filter QueueFilter, now time.Time) ([]model.Task, error) {
	if filter.Quick == "" {
		filter.Quick = QuickAll
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(tasks, filter, now), nil
}

func (s *service) ChangeStatus(ctx context.Context, id uuid.UUID, target model.TaskStatus, reason string) (*model.Task, error) {
	task, err := s.store.TaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := task.Status
	now := s.now()
	if err := ApplyTransition(task, target, reason, now); err != nil {
		return nil, err
	}
	if err := s.store.UpdateTaskVersioned(ctx, task); err != nil {
		return nil, err
	}

	s.events.Publish(Event{Kind: EventTaskStatusChanged, Task: *task, OccurredAt: now, PrevStatus: prev})
	return task, nil
}

func (s *service) Reassign(ctx context.Context, id uuid.UUID, clinicianID uuid.UUID) (*model.Task, error) {
	task, err := s.store.TaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status.Terminal() {
		return nil, ErrTerminalTaskImmutable
	}
	if task.AssignedClinicianID == clinicianID {
		// No-op by contract; StatusChangedAt stays untouched.
		return task, nil
	}

	clinician, err := s.clinicians.LookupClinician(ctx, clinicianID)
	if err != nil {
		return nil, err
	}
	if clinician == nil {
		return nil, &ValidationError{Violations: []FieldViolation{
			{Field: "clinician_id", Reason: "does not match a known clinician"},
		}}
	}

	prev := task.AssignedClinicianID
	task.AssignedClinicianID = clinicianID
	if err := s.store.UpdateTaskVersioned(ctx, task); err != nil {
		return nil, err
	}

	s.events.Publish(Event{Kind: EventTaskReassigned, Task: *task, OccurredAt: s.now(), PrevClinicianID: prev})
	return task, nil
}

func (s *service) AddNote(ctx context.Context, id uuid.UUID, authorID uuid.UUID, text string) ([]model.TaskNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyNote
	}

	// Notes are allowed in any status, terminal included; they document
	// history, not active work.
	if _, err := s.store.TaskByID(ctx, id); err != nil {
		return nil, err
	}

	note := &model.TaskNote{
		ID:        uuid.New(),
		TaskID:    id,
		AuthorID:  authorID,
		Note:      text,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	return s.store.NotesByTaskID(ctx, id)
}

func (s *service) NotesForTask(ctx context.Context, id uuid.UUID) ([]model.TaskNote, error) {
	if _, err := s.store.TaskByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.NotesByTaskID(ctx, id)
}
