package taskqueue

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
)

// EventKind identifies a domain event emitted after a successful mutation.
type EventKind string

const (
	EventTaskCreated       EventKind = "task.created"
	EventTaskReassigned    EventKind = "task.reassigned"
	EventTaskStatusChanged EventKind = "task.status_changed"
)

// Event is the payload handed to notification collaborators. The engine never
// calls delivery APIs itself.
type Event struct {
	Kind       EventKind
	Task       model.Task
	OccurredAt time.Time

	// PrevStatus is set for task.status_changed.
	PrevStatus model.TaskStatus
	// PrevClinicianID is set for task.reassigned.
	PrevClinicianID uuid.UUID
}

// EventPublisher receives domain events. Publish must not block the mutation
// path; slow consumers should hand off internally.
type EventPublisher interface {
	Publish(event Event)
}

// LogPublisher writes events to the process log. It is the default consumer
// when no notifier is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(event Event) {
	log.Printf("event %s task=%s status=%s assignee=%s", event.Kind, event.Task.ID, event.Task.Status, event.Task.AssignedClinicianID)
}

// FanoutPublisher forwards each event to every configured publisher in order.
type FanoutPublisher []EventPublisher

func (f FanoutPublisher) Publish(event Event) {
	for _, p := range f {
		p.Publish(event)
	}
}
