package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskNote is an append-only annotation on a task. Notes are never edited or
// deleted; the ledger for a task is the creation-ordered sequence of them.
type TaskNote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Note      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	Task Task `gorm:"foreignKey:TaskID"`
}
