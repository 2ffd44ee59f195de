package model

import (
	"time"

	"github.com/google/uuid"
)

// Clinician is a directory entry supplied by the practice management system.
// This service only reads it to validate and display task assignees.
type Clinician struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
