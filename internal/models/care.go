// internal/models/care.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a post-adoption care reminder owned by the adopter.
type Reminder struct {
	BaseModel
	UserID      uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	PetID       *uuid.UUID   `json:"pet_id" gorm:"type:uuid;index"`
	Title       string       `json:"title" gorm:"size:200;not null"`
	Type        ReminderType `json:"type" gorm:"type:varchar(20);not null"`
	Notes       string       `json:"notes" gorm:"type:text"`
	DueAt       time.Time    `json:"due_at" gorm:"index"`
	Completed   bool         `json:"completed" gorm:"default:false;index"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// CareEntry is one journal entry in a pet's post-adoption care log.
type CareEntry struct {
	BaseModel
	UserID     uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	PetID      uuid.UUID     `json:"pet_id" gorm:"type:uuid;not null;index"`
	Type       CareEntryType `json:"type" gorm:"type:varchar(20);not null"`
	Title      string        `json:"title" gorm:"size:200;not null"`
	Notes      string        `json:"notes" gorm:"type:text"`
	OccurredAt time.Time     `json:"occurred_at" gorm:"index"`
}
