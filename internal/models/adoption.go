// internal/models/adoption.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// AdoptionHistoryEntry is the adopter-owned record created alongside every
// application; one entry per application. Read access is filtered by UserID.
type AdoptionHistoryEntry struct {
	BaseModel
	UserID        uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	PetID         uuid.UUID      `json:"pet_id" gorm:"type:uuid;not null;index"`
	ApplicationID uuid.UUID      `json:"application_id" gorm:"type:uuid;not null;uniqueIndex"`
	PetName       string         `json:"pet_name" gorm:"size:100"`
	PetBreed      string         `json:"pet_breed" gorm:"size:100"`
	PetImage      string         `json:"pet_image" gorm:"size:500"`
	Status        AdoptionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	ApplicationDate time.Time  `json:"application_date"`
	AdoptionDate    *time.Time `json:"adoption_date,omitempty"`

	ShelterName    string `json:"shelter_name" gorm:"size:150"`
	ShelterContact string `json:"shelter_contact" gorm:"size:255"`
	Notes          string `json:"notes,omitempty" gorm:"type:text"`

	// Relationships
	Pet         *Pet         `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	Application *Application `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
}
