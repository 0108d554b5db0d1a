// internal/models/lostpet.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type LostPetReport struct {
	BaseModel
	ReporterID  uuid.UUID     `json:"reporter_id" gorm:"type:uuid;not null;index"`
	TrackingCode string       `json:"tracking_code" gorm:"size:20;uniqueIndex"`
	PetName     string        `json:"pet_name" gorm:"size:100;not null"`
	Species     string        `json:"species" gorm:"size:50;not null"`
	Breed       string        `json:"breed" gorm:"size:100"`
	Description string        `json:"description" gorm:"type:text"`
	PhotoURL    string        `json:"photo_url" gorm:"size:500"`
	Status      LostPetStatus `json:"status" gorm:"type:varchar(20);default:'missing';index"`

	// Last known position for the map view
	LastSeenAt   time.Time `json:"last_seen_at"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LocationNote string    `json:"location_note" gorm:"size:255"`

	ContactName  string `json:"contact_name" gorm:"size:200"`
	ContactPhone string `json:"contact_phone" gorm:"size:30"`

	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	// Relationships
	Reporter *User `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
}
