// internal/models/pet.go
package models

import (
	"github.com/lib/pq"
)

type Pet struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:100;not null"`
	Species     string         `json:"species" gorm:"size:50;not null;index"`
	Breed       string         `json:"breed" gorm:"size:100"`
	AgeMonths   int            `json:"age_months"`
	Gender      string         `json:"gender" gorm:"size:20"`
	Size        string         `json:"size" gorm:"size:20"`
	Color       string         `json:"color" gorm:"size:50"`
	Description string         `json:"description" gorm:"type:text"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	Status      PetStatus      `json:"status" gorm:"type:varchar(20);default:'available';index"`

	// Health flags
	Vaccinated   bool   `json:"vaccinated"`
	Neutered     bool   `json:"neutered"`
	Microchipped bool   `json:"microchipped"`
	SpecialNeeds string `json:"special_needs,omitempty" gorm:"type:text"`

	// Shelter and location info for the detail and map views
	ShelterName    string  `json:"shelter_name" gorm:"size:150"`
	ShelterContact string  `json:"shelter_contact" gorm:"size:255"`
	ShelterPhone   string  `json:"shelter_phone" gorm:"size:30"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`

	AdoptionFee float64 `json:"adoption_fee" gorm:"type:decimal(10,2)"`
}

// FirstImage returns the image used on application and history cards.
func (p *Pet) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
