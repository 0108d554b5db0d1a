// internal/forms/form.go
package forms

import "github.com/petpal/petpal-backend/internal/models"

// StepCount is the number of pages in the adoption application flow.
const StepCount = 6

// Application form pages, in order.
const (
	StepPersonal = iota + 1
	StepAddress
	StepHousing
	StepExperience
	StepReferences
	StepFinal
)

// ApplicationForm is the flat record behind the six-page adoption
// application. Field names follow the client payload.
type ApplicationForm struct {
	// Step 1 — personal
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`

	// Step 2 — address
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`

	// Step 3 — housing
	HousingType        string `json:"housingType"`
	OwnRent            string `json:"ownRent"`
	LandlordPermission string `json:"landlordPermission"`
	HasYard            string `json:"hasYard"`

	// Step 4 — experience
	PreviousPets string `json:"previousPets"`
	CurrentPets  string `json:"currentPets"`
	HoursAlone   string `json:"hoursAlone"`
	VetName      string `json:"vetName"`

	// Step 5 — lifestyle and references
	ActivityLevel          string `json:"activityLevel"`
	HasChildren            string `json:"hasChildren"`
	ChildrenAges           string `json:"childrenAges"`
	Reference1Name         string `json:"reference1Name"`
	Reference1Phone        string `json:"reference1Phone"`
	Reference1Relationship string `json:"reference1Relationship"`
	Reference2Name         string `json:"reference2Name"`
	Reference2Phone        string `json:"reference2Phone"`
	Reference2Relationship string `json:"reference2Relationship"`

	// Step 6 — final
	WhyAdopt  string `json:"whyAdopt"`
	Agreement bool   `json:"agreement"`
}

// FromProfile returns a form pre-filled from the adopter's profile the way
// the application screen seeds it.
func FromProfile(user *models.User) *ApplicationForm {
	if user == nil {
		return &ApplicationForm{}
	}
	return &ApplicationForm{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}
}
