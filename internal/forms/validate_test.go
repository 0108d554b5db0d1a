// internal/forms/validate_test.go
package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeForm() *ApplicationForm {
	return &ApplicationForm{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		DateOfBirth: "1990-04-12",

		Address: "12 Maple Street",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62704",

		HousingType: "house",
		OwnRent:     "own",
		HasYard:     "yes",

		PreviousPets: "Two dogs growing up",
		CurrentPets:  "None",
		HoursAlone:   "4",
		VetName:      "Dr. Patel",

		ActivityLevel:          "moderate",
		HasChildren:            "no",
		Reference1Name:         "Sam Lee",
		Reference1Phone:        "555-0101",
		Reference1Relationship: "friend",

		WhyAdopt:  "Ready to give a rescue a home",
		Agreement: true,
	}
}

func TestValidateStepPersonal(t *testing.T) {
	form := &ApplicationForm{}

	errs := ValidateStep(StepPersonal, form)

	assert.Len(t, errs, 5)
	assert.Contains(t, errs, "firstName")
	assert.Contains(t, errs, "dateOfBirth")

	form.FirstName = "Jane"
	form.LastName = "Doe"
	form.Email = "jane@example.com"
	form.Phone = "555-0100"
	form.DateOfBirth = "1990-04-12"
	assert.Empty(t, ValidateStep(StepPersonal, form))
}

func TestValidateStepTrimsWhitespace(t *testing.T) {
	form := completeForm()
	form.City = "   "

	errs := ValidateStep(StepAddress, form)

	assert.Equal(t, "City is required", errs["city"])
}

func TestValidateStepHousingRenterNeedsPermission(t *testing.T) {
	form := completeForm()
	form.OwnRent = "rent"

	errs := ValidateStep(StepHousing, form)
	assert.Equal(t, "Landlord permission is required for renters", errs["landlordPermission"])

	form.LandlordPermission = "yes"
	assert.Empty(t, ValidateStep(StepHousing, form))

	// Owners never need landlord permission
	form.OwnRent = "own"
	form.LandlordPermission = ""
	assert.Empty(t, ValidateStep(StepHousing, form))
}

func TestValidateStepFinalRequiresAgreement(t *testing.T) {
	form := completeForm()
	form.Agreement = false

	errs := ValidateStep(StepFinal, form)

	assert.Equal(t, "You must accept the adoption agreement", errs["agreement"])
}

func TestValidateStepIsIndependentOfOtherSteps(t *testing.T) {
	// A completely empty personal page must not stop the references page
	// from validating on its own.
	form := &ApplicationForm{
		Reference1Name:         "Sam Lee",
		Reference1Phone:        "555-0101",
		Reference1Relationship: "friend",
	}

	assert.Empty(t, ValidateStep(StepReferences, form))
	assert.NotEmpty(t, ValidateStep(StepPersonal, form))
}

func TestValidateStepUnknown(t *testing.T) {
	errs := ValidateStep(99, completeForm())
	assert.Contains(t, errs, "step")
}

func TestValidateStepNilForm(t *testing.T) {
	errs := ValidateStep(StepPersonal, nil)
	assert.Contains(t, errs, "form")
}

func TestValidateAllCollectsAcrossSteps(t *testing.T) {
	form := completeForm()
	form.FirstName = ""
	form.ZipCode = ""
	form.Agreement = false

	errs := ValidateAll(form)

	assert.Contains(t, errs, "firstName")
	assert.Contains(t, errs, "zipCode")
	assert.Contains(t, errs, "agreement")
	assert.Len(t, errs, 3)
}

func TestFirstInvalidStep(t *testing.T) {
	form := completeForm()
	step, errs := FirstInvalidStep(form)
	assert.Equal(t, 0, step)
	assert.Nil(t, errs)

	form.WhyAdopt = ""
	step, errs = FirstInvalidStep(form)
	assert.Equal(t, StepFinal, step)
	assert.Contains(t, errs, "whyAdopt")

	// An earlier failure wins over a later one
	form.Address = ""
	step, errs = FirstInvalidStep(form)
	assert.Equal(t, StepAddress, step)
	assert.Contains(t, errs, "address")
}
