// internal/forms/validate.go
package forms

import "strings"

// Errors maps a form field name to a user-facing message. An empty map means
// the step is advance-eligible.
type Errors map[string]string

// ValidateStep checks one page of the form in isolation. It is pure: no step
// ever looks at another step's fields, so a later step can be valid while an
// earlier one is not.
func ValidateStep(step int, form *ApplicationForm) Errors {
	errs := Errors{}
	if form == nil {
		errs["form"] = "Form is required"
		return errs
	}

	switch step {
	case StepPersonal:
		requireField(errs, form.FirstName, "firstName", "First name is required")
		requireField(errs, form.LastName, "lastName", "Last name is required")
		requireField(errs, form.Email, "email", "Email is required")
		requireField(errs, form.Phone, "phone", "Phone number is required")
		requireField(errs, form.DateOfBirth, "dateOfBirth", "Date of birth is required")

	case StepAddress:
		requireField(errs, form.Address, "address", "Street address is required")
		requireField(errs, form.City, "city", "City is required")
		requireField(errs, form.State, "state", "State is required")
		requireField(errs, form.ZipCode, "zipCode", "ZIP code is required")

	case StepHousing:
		requireField(errs, form.HousingType, "housingType", "Housing type is required")
		requireField(errs, form.OwnRent, "ownRent", "Please select own or rent")
		if strings.EqualFold(strings.TrimSpace(form.OwnRent), "rent") {
			requireField(errs, form.LandlordPermission, "landlordPermission", "Landlord permission is required for renters")
		}

	case StepExperience:
		requireField(errs, form.PreviousPets, "previousPets", "Previous pet experience is required")
		requireField(errs, form.HoursAlone, "hoursAlone", "Hours alone is required")

	case StepReferences:
		requireField(errs, form.Reference1Name, "reference1Name", "Reference name is required")
		requireField(errs, form.Reference1Phone, "reference1Phone", "Reference phone is required")
		requireField(errs, form.Reference1Relationship, "reference1Relationship", "Reference relationship is required")

	case StepFinal:
		requireField(errs, form.WhyAdopt, "whyAdopt", "Please tell us why you want to adopt")
		if !form.Agreement {
			errs["agreement"] = "You must accept the adoption agreement"
		}

	default:
		errs["step"] = "Unknown application step"
	}

	return errs
}

// ValidateAll runs every step and returns the union of their errors.
func ValidateAll(form *ApplicationForm) Errors {
	errs := Errors{}
	for step := StepPersonal; step <= StepFinal; step++ {
		for field, message := range ValidateStep(step, form) {
			errs[field] = message
		}
	}
	return errs
}

// FirstInvalidStep returns the lowest failing step and its errors, or 0 when
// the whole form is complete.
func FirstInvalidStep(form *ApplicationForm) (int, Errors) {
	for step := StepPersonal; step <= StepFinal; step++ {
		if errs := ValidateStep(step, form); len(errs) > 0 {
			return step, errs
		}
	}
	return 0, nil
}

func requireField(errs Errors, value, field, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}
