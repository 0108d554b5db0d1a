// internal/forms/controller_test.go
package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petpal/petpal-backend/internal/models"
)

func TestControllerWalksAllSixSteps(t *testing.T) {
	controller := NewStepController(completeForm())

	for step := StepPersonal; step < StepFinal; step++ {
		assert.Equal(t, step, controller.Current())
		assert.False(t, controller.OnFinal())
		assert.Empty(t, controller.Next())
	}

	assert.Equal(t, StepFinal, controller.Current())
	assert.True(t, controller.OnFinal())
}

func TestControllerStaysPutOnInvalidStep(t *testing.T) {
	form := completeForm()
	form.Email = ""
	controller := NewStepController(form)

	errs := controller.Next()

	assert.Contains(t, errs, "email")
	assert.Equal(t, StepPersonal, controller.Current())

	// Fixing the field unblocks the advance
	form.Email = "jane@example.com"
	assert.Empty(t, controller.Next())
	assert.Equal(t, StepAddress, controller.Current())
}

func TestControllerPreviousNeverValidates(t *testing.T) {
	form := completeForm()
	controller := NewStepController(form)
	assert.Empty(t, controller.Next())
	assert.Equal(t, StepAddress, controller.Current())

	// Break the personal page, then go back: no errors surface
	form.FirstName = ""
	controller.Previous()
	assert.Equal(t, StepPersonal, controller.Current())
}

func TestControllerPreviousFloorsAtFirstStep(t *testing.T) {
	controller := NewStepController(completeForm())
	controller.Previous()
	assert.Equal(t, StepPersonal, controller.Current())
}

func TestControllerNextCapsAtFinalStep(t *testing.T) {
	controller := NewStepController(completeForm())
	for i := 0; i < 10; i++ {
		controller.Next()
	}
	assert.Equal(t, StepFinal, controller.Current())
}

func TestFromProfilePrefillsPersonalPage(t *testing.T) {
	user := &models.User{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "555-0100",
	}

	form := FromProfile(user)

	assert.Equal(t, "Jane", form.FirstName)
	assert.Equal(t, "Doe", form.LastName)
	assert.Equal(t, "jane@example.com", form.Email)
	assert.Equal(t, "555-0100", form.Phone)
	assert.Empty(t, form.Address)

	assert.NotNil(t, FromProfile(nil))
}
