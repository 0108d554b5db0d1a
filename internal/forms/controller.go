// internal/forms/controller.go
package forms

// StepController drives the linear six-page application flow. Forward moves
// are gated on the current step validating; going back never re-validates.
type StepController struct {
	form    *ApplicationForm
	current int
}

func NewStepController(form *ApplicationForm) *StepController {
	return &StepController{form: form, current: StepPersonal}
}

func (c *StepController) Current() int {
	return c.current
}

func (c *StepController) Form() *ApplicationForm {
	return c.form
}

// Next validates the current step. On errors the controller stays put and the
// errors are returned; otherwise it advances, capped at the final step.
func (c *StepController) Next() Errors {
	errs := ValidateStep(c.current, c.form)
	if len(errs) > 0 {
		return errs
	}
	if c.current < StepFinal {
		c.current++
	}
	return nil
}

// Previous moves back one step, floored at the first. No validation runs.
func (c *StepController) Previous() {
	if c.current > StepPersonal {
		c.current--
	}
}

// OnFinal reports whether the terminal action is submission rather than Next.
func (c *StepController) OnFinal() bool {
	return c.current == StepFinal
}
