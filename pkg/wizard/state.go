package wizard

import (
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// State is the wizard's data at one point in time. Transitions never mutate a
// State in place; they return a new one.
type State struct {
	Step   int
	Values map[string]string
	Photo  model.PhotoDecision
	Errors model.Errors
}

// Initial returns the state of a freshly mounted wizard: step 1, every schema
// key mapped to "", no photo decision, no errors.
func Initial(schema model.Schema) State {
	values := make(map[string]string)
	for _, key := range schema.Keys() {
		values[key] = ""
	}
	return State{
		Step:   1,
		Values: values,
		Photo:  model.NoPhoto(),
		Errors: make(model.Errors),
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	return State{
		Step:   s.Step,
		Values: cloneValues(s.Values),
		Photo:  s.Photo,
		Errors: s.Errors.Clone(),
	}
}

// withField sets one value and drops that key's error, leaving the others.
func (s State) withField(key, value string) State {
	next := s.Clone()
	next.Values[key] = value
	if next.Errors.Has(key) {
		delete(next.Errors, key)
	}
	return next
}

// withPhoto records a decision. Captured and Skipped clear the photo error;
// going back to Unset leaves errors for the next validation pass.
func (s State) withPhoto(decision model.PhotoDecision) State {
	next := s.Clone()
	next.Photo = decision
	if decision.Decided() {
		delete(next.Errors, model.PhotoErrorKey)
	}
	return next
}

// validated runs the engine for the current step and replaces the error map.
func (s State) validated(schema model.Schema) State {
	next := s.Clone()
	next.Errors = validation.Validate(schema, s.Step, s.Values, s.Photo)
	return next
}

// advanced moves forward one step, capped at the last step.
func (s State) advanced(schema model.Schema) State {
	next := s.Clone()
	if next.Step < schema.StepCount() {
		next.Step++
	}
	return next
}

// retreated moves back one step without touching errors.
func (s State) retreated() State {
	next := s.Clone()
	if next.Step > 1 {
		next.Step--
	}
	return next
}

func cloneValues(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
