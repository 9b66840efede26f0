package wizard

import "github.com/goliatone/go-formwizard/pkg/model"

// FieldView is one input as the host should draw it.
type FieldView struct {
	Field model.Field
	Value string
	Error string
}

// StepView is a read-only snapshot of the current step for rendering.
type StepView struct {
	Entity      string
	Title       string
	Step        int
	StepCount   int
	Label       string
	Photo       bool
	PhotoState  model.PhotoDecision
	PhotoError  string
	Fields      []FieldView
	CanGoBack   bool
	IsLast      bool
	SubmitLabel string
}

// HasErrors reports whether any field (or the photo) shows a message.
func (v StepView) HasErrors() bool {
	if v.PhotoError != "" {
		return true
	}
	for _, f := range v.Fields {
		if f.Error != "" {
			return true
		}
	}
	return false
}

// View renders the current step. Only errors for the displayed step's fields
// are attached, although stale errors of other steps remain in State.
func (w *Wizard) View() StepView {
	st, _ := w.schema.StepAt(w.state.Step)
	view := StepView{
		Entity:      w.schema.Entity,
		Title:       w.schema.Title,
		Step:        w.state.Step,
		StepCount:   w.schema.StepCount(),
		Label:       st.Label,
		Photo:       st.Photo,
		PhotoState:  w.state.Photo,
		CanGoBack:   w.state.Step > 1,
		IsLast:      w.state.Step == w.schema.StepCount(),
		SubmitLabel: w.schema.SubmitLabel,
	}
	if st.Photo {
		view.PhotoError = w.state.Errors[model.PhotoErrorKey]
	}
	for _, f := range st.Fields {
		view.Fields = append(view.Fields, FieldView{
			Field: f,
			Value: w.state.Values[f.Key],
			Error: w.state.Errors[f.Key],
		})
	}
	return view
}
