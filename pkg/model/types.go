package model

import "strings"

// FieldKind is the simplified enum for the text inputs a step can hold.
type FieldKind string

const (
	FieldKindText    FieldKind = "text"
	FieldKindNumeric FieldKind = "numeric"
	FieldKindPhone   FieldKind = "phone"
	FieldKindEmail   FieldKind = "email"
)

// Valid reports whether k is one of the known kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindNumeric, FieldKindPhone, FieldKindEmail:
		return true
	}
	return false
}

// Gender selects the agreement used by required-field messages
// ("obrigatório" vs "obrigatória").
type Gender string

const (
	GenderMasculine Gender = "m"
	GenderFeminine  Gender = "f"
)

// Field describes a single text input. Label is the noun used in validation
// messages; Placeholder is what prompts display.
type Field struct {
	Key         string    `json:"key" yaml:"key"`
	Label       string    `json:"label" yaml:"label"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required" yaml:"required"`
	Gender      Gender    `json:"gender,omitempty" yaml:"gender,omitempty"`
}

// Prompt returns the text a host should show next to the input.
func (f Field) Prompt() string {
	if p := strings.TrimSpace(f.Placeholder); p != "" {
		return p
	}
	return f.Label
}

// Step is one screen of the wizard. Photo steps carry no text fields.
type Step struct {
	Index  int     `json:"index" yaml:"index"`
	Label  string  `json:"label" yaml:"label"`
	Photo  bool    `json:"photo,omitempty" yaml:"photo,omitempty"`
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Schema is the immutable layout of one entity kind. Steps are ordered and
// indexed from 1 without gaps; the entity loader enforces that.
type Schema struct {
	Entity          string `json:"entity" yaml:"entity"`
	Title           string `json:"title" yaml:"title"`
	SubmitLabel     string `json:"submitLabel" yaml:"submitLabel"`
	SuccessTitle    string `json:"successTitle" yaml:"successTitle"`
	SuccessMessage  string `json:"successMessage" yaml:"successMessage"`
	PhotoLaterLabel string `json:"photoLaterLabel" yaml:"photoLaterLabel"`
	Steps           []Step `json:"steps" yaml:"steps"`
}

// StepCount returns N, the index of the last step.
func (s Schema) StepCount() int {
	return len(s.Steps)
}

// StepAt returns the step with the given 1-based index.
func (s Schema) StepAt(step int) (Step, bool) {
	if step < 1 || step > len(s.Steps) {
		return Step{}, false
	}
	return s.Steps[step-1], true
}

// FieldsForStep returns the ordered fields of a step. Unknown steps and photo
// steps yield nil.
func (s Schema) FieldsForStep(step int) []Field {
	st, ok := s.StepAt(step)
	if !ok || len(st.Fields) == 0 {
		return nil
	}
	return append([]Field(nil), st.Fields...)
}

// Label returns the human label of a step, or "" when out of range.
func (s Schema) Label(step int) string {
	st, ok := s.StepAt(step)
	if !ok {
		return ""
	}
	return st.Label
}

// IsPhotoStep reports whether step holds the photo-capture decision.
func (s Schema) IsPhotoStep(step int) bool {
	st, ok := s.StepAt(step)
	return ok && st.Photo
}

// Keys lists every field key in step order.
func (s Schema) Keys() []string {
	var keys []string
	for _, st := range s.Steps {
		for _, f := range st.Fields {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// Field looks up a field by key along with the step that owns it.
func (s Schema) Field(key string) (Field, int, bool) {
	for _, st := range s.Steps {
		for _, f := range st.Fields {
			if f.Key == key {
				return f, st.Index, true
			}
		}
	}
	return Field{}, 0, false
}
