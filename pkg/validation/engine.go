package validation

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Messages shown to users.
const (
	MessagePhotoRequired = "Selecione uma foto ou marque para adicionar depois"
	MessageInvalidEmail  = "Email inválido"
)

// emailPattern is a coarse presence check: non-space runs around one "@" and
// one ".". It is unanchored, so "a@@b.c" and " x a@b.c " both pass.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// IsEmail reports whether value passes the coarse email check.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// RequiredMessage builds "<Label> é obrigatório(a)" honouring the field's
// grammatical gender.
func RequiredMessage(field model.Field) string {
	if field.Gender == model.GenderFeminine {
		return field.Label + " é obrigatória"
	}
	return field.Label + " é obrigatório"
}

// Validate checks only the fields that belong to step. Out-of-range steps
// yield an empty map.
func Validate(schema model.Schema, step int, values map[string]string, photo model.PhotoDecision) model.Errors {
	errs := make(model.Errors)

	st, ok := schema.StepAt(step)
	if !ok {
		return errs
	}

	if st.Photo && !photo.Decided() {
		errs[model.PhotoErrorKey] = MessagePhotoRequired
	}

	for _, field := range st.Fields {
		if msg, bad := checkField(field, values[field.Key]); bad {
			errs[field.Key] = msg
		}
	}

	return errs
}

func checkField(field model.Field, value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		if field.Required {
			return RequiredMessage(field), true
		}
		return "", false
	}

	// numeric and phone kinds intentionally get no format check.
	if field.Kind == model.FieldKindEmail && !IsEmail(value) {
		return MessageInvalidEmail, true
	}
	return "", false
}
