package entity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Bundled entity identifiers.
const (
	EntityStudent = "student"
	EntityTeacher = "teacher"
)

// Store keeps the parsed entity layouts. It is safe for concurrent readers
// when treated as immutable after construction.
type Store struct {
	schemas map[string]model.Schema
}

// LoadDir parses every definition under dir.
func LoadDir(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("entity: definitions directory is empty")
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS walks the provided filesystem and parses YAML entity definitions.
// When fsys is nil or holds no definitions, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{schemas: make(map[string]model.Schema)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("entity: read %s: %w", path, err)
		}

		sc, err := Parse(data, path)
		if err != nil {
			return err
		}
		if _, exists := store.schemas[sc.Entity]; exists {
			return fmt.Errorf("entity: duplicate entity %q (file %s)", sc.Entity, path)
		}
		store.schemas[sc.Entity] = sc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Lookup returns a copy of the layout registered under name.
func (s *Store) Lookup(name string) (model.Schema, bool) {
	if s == nil {
		return model.Schema{}, false
	}
	sc, ok := s.schemas[strings.TrimSpace(name)]
	if !ok {
		return model.Schema{}, false
	}
	return cloneSchema(sc), true
}

// Names lists the registered entities in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any entity.
func (s *Store) Empty() bool {
	return s == nil || len(s.schemas) == 0
}

type definitionFile struct {
	Entity          string     `yaml:"entity" validate:"required"`
	Title           string     `yaml:"title" validate:"required"`
	SubmitLabel     string     `yaml:"submitLabel" validate:"required"`
	SuccessTitle    string     `yaml:"successTitle"`
	SuccessMessage  string     `yaml:"successMessage" validate:"required"`
	PhotoLaterLabel string     `yaml:"photoLaterLabel" validate:"required"`
	Steps           []stepFile `yaml:"steps" validate:"required,min=1,dive"`
}

type stepFile struct {
	Index  int         `yaml:"index" validate:"gte=0"`
	Label  string      `yaml:"label" validate:"required"`
	Photo  bool        `yaml:"photo"`
	Fields []fieldFile `yaml:"fields" validate:"dive"`
}

type fieldFile struct {
	Key         string `yaml:"key" validate:"required"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
	Kind        string `yaml:"kind" validate:"omitempty,oneof=text numeric phone email"`
	Gender      string `yaml:"gender" validate:"omitempty,oneof=m f"`
}

var definitionValidator = validator.New()

// Parse decodes and checks a single YAML definition. source only labels
// error messages.
func Parse(data []byte, source string) (model.Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Schema{}, fmt.Errorf("entity: file %s is empty", source)
	}

	var doc definitionFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.Schema{}, fmt.Errorf("entity: parse %s: %w", source, err)
	}
	if err := definitionValidator.Struct(doc); err != nil {
		return model.Schema{}, fmt.Errorf("entity: invalid definition %s: %w", source, err)
	}

	sc := model.Schema{
		Entity:          strings.TrimSpace(doc.Entity),
		Title:           doc.Title,
		SubmitLabel:     doc.SubmitLabel,
		SuccessTitle:    doc.SuccessTitle,
		SuccessMessage:  doc.SuccessMessage,
		PhotoLaterLabel: doc.PhotoLaterLabel,
		Steps:           make([]model.Step, 0, len(doc.Steps)),
	}

	seen := make(map[string]struct{})
	for i, raw := range doc.Steps {
		index := i + 1
		if raw.Index != 0 && raw.Index != index {
			return model.Schema{}, fmt.Errorf("entity: %s step %q declares index %d, expected %d", source, raw.Label, raw.Index, index)
		}
		if index == 1 && !raw.Photo {
			return model.Schema{}, fmt.Errorf("entity: %s step 1 must be the photo step", source)
		}
		if index > 1 && raw.Photo {
			return model.Schema{}, fmt.Errorf("entity: %s only step 1 may be a photo step (step %d)", source, index)
		}
		if raw.Photo && len(raw.Fields) > 0 {
			return model.Schema{}, fmt.Errorf("entity: %s photo step declares text fields", source)
		}
		if !raw.Photo && len(raw.Fields) == 0 {
			return model.Schema{}, fmt.Errorf("entity: %s step %d has no fields", source, index)
		}

		step := model.Step{Index: index, Label: raw.Label, Photo: raw.Photo}
		for _, f := range raw.Fields {
			key := strings.TrimSpace(f.Key)
			if strings.ContainsAny(key, " .") {
				return model.Schema{}, fmt.Errorf("entity: %s field key %q contains spaces or dots", source, key)
			}
			if key == model.PhotoErrorKey {
				return model.Schema{}, fmt.Errorf("entity: %s field key %q is reserved", source, key)
			}
			if _, dup := seen[key]; dup {
				return model.Schema{}, fmt.Errorf("entity: %s duplicate field %q", source, key)
			}
			seen[key] = struct{}{}
			step.Fields = append(step.Fields, buildField(key, f))
		}
		sc.Steps = append(sc.Steps, step)
	}

	return sc, nil
}

func buildField(key string, raw fieldFile) model.Field {
	field := model.Field{
		Key:         key,
		Label:       strings.TrimSpace(raw.Label),
		Placeholder: strings.TrimSpace(raw.Placeholder),
		Kind:        model.FieldKind(raw.Kind),
		Required:    true,
		Gender:      model.Gender(raw.Gender),
	}
	if field.Label == "" {
		field.Label = DefaultLabeler(key)
	}
	if field.Kind == "" {
		field.Kind = model.FieldKindText
	}
	if field.Gender == "" {
		field.Gender = model.GenderMasculine
	}
	return field
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func cloneSchema(sc model.Schema) model.Schema {
	out := sc
	out.Steps = make([]model.Step, len(sc.Steps))
	for i, st := range sc.Steps {
		st.Fields = append([]model.Field(nil), st.Fields...)
		out.Steps[i] = st
	}
	return out
}
