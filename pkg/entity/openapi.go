package entity

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// RecordSchema describes the flattened record a successful submission emits:
// every field is a required, non-empty string and photo holds either the
// captured reference or the later sentinel.
func RecordSchema(sc model.Schema) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.Title = sc.Title

	photo := openapi3.NewStringSchema()
	photo.Description = fmt.Sprintf("captured photo reference or %q", sc.PhotoLaterLabel)
	obj.WithProperty(model.PhotoRecordKey, photo)
	required := []string{model.PhotoRecordKey}

	for _, st := range sc.Steps {
		for _, f := range st.Fields {
			prop := openapi3.NewStringSchema().WithMinLength(1)
			prop.Title = f.Label
			if f.Kind == model.FieldKindEmail {
				prop.WithFormat("email")
			}
			obj.WithProperty(f.Key, prop)
			required = append(required, f.Key)
		}
	}
	obj.Required = required
	return obj
}

// OpenAPIDocument bundles the record schemas of the given entities as
// components of an otherwise empty OpenAPI 3 document.
func OpenAPIDocument(title, version string, schemas ...model.Schema) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas, len(schemas)),
		},
	}
	for _, sc := range schemas {
		doc.Components.Schemas[ComponentName(sc.Entity)] = openapi3.NewSchemaRef("", RecordSchema(sc))
	}
	return doc
}

// ComponentName converts an entity identifier into a component key
// ("student" -> "StudentRecord").
func ComponentName(entity string) string {
	var b strings.Builder
	for _, word := range strings.Fields(DefaultLabeler(entity)) {
		b.WriteString(capitalize(word))
	}
	b.WriteString("Record")
	return b.String()
}
