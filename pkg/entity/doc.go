// Package entity loads the declarative step/field layouts of the entities the
// wizard registers (students and teachers). Layouts live in YAML documents;
// the bundled definitions are embedded and exposed through Student and
// Teacher, while LoadFS/LoadDir let hosts supply their own. The package also
// exports the shape of emitted records as an OpenAPI component schema.
package entity
