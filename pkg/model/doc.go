// Package model defines the value types shared by the schema loader, the
// validation engine, and the registration wizard: the field/step layout of an
// entity (Schema), the tri-state photo decision, the per-field error map, and
// the entity record emitted on a successful submission. Everything here is
// plain data; behaviour lives in pkg/validation and pkg/wizard.
package model
