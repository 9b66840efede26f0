package model

import "fmt"

// PhotoState enumerates the photo decision tags.
type PhotoState int

const (
	PhotoUnset PhotoState = iota
	PhotoCaptured
	PhotoSkipped
)

func (s PhotoState) String() string {
	switch s {
	case PhotoCaptured:
		return "captured"
	case PhotoSkipped:
		return "skipped"
	default:
		return "unset"
	}
}

// PhotoDecision is the tri-state outcome of the photo step. Captured and
// Skipped are mutually exclusive: building one discards the other.
type PhotoDecision struct {
	state PhotoState
	ref   string
}

// NoPhoto returns the Unset decision.
func NoPhoto() PhotoDecision { return PhotoDecision{} }

// CapturedPhoto returns a Captured decision holding an opaque reference.
func CapturedPhoto(ref string) PhotoDecision {
	return PhotoDecision{state: PhotoCaptured, ref: ref}
}

// SkippedPhoto returns the "add later" decision.
func SkippedPhoto() PhotoDecision { return PhotoDecision{state: PhotoSkipped} }

// State returns the decision tag.
func (p PhotoDecision) State() PhotoState { return p.state }

// Reference returns the captured reference, or "" for other states.
func (p PhotoDecision) Reference() string { return p.ref }

// Decided reports whether the user either captured or skipped.
func (p PhotoDecision) Decided() bool { return p.state != PhotoUnset }

// Resolve maps the decision onto the record's photo field: captured photos
// resolve to their reference, everything else to the later sentinel.
func (p PhotoDecision) Resolve(later string) string {
	if p.state == PhotoCaptured {
		return p.ref
	}
	return later
}

func (p PhotoDecision) String() string {
	if p.state == PhotoCaptured {
		return fmt.Sprintf("captured(%s)", p.ref)
	}
	return p.state.String()
}
