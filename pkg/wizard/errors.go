package wizard

import "errors"

var (
	// ErrUnknownField is returned when a key is not part of the schema.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrNotPhotoStep is returned when the photo decision is changed outside
	// the photo step.
	ErrNotPhotoStep = errors.New("wizard: photo can only change on the photo step")
	// ErrFirstStep is returned by Back on step 1.
	ErrFirstStep = errors.New("wizard: already on the first step")
	// ErrNotLastStep is returned by Submit before the last step.
	ErrNotLastStep = errors.New("wizard: submit is only available on the last step")
	// ErrNoCapturer is returned when a photo is requested without a capturer.
	ErrNoCapturer = errors.New("wizard: no photo capturer configured")
)
