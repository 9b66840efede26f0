package wizard

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Wizard drives one registration at a time over a fixed schema. Student and
// teacher wizards are separate instances and share nothing.
type Wizard struct {
	schema   model.Schema
	state    State
	notifier Notifier
	capturer PhotoCapturer
	logger   *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// New mounts a wizard in its initial state.
func New(schema model.Schema, options ...Option) *Wizard {
	w := &Wizard{
		schema:   schema,
		state:    Initial(schema),
		notifier: discardNotifier{},
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Schema returns the layout the wizard was built with.
func (w *Wizard) Schema() model.Schema {
	return w.schema
}

// State returns a copy of the current state.
func (w *Wizard) State() State {
	return w.state.Clone()
}

// Step returns the current 1-based step.
func (w *Wizard) Step() int {
	return w.state.Step
}

// UpdateField stores value under key and clears that key's error right away,
// before any re-validation. Keys of any step may be edited.
func (w *Wizard) UpdateField(key, value string) error {
	if _, ok := w.state.Values[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	w.state = w.state.withField(key, value)
	return nil
}

// SetPhoto records the photo decision. Only allowed on the photo step.
func (w *Wizard) SetPhoto(decision model.PhotoDecision) error {
	if !w.schema.IsPhotoStep(w.state.Step) {
		return ErrNotPhotoStep
	}
	w.state = w.state.withPhoto(decision)
	return nil
}

// ToggleSkipPhoto flips the "add photo later" choice. Turning it on replaces a
// captured photo; turning it off returns to no decision.
func (w *Wizard) ToggleSkipPhoto() error {
	if w.state.Photo.State() == model.PhotoSkipped {
		return w.SetPhoto(model.NoPhoto())
	}
	return w.SetPhoto(model.SkippedPhoto())
}

// Next validates the current step. On failure the errors replace the previous
// ones and the step stays put; on success errors are cleared and the wizard
// advances by one unless it is already on the last step. The result reports
// whether validation passed.
func (w *Wizard) Next() bool {
	checked := w.state.validated(w.schema)
	if !checked.Errors.Empty() {
		w.state = checked
		w.logger.Debug("wizard step refused",
			"entity", w.schema.Entity,
			"step", checked.Step,
			"errors", checked.Errors.Keys(),
		)
		return false
	}
	w.state = checked.advanced(w.schema)
	return true
}

// Back returns to the previous step without validating. Errors from the step
// being left stay in place.
func (w *Wizard) Back() error {
	if w.state.Step <= 1 {
		return ErrFirstStep
	}
	w.state = w.state.retreated()
	return nil
}

// Submit validates the last step and, when it passes, emits the record,
// notifies the host, and resets to a fresh initial state. ok is false when
// validation refused the submission.
func (w *Wizard) Submit() (sub Submission, ok bool, err error) {
	if w.state.Step != w.schema.StepCount() {
		return Submission{}, false, ErrNotLastStep
	}

	checked := w.state.validated(w.schema)
	if !checked.Errors.Empty() {
		w.state = checked
		return Submission{}, false, nil
	}

	sub = Submission{
		ID:          w.newID(),
		SubmittedAt: w.now(),
		Record: model.Record{
			Entity: w.schema.Entity,
			Photo:  checked.Photo.Resolve(w.schema.PhotoLaterLabel),
			Values: cloneValues(checked.Values),
		},
	}
	w.state = Initial(w.schema)

	w.logger.Info("registration submitted",
		"entity", w.schema.Entity,
		"id", sub.ID.String(),
		"record", sub.Record.Fields(),
	)
	w.notifier.Notify(Notification{
		Kind:       NotificationSubmitted,
		Title:      successTitle(w.schema),
		Message:    w.schema.SuccessMessage,
		Submission: &sub,
	})

	return sub, true, nil
}

// Cancel discards everything collected so far, as when the host navigates
// away from the wizard.
func (w *Wizard) Cancel() {
	w.state = Initial(w.schema)
	w.logger.Debug("wizard cancelled", "entity", w.schema.Entity)
}

func successTitle(schema model.Schema) string {
	if schema.SuccessTitle != "" {
		return schema.SuccessTitle
	}
	return DefaultSuccessTitle
}
