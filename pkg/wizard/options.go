package wizard

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Option configures a Wizard.
type Option func(*Wizard)

// WithNotifier sets the host notification sink.
func WithNotifier(n Notifier) Option {
	return func(w *Wizard) {
		if n != nil {
			w.notifier = n
		}
	}
}

// WithCapturer wires the photo-capture collaborator used by RequestPhoto.
func WithCapturer(c PhotoCapturer) Option {
	return func(w *Wizard) {
		w.capturer = c
	}
}

// WithLogger overrides the structured logger (slog.Default otherwise).
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithClock overrides the time source stamped on submissions.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// WithIDGenerator overrides how submission identifiers are minted.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(w *Wizard) {
		if gen != nil {
			w.newID = gen
		}
	}
}
