package wizard

import (
	"context"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// CaptureResult is the single completion event of a capture request. An empty
// Reference with a nil Err means the user made no selection.
type CaptureResult struct {
	Reference string
	Err       error
}

// PhotoCapturer starts a capture and returns a channel that yields exactly one
// result.
type PhotoCapturer interface {
	Capture(ctx context.Context) <-chan CaptureResult
}

// CaptureFunc adapts a blocking function into a PhotoCapturer by running it
// on its own goroutine.
type CaptureFunc func(ctx context.Context) (string, error)

// Capture runs fn and delivers its outcome once.
func (fn CaptureFunc) Capture(ctx context.Context) <-chan CaptureResult {
	ch := make(chan CaptureResult, 1)
	go func() {
		defer close(ch)
		ref, err := fn(ctx)
		ch <- CaptureResult{Reference: ref, Err: err}
	}()
	return ch
}

// RequestPhoto issues a capture request. The host waits on the returned
// channel from its own loop and passes the result to CompletePhoto. A new
// request while another is outstanding is allowed; whichever result is
// completed last wins.
func (w *Wizard) RequestPhoto(ctx context.Context) (<-chan CaptureResult, error) {
	if !w.schema.IsPhotoStep(w.state.Step) {
		return nil, ErrNotPhotoStep
	}
	if w.capturer == nil {
		return nil, ErrNoCapturer
	}
	return w.capturer.Capture(ctx), nil
}

// CompletePhoto applies a capture result. Failures notify the host and leave
// the state untouched; an empty selection is ignored.
func (w *Wizard) CompletePhoto(res CaptureResult) error {
	if res.Err != nil {
		w.logger.Warn("photo capture failed", "entity", w.schema.Entity, "error", res.Err)
		w.notifier.Notify(Notification{
			Kind:    NotificationCaptureFailed,
			Title:   CaptureFailedTitle,
			Message: CaptureFailedMessage,
		})
		return nil
	}
	ref := strings.TrimSpace(res.Reference)
	if ref == "" {
		return nil
	}
	return w.SetPhoto(model.CapturedPhoto(ref))
}

// CapturePhoto requests a photo and applies the result, blocking until the
// capturer answers or ctx is done.
func (w *Wizard) CapturePhoto(ctx context.Context) error {
	ch, err := w.RequestPhoto(ctx)
	if err != nil {
		return err
	}
	select {
	case res, ok := <-ch:
		if !ok {
			return nil
		}
		return w.CompletePhoto(res)
	case <-ctx.Done():
		return ctx.Err()
	}
}
