package wizard

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Submission wraps an emitted record with an identifier and timestamp so
// hosts can correlate what they log or persist.
type Submission struct {
	ID          uuid.UUID
	SubmittedAt time.Time
	Record      model.Record
}
