package notify

import (
	"context"
	"time"

	"github.com/cloudfolio/siteops/internal/domain/model"
)

// RenewalOutcomePayload captures the canonical data we emit for renewal
// outcome notifications. Exactly one payload is emitted per invocation.
type RenewalOutcomePayload struct {
	RunID           string
	Domain          string
	StableReference string
	Outcome         model.RenewalOutcome
	// Stage names the step that failed; empty on success.
	Stage model.RenewalStage
	// Detail carries the raw underlying error or exit diagnostic.
	Detail     string
	Elapsed    time.Duration
	OccurredAt time.Time
}

// Sink describes a destination capable of consuming renewal outcome
// notifications. Delivery is best effort: one attempt, no queuing.
type Sink interface {
	SendRenewalOutcome(ctx context.Context, payload RenewalOutcomePayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload RenewalOutcomePayload) error

// SendRenewalOutcome implements the Sink interface.
func (f SinkFunc) SendRenewalOutcome(ctx context.Context, payload RenewalOutcomePayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
