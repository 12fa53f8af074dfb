// Package outcomenotifier fans renewal outcome events out to notification
// sinks on a best-effort basis.
package outcomenotifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cloudfolio/siteops/internal/observability/notify"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the outcome notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
	// Timeout bounds each delivery attempt. Defaults to 10s.
	Timeout time.Duration
}

// Service dispatches renewal outcomes to all registered sinks. Delivery
// failures are swallowed and only logged: the renewal job is already
// terminating, so a failed notification must never loop or block shutdown.
type Service struct {
	logger  *slog.Logger
	sinks   []SinkRegistration
	timeout time.Duration
}

// NewService constructs an outcome notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "outcome_notifier")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{Name: name, Sink: entry.Sink})
	}

	return &Service{
		logger:  logger,
		sinks:   sinks,
		timeout: timeout,
	}
}

// Notify fan-outs the payload to all sinks. It never returns an error.
func (s *Service) Notify(ctx context.Context, payload notify.RenewalOutcomePayload) {
	if len(s.sinks) == 0 {
		return
	}

	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, entry := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := entry.Sink.SendRenewalOutcome(ctx, payload); err != nil {
				s.logger.ErrorContext(ctx, "notification delivery failed",
					"sink", entry.Name,
					"run_id", payload.RunID,
					"domain", payload.Domain,
					"outcome", payload.Outcome,
					"error", err,
				)
			}
		}()
	}
	wg.Wait()
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return len(s.sinks) > 0
}
