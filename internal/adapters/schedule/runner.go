// Package schedule provides the fixed-rate trigger loop for certificate
// renewal, standing in for an external scheduler service.
package schedule

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cloudfolio/siteops/internal/observability/statsd"
)

// Trigger starts one renewal cycle. Implementations must treat a duplicate
// trigger (resource already running) as success.
type Trigger interface {
	Trigger(ctx context.Context) (string, error)
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Trigger  Trigger
	Interval time.Duration
	// Location is the timezone the schedule is evaluated in.
	Location *time.Location
	// Jitter bounds the random delay added to each fire time.
	Jitter time.Duration
	// RetryAttempts bounds how often a failed trigger delivery is retried.
	RetryAttempts int
	// RetryWindow bounds the total time spent retrying one fire.
	RetryWindow time.Duration
	Logger      *slog.Logger
	Metrics     statsd.Sink
}

// Runner fires the renewal trigger on a fixed-rate schedule with bounded
// jitter. Retries apply to trigger delivery only; the renewal job itself is
// never retried within an invocation.
type Runner struct {
	trigger       Trigger
	interval      time.Duration
	location      *time.Location
	jitter        time.Duration
	retryAttempts int
	retryWindow   time.Duration
	logger        *slog.Logger
	metrics       statsd.Sink
}

// NewRunner creates a new schedule runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Trigger == nil {
		return nil, errors.New("trigger is required")
	}
	if opts.Interval <= 0 {
		opts.Interval = 20 * 24 * time.Hour
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Jitter < 0 {
		opts.Jitter = 0
	}
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 1
	}
	if opts.RetryWindow <= 0 {
		opts.RetryWindow = 8 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Runner{
		trigger:       opts.Trigger,
		interval:      opts.Interval,
		location:      opts.Location,
		jitter:        opts.Jitter,
		retryAttempts: opts.RetryAttempts,
		retryWindow:   opts.RetryWindow,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}, nil
}

// Run fires the trigger at the configured interval until the context is
// cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting renewal schedule",
		"interval", r.interval,
		"timezone", r.location.String(),
		"jitter", r.jitter,
	)

	for {
		fireAt := r.nextFire(time.Now())
		r.logger.InfoContext(ctx, "next renewal trigger scheduled", "at", fireAt.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(fireAt))
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			r.logger.InfoContext(ctx, "renewal schedule stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-timer.C:
		}

		r.fire(ctx)
	}
}

// nextFire computes the next fire time in the configured timezone plus a
// random delay inside the jitter window.
func (r *Runner) nextFire(now time.Time) time.Time {
	fire := now.In(r.location).Add(r.interval)
	if r.jitter > 0 {
		fire = fire.Add(rand.N(r.jitter))
	}
	return fire
}

// fire delivers one trigger, retrying delivery failures within the bounded
// window. The trigger service treats "already running" as success, so a
// duplicate fire never counts as a failure here.
func (r *Runner) fire(ctx context.Context) {
	delay := r.retryWindow / time.Duration(r.retryAttempts)

	var lastErr error
	for attempt := 1; attempt <= r.retryAttempts; attempt++ {
		instanceID, err := r.trigger.Trigger(ctx)
		if err == nil {
			r.logger.InfoContext(ctx, "renewal trigger delivered", "attempt", attempt, "instance_id", instanceID)
			r.count("schedule.trigger", "success")
			return
		}
		lastErr = err
		r.logger.ErrorContext(ctx, "renewal trigger failed", "attempt", attempt, "error", err)

		if attempt == r.retryAttempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return
		case <-timer.C:
		}
	}

	r.logger.ErrorContext(ctx, "renewal trigger exhausted retries",
		"attempts", r.retryAttempts,
		"window", r.retryWindow,
		"error", lastErr,
	)
	r.count("schedule.trigger", "error")
}

func (r *Runner) count(name, result string) {
	if r.metrics == nil {
		return
	}
	r.metrics.Count(name, 1, map[string]string{"result": result})
}
