package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cloudfolio/siteops/internal/core"
	"github.com/cloudfolio/siteops/internal/domain/model"
	apperrors "github.com/cloudfolio/siteops/internal/errors"
)

// RenewalTriggerServiceOptions groups dependencies for RenewalTriggerService.
type RenewalTriggerServiceOptions struct {
	Compute core.ComputeController     // Required: renewal compute resource
	Locks   core.RenewalLockRepository // Optional: cross-process single-flight lock
	Runs    core.RenewalRunRepository  // Optional: outcome ledger for status reads
	Config  RenewalTriggerConfig
	Logger  *slog.Logger
}

// RenewalTriggerConfig holds the tunables for the trigger service.
type RenewalTriggerConfig struct {
	// Domain keys the single-flight lock.
	Domain string
	// LockTTL bounds how long a held lock blocks subsequent triggers.
	// Defaults to 1h, comfortably above the longest expected run.
	LockTTL time.Duration
}

// TriggerResult reports what one trigger request did.
type TriggerResult struct {
	InstanceID string `json:"instance_id,omitempty"`
	// AlreadyRunning marks the duplicate-trigger no-op: a renewal was in
	// flight, nothing was started, and the request still counts as success.
	AlreadyRunning bool `json:"already_running"`
}

// RenewalTriggerService starts the compute resource that hosts the renewal
// job and serves the operator-facing status and health reads. At most one
// renewal per domain is in flight: concurrent in-process triggers collapse
// via singleflight and cross-process duplicates are fenced by the lock
// repository, with the already-running instance state as the final guard.
type RenewalTriggerService struct {
	compute core.ComputeController
	locks   core.RenewalLockRepository
	runs    core.RenewalRunRepository
	domain  string
	lockTTL time.Duration
	logger  *slog.Logger

	flight singleflight.Group
}

// NewRenewalTriggerService constructs a new RenewalTriggerService.
func NewRenewalTriggerService(opts RenewalTriggerServiceOptions) (*RenewalTriggerService, error) {
	if opts.Compute == nil {
		return nil, errors.New("ComputeController is required")
	}
	if opts.Config.Domain == "" {
		return nil, errors.New("domain is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "renewal_trigger", "domain", opts.Config.Domain)

	ttl := opts.Config.LockTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &RenewalTriggerService{
		compute: opts.Compute,
		locks:   opts.Locks,
		runs:    opts.Runs,
		domain:  opts.Config.Domain,
		lockTTL: ttl,
		logger:  logger,
	}, nil
}

// MustNewRenewalTriggerService constructs a new RenewalTriggerService and panics on error.
func MustNewRenewalTriggerService(opts RenewalTriggerServiceOptions) *RenewalTriggerService {
	svc, err := NewRenewalTriggerService(opts)
	if err != nil {
		panic(err)
	}
	return svc
}

// Trigger starts one renewal cycle. A trigger that finds a renewal already in
// flight (held lock or running instance) succeeds as a no-op; the caller
// never sees an error for a duplicate.
func (s *RenewalTriggerService) Trigger(ctx context.Context) (*TriggerResult, error) {
	result, err, _ := s.flight.Do(s.domain, func() (any, error) {
		return s.trigger(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*TriggerResult), nil
}

func (s *RenewalTriggerService) trigger(ctx context.Context) (*TriggerResult, error) {
	if s.locks != nil {
		acquired, err := s.locks.Acquire(ctx, s.domain, s.lockTTL)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "acquire renewal lock")
		}
		if !acquired {
			s.logger.InfoContext(ctx, "renewal trigger skipped, lock held elsewhere")
			return &TriggerResult{AlreadyRunning: true}, nil
		}
	}

	instanceID, err := s.compute.Start(ctx)
	if err != nil {
		if apperrors.IsStateConflict(err) {
			s.logger.InfoContext(ctx, "renewal trigger skipped, instance already running")
			return &TriggerResult{AlreadyRunning: true}, nil
		}
		s.releaseLock(ctx)
		return nil, err
	}

	s.logger.InfoContext(ctx, "renewal instance started", "instance_id", instanceID)
	return &TriggerResult{InstanceID: instanceID}, nil
}

// releaseLock frees the lock when no renewal was actually started. The lock
// stays held after a successful start; the TTL covers the run.
func (s *RenewalTriggerService) releaseLock(ctx context.Context) {
	if s.locks == nil {
		return
	}
	if err := s.locks.Release(ctx, s.domain); err != nil {
		s.logger.WarnContext(ctx, "renewal lock release failed", "error", err)
	}
}

// Status reports the compute state together with the most recent ledger
// entry. An empty ledger yields a status with no last run, not an error.
func (s *RenewalTriggerService) Status(ctx context.Context) (*model.RenewalStatus, error) {
	compute, err := s.compute.Status(ctx)
	if err != nil {
		return nil, err
	}

	status := &model.RenewalStatus{Compute: *compute}
	if s.runs == nil {
		return status, nil
	}

	last, err := s.runs.Latest(ctx, s.domain)
	switch {
	case err == nil:
		status.LastRun = last
	case apperrors.IsNotFound(err):
		// No runs recorded yet.
	default:
		return nil, err
	}
	return status, nil
}

// Health verifies the compute resource is reachable and describable.
func (s *RenewalTriggerService) Health(ctx context.Context) error {
	if _, err := s.compute.Status(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "renewal compute unreachable")
	}
	return nil
}
