// Package renewal drives one certificate renewal invocation through its
// linear state machine: fetch secret, issue, reconcile, notify, terminate.
package renewal

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cloudfolio/siteops/internal/core"
	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/errors"
	"github.com/cloudfolio/siteops/internal/observability/metrics"
	"github.com/cloudfolio/siteops/internal/observability/notify"
	"github.com/cloudfolio/siteops/internal/observability/statsd"
)

// Notifier consumes the single outcome payload emitted per invocation.
// Delivery problems are the notifier's to log; Notify never fails the run.
type Notifier interface {
	Notify(ctx context.Context, payload notify.RenewalOutcomePayload)
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Secrets core.SecretProvider
	Issuer  core.CertificateIssuer
	Store   core.CertificateStore
	// Compute is released unconditionally at terminate time. Nil when the
	// process does not own a compute resource (local runs, tests).
	Compute  core.ComputeController
	Notifier Notifier
	// Runs receives one ledger row per invocation. Nil disables the ledger.
	Runs    core.RenewalRunRepository
	Logger  *slog.Logger
	Metrics statsd.Sink
	// StageTimeout bounds each stage individually. Defaults to 15m.
	StageTimeout time.Duration
	// TotalTimeout bounds the whole invocation. Defaults to 45m.
	TotalTimeout time.Duration

	now func() time.Time
}

// Runner executes renewal jobs. Each Run is a complete invocation: no state
// survives between runs, and a failure in any stage short-circuits straight
// to notification and termination. The terminate stage always executes.
type Runner struct {
	secrets      core.SecretProvider
	issuer       core.CertificateIssuer
	store        core.CertificateStore
	compute      core.ComputeController
	notifier     Notifier
	runs         core.RenewalRunRepository
	logger       *slog.Logger
	metrics      statsd.Sink
	stageTimeout time.Duration
	totalTimeout time.Duration
	now          func() time.Time
}

// NewRunner creates a renewal runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Secrets == nil {
		return nil, stderrors.New("secret provider is required")
	}
	if opts.Issuer == nil {
		return nil, stderrors.New("certificate issuer is required")
	}
	if opts.Store == nil {
		return nil, stderrors.New("certificate store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default().With("component", "renewal_runner")
	}
	if opts.StageTimeout <= 0 {
		opts.StageTimeout = 15 * time.Minute
	}
	if opts.TotalTimeout <= 0 {
		opts.TotalTimeout = 45 * time.Minute
	}
	if opts.now == nil {
		opts.now = time.Now
	}

	return &Runner{
		secrets:      opts.Secrets,
		issuer:       opts.Issuer,
		store:        opts.Store,
		compute:      opts.Compute,
		notifier:     opts.Notifier,
		runs:         opts.Runs,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		stageTimeout: opts.StageTimeout,
		totalTimeout: opts.TotalTimeout,
		now:          opts.now,
	}, nil
}

// Run executes one renewal invocation for the job. It returns the recorded
// run and the fatal stage error, if any. Exactly one outcome notification is
// emitted per call, and termination (wipe, release, ledger write) happens on
// every path including panics propagated from adapters.
func (r *Runner) Run(ctx context.Context, job *model.RenewalJob) (*model.RenewalRun, error) {
	if job == nil {
		return nil, errors.Validation("renewal job is required")
	}
	if job.Domain == "" {
		return nil, errors.Validation("renewal job domain is required")
	}
	if job.StableReference == "" {
		return nil, errors.Validation("renewal job stable reference is required")
	}
	if job.RunID == "" {
		job.RunID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(ctx, r.totalTimeout)
	defer cancel()

	logger := r.logger.With("run_id", job.RunID, "domain", job.Domain)
	started := r.now()
	logger.InfoContext(ctx, "renewal run starting", "stable_reference", job.StableReference)

	var (
		cred     *model.CredentialSecret
		material *model.CertificateMaterial
		runErr   error
		failedAt model.RenewalStage
	)

	defer func() {
		r.terminate(ctx, logger, job, started, cred, material, runErr, failedAt)
	}()

	cred, runErr = r.fetchSecret(ctx, logger, job)
	if runErr != nil {
		failedAt = model.StageFetchSecret
		return nil, runErr
	}

	material, runErr = r.issue(ctx, logger, job, cred)
	if runErr != nil {
		failedAt = model.StageIssue
		return nil, runErr
	}

	runErr = r.reconcile(ctx, logger, job, material)
	if runErr != nil {
		failedAt = model.StageReconcile
		return nil, runErr
	}

	logger.InfoContext(ctx, "renewal run succeeded",
		"stable_reference", job.StableReference,
		"elapsed", r.now().Sub(started),
	)
	return r.buildRun(job, started, nil, ""), nil
}

func (r *Runner) fetchSecret(ctx context.Context, logger *slog.Logger, job *model.RenewalJob) (*model.CredentialSecret, error) {
	ctx, cancel := context.WithTimeout(ctx, r.stageTimeout)
	defer cancel()

	start := r.now()
	cred, err := r.secrets.Fetch(ctx, job.SecretName)
	r.emitStage(job, model.StageFetchSecret, start, err)
	if err != nil {
		logger.ErrorContext(ctx, "secret fetch failed", "secret", job.SecretName, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "dns credential fetched", "secret", job.SecretName)
	return cred, nil
}

func (r *Runner) issue(
	ctx context.Context,
	logger *slog.Logger,
	job *model.RenewalJob,
	cred *model.CredentialSecret,
) (*model.CertificateMaterial, error) {
	ctx, cancel := context.WithTimeout(ctx, r.stageTimeout)
	defer cancel()

	start := r.now()
	material, err := r.issuer.Issue(ctx, job, cred)
	r.emitStage(job, model.StageIssue, start, err)
	if err != nil {
		logger.ErrorContext(ctx, "certificate issuance failed", "hostnames", job.Hostnames(), "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "certificate issued", "hostnames", job.Hostnames())
	return material, nil
}

func (r *Runner) reconcile(
	ctx context.Context,
	logger *slog.Logger,
	job *model.RenewalJob,
	material *model.CertificateMaterial,
) error {
	ctx, cancel := context.WithTimeout(ctx, r.stageTimeout)
	defer cancel()

	start := r.now()
	err := r.store.Reconcile(ctx, job.StableReference, material)
	r.emitStage(job, model.StageReconcile, start, err)
	if err != nil {
		logger.ErrorContext(ctx, "certificate reconcile failed",
			"stable_reference", job.StableReference,
			"error", err,
		)
		return err
	}

	logger.InfoContext(ctx, "certificate reconciled", "stable_reference", job.StableReference)
	return nil
}

// terminate is the unconditional tail of every invocation: emit the single
// outcome notification, wipe secret and key material, write the ledger row,
// and release the compute resource. Cleanup failures are logged, never
// escalated; the run's outcome was already decided by the stages above.
func (r *Runner) terminate(
	ctx context.Context,
	logger *slog.Logger,
	job *model.RenewalJob,
	started time.Time,
	cred *model.CredentialSecret,
	material *model.CertificateMaterial,
	runErr error,
	failedAt model.RenewalStage,
) {
	// The run context may already be cancelled or expired. Cleanup still has
	// to finish, so it runs on a detached context with its own bound.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.stageTimeout)
	defer cancel()

	r.notifyOutcome(ctx, job, started, runErr, failedAt)

	cred.Wipe()
	material.Wipe()

	run := r.buildRun(job, started, runErr, failedAt)
	if r.runs != nil {
		if err := r.runs.Record(ctx, run); err != nil {
			logger.ErrorContext(ctx, "ledger write failed", "error", err)
		}
	}

	if r.compute != nil {
		if err := r.compute.Release(ctx); err != nil {
			logger.ErrorContext(ctx, "compute release failed", "error", err)
		} else {
			logger.InfoContext(ctx, "compute released")
		}
	}

	metrics.EmitRenewalOutcome(r.metrics, job.Domain, string(run.Outcome), r.now().Sub(started))
}

// notifyOutcome emits the invocation's single outcome notification. Success
// and failure use the same payload shape; the failed stage and diagnostic are
// only set on failure.
func (r *Runner) notifyOutcome(
	ctx context.Context,
	job *model.RenewalJob,
	started time.Time,
	runErr error,
	failedAt model.RenewalStage,
) {
	if r.notifier == nil {
		return
	}

	payload := notify.RenewalOutcomePayload{
		RunID:           job.RunID,
		Domain:          job.Domain,
		StableReference: job.StableReference,
		Outcome:         model.RenewalOutcomeSuccess,
		Elapsed:         r.now().Sub(started),
		OccurredAt:      r.now(),
	}
	if runErr != nil {
		payload.Outcome = model.RenewalOutcomeFailure
		payload.Stage = failedAt
		payload.Detail = runErr.Error()
	}
	r.notifier.Notify(ctx, payload)
}

func (r *Runner) buildRun(job *model.RenewalJob, started time.Time, runErr error, failedAt model.RenewalStage) *model.RenewalRun {
	run := &model.RenewalRun{
		ID:         job.RunID,
		Domain:     job.Domain,
		Outcome:    model.RenewalOutcomeSuccess,
		StartedAt:  started,
		FinishedAt: r.now(),
	}
	if runErr != nil {
		run.Outcome = model.RenewalOutcomeFailure
		run.Stage = failedAt
		run.Detail = runErr.Error()
	}
	return run
}

func (r *Runner) emitStage(job *model.RenewalJob, stage model.RenewalStage, start time.Time, err error) {
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.EmitRenewalStage(r.metrics, metrics.StageMetric{
		Domain:   job.Domain,
		Stage:    string(stage),
		Result:   result,
		Duration: r.now().Sub(start),
		Err:      err,
	})
}
