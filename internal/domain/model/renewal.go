package model

import "time"

// RenewalOutcome is the terminal result of one renewal invocation.
type RenewalOutcome string

const (
	// RenewalOutcomeSuccess indicates the certificate was issued and imported.
	RenewalOutcomeSuccess RenewalOutcome = "success"
	// RenewalOutcomeFailure indicates the invocation aborted at some stage.
	RenewalOutcomeFailure RenewalOutcome = "failure"
)

// RenewalStage identifies a step of the renewal state machine. The machine is
// strictly linear: Start -> FetchSecret -> Issue -> Reconcile -> Notify ->
// Terminate, with any failure short-circuiting to Notify then Terminate.
type RenewalStage string

const (
	// StageFetchSecret is the secret store lookup.
	StageFetchSecret RenewalStage = "fetch_secret"
	// StageIssue is the ACME DNS-01 issuance.
	StageIssue RenewalStage = "issue"
	// StageReconcile is the certificate store import.
	StageReconcile RenewalStage = "reconcile"
	// StageNotify is the outcome notification.
	StageNotify RenewalStage = "notify"
	// StageTerminate is the unconditional cleanup and compute release.
	StageTerminate RenewalStage = "terminate"
)

// RenewalJob describes one renewal invocation. Jobs exist only for the
// duration of a single run and are never persisted; only RenewalRun outcomes
// are written to the ledger.
type RenewalJob struct {
	// RunID uniquely identifies this invocation (for logs and the ledger).
	RunID string
	// Domain is the apex domain to renew, e.g. "example.com".
	Domain string
	// WildcardDomain is the wildcard companion, e.g. "*.example.com".
	// Empty disables the wildcard SAN.
	WildcardDomain string
	// StableReference is the certificate store identity (ACM ARN) that must
	// survive every renewal unchanged.
	StableReference string
	// SecretName is the secret store key holding the DNS provider credential.
	SecretName string
}

// Hostnames returns the SANs to request, apex first.
func (j *RenewalJob) Hostnames() []string {
	if j.WildcardDomain == "" {
		return []string{j.Domain}
	}
	return []string{j.Domain, j.WildcardDomain}
}

// RenewalRun is one ledger row recording the outcome of an invocation.
type RenewalRun struct {
	ID         string         `json:"id"`
	Domain     string         `json:"domain"`
	Outcome    RenewalOutcome `json:"outcome"`
	Stage      RenewalStage   `json:"stage,omitempty"`
	Detail     string         `json:"detail,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// ComputeState mirrors the lifecycle states of the renewal compute resource.
type ComputeState string

const (
	// ComputeStateRunning means a renewal is (or may be) in progress.
	ComputeStateRunning ComputeState = "running"
	// ComputeStatePending means the resource is starting.
	ComputeStatePending ComputeState = "pending"
	// ComputeStateStopping means the resource is shutting down.
	ComputeStateStopping ComputeState = "stopping"
	// ComputeStateStopped means the resource is idle.
	ComputeStateStopped ComputeState = "stopped"
)

// ComputeStatus is a point-in-time view of the renewal compute resource.
type ComputeStatus struct {
	InstanceID string       `json:"instance_id"`
	State      ComputeState `json:"state"`
	LaunchedAt *time.Time   `json:"launched_at,omitempty"`
}

// RenewalStatus is the operator-facing view served by GET /ssl/status.
type RenewalStatus struct {
	Compute ComputeStatus `json:"compute"`
	LastRun *RenewalRun   `json:"last_run,omitempty"`
}
