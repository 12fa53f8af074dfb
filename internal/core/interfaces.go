// Package core defines the ports between the renewal workflow, the counter
// service, and their infrastructure adapters. Services accept these
// interfaces; adapters return concrete structs.
package core

import (
	"context"
	"time"

	"github.com/cloudfolio/siteops/internal/domain/model"
)

// SecretProvider retrieves a credential from a secure store at renewal time.
// Implementations must never persist the value or write it to logs.
type SecretProvider interface {
	// Fetch returns the named secret. It fails with a secret_unavailable
	// error when the store is unreachable or the secret is absent/empty.
	Fetch(ctx context.Context, name string) (*model.CredentialSecret, error)
}

// CertificateIssuer performs a DNS-01 domain-validation challenge against the
// external CA, producing fresh certificate material. Issuance is
// unconditional: the remaining validity of any existing certificate is not
// consulted.
type CertificateIssuer interface {
	Issue(ctx context.Context, job *model.RenewalJob, cred *model.CredentialSecret) (*model.CertificateMaterial, error)
}

// CertificateStore imports issued material into a target identity while
// preserving its stable reference, so downstream consumers never need
// reconfiguration. Re-importing identical material against the same reference
// must behave as a no-op success, not an error.
type CertificateStore interface {
	Reconcile(ctx context.Context, stableRef string, material *model.CertificateMaterial) error
}

// ComputeController manages the compute resource that hosts the renewal job.
type ComputeController interface {
	// Start boots the renewal instance. When the instance is already
	// running it returns a state_conflict error; callers treat that case as
	// a success-equivalent no-op (a duplicate trigger, not a failure).
	Start(ctx context.Context) (string, error)
	// Status reports the instance's current lifecycle state.
	Status(ctx context.Context) (*model.ComputeStatus, error)
	// Release shuts the instance down. Called unconditionally at the end of
	// every renewal invocation so repeated triggers never accumulate
	// running instances.
	Release(ctx context.Context) error
}

// CounterRepository stores the visitor counter.
type CounterRepository interface {
	// Get returns the current count. A missing counter reads as zero.
	Get(ctx context.Context) (int64, error)
	// Increment atomically bumps the counter and returns the new value.
	Increment(ctx context.Context) (int64, error)
	// Ping verifies store connectivity for health checks.
	Ping(ctx context.Context) error
}

// RenewalLockRepository is a domain-keyed mutual-exclusion lock making the
// single-flight guarantee self-enforced instead of relying solely on the
// schedule spacing.
type RenewalLockRepository interface {
	// Acquire takes the lock for the given domain, returning false when a
	// concurrent invocation already holds it.
	Acquire(ctx context.Context, domain string, ttl time.Duration) (bool, error)
	// Release drops the lock for the given domain.
	Release(ctx context.Context, domain string) error
}

// RenewalRunRepository persists the outcome ledger of renewal invocations.
type RenewalRunRepository interface {
	Record(ctx context.Context, run *model.RenewalRun) error
	// Latest returns the most recent run for the domain, or a not_found
	// error when the ledger is empty.
	Latest(ctx context.Context, domain string) (*model.RenewalRun, error)
}
