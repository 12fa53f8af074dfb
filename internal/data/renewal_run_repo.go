package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/errors"
	"github.com/cloudfolio/siteops/internal/migrate"
)

// RenewalRunRepo persists the renewal outcome ledger in PostgreSQL.
type RenewalRunRepo struct {
	db *sql.DB
}

// NewRenewalRunRepo creates a new RenewalRunRepo.
func NewRenewalRunRepo(db *sql.DB) *RenewalRunRepo {
	return &RenewalRunRepo{db: db}
}

// Record inserts one ledger row. Recording the same run ID twice is treated
// as a no-op so a retried write after a flaky commit cannot fail the job.
func (r *RenewalRunRepo) Record(ctx context.Context, run *model.RenewalRun) error {
	if run == nil {
		return errors.Validation("renewal run is required")
	}
	if run.ID == "" || run.Domain == "" {
		return errors.Validation("renewal run id and domain are required")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO renewal_runs (id, domain, outcome, stage, detail, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.Domain, string(run.Outcome), string(run.Stage), run.Detail,
		run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		mapped := errors.MapDBError(err)
		if errors.IsStateConflict(mapped) {
			return nil
		}
		return fmt.Errorf("insert renewal run: %w", mapped)
	}
	return nil
}

// Latest returns the most recent run for the domain.
func (r *RenewalRunRepo) Latest(ctx context.Context, domain string) (*model.RenewalRun, error) {
	if domain == "" {
		return nil, errors.Validation("domain is required")
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, domain, outcome, stage, detail, started_at, finished_at
		FROM renewal_runs
		WHERE domain = $1
		ORDER BY finished_at DESC
		LIMIT 1`, domain)

	var run model.RenewalRun
	var outcome, stage string
	err := row.Scan(&run.ID, &run.Domain, &outcome, &stage, &run.Detail, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		mapped := errors.MapDBError(err)
		if errors.IsNotFound(mapped) {
			return nil, errors.NotFoundf("no renewal runs recorded for %s", domain)
		}
		return nil, fmt.Errorf("query latest renewal run: %w", mapped)
	}
	run.Outcome = model.RenewalOutcome(outcome)
	run.Stage = model.RenewalStage(stage)
	return &run, nil
}

// RunMigrations executes database migrations to set up the required schema by
// delegating to the migrate package.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
