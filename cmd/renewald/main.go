// Command renewald runs one certificate renewal invocation and exits. It is
// meant to run on the renewal instance at boot; the runner stops the instance
// again as part of its terminate stage.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/cloudfolio/siteops/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "renewal failed", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	cfgPtr := &cfg

	if err = bootstrap.ValidateRenewalConfig(cfgPtr); err != nil {
		return err
	}

	ctx, stop := bootstrap.NotifySignals(ctx)
	defer stop()

	// The ledger is optional for the one-shot job: a renewal must complete
	// even when the database is down.
	var db *sql.DB
	db, err = bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		logger.WarnContext(ctx, "ledger database unavailable, outcomes will not be recorded", "error", err)
		db = nil
	} else {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}()
		if cfg.Postgres.RunMigrationsOnStart {
			if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
				return err
			}
		}
	}

	awsClients, err := bootstrap.NewAWSClients(cfg.AWS, logger)
	if err != nil {
		return err
	}

	services, err := bootstrap.InitServicesLite(cfgPtr, awsClients, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Observability.MetricsSink.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics sink failed", "error", cerr)
		}
	}()

	runner, job, err := bootstrap.NewRenewalRunner(bootstrap.RenewalRunnerDeps{
		Config:   cfgPtr,
		DB:       db,
		AWS:      awsClients,
		Notifier: services.Notifier,
		Metrics:  services.Observability.MetricsSink,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	run, err := runner.Run(ctx, job)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "renewal completed",
		"run_id", run.ID,
		"outcome", run.Outcome,
		"elapsed", run.FinishedAt.Sub(run.StartedAt),
	)
	return nil
}
