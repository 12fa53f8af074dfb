// Command siteops runs the website backend: the HTTP API (visitor counter,
// renewal trigger and status endpoints) and, optionally, the fixed-rate
// renewal schedule loop.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/cloudfolio/siteops/config"
	"github.com/cloudfolio/siteops/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	cfgPtr := &cfg

	logStartupInfo(ctx, logger, cfgPtr)

	if err = bootstrap.ValidateServiceConfig(cfgPtr); err != nil {
		return err
	}
	if err = bootstrap.ValidateRenewalConfig(cfgPtr); err != nil {
		return err
	}

	db, redisClient, err := initInfrastructure(ctx, cfgPtr, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	awsClients, err := bootstrap.NewAWSClients(cfg.AWS, logger)
	if err != nil {
		return err
	}

	services, err := bootstrap.InitServices(bootstrap.ServiceDeps{
		Config:      cfgPtr,
		DB:          db,
		RedisClient: redisClient,
		AWS:         awsClients,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Observability.MetricsSink.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics sink failed", "error", cerr)
		}
	}()

	return runServices(ctx, cfgPtr, services, logger)
}

// runServices starts the enabled services and blocks until a shutdown signal.
func runServices(ctx context.Context, cfg *config.AppConfig, services bootstrap.ServiceContainer, logger *slog.Logger) error {
	ctx, stop := bootstrap.NotifySignals(ctx)
	defer stop()

	scheduleErr := make(chan error, 1)
	if cfg.IsScheduleEnabled() {
		runner, err := bootstrap.NewScheduleRunner(cfg, services, logger)
		if err != nil {
			return fmt.Errorf("create schedule runner: %w", err)
		}
		go func() {
			scheduleErr <- runner.Run(ctx)
		}()
	}

	var server *http.Server
	if cfg.IsHTTPServerEnabled() {
		server = bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
			Config:   cfg,
			Services: services,
			Logger:   logger,
		})
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-scheduleErr:
		if err != nil {
			logger.Error("schedule runner stopped", "error", err)
		}
	}

	if server != nil {
		return bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
			Context: context.Background(),
			Server:  server,
			Logger:  logger,
		})
	}
	return nil
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting siteops",
		"domain", cfg.Renewal.Domain,
		"db_host", cfg.Postgres.Host,
		"redis_addr", cfg.Redis.Addr,
		"services", cfg.Services)
}

func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, *redis.Client, error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}

	redisClient, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database after redis connect failure", "error", cerr)
			return nil, nil, fmt.Errorf("connect redis: %w", errors.Join(err, fmt.Errorf("close database: %w", cerr)))
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return db, redisClient, nil
}
