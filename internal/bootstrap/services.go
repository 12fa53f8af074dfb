package bootstrap

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/acme"

	"github.com/cloudfolio/siteops/config"
	"github.com/cloudfolio/siteops/internal/adapters/acmeissuer"
	"github.com/cloudfolio/siteops/internal/adapters/acmstore"
	"github.com/cloudfolio/siteops/internal/adapters/awssecrets"
	"github.com/cloudfolio/siteops/internal/adapters/ec2compute"
	"github.com/cloudfolio/siteops/internal/adapters/schedule"
	"github.com/cloudfolio/siteops/internal/data"
	"github.com/cloudfolio/siteops/internal/domain/model"
	httpx "github.com/cloudfolio/siteops/internal/http"
	"github.com/cloudfolio/siteops/internal/observability/notify/sns"
	"github.com/cloudfolio/siteops/internal/observability/statsd"
	"github.com/cloudfolio/siteops/internal/renewal"
	"github.com/cloudfolio/siteops/internal/service"
	"github.com/cloudfolio/siteops/internal/service/outcomenotifier"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Counter       *service.CounterService
	Renewal       *service.RenewalTriggerService
	Notifier      *outcomenotifier.Service
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient *redis.Client
	AWS         *AWSClients
	Logger      *slog.Logger
}

// InitServices constructs the service container from infrastructure clients.
func InitServices(deps ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metricsSink, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Observability.Metrics.StatsdPrefix,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create statsd client: %w", err)
	}

	counterSvc, err := service.NewCounterService(service.CounterServiceOptions{
		Repo:   data.NewRedisCounterRepo(deps.RedisClient, cfg.Redis.CounterKey),
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create counter service: %w", err)
	}

	renewalSvc, err := service.NewRenewalTriggerService(service.RenewalTriggerServiceOptions{
		Compute: ec2compute.NewController(deps.AWS.EC2, cfg.Renewal.InstanceID),
		Locks:   data.NewRedisLockRepo(deps.RedisClient),
		Runs:    data.NewRenewalRunRepo(deps.DB),
		Config: service.RenewalTriggerConfig{
			Domain:  cfg.Renewal.Domain,
			LockTTL: cfg.Renewal.LockTTL,
		},
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create renewal trigger service: %w", err)
	}

	notifier, err := buildNotifier(cfg, deps.AWS, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Counter:  counterSvc,
		Renewal:  renewalSvc,
		Notifier: notifier,
		Observability: ObservabilityContainer{
			MetricsSink:   metricsSink,
			MetricsConfig: cfg.Observability.Metrics,
		},
	}, nil
}

// InitServicesLite builds only the metrics sink and the outcome notifier,
// for the one-shot renewal job that carries no HTTP surface or stores.
func InitServicesLite(cfg *config.AppConfig, clients *AWSClients, logger *slog.Logger) (ServiceContainer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	metricsSink, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Observability.Metrics.StatsdPrefix,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create statsd client: %w", err)
	}

	notifier, err := buildNotifier(cfg, clients, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Notifier: notifier,
		Observability: ObservabilityContainer{
			MetricsSink:   metricsSink,
			MetricsConfig: cfg.Observability.Metrics,
		},
	}, nil
}

// buildNotifier assembles the outcome fan-out. With no configured topic the
// notifier is still valid, just empty.
func buildNotifier(cfg *config.AppConfig, clients *AWSClients, logger *slog.Logger) (*outcomenotifier.Service, error) {
	var sinks []outcomenotifier.SinkRegistration

	if cfg.Observability.Notifications.Enabled && cfg.AWS.SNSTopicARN != "" {
		snsSink, err := sns.NewClient(clients.SNS, sns.Config{
			TopicARN:      cfg.AWS.SNSTopicARN,
			SubjectPrefix: cfg.AWS.SNSSubjectPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("create sns sink: %w", err)
		}
		sinks = append(sinks, outcomenotifier.SinkRegistration{Name: "sns", Sink: snsSink})
	}

	return outcomenotifier.NewService(outcomenotifier.Options{
		Logger:  logger,
		Sinks:   sinks,
		Timeout: cfg.Observability.Notifications.Timeout,
	}), nil
}

// HealthCheckers builds the dependency probes served by GET /health.
func HealthCheckers(services ServiceContainer) []httpx.HealthChecker {
	return []httpx.HealthChecker{
		{Name: "counter_store", Check: services.Counter.Health},
		{Name: "renewal_compute", Check: services.Renewal.Health},
	}
}

// NewScheduleRunner builds the fixed-rate renewal trigger loop around the
// trigger service.
func NewScheduleRunner(cfg *config.AppConfig, services ServiceContainer, logger *slog.Logger) (*schedule.Runner, error) {
	return schedule.NewRunner(schedule.RunnerOptions{
		Trigger:       triggerAdapter{svc: services.Renewal},
		Interval:      cfg.Schedule.Interval,
		Location:      cfg.Schedule.Location(),
		Jitter:        cfg.Schedule.Jitter,
		RetryAttempts: cfg.Schedule.RetryAttempts,
		RetryWindow:   cfg.Schedule.RetryWindow,
		Logger:        logger,
		Metrics:       services.Observability.MetricsSink,
	})
}

type triggerAdapter struct {
	svc *service.RenewalTriggerService
}

func (a triggerAdapter) Trigger(ctx context.Context) (string, error) {
	result, err := a.svc.Trigger(ctx)
	if err != nil {
		return "", err
	}
	if result.AlreadyRunning {
		return "already-running", nil
	}
	return result.InstanceID, nil
}

// RenewalRunnerDeps groups dependencies for building the one-shot renewal runner.
type RenewalRunnerDeps struct {
	Config   *config.AppConfig
	DB       *sql.DB
	AWS      *AWSClients
	Notifier *outcomenotifier.Service
	Metrics  *statsd.Client
	Logger   *slog.Logger
}

// NewRenewalRunner assembles the renewal state machine for the renewald
// binary. The ACME account key is generated per process: registration of a
// fresh key creates or matches the account on the CA side, so no key needs to
// survive between runs.
func NewRenewalRunner(deps RenewalRunnerDeps) (*renewal.Runner, *model.RenewalJob, error) {
	cfg := deps.Config

	accountKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("generate acme account key: %w", err)
	}

	issuer, err := acmeissuer.NewIssuer(acmeissuer.Options{
		Client: &acme.Client{
			DirectoryURL: cfg.Renewal.ACMEDirectoryURL,
			Key:          accountKey,
		},
		SolverFactory: acmeissuer.NewRoute53SolverFactory(cfg.AWS.Region, cfg.Renewal.HostedZoneID),
		Email:         cfg.Renewal.ACMEEmail,
		Logger:        deps.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create acme issuer: %w", err)
	}

	var runs *data.RenewalRunRepo
	if deps.DB != nil {
		runs = data.NewRenewalRunRepo(deps.DB)
	}

	runnerOpts := renewal.RunnerOptions{
		Secrets:      awssecrets.NewProvider(deps.AWS.Secrets),
		Issuer:       issuer,
		Store:        acmstore.NewReconciler(deps.AWS.ACM),
		Compute:      ec2compute.NewController(deps.AWS.EC2, cfg.Renewal.InstanceID),
		Logger:       deps.Logger,
		Metrics:      deps.Metrics,
		StageTimeout: cfg.Renewal.StageTimeout,
		TotalTimeout: cfg.Renewal.TotalTimeout,
	}
	if deps.Notifier != nil {
		runnerOpts.Notifier = deps.Notifier
	}
	if runs != nil {
		runnerOpts.Runs = runs
	}

	runner, err := renewal.NewRunner(runnerOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("create renewal runner: %w", err)
	}

	job := &model.RenewalJob{
		Domain:          cfg.Renewal.Domain,
		WildcardDomain:  cfg.Renewal.WildcardDomain(),
		StableReference: cfg.Renewal.ACMCertificateARN,
		SecretName:      cfg.Renewal.SecretName,
	}
	return runner, job, nil
}

// NotifySignals returns a context cancelled on SIGINT or SIGTERM.
func NotifySignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
