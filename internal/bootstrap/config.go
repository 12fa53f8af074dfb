// Package bootstrap wires configuration, infrastructure clients, and services
// together for the binaries under cmd/.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/cloudfolio/siteops/config"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ValidateServiceConfig validates that at least one service is enabled.
func ValidateServiceConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("service config is required")
	}
	services, err := cfg.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("invalid service configuration: %w", err)
	}

	if len(services) == 0 {
		return errors.New("no services enabled")
	}

	return nil
}

// ValidateRenewalConfig checks the settings every renewal path depends on.
func ValidateRenewalConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("renewal config is required")
	}
	r := cfg.Renewal
	if r.Domain == "" {
		return errors.New("RENEWAL_DOMAIN is required")
	}
	if r.ACMCertificateARN == "" {
		return errors.New("RENEWAL_ACM_CERTIFICATE_ARN is required")
	}
	if r.SecretName == "" {
		return errors.New("RENEWAL_SECRET_NAME is required")
	}
	return nil
}
