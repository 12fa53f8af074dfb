package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: Database and counter store configuration
//   - http.go: HTTP server configuration
//   - renewal.go: Certificate renewal configuration
//   - aws.go: AWS region and notification configuration
//   - services.go: Service mode and schedule configuration
type AppConfig struct {
	// IsDev controls development mode behavior (relaxed TLS endpoints, etc.)
	// Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// AWS configuration
	AWS AWSConfig

	// Certificate renewal configuration
	Renewal RenewalConfig

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"http"`

	// Schedule configuration
	Schedule ScheduleConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Renewal.Sanitize()
	c.Schedule.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks both DEV and ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		env := strings.ToLower(os.Getenv("ENV"))
		c.IsDev = env == "development" || env == "dev"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsScheduleEnabled returns true if the renewal schedule service is enabled.
func (c *AppConfig) IsScheduleEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeSchedule]
}
