package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeSchedule runs the fixed-rate renewal schedule loop.
	ServiceModeSchedule ServiceMode = "schedule"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeSchedule,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeSchedule:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, schedule)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// ScheduleConfig contains the renewal schedule loop configuration. The
// interval is deliberately well inside the certificate lifetime so a few
// missed or failed fires never reach the expiry cliff.
type ScheduleConfig struct {
	// Interval is the fixed rate between renewal triggers.
	Interval time.Duration `env:"SCHEDULE_INTERVAL" envDefault:"480h"`

	// Timezone the schedule is evaluated in.
	Timezone string `env:"SCHEDULE_TIMEZONE" envDefault:"UTC"`

	// Jitter bounds the random delay added to each fire time so restarts do
	// not synchronise triggers.
	Jitter time.Duration `env:"SCHEDULE_JITTER" envDefault:"15m"`

	// RetryAttempts bounds how often a failed trigger delivery is retried.
	RetryAttempts int `env:"SCHEDULE_RETRY_ATTEMPTS" envDefault:"5"`

	// RetryWindow bounds the total time spent retrying one fire.
	RetryWindow time.Duration `env:"SCHEDULE_RETRY_WINDOW" envDefault:"8h"`
}

// Sanitize applies guardrails to schedule configuration values.
func (s *ScheduleConfig) Sanitize() {
	if s.Interval <= 0 {
		s.Interval = 480 * time.Hour
	}
	if s.Jitter < 0 {
		s.Jitter = 0
	}
	if s.RetryAttempts < 1 {
		s.RetryAttempts = 1
	}
	if s.RetryWindow <= 0 {
		s.RetryWindow = 8 * time.Hour
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (s *ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
