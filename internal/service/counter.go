package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cloudfolio/siteops/internal/core"
)

// CounterServiceOptions groups dependencies for CounterService.
type CounterServiceOptions struct {
	Repo   core.CounterRepository // Required: counter repository
	Logger *slog.Logger           // Optional: structured logger
}

// CounterService provides the visitor counter operations.
type CounterService struct {
	repo   core.CounterRepository
	logger *slog.Logger
}

// NewCounterService constructs a new CounterService.
func NewCounterService(opts CounterServiceOptions) (*CounterService, error) {
	if opts.Repo == nil {
		return nil, errors.New("CounterRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "counter_service")
	}

	return &CounterService{
		repo:   opts.Repo,
		logger: logger,
	}, nil
}

// MustNewCounterService constructs a new CounterService and panics on error.
func MustNewCounterService(opts CounterServiceOptions) *CounterService {
	svc, err := NewCounterService(opts)
	if err != nil {
		panic(err)
	}
	return svc
}

// Current returns the visitor count without modifying it. A counter that has
// never been written reads as zero.
func (s *CounterService) Current(ctx context.Context) (int64, error) {
	return s.repo.Get(ctx)
}

// Hit records one visit and returns the new count.
func (s *CounterService) Hit(ctx context.Context) (int64, error) {
	count, err := s.repo.Increment(ctx)
	if err != nil {
		return 0, err
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "visitor counted", "count", count)
	}
	return count, nil
}

// Health verifies counter store connectivity.
func (s *CounterService) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
