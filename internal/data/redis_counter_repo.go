package data

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/cloudfolio/siteops/internal/errors"
)

// RedisCounterRepo implements the CounterRepository interface using Redis.
// The visitor counter is a single key bumped with atomic INCR.
type RedisCounterRepo struct {
	client redis.UniversalClient
	key    string
}

// NewRedisCounterRepo creates a new RedisCounterRepo with the given Redis client.
func NewRedisCounterRepo(client redis.UniversalClient, key string) *RedisCounterRepo {
	if key == "" {
		key = "siteops:visitor_count"
	}
	return &RedisCounterRepo{client: client, key: key}
}

// Get retrieves the current count. A missing key reads as zero, matching the
// counter's initial value.
func (r *RedisCounterRepo) Get(ctx context.Context) (int64, error) {
	result, err := r.client.Get(ctx, r.key).Int64()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, mapCounterErr("redis get", err)
	}
	return result, nil
}

// Increment atomically bumps the counter and returns the new value. INCR
// initializes a missing key to zero before incrementing, so no separate
// bootstrap write is needed.
func (r *RedisCounterRepo) Increment(ctx context.Context) (int64, error) {
	result, err := r.client.Incr(ctx, r.key).Result()
	if err != nil {
		return 0, mapCounterErr("redis incr", err)
	}
	return result, nil
}

// Ping verifies store connectivity for health checks.
func (r *RedisCounterRepo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// mapCounterErr surfaces overload responses as throttled so the HTTP layer
// can answer 429 instead of 500.
func mapCounterErr(op string, err error) error {
	msg := err.Error()
	if strings.HasPrefix(msg, "LOADING") || strings.HasPrefix(msg, "BUSY") || strings.HasPrefix(msg, "OOM") {
		return errors.Wrap(err, errors.ErrCodeThrottled, op+" throttled")
	}
	return fmt.Errorf("%s: %w", op, err)
}
