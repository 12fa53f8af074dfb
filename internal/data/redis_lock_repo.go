package data

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "siteops:renewal_lock:"

// RedisLockRepo implements the domain-keyed renewal lock on Redis. It makes
// the single-flight guarantee self-enforced rather than assumed from schedule
// spacing.
type RedisLockRepo struct {
	client redis.UniversalClient
}

// NewRedisLockRepo creates a new RedisLockRepo with the given Redis client.
func NewRedisLockRepo(client redis.UniversalClient) *RedisLockRepo {
	return &RedisLockRepo{client: client}
}

// Acquire takes the lock for the domain. Returns false when another
// invocation already holds it. The TTL bounds how long a crashed holder can
// block the next scheduled attempt.
func (r *RedisLockRepo) Acquire(ctx context.Context, domain string, ttl time.Duration) (bool, error) {
	if domain == "" {
		return false, stderrors.New("domain cannot be empty")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	// SET with NX + TTL is atomic; SETNX followed by EXPIRE is not.
	cmd := r.client.SetArgs(ctx, lockKeyPrefix+domain, time.Now().UTC().Format(time.RFC3339), redis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	})
	if _, err := cmd.Result(); err != nil {
		// NX not met (key exists) comes back as redis.Nil: lock held elsewhere.
		if stderrors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis SET NX: %w", err)
	}
	return true, nil
}

// Release drops the lock for the domain.
func (r *RedisLockRepo) Release(ctx context.Context, domain string) error {
	if domain == "" {
		return stderrors.New("domain cannot be empty")
	}
	if err := r.client.Del(ctx, lockKeyPrefix+domain).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
