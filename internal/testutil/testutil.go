// Package testutil provides shared infrastructure helpers for tests that hit
// a real PostgreSQL or Redis instance. Tests skip when the backing service is
// not reachable unless TEST_REQUIRE_INFRA demands it.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	// pgx driver for database/sql compatibility in tests.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/cloudfolio/siteops/internal/migrate"
)

// TestDBConfig holds connection details for the test database.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DefaultTestDBConfig reads the test database location from TEST_DB_* env
// vars. Defaults target the docker-compose test profile on port 55432.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "55432"),
		User:     getEnvOrDefault("TEST_DB_USER", "siteops"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "siteops"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "siteops"),
	}
}

func (c TestDBConfig) dsn() string {
	hostPort := net.JoinHostPort(c.Host, c.Port)
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		c.User, c.Password, hostPort, c.DBName)
}

// SetupTestDB opens the test database, applies the production migrations, and
// truncates the ledger so every test starts from a clean slate. The handle is
// closed via t.Cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	db, err := sql.Open("pgx", DefaultTestDBConfig().dsn())
	if err != nil {
		t.Fatal("open test database:", err)
	}
	t.Cleanup(func() {
		if cerr := db.Close(); cerr != nil {
			t.Logf("close test database: %v", cerr)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatal("ping test database:", err)
	}
	if err := migrate.Run(ctx, db); err != nil {
		t.Fatal("run migrations:", err)
	}
	CleanupTestDB(t, db)
	return db
}

// CleanupTestDB removes all rows written by previous tests.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, "DELETE FROM renewal_runs"); err != nil {
		t.Fatalf("clean up renewal_runs: %v", err)
	}
}

// SkipIfNoTestDB skips the test when the test database is unreachable, or
// fails it when the environment insists infrastructure must be present.
func SkipIfNoTestDB(t *testing.T) {
	t.Helper()

	db, err := sql.Open("pgx", DefaultTestDBConfig().dsn())
	if err != nil {
		skipOrFail(t, "test database not available: %v", err)
		return
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			t.Logf("close probe connection: %v", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if pingErr := db.PingContext(ctx); pingErr != nil {
		skipOrFail(t, "test database not available: %v", pingErr)
	}
}

// SetupTestRedis opens a Redis client for tests and flushes the selected DB.
// The address comes from TEST_REDIS_ADDR, defaulting to the docker-compose
// test instance on port 56379. The client is closed via t.Cleanup.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := getEnvOrDefault("TEST_REDIS_ADDR", "localhost:56379")
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   1,
	})
	t.Cleanup(func() {
		if cerr := client.Close(); cerr != nil {
			t.Logf("close test redis client: %v", cerr)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		skipOrFail(t, "redis not available at %s: %v", addr, err)
	}
	client.FlushDB(ctx)
	return client
}

func skipOrFail(t *testing.T, format string, args ...any) {
	t.Helper()
	if envBool("TEST_REQUIRE_INFRA") {
		t.Fatalf(format, args...)
	}
	t.Skipf(format, args...)
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envBool parses common truthy values from env vars.
func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// TestTime returns a fixed time for deterministic assertions.
func TestTime() time.Time {
	return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
}

// FixedTimeFunc returns a clock function frozen at the given time.
func FixedTimeFunc(ts time.Time) func() time.Time {
	return func() time.Time {
		return ts
	}
}
