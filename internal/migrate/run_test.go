package migrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudfolio/siteops/internal/migrate"
	"github.com/cloudfolio/siteops/internal/testutil"
)

func TestRunIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	// SetupTestDB already ran the migrations once; a second run must be a no-op.
	require.NoError(t, migrate.Run(ctx, db))

	var applied bool
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`,
		"0001_renewal_runs").Scan(&applied))
	assert.True(t, applied)

	// The ledger table exists and accepts the schema's shape.
	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM renewal_runs").Scan(&count))
	assert.Zero(t, count)
}
