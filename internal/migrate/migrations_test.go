package migrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoulu/internal/db"
	"shoulu/internal/migrate"
)

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, migrate.Migrate(ctx, conn))
	require.NoError(t, migrate.Migrate(ctx, conn))

	latest, err := migrate.Latest()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, latest, 1)
	v, err := migrate.Version(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, latest, v)

	for _, table := range []string{"kv_store", "events"} {
		var name string
		err := conn.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}
