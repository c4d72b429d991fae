package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoulu/internal/config"
	"shoulu/internal/db"
)

func TestOpenWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	err := With(context.Background(), dir, nil, func(ctx context.Context, w *Workspace) error {
		assert.Equal(t, config.Default(), w.Config)
		recs, err := w.Engine.ListRecords(ctx)
		require.NoError(t, err)
		assert.Empty(t, recs)
		return nil
	})
	require.NoError(t, err)
	_, err = os.Stat(db.Path(dir))
	assert.NoError(t, err)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("report:\n  default_mode: dance\n"), 0o644))
	_, err := Open(context.Background(), dir, nil)
	assert.ErrorContains(t, err, "load config")
}

func TestOpenUsesConfiguredKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("registry:\n  key: roster_b\n"), 0o644))
	w, err := Open(context.Background(), dir, nil)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, "roster_b", w.Engine.Registry.Key)
}
