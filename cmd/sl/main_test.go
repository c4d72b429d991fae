package main

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoulu/internal/app"
	"shoulu/internal/config"
	"shoulu/internal/domain"
)

func TestInputFlagsOverlayDefaults(t *testing.T) {
	var flags inputFlags
	cmd := &cobra.Command{Use: "derive"}
	flags.register(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--year", "114", "--hour", "子時", "--level", "promoted"}))

	in, err := flags.resolve(cmd, config.Default())
	require.NoError(t, err)
	assert.Equal(t, domain.Input{Year: 114, Month: 4, Day: 10, Hour: domain.BranchZi, Gender: domain.Male, Level: domain.LevelPromoted, Vocation: domain.VocationGeneral}, in)

	require.NoError(t, cmd.Flags().Parse([]string{"--gender", "x"}))
	_, err = flags.resolve(cmd, config.Default())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type answer struct {
	yes bool
	err error
}

func (a answer) Confirm(string) (bool, error) { return a.yes, a.err }

func TestRemovePersonnelConfirms(t *testing.T) {
	err := app.With(context.Background(), t.TempDir(), nil, func(ctx context.Context, w *app.Workspace) error {
		in, err := config.Default().Defaults.Input()
		require.NoError(t, err)
		rec, err := w.Engine.SaveRecord(ctx, "張三", in, "tester")
		require.NoError(t, err)

		require.NoError(t, removePersonnel(ctx, w.Engine, answer{yes: false}, rec.ID))
		recs, _ := w.Engine.ListRecords(ctx)
		assert.Len(t, recs, 1)

		assert.Error(t, removePersonnel(ctx, w.Engine, answer{err: errors.New("closed")}, rec.ID))

		require.NoError(t, removePersonnel(ctx, w.Engine, answer{yes: true}, rec.ID))
		recs, _ = w.Engine.ListRecords(ctx)
		assert.Empty(t, recs)
		return nil
	})
	require.NoError(t, err)
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) Copy(text string) error {
	f.text = text
	return f.err
}

func TestCopyToClipboard(t *testing.T) {
	cb := &fakeClipboard{}
	require.NoError(t, copyToClipboard(cb, "伏以"))
	assert.Equal(t, "伏以", cb.text)

	assert.Error(t, copyToClipboard(&fakeClipboard{err: errors.New("no display")}, "x"))
}
