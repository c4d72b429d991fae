package engine_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoulu/internal/config"
	"shoulu/internal/db"
	"shoulu/internal/domain"
	"shoulu/internal/engine"
	"shoulu/internal/events"
	"shoulu/internal/migrate"
	"shoulu/internal/registry"
	"shoulu/internal/repo"
)

type testEnv struct {
	Engine engine.Engine
	Ctx    context.Context
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: dir})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	ctx := context.Background()
	require.NoError(t, migrate.Migrate(ctx, conn))
	eng := engine.New(conn, config.Default(), nil)
	eng.Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	n := 0
	eng.NewID = func() string {
		n++
		return fmt.Sprintf("rec-%d", n)
	}
	return testEnv{Engine: eng, Ctx: ctx}
}

func sampleInput() domain.Input {
	return domain.Input{Year: 114, Month: 4, Day: 10, Hour: domain.BranchShen, Gender: domain.Male, Level: domain.LevelFirst}
}

func TestDeriveRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	bad := []domain.Input{
		{Year: 0, Month: 1, Day: 1, Hour: domain.BranchZi, Gender: domain.Male, Level: domain.LevelFirst},
		{Year: 121, Month: 1, Day: 1, Hour: domain.BranchZi, Gender: domain.Male, Level: domain.LevelFirst},
		{Year: 1, Month: 13, Day: 1, Hour: domain.BranchZi, Gender: domain.Male, Level: domain.LevelFirst},
		{Year: 1, Month: 1, Day: 31, Hour: domain.BranchZi, Gender: domain.Male, Level: domain.LevelFirst},
		{Year: 1, Month: 1, Day: 1, Hour: "甲", Gender: domain.Male, Level: domain.LevelFirst},
		{Year: 1, Month: 1, Day: 1, Hour: domain.BranchZi, Gender: "male", Level: domain.LevelFirst},
		{Year: 1, Month: 1, Day: 1, Hour: domain.BranchZi, Gender: domain.Male, Level: "first"},
		{Year: 1, Month: 1, Day: 1, Hour: domain.BranchZi, Gender: domain.Male, Level: domain.LevelFirst, Vocation: "dance"},
	}
	for _, in := range bad {
		_, err := env.Engine.Derive(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestDeriveDefaultsVocation(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.Engine.Derive(sampleInput())
	require.NoError(t, err)
	assert.Equal(t, engine.DeriveInput(sampleInput()), res)
}

func TestReportOptions(t *testing.T) {
	env := newTestEnv(t)

	opts, err := env.Engine.ReportOptions("", "", domain.VocationExorcism)
	require.NoError(t, err)
	assert.Equal(t, engine.ReportCombat, opts.Mode)
	assert.Equal(t, "[姓名]", opts.Placeholder)
	assert.True(t, opts.CleanDuty)
	assert.False(t, opts.ShortMarshals)

	opts, err = env.Engine.ReportOptions("張三", "combat", domain.VocationGeneral)
	require.NoError(t, err)
	assert.Equal(t, engine.ReportCombat, opts.Mode)
	assert.Equal(t, "張三", opts.Name)

	env.Engine.Config.Report.DefaultMode = "general"
	opts, err = env.Engine.ReportOptions("", "", domain.VocationExorcism)
	require.NoError(t, err)
	assert.Equal(t, engine.ReportGeneral, opts.Mode)

	_, err = env.Engine.ReportOptions("", "dance", domain.VocationGeneral)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveListRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.Ctx

	recs, err := env.Engine.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	first, err := env.Engine.SaveRecord(ctx, "  張三 ", sampleInput(), "tester")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", first.ID)
	assert.Equal(t, "張三", first.Name)
	assert.Equal(t, "民國 114年 (乙巳) 4月10日 申時", first.LunarInfo)
	assert.Equal(t, "2024-01-01T00:00:00Z", first.CreatedAt)
	assert.Equal(t, domain.VocationGeneral, first.Input.Vocation)

	second, err := env.Engine.SaveRecord(ctx, "", sampleInput(), "tester")
	require.NoError(t, err)
	assert.Equal(t, "未具名弟子", second.Name)

	recs, err = env.Engine.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, first, recs[0])
	assert.Equal(t, second, recs[1])

	got, err := env.Engine.GetRecord(ctx, "rec-2")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	removed, err := env.Engine.RemoveRecord(ctx, "rec-1", "tester")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = env.Engine.RemoveRecord(ctx, "rec-1", "tester")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = env.Engine.GetRecord(ctx, "rec-1")
	assert.ErrorIs(t, err, registry.ErrNotFound)

	recs, err = env.Engine.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "rec-2", recs[0].ID)

	evts, err := env.Engine.Repo.LatestEvents(ctx, repo.EventFilter{EntityKind: "personnel"})
	require.NoError(t, err)
	require.Len(t, evts, 3)
	assert.Equal(t, events.PersonnelRemoved, evts[0].Type)
	assert.Equal(t, "rec-1", evts[0].EntityID)
	assert.Equal(t, "tester", evts[0].ActorID)
}

func TestSaveRecordRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	in := sampleInput()
	in.Month = 0
	_, err := env.Engine.SaveRecord(env.Ctx, "x", in, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	recs, err := env.Engine.ListRecords(env.Ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
