package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shoulu/internal/config"
	"shoulu/internal/domain"
	"shoulu/internal/registry"
	"shoulu/internal/repo"
)

// Engine wires the pure derivation functions to configuration and the
// personnel registry.
type Engine struct {
	DB       *sql.DB
	Repo     repo.Repo
	Registry registry.Registry
	Config   *config.Config
	Logger   *zap.Logger
	Now      func() time.Time
	NewID    func() string
}

func New(db *sql.DB, cfg *config.Config, logger *zap.Logger) Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Engine{
		DB:       db,
		Repo:     repo.Repo{DB: db},
		Registry: registry.New(db, cfg.Registry.Key, logger),
		Config:   cfg,
		Logger:   logger,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Engine) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

func (e Engine) config() *config.Config {
	if e.Config == nil {
		return config.Default()
	}
	return e.Config
}

// Derive validates the input surface and derives the result.
func (e Engine) Derive(in domain.Input) (domain.Result, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.Result{}, err
	}
	res := DeriveInput(in)
	if e.Logger != nil {
		e.Logger.Debug("ordination derived",
			zap.Int("year", in.Year), zap.String("level", string(in.Level)),
			zap.String("department", string(res.Department)), zap.String("marshal", res.Marshal.Name))
	}
	return res, nil
}

// ReportOptions merges a request with the configured report defaults. An
// empty mode falls back to the configured mode, then to the vocation.
func (e Engine) ReportOptions(name, mode string, vocation domain.Vocation) (ReportOptions, error) {
	cfg := e.config()
	opts := ReportOptions{
		Name:          name,
		Placeholder:   cfg.Report.NamePlaceholder,
		CleanDuty:     cfg.Report.CleanDuty,
		ShortMarshals: cfg.Report.ShortMarshals,
	}
	if mode == "" {
		mode = cfg.Report.DefaultMode
	}
	if mode == "" {
		opts.Mode = ModeForVocation(vocation)
		return opts, nil
	}
	m, ok := ParseReportMode(mode)
	if !ok {
		return ReportOptions{}, fmt.Errorf("%w: report mode %q", domain.ErrInvalidInput, mode)
	}
	opts.Mode = m
	return opts, nil
}

// NewRecord derives and wraps a result as an unsaved personnel record.
func (e Engine) NewRecord(name string, in domain.Input) (domain.Record, error) {
	in = in.Normalize()
	res, err := e.Derive(in)
	if err != nil {
		return domain.Record{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = e.config().Registry.UnnamedDisciple
	}
	return domain.Record{
		Result:    res,
		ID:        e.newID(),
		Name:      name,
		LunarInfo: LunarInfo(in),
		Input:     in,
		CreatedAt: e.now().UTC().Format(time.RFC3339),
	}, nil
}

// SaveRecord derives a result for in and appends it to the registry.
func (e Engine) SaveRecord(ctx context.Context, name string, in domain.Input, actorID string) (domain.Record, error) {
	rec, err := e.NewRecord(name, in)
	if err != nil {
		return domain.Record{}, err
	}
	if _, err := e.Registry.Add(ctx, rec, actorID); err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

func (e Engine) ListRecords(ctx context.Context) ([]domain.Record, error) {
	return e.Registry.Load(ctx)
}

func (e Engine) GetRecord(ctx context.Context, id string) (domain.Record, error) {
	return e.Registry.Get(ctx, id)
}

// RemoveRecord deletes a record; removing an unknown id is a no-op.
func (e Engine) RemoveRecord(ctx context.Context, id, actorID string) (bool, error) {
	_, removed, err := e.Registry.Remove(ctx, id, actorID)
	return removed, err
}
