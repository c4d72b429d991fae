package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"shoulu/internal/config"
	"shoulu/internal/db"
	"shoulu/internal/engine"
	"shoulu/internal/migrate"
)

// Workspace is an opened, migrated workspace with its engine.
type Workspace struct {
	Path   string
	Conn   *sql.DB
	Config *config.Config
	Engine engine.Engine
}

// Open prepares the workspace directory, migrates its database and loads
// shoulu.yml, falling back to the built-in defaults when the file is absent.
func Open(ctx context.Context, workspace string, logger *zap.Logger) (*Workspace, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := config.LoadOptional(workspace)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if _, err := db.EnsureWorkspace(workspace); err != nil {
		return nil, err
	}
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return nil, err
	}
	if err := migrate.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Debug("workspace opened", zap.String("db", db.Path(workspace)))
	return &Workspace{
		Path:   workspace,
		Conn:   conn,
		Config: cfg,
		Engine: engine.New(conn, cfg, logger),
	}, nil
}

func (w *Workspace) Close() error {
	if w == nil || w.Conn == nil {
		return nil
	}
	return w.Conn.Close()
}

// With opens the workspace, runs fn and closes it again.
func With(ctx context.Context, workspace string, logger *zap.Logger, fn func(context.Context, *Workspace) error) error {
	w, err := Open(ctx, workspace, logger)
	if err != nil {
		return err
	}
	defer w.Close()
	return fn(ctx, w)
}
