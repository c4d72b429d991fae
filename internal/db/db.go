package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	workspaceDir  = ".shoulu"
	defaultDBName = "shoulu.db"
)

type Config struct {
	Workspace string
}

func dbPath(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, workspaceDir, defaultDBName)
}

// EnsureWorkspace creates the .shoulu directory if missing.
func EnsureWorkspace(workspace string) (string, error) {
	if workspace == "" {
		workspace = "."
	}
	path := filepath.Join(workspace, workspaceDir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// Open opens the SQLite database of a workspace.
func Open(cfg Config) (*sql.DB, error) {
	if _, err := EnsureWorkspace(cfg.Workspace); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath(cfg.Workspace))
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer; the personnel collection is rewritten whole on every change.
	conn.SetMaxOpenConns(1)
	return conn, nil
}

// Path returns the db path for the workspace.
func Path(workspace string) string {
	return dbPath(workspace)
}
