package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

type Migration struct {
	Version int
	Name    string
	UpSQL   string
}

func loadMigrations() ([]Migration, error) {
	files, err := fs.ReadDir(migrationsFS, "sql")
	if err != nil {
		return nil, err
	}
	var migrations []Migration
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".sql") {
			continue
		}
		data, err := migrationsFS.ReadFile("sql/" + f.Name())
		if err != nil {
			return nil, err
		}
		var v int
		if _, err := fmt.Sscanf(f.Name(), "%d_", &v); err != nil {
			return nil, fmt.Errorf("invalid migration filename %s: %w", f.Name(), err)
		}
		migrations = append(migrations, Migration{Version: v, Name: f.Name(), UpSQL: string(data)})
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

// Latest is the highest embedded migration version.
func Latest() (int, error) {
	migrations, err := loadMigrations()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}
	return migrations[len(migrations)-1].Version, nil
}

// Migrate applies embedded migrations in order inside one transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version(version INTEGER NOT NULL);`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}
	current, err := readVersion(ctx, tx)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version(version) VALUES (0)`); err != nil {
			return fmt.Errorf("init schema_version: %w", err)
		}
		current = 0
	} else if err != nil {
		return fmt.Errorf("read schema_version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE schema_version SET version=?`, m.Version); err != nil {
			return fmt.Errorf("update schema_version: %w", err)
		}
		current = m.Version
	}
	return tx.Commit()
}

// Version reports the applied schema version.
func Version(ctx context.Context, db *sql.DB) (int, error) {
	var v int
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&v)
	return v, err
}

func readVersion(ctx context.Context, tx *sql.Tx) (int, error) {
	var v int
	err := tx.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&v)
	return v, err
}
