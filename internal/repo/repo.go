package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shoulu/internal/domain"
)

// Repo is the SQLite-backed key-value store and event log.
type Repo struct {
	DB  *sql.DB
	Now func() time.Time
}

var ErrNotFound = errors.New("not found")

func (r Repo) now() string {
	if r.Now != nil {
		return r.Now().UTC().Format(time.RFC3339)
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// Get returns the raw value stored under key.
func (r Repo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key=?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Put replaces the value stored under key.
func (r Repo) Put(ctx context.Context, key, value string) error {
	return r.put(ctx, nil, key, value)
}

// PutTx is Put inside an existing transaction.
func (r Repo) PutTx(ctx context.Context, tx *sql.Tx, key, value string) error {
	return r.put(ctx, tx, key, value)
}

func (r Repo) put(ctx context.Context, tx *sql.Tx, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key required")
	}
	exec := func(query string, args ...any) (sql.Result, error) {
		if tx != nil {
			return tx.ExecContext(ctx, query, args...)
		}
		return r.DB.ExecContext(ctx, query, args...)
	}
	_, err := exec(`INSERT INTO kv_store(key,value,updated_at) VALUES (?,?,?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`, key, value, r.now())
	return err
}

// Delete removes key.
func (r Repo) Delete(ctx context.Context, key string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM kv_store WHERE key=?`, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// EventFilter narrows LatestEvents.
type EventFilter struct {
	Limit      int
	Type       string
	EntityKind string
	EntityID   string
}

// LatestEvents returns the newest events first.
func (r Repo) LatestEvents(ctx context.Context, f EventFilter) ([]domain.Event, error) {
	var (
		clauses []string
		args    []any
	)
	if f.Type != "" {
		clauses = append(clauses, "type=?")
		args = append(args, f.Type)
	}
	if f.EntityKind != "" {
		clauses = append(clauses, "entity_kind=?")
		args = append(args, f.EntityKind)
	}
	if f.EntityID != "" {
		clauses = append(clauses, "entity_id=?")
		args = append(args, f.EntityID)
	}
	query := `SELECT id,ts,type,entity_kind,COALESCE(entity_id,''),actor_id,payload_json FROM events`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.TS, &e.Type, &e.EntityKind, &e.EntityID, &e.ActorID, &e.Payload); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
