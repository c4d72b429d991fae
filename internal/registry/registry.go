// Package registry keeps the ordered personnel collection under one key of the
// workspace key-value store. Every change rewrites the whole collection.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shoulu/internal/domain"
	"shoulu/internal/events"
	"shoulu/internal/repo"
)

// DefaultKey is the fixed store key of the collection.
const DefaultKey = "ordination_personnel"

var ErrNotFound = errors.New("personnel record not found")

type Registry struct {
	DB     *sql.DB
	Repo   repo.Repo
	Events events.Writer
	Key    string
	Logger *zap.Logger
}

func New(db *sql.DB, key string, logger *zap.Logger) Registry {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Registry{
		DB:     db,
		Repo:   repo.Repo{DB: db},
		Key:    key,
		Logger: logger,
	}
}

func (r Registry) key() string {
	if r.Key == "" {
		return DefaultKey
	}
	return r.Key
}

func (r Registry) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Load returns the stored collection. A missing or unreadable value yields an
// empty collection; only store failures are returned as errors.
func (r Registry) Load(ctx context.Context) ([]domain.Record, error) {
	raw, err := r.Repo.Get(ctx, r.key())
	if errors.Is(err, repo.ErrNotFound) {
		return []domain.Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	var recs []domain.Record
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		r.logger().Warn("discarding unreadable personnel collection",
			zap.String("key", r.key()), zap.Int("bytes", len(raw)), zap.Error(err))
		return []domain.Record{}, nil
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	return recs, nil
}

// Get finds a record by id.
func (r Registry) Get(ctx context.Context, id string) (domain.Record, error) {
	recs, err := r.Load(ctx)
	if err != nil {
		return domain.Record{}, err
	}
	for _, rec := range recs {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add appends rec and persists the collection.
func (r Registry) Add(ctx context.Context, rec domain.Record, actorID string) ([]domain.Record, error) {
	if rec.ID == "" {
		return nil, errors.New("record id required")
	}
	recs, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range recs {
		if existing.ID == rec.ID {
			return nil, fmt.Errorf("record %s already exists", rec.ID)
		}
	}
	recs = append(recs, rec)
	err = r.save(ctx, recs, func(tx *sql.Tx) error {
		return r.Events.Append(ctx, tx, events.PersonnelAdded, "personnel", rec.ID, actorID, events.Payload{
			"name":  rec.Name,
			"title": rec.Title,
		})
	})
	if err != nil {
		return nil, err
	}
	r.logger().Info("personnel record added", zap.String("id", rec.ID), zap.String("name", rec.Name))
	return recs, nil
}

// Remove drops the record with id. An unknown id leaves the collection untouched
// and reports removed=false.
func (r Registry) Remove(ctx context.Context, id, actorID string) ([]domain.Record, bool, error) {
	recs, err := r.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	kept := make([]domain.Record, 0, len(recs))
	var removed *domain.Record
	for i := range recs {
		if recs[i].ID == id && removed == nil {
			removed = &recs[i]
			continue
		}
		kept = append(kept, recs[i])
	}
	if removed == nil {
		return recs, false, nil
	}
	err = r.save(ctx, kept, func(tx *sql.Tx) error {
		return r.Events.Append(ctx, tx, events.PersonnelRemoved, "personnel", id, actorID, events.Payload{
			"name": removed.Name,
		})
	})
	if err != nil {
		return nil, false, err
	}
	r.logger().Info("personnel record removed", zap.String("id", id))
	return kept, true, nil
}

func (r Registry) save(ctx context.Context, recs []domain.Record, audit func(*sql.Tx) error) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal personnel: %w", err)
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := r.Repo.PutTx(ctx, tx, r.key(), string(data)); err != nil {
		return fmt.Errorf("store personnel: %w", err)
	}
	if audit != nil {
		if err := audit(tx); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}
	return tx.Commit()
}
