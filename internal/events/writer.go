package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const (
	PersonnelAdded   = "personnel.add"
	PersonnelRemoved = "personnel.remove"
)

type Writer struct {
	Now func() time.Time
}

type Payload map[string]any

// Append records an event inside tx so it commits with the change it describes.
func (w Writer) Append(ctx context.Context, tx *sql.Tx, evtType, entityKind, entityID, actorID string, payload Payload) error {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	if actorID == "" {
		actorID = "local-user"
	}
	if payload == nil {
		payload = Payload{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO events(ts,type,entity_kind,entity_id,actor_id,payload_json) VALUES (?,?,?,?,?,?)`,
		now().UTC().Format(time.RFC3339), evtType, entityKind, nullable(entityID), actorID, string(data))
	return err
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
