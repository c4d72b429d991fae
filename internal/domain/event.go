package domain

// Event is one audit-log entry.
type Event struct {
	ID         int64  `json:"id"`
	TS         string `json:"ts" format:"date-time"`
	Type       string `json:"type"`
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id,omitempty"`
	ActorID    string `json:"actor_id"`
	Payload    string `json:"payload_json"`
}
