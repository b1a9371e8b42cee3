package events

import (
	"encoding/json"
	"time"
)

// SnapshotSavedEvent is the lightweight notification emitted after a
// per-user snapshot blob was persisted. Consumers that need the data
// itself reload the snapshot; the event carries only identity and size.
type SnapshotSavedEvent struct {
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"` // "expenses" or "budgets"
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSnapshotSavedEvent(userID, kind string, count int) *SnapshotSavedEvent {
	return &SnapshotSavedEvent{
		UserID:    userID,
		Kind:      kind,
		Count:     count,
		Timestamp: time.Now(),
	}
}

func (e *SnapshotSavedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func SnapshotSavedEventFromJSON(data []byte) (*SnapshotSavedEvent, error) {
	var event SnapshotSavedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
