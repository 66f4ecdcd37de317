package domain

import "time"

// OutboxEntry is one event written transactionally alongside a state change,
// pending publication to the in-process bus.
type OutboxEntry struct {
	ID        int64     `json:"id"`
	EventType string    `json:"event_type"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	Attempts  int       `json:"attempts"`
}
