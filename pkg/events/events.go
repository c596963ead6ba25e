package events

import "time"

// Activity event types published on the in-process bus.
const (
	TypeSessionCreated    = "SESSION_CREATED"
	TypeSessionDeleted    = "SESSION_DELETED"
	TypeExchangeCompleted = "EXCHANGE_COMPLETED"
	TypeFileIngested      = "FILE_INGESTED"
	TypeFileDeleted       = "FILE_DELETED"
)

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
