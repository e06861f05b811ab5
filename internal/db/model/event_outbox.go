package model

import "time"

const (
	EventOutboxCollection = "event_outbox"
	CounterCollection     = "counters"
	// EventSequenceCounterID names the counter that orders outbox events.
	EventSequenceCounterID = "event_sequence"
)

// EventDocument is an audit log entry written in the transaction of the
// operation that produced it. The relay poller publishes it later.
type EventDocument struct {
	ID          string     `bson:"_id"`
	Sequence    int64      `bson:"sequence"`
	Block       uint64     `bson:"block"`
	EventType   string     `bson:"event_type"`
	Payload     string     `bson:"payload"`
	CreatedAt   time.Time  `bson:"created_at"`
	Published   bool       `bson:"published"`
	PublishedAt *time.Time `bson:"published_at,omitempty"`
}

type CounterDocument struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
