package consumer

import (
	"context"
	"encoding/json"
	"time"
)

// LedgerEvent is the audit log message published for every committed ledger
// event. Sequence is strictly increasing in commit order.
type LedgerEvent struct {
	ID        string          `json:"id"`
	Sequence  int64           `json:"sequence"`
	Block     uint64          `json:"block"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

type EventPublisher interface {
	Start() error
	PushLedgerEvent(ctx context.Context, ev *LedgerEvent) error
	Stop() error
}
