package services

import (
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/metrics"
)

// newEventObserver returns the emitter attached to the ledger. Committed
// events are already in the outbox, it only feeds metrics and logs.
func newEventObserver() ledger.Emitter {
	return ledger.EmitterFunc(func(ev ledger.Event) {
		if fee, ok := ev.(ledger.PayedFee); ok {
			metrics.AddFeesCollected(fee.Amount)
		}
		log.Debug().
			Str("event_type", ev.EventType().String()).
			Interface("event", ev).
			Msg("Ledger event committed")
	})
}
