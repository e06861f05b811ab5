package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/babylonlabs-io/staking-rewards-ledger/consumer"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/utils/poller"
)

// StartOutboxRelay starts publishing committed ledger events to the queue.
func (s *Service) StartOutboxRelay(ctx context.Context) {
	relayPoller := poller.NewPoller(
		"outbox",
		s.cfg.Poller.OutboxPollingInterval,
		metrics.RecordPollerDuration("outbox", s.relayOutboxEvents),
	)
	go relayPoller.Start(ctx)
}

// relayOutboxEvents publishes one batch of unpublished events. Events of a
// batch are published concurrently, consumers order them by sequence. Only
// events the broker confirmed are marked as published, the others are picked
// up again by the next run.
func (s *Service) relayOutboxEvents(ctx context.Context) error {
	events, err := s.db.FindUnpublishedEvents(ctx, s.cfg.Poller.OutboxBatchSize)
	if err != nil {
		return fmt.Errorf("failed to find unpublished events: %w", err)
	}
	if len(events) == 0 {
		return nil
	}

	var (
		mu        sync.Mutex
		published = make([]string, 0, len(events))
	)
	p := pool.New().
		WithMaxGoroutines(s.cfg.Poller.OutboxPublishWorkers).
		WithContext(ctx)
	for _, doc := range events {
		p.Go(func(ctx context.Context) error {
			if err := s.eventPublisher.PushLedgerEvent(ctx, toLedgerEvent(doc)); err != nil {
				return fmt.Errorf("failed to publish event %d: %w", doc.Sequence, err)
			}
			mu.Lock()
			published = append(published, doc.ID)
			mu.Unlock()
			return nil
		})
	}
	publishErr := p.Wait()

	if err := s.db.MarkEventsPublished(ctx, published); err != nil {
		return fmt.Errorf("failed to mark events as published: %w", err)
	}

	log.Ctx(ctx).Debug().
		Int("published", len(published)).
		Int("batch", len(events)).
		Msg("Relayed outbox events")

	return publishErr
}

func toLedgerEvent(doc model.EventDocument) *consumer.LedgerEvent {
	return &consumer.LedgerEvent{
		ID:        doc.ID,
		Sequence:  doc.Sequence,
		Block:     doc.Block,
		EventType: doc.EventType,
		Payload:   json.RawMessage(doc.Payload),
		CreatedAt: doc.CreatedAt,
	}
}
