package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/utils/poller"
)

// StartStatsPoller starts the stats polling service
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		"stats",
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("stats", s.updateStats),
	)
	go statsPoller.Start(ctx)
}

// updateStats exports the ledger totals and the outbox backlog as gauges.
func (s *Service) updateStats(ctx context.Context) error {
	status, err := s.ledger.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get ledger status: %w", err)
	}

	pending, err := s.db.CountUnpublishedEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to count unpublished events: %w", err)
	}

	metrics.RecordLedgerTotals(status.State.TotalStaked, status.State.AvailableRewards, status.CurrentBlock)
	metrics.RecordOutboxPending(pending)

	log.Ctx(ctx).Debug().
		Stringer("total_staked", status.State.TotalStaked).
		Stringer("available_rewards", status.State.AvailableRewards).
		Uint64("block", status.CurrentBlock).
		Int64("outbox_pending", pending).
		Msg("Updated ledger stats")

	return nil
}
