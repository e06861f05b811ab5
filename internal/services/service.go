package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/babylonlabs-io/staking-rewards-ledger/consumer"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
)

type Service struct {
	cfg            *config.Config
	db             db.DbInterface
	ledger         *ledger.Ledger
	eventPublisher consumer.EventPublisher
}

type Option func(*options)

type options struct {
	clock ledger.Clock
}

// WithClock replaces the wall-clock block clock derived from the config.
func WithClock(clock ledger.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	eventPublisher consumer.EventPublisher,
	opts ...Option,
) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		clock, err := cfg.Ledger.Clock()
		if err != nil {
			return nil, err
		}
		o.clock = clock
	}

	params, err := cfg.Ledger.Params()
	if err != nil {
		return nil, err
	}

	l, err := ledger.New(db, o.clock, params, ledger.WithEmitter(newEventObserver()))
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}

	return &Service{
		cfg:            cfg,
		db:             db,
		ledger:         l,
		eventPublisher: eventPublisher,
	}, nil
}

// StartLedgerSync starts the background workers of the service.
func (s *Service) StartLedgerSync(ctx context.Context) {
	s.StartOutboxRelay(ctx)
	s.StartStatsPoller(ctx)
}
