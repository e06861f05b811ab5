package config

import (
	"errors"
	"time"
)

const (
	defaultStatsPollingInterval = 5 * time.Minute
	defaultOutboxPublishWorkers = 4
)

type PollerConfig struct {
	OutboxPollingInterval time.Duration `mapstructure:"outbox-polling-interval"`
	OutboxBatchSize       int64         `mapstructure:"outbox-batch-size"`
	OutboxPublishWorkers  int           `mapstructure:"outbox-publish-workers"`
	StatsPollingInterval  time.Duration `mapstructure:"stats-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.OutboxPollingInterval <= 0 {
		return errors.New("outbox-polling-interval must be positive")
	}

	if cfg.OutboxBatchSize <= 0 {
		return errors.New("outbox-batch-size must be positive")
	}

	if cfg.OutboxPublishWorkers <= 0 {
		cfg.OutboxPublishWorkers = defaultOutboxPublishWorkers
	}

	if cfg.StatsPollingInterval <= 0 {
		cfg.StatsPollingInterval = defaultStatsPollingInterval
	}

	return nil
}
