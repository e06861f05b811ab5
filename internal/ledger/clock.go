package ledger

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Clock provides the time index ("block") used as the accrual clock.
// Heights start at 1 so that 0 can mean "rewards active" in StopRewardsBlock.
type Clock interface {
	CurrentBlock(ctx context.Context) (uint64, error)
}

// BlockClock derives heights from wall-clock time: one block per interval
// since genesis, genesis itself being block 1.
type BlockClock struct {
	genesis  time.Time
	interval time.Duration
	now      func() time.Time
}

func NewBlockClock(genesis time.Time, interval time.Duration) (*BlockClock, error) {
	if interval <= 0 {
		return nil, errors.New("block interval must be positive")
	}
	if genesis.IsZero() {
		return nil, errors.New("genesis time is required")
	}
	return &BlockClock{genesis: genesis, interval: interval, now: time.Now}, nil
}

func (c *BlockClock) CurrentBlock(_ context.Context) (uint64, error) {
	now := c.now()
	if now.Before(c.genesis) {
		return 0, errors.New("clock is before genesis")
	}
	return uint64(now.Sub(c.genesis)/c.interval) + 1, nil
}

// ManualClock is a Clock moved explicitly, used by tests and simulations.
type ManualClock struct {
	mu    sync.Mutex
	block uint64
}

func NewManualClock(block uint64) *ManualClock {
	if block == 0 {
		block = 1
	}
	return &ManualClock{block: block}
}

func (c *ManualClock) CurrentBlock(_ context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.block, nil
}

// Advance moves the clock forward by n blocks and returns the new height.
func (c *ManualClock) Advance(n uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.block += n
	return c.block
}

// Set moves the clock to the given height. Heights never go backwards.
func (c *ManualClock) Set(block uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if block > c.block {
		c.block = block
	}
}
