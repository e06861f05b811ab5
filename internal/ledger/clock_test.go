package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockClock(t *testing.T) {
	genesis := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock, err := NewBlockClock(genesis, 15*time.Second)
	require.NoError(t, err)

	tests := []struct {
		name     string
		now      time.Time
		expected uint64
	}{
		{name: "genesis", now: genesis, expected: 1},
		{name: "within first interval", now: genesis.Add(14 * time.Second), expected: 1},
		{name: "second block", now: genesis.Add(15 * time.Second), expected: 2},
		{name: "one year", now: genesis.Add(365 * 24 * time.Hour), expected: DefaultBlocksPerYear + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = func() time.Time { return tt.now }
			block, err := clock.CurrentBlock(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, block)
		})
	}

	clock.now = func() time.Time { return genesis.Add(-time.Second) }
	_, err = clock.CurrentBlock(context.Background())
	assert.Error(t, err)

	_, err = NewBlockClock(genesis, 0)
	assert.Error(t, err)
	_, err = NewBlockClock(time.Time{}, time.Second)
	assert.Error(t, err)
}

func TestManualClock(t *testing.T) {
	clock := NewManualClock(0)
	block, err := clock.CurrentBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), block)

	assert.Equal(t, uint64(11), clock.Advance(10))
	clock.Set(5)
	block, _ = clock.CurrentBlock(context.Background())
	assert.Equal(t, uint64(11), block)
	clock.Set(20)
	block, _ = clock.CurrentBlock(context.Background())
	assert.Equal(t, uint64(20), block)
}

func TestAccrualWindow(t *testing.T) {
	tests := []struct {
		name        string
		lastClaimed uint64
		stop        uint64
		now         uint64
		expected    uint64
	}{
		{name: "active", lastClaimed: 10, now: 25, expected: 15},
		{name: "active same block", lastClaimed: 10, now: 10, expected: 0},
		{name: "frozen after checkpoint", lastClaimed: 10, stop: 18, now: 25, expected: 8},
		{name: "frozen at checkpoint", lastClaimed: 10, stop: 10, now: 25, expected: 0},
		{name: "frozen before checkpoint", lastClaimed: 10, stop: 4, now: 25, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, accrualWindow(tt.lastClaimed, tt.stop, tt.now))
		})
	}
}
