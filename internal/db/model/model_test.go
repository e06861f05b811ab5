package model

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
)

func TestLedgerStateDocument(t *testing.T) {
	t.Run("empty amounts decode as zero", func(t *testing.T) {
		doc := &LedgerStateDocument{ID: LedgerStateID, Initialized: true}
		state, err := doc.ToGlobalState()
		require.NoError(t, err)
		assert.True(t, state.TotalStaked.IsZero())
		assert.True(t, state.AvailableRewards.IsZero())
		assert.True(t, state.Initialized)
	})
	t.Run("corrupted amount", func(t *testing.T) {
		doc := &LedgerStateDocument{ID: LedgerStateID, TotalStaked: "-5"}
		_, err := doc.ToGlobalState()
		assert.ErrorContains(t, err, "invalid total staked")
	})
	t.Run("flags survive", func(t *testing.T) {
		state := ledger.NewGlobalState()
		state.AvailableRewards = sdkmath.NewUintFromString("123456789012345678901234567890")
		state.StopRewardsBlock = 99
		state.TakeUnstakeFee = true
		state.Paused = true

		doc := FromGlobalState(state)
		assert.Equal(t, LedgerStateID, doc.ID)
		assert.Equal(t, "123456789012345678901234567890", doc.AvailableRewards)

		decoded, err := doc.ToGlobalState()
		require.NoError(t, err)
		assert.True(t, state.AvailableRewards.Equal(decoded.AvailableRewards))
		assert.Equal(t, uint64(99), decoded.StopRewardsBlock)
		assert.True(t, decoded.TakeUnstakeFee)
		assert.True(t, decoded.Paused)
	})
}

func TestStakeHolderDocument(t *testing.T) {
	doc := &StakeHolderDocument{Account: "stk1x", StakedTokens: "10", TotalEarnedTokens: "abc"}
	_, err := doc.ToStakeHolder()
	assert.ErrorContains(t, err, "stk1x")

	doc.TotalEarnedTokens = "4"
	doc.LastClaimedBlock = 3
	holder, err := doc.ToStakeHolder()
	require.NoError(t, err)
	assert.Equal(t, "10", holder.StakedTokens.String())
	assert.Equal(t, uint64(3), holder.LastClaimedBlock)
}
