package model

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
)

const (
	LedgerStateCollection = "ledger_state"
	// LedgerStateID is the _id of the singleton ledger state document.
	LedgerStateID = "ledger"
)

// LedgerStateDocument stores amounts as decimal strings, they may not fit
// into any bson numeric type.
type LedgerStateDocument struct {
	ID               string `bson:"_id"`
	TotalStaked      string `bson:"total_staked"`
	AvailableRewards string `bson:"available_rewards"`
	StopRewardsBlock uint64 `bson:"stop_rewards_block"`
	TakeStakeFee     bool   `bson:"take_stake_fee"`
	TakeUnstakeFee   bool   `bson:"take_unstake_fee"`
	TakeRestakeFee   bool   `bson:"take_restake_fee"`
	Initialized      bool   `bson:"initialized"`
	Paused           bool   `bson:"paused"`
}

func FromGlobalState(state *ledger.GlobalState) *LedgerStateDocument {
	return &LedgerStateDocument{
		ID:               LedgerStateID,
		TotalStaked:      state.TotalStaked.String(),
		AvailableRewards: state.AvailableRewards.String(),
		StopRewardsBlock: state.StopRewardsBlock,
		TakeStakeFee:     state.TakeStakeFee,
		TakeUnstakeFee:   state.TakeUnstakeFee,
		TakeRestakeFee:   state.TakeRestakeFee,
		Initialized:      state.Initialized,
		Paused:           state.Paused,
	}
}

func (d *LedgerStateDocument) ToGlobalState() (*ledger.GlobalState, error) {
	totalStaked, err := parseAmount(d.TotalStaked)
	if err != nil {
		return nil, fmt.Errorf("invalid total staked: %w", err)
	}
	availableRewards, err := parseAmount(d.AvailableRewards)
	if err != nil {
		return nil, fmt.Errorf("invalid available rewards: %w", err)
	}

	return &ledger.GlobalState{
		TotalStaked:      totalStaked,
		AvailableRewards: availableRewards,
		StopRewardsBlock: d.StopRewardsBlock,
		TakeStakeFee:     d.TakeStakeFee,
		TakeUnstakeFee:   d.TakeUnstakeFee,
		TakeRestakeFee:   d.TakeRestakeFee,
		Initialized:      d.Initialized,
		Paused:           d.Paused,
	}, nil
}

func parseAmount(s string) (sdkmath.Uint, error) {
	if s == "" {
		return sdkmath.ZeroUint(), nil
	}
	return sdkmath.ParseUint(s)
}
