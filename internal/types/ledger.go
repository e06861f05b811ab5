package types

import sdkmath "cosmossdk.io/math"

// AccountInfo is the staking position of an account next to its token book
// balance.
type AccountInfo struct {
	Account           string       `json:"account"`
	Balance           sdkmath.Uint `json:"balance"`
	StakedTokens      sdkmath.Uint `json:"staked_tokens"`
	UnclaimedRewards  sdkmath.Uint `json:"unclaimed_rewards"`
	LastClaimedBlock  uint64       `json:"last_claimed_block"`
	TotalEarnedTokens sdkmath.Uint `json:"total_earned_tokens"`
}

type LedgerStatus struct {
	State            LedgerState  `json:"state"`
	Rewards          RewardsState `json:"rewards"`
	CurrentBlock     uint64       `json:"current_block"`
	TotalStaked      sdkmath.Uint `json:"total_staked"`
	AvailableRewards sdkmath.Uint `json:"available_rewards"`
	StopRewardsBlock uint64       `json:"stop_rewards_block"`
	TakeStakeFee     bool         `json:"take_stake_fee"`
	TakeUnstakeFee   bool         `json:"take_unstake_fee"`
	TakeRestakeFee   bool         `json:"take_restake_fee"`
	CustodyBalance   sdkmath.Uint `json:"custody_balance"`
	Owner            string       `json:"owner"`
	FeeRecipient     string       `json:"fee_recipient"`
	RewardRateBps    uint64       `json:"reward_rate_bps"`
	FeeRateBps       uint64       `json:"fee_rate_bps"`
	BlocksPerYear    uint64       `json:"blocks_per_year"`
	PoolExhaustion   string       `json:"pool_exhaustion"`
}
