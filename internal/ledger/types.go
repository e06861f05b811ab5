package ledger

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
)

const (
	// BasisPoints is the denominator for every rate expressed in bps.
	BasisPoints uint64 = 10_000

	// DefaultRewardRateBps is a 40.00% annual yield.
	DefaultRewardRateBps uint64 = 4_000
	// DefaultBlocksPerYear assumes one block every 15 seconds.
	DefaultBlocksPerYear uint64 = 2_102_400
	// DefaultFeeRateBps is the rate charged by every enabled fee toggle.
	DefaultFeeRateBps uint64 = 300
)

// PoolExhaustionPolicy decides what a realization does when the pending
// reward is larger than what is left in the pool.
type PoolExhaustionPolicy string

const (
	// PoolExhaustionCliff pays nothing at all once the pending reward exceeds
	// the pool. This is the reference behaviour.
	PoolExhaustionCliff PoolExhaustionPolicy = "cliff"
	// PoolExhaustionClamp pays whatever is left in the pool.
	PoolExhaustionClamp PoolExhaustionPolicy = "clamp"
)

func (p PoolExhaustionPolicy) String() string {
	return string(p)
}

// GlobalState is the singleton ledger record shared by every account.
type GlobalState struct {
	TotalStaked      sdkmath.Uint
	AvailableRewards sdkmath.Uint
	// StopRewardsBlock is the block at which accrual was frozen, 0 while
	// accrual is active.
	StopRewardsBlock uint64
	TakeStakeFee     bool
	TakeUnstakeFee   bool
	TakeRestakeFee   bool
	Initialized      bool
	Paused           bool
}

// NewGlobalState returns the state of a ledger that was never initialized.
func NewGlobalState() *GlobalState {
	return &GlobalState{
		TotalStaked:      sdkmath.ZeroUint(),
		AvailableRewards: sdkmath.ZeroUint(),
	}
}

// IsPaused satisfies PauseView.
func (s *GlobalState) IsPaused() bool {
	return s != nil && s.Paused
}

// RewardsActive reports whether accrual runs up to the current block.
func (s *GlobalState) RewardsActive() bool {
	return s.StopRewardsBlock == 0
}

// Clone returns a deep copy of the state.
func (s *GlobalState) Clone() *GlobalState {
	if s == nil {
		return nil
	}
	clone := *s
	clone.TotalStaked = cloneUint(s.TotalStaked)
	clone.AvailableRewards = cloneUint(s.AvailableRewards)
	return &clone
}

// StakeHolder is the per-account staking record.
type StakeHolder struct {
	StakedTokens      sdkmath.Uint
	LastClaimedBlock  uint64
	TotalEarnedTokens sdkmath.Uint
}

// NewStakeHolder returns the record of an account that never staked.
func NewStakeHolder() *StakeHolder {
	return &StakeHolder{
		StakedTokens:      sdkmath.ZeroUint(),
		TotalEarnedTokens: sdkmath.ZeroUint(),
	}
}

// HasStake reports whether the holder currently has principal locked.
func (h *StakeHolder) HasStake() bool {
	return h != nil && !h.StakedTokens.IsZero()
}

// Clone returns a deep copy of the holder.
func (h *StakeHolder) Clone() *StakeHolder {
	if h == nil {
		return nil
	}
	return &StakeHolder{
		StakedTokens:      cloneUint(h.StakedTokens),
		LastClaimedBlock:  h.LastClaimedBlock,
		TotalEarnedTokens: cloneUint(h.TotalEarnedTokens),
	}
}

// Params are the deployment constants of a ledger. They never change after
// the ledger is constructed.
type Params struct {
	// Owner is the only account allowed to call administrative operations.
	Owner string
	// FeeRecipient receives every fee taken by the fee engine.
	FeeRecipient string
	// RewardRateBps is the annual reward rate.
	RewardRateBps uint64
	// BlocksPerYear converts the annual rate into a per-block rate.
	BlocksPerYear uint64
	// FeeRateBps is the rate used by every enabled fee toggle.
	FeeRateBps uint64
	// RewardPoolAmount is pulled from the owner on Init.
	RewardPoolAmount sdkmath.Uint
	// PoolExhaustion selects the cliff or clamp behaviour.
	PoolExhaustion PoolExhaustionPolicy
}

// DefaultParams returns the reference deployment constants for the given
// owner and fee recipient.
func DefaultParams(owner, feeRecipient string, rewardPool sdkmath.Uint) Params {
	return Params{
		Owner:            owner,
		FeeRecipient:     feeRecipient,
		RewardRateBps:    DefaultRewardRateBps,
		BlocksPerYear:    DefaultBlocksPerYear,
		FeeRateBps:       DefaultFeeRateBps,
		RewardPoolAmount: rewardPool,
		PoolExhaustion:   PoolExhaustionCliff,
	}
}

// Scale is the divisor applied to stake*window*rate: annualized basis points
// expressed per block.
func (p Params) Scale() sdkmath.Uint {
	return sdkmath.NewUint(BasisPoints).MulUint64(p.BlocksPerYear)
}

func (p Params) Validate() error {
	if p.Owner == "" {
		return errors.New("owner is required")
	}
	if p.FeeRecipient == "" {
		return errors.New("fee recipient is required")
	}
	if p.BlocksPerYear == 0 {
		return errors.New("blocks per year must be positive")
	}
	if p.FeeRateBps > BasisPoints {
		return fmt.Errorf("fee rate %d bps exceeds 100%%", p.FeeRateBps)
	}
	if p.RewardPoolAmount.IsNil() || p.RewardPoolAmount.IsZero() {
		return errors.New("reward pool amount must be positive")
	}
	switch p.PoolExhaustion {
	case PoolExhaustionCliff, PoolExhaustionClamp:
	default:
		return fmt.Errorf("unknown pool exhaustion policy %q", p.PoolExhaustion)
	}
	return nil
}

// Status is a consistent read of the ledger at a given block.
type Status struct {
	State        *GlobalState
	CurrentBlock uint64
	Params       Params
}

func cloneUint(u sdkmath.Uint) sdkmath.Uint {
	if u.IsNil() {
		return sdkmath.ZeroUint()
	}
	return sdkmath.NewUintFromBigInt(u.BigInt())
}
