package ledger

import (
	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
)

// Event is a state change committed by the ledger.
type Event interface {
	EventType() types.EventTypes
}

// Emitter receives events after the operation that produced them committed.
// Emit runs after the ledger released its lock, so it may call back into the
// ledger. Events reach the emitter one at a time in commit order.
type Emitter interface {
	Emit(Event)
}

// NoopEmitter discards every event.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(Event) {}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(Event)

// Emit implements the Emitter interface.
func (f EmitterFunc) Emit(ev Event) { f(ev) }

// Staked is emitted when principal is credited to an account.
type Staked struct {
	Account string       `json:"account"`
	Amount  sdkmath.Uint `json:"amount"`
}

func (Staked) EventType() types.EventTypes { return types.EventStaked }

// Unstaked is emitted when principal leaves the ledger. Amount is the net
// principal after the unstake fee, Rewards the untaxed rewards paid with it.
type Unstaked struct {
	Account string       `json:"account"`
	Amount  sdkmath.Uint `json:"amount"`
	Rewards sdkmath.Uint `json:"rewards"`
}

func (Unstaked) EventType() types.EventTypes { return types.EventUnstaked }

// RestakedRewards is emitted when rewards are compounded. Amount is net of
// the restake fee.
type RestakedRewards struct {
	Account string       `json:"account"`
	Amount  sdkmath.Uint `json:"amount"`
}

func (RestakedRewards) EventType() types.EventTypes { return types.EventRestakedRewards }

// ClaimedRewards is emitted when rewards are paid out.
type ClaimedRewards struct {
	Account string       `json:"account"`
	Amount  sdkmath.Uint `json:"amount"`
}

func (ClaimedRewards) EventType() types.EventTypes { return types.EventClaimedRewards }

// PayedFee is emitted for every fee sent to the fee recipient.
type PayedFee struct {
	Account string       `json:"account"`
	Amount  sdkmath.Uint `json:"amount"`
}

func (PayedFee) EventType() types.EventTypes { return types.EventPayedFee }

type SwitchedFees struct {
	Account    string `json:"account"`
	StakeFee   bool   `json:"stake_fee"`
	UnstakeFee bool   `json:"unstake_fee"`
	RestakeFee bool   `json:"restake_fee"`
}

func (SwitchedFees) EventType() types.EventTypes { return types.EventSwitchedFees }

// SwitchedRewards records a freeze (Enabled false) or resume of accrual.
// StopRewardsBlock is the resulting freeze block, 0 when resumed.
type SwitchedRewards struct {
	Account          string `json:"account"`
	Enabled          bool   `json:"enabled"`
	StopRewardsBlock uint64 `json:"stop_rewards_block"`
}

func (SwitchedRewards) EventType() types.EventTypes { return types.EventSwitchedRewards }

type RewardsWithdrawnEmergently struct {
	Account string       `json:"account"`
	Amount  sdkmath.Uint `json:"amount"`
}

func (RewardsWithdrawnEmergently) EventType() types.EventTypes {
	return types.EventRewardsWithdrawnEmergently
}

type Initialized struct {
	Account    string       `json:"account"`
	RewardPool sdkmath.Uint `json:"reward_pool"`
}

func (Initialized) EventType() types.EventTypes { return types.EventInitialized }

type Paused struct {
	Account string `json:"account"`
}

func (Paused) EventType() types.EventTypes { return types.EventPaused }

type Unpaused struct {
	Account string `json:"account"`
}

func (Unpaused) EventType() types.EventTypes { return types.EventUnpaused }
