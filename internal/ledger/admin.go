package ledger

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// Init funds the reward pool from the owner and opens the ledger. It can
// only ever succeed once.
func (l *Ledger) Init(ctx context.Context, caller string) error {
	return l.execute(ctx, OpInit, caller, func(op *operation) error {
		if err := op.requireOwner(); err != nil {
			return err
		}
		if op.state.Initialized {
			return precondition(op.name, ErrAlreadyInitialized)
		}
		if err := Guard(op.state); err != nil {
			return precondition(op.name, err)
		}

		pool := cloneUint(op.params.RewardPoolAmount)
		if err := op.transferIn(caller, pool); err != nil {
			return err
		}

		op.state.AvailableRewards = pool
		op.state.StopRewardsBlock = 0
		op.state.TakeStakeFee = false
		op.state.TakeUnstakeFee = true
		op.state.TakeRestakeFee = true
		op.state.Initialized = true

		op.emit(Initialized{Account: caller, RewardPool: pool})
		return nil
	})
}

// Pause stops every user-facing mutation until Unpause.
func (l *Ledger) Pause(ctx context.Context, caller string) error {
	return l.execute(ctx, OpPause, caller, func(op *operation) error {
		if err := op.requireOwner(); err != nil {
			return err
		}
		if op.state.Paused {
			return precondition(op.name, ErrPaused)
		}
		op.state.Paused = true
		op.emit(Paused{Account: caller})
		return nil
	})
}

func (l *Ledger) Unpause(ctx context.Context, caller string) error {
	return l.execute(ctx, OpUnpause, caller, func(op *operation) error {
		if err := op.requireOwner(); err != nil {
			return err
		}
		if !op.state.Paused {
			return precondition(op.name, ErrNotPaused)
		}
		op.state.Paused = false
		op.emit(Unpaused{Account: caller})
		return nil
	})
}

// SwitchFees overwrites the three fee toggles at once.
func (l *Ledger) SwitchFees(ctx context.Context, caller string, stakeFee, unstakeFee, restakeFee bool) error {
	return l.execute(ctx, OpSwitchFees, caller, func(op *operation) error {
		if err := op.requireOwner(); err != nil {
			return err
		}
		if err := op.requireInitialized(); err != nil {
			return err
		}

		op.state.TakeStakeFee = stakeFee
		op.state.TakeUnstakeFee = unstakeFee
		op.state.TakeRestakeFee = restakeFee

		op.emit(SwitchedFees{
			Account:    caller,
			StakeFee:   stakeFee,
			UnstakeFee: unstakeFee,
			RestakeFee: restakeFee,
		})
		return nil
	})
}

// SwitchRewards freezes accrual at the current block (enable false) or
// resumes it (enable true). Resuming does not move any checkpoint, so the
// frozen interval is accrued again by holders that did not realize since.
func (l *Ledger) SwitchRewards(ctx context.Context, caller string, enable bool) error {
	return l.execute(ctx, OpSwitchRewards, caller, func(op *operation) error {
		if err := op.requireOwner(); err != nil {
			return err
		}
		if err := op.requireInitialized(); err != nil {
			return err
		}

		if enable {
			op.state.StopRewardsBlock = 0
		} else {
			op.state.StopRewardsBlock = op.block
		}

		op.emit(SwitchedRewards{
			Account:          caller,
			Enabled:          enable,
			StopRewardsBlock: op.state.StopRewardsBlock,
		})
		return nil
	})
}

// EmergencyWithdrawRewards moves amount out of the reward pool to dest.
func (l *Ledger) EmergencyWithdrawRewards(ctx context.Context, caller, dest string, amount sdkmath.Uint) error {
	return l.execute(ctx, OpEmergencyWithdrawRewards, caller, func(op *operation) error {
		if err := op.requireOwner(); err != nil {
			return err
		}
		if err := op.requireInitialized(); err != nil {
			return err
		}
		if dest == "" {
			return precondition(op.name, ErrMissingAccount)
		}
		if amount.IsNil() || amount.IsZero() {
			return precondition(op.name, ErrZeroAmount)
		}
		if op.state.AvailableRewards.LT(amount) {
			return precondition(op.name, ErrInsufficientPool)
		}

		op.state.AvailableRewards = op.state.AvailableRewards.Sub(amount)
		if err := op.transferOut(dest, amount); err != nil {
			return err
		}

		op.emit(RewardsWithdrawnEmergently{Account: dest, Amount: amount})
		return nil
	})
}
