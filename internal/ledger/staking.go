package ledger

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// Stake deposits amount for caller. An existing position first compounds its
// pending rewards; a fresh one starts its accrual window at the current block.
// The stake fee, when enabled, is taken from the deposit.
func (l *Ledger) Stake(ctx context.Context, caller string, amount sdkmath.Uint) error {
	return l.execute(ctx, OpStake, caller, func(op *operation) error {
		if err := op.requireActive(); err != nil {
			return err
		}
		if err := requireAccountAndAmount(op, caller, amount); err != nil {
			return err
		}

		holder, err := op.holder(caller)
		if err != nil {
			return err
		}
		if holder.HasStake() {
			// Compounding is best effort: having nothing to compound does
			// not block the deposit. Transfer failures still abort.
			if _, err := op.compound(caller); err != nil {
				return err
			}
		} else {
			holder.LastClaimedBlock = op.block
			op.touch(caller)
		}

		if err := op.transferIn(caller, amount); err != nil {
			return err
		}
		net, err := op.applyFee(caller, amount, op.state.TakeStakeFee)
		if err != nil {
			return err
		}

		holder.StakedTokens = holder.StakedTokens.Add(net)
		op.state.TotalStaked = op.state.TotalStaked.Add(net)
		op.touch(caller)

		op.emit(Staked{Account: caller, Amount: net})
		return nil
	})
}

// Unstake withdraws amount of principal for caller together with every
// pending reward. The unstake fee applies to the principal only.
func (l *Ledger) Unstake(ctx context.Context, caller string, amount sdkmath.Uint) error {
	return l.execute(ctx, OpUnstake, caller, func(op *operation) error {
		if err := op.requireActive(); err != nil {
			return err
		}
		if err := requireAccountAndAmount(op, caller, amount); err != nil {
			return err
		}

		holder, err := op.holder(caller)
		if err != nil {
			return err
		}
		if holder.StakedTokens.LT(amount) {
			return precondition(op.name, ErrInsufficientStake)
		}

		reward, err := op.realize(caller)
		if err != nil {
			return err
		}

		holder.StakedTokens = holder.StakedTokens.Sub(amount)
		op.state.TotalStaked = op.state.TotalStaked.Sub(amount)
		op.touch(caller)

		net, err := op.applyFee(caller, amount, op.state.TakeUnstakeFee)
		if err != nil {
			return err
		}
		if err := op.transferOut(caller, net.Add(reward)); err != nil {
			return err
		}

		op.emit(Unstaked{Account: caller, Amount: net, Rewards: reward})
		return nil
	})
}

// RestakeRewards compounds the pending rewards of caller. It fails when there
// is nothing to compound.
func (l *Ledger) RestakeRewards(ctx context.Context, caller string) error {
	return l.execute(ctx, OpRestakeRewards, caller, func(op *operation) error {
		if err := op.requireActive(); err != nil {
			return err
		}
		if caller == "" {
			return precondition(op.name, ErrMissingAccount)
		}

		realized, err := op.compound(caller)
		if err != nil {
			return err
		}
		if realized.IsZero() {
			return precondition(op.name, ErrNoRewards)
		}
		return nil
	})
}

// ClaimRewards pays the pending rewards of caller out, untaxed.
func (l *Ledger) ClaimRewards(ctx context.Context, caller string) error {
	return l.execute(ctx, OpClaimRewards, caller, func(op *operation) error {
		if err := op.requireActive(); err != nil {
			return err
		}
		if caller == "" {
			return precondition(op.name, ErrMissingAccount)
		}

		reward, err := op.realize(caller)
		if err != nil {
			return err
		}
		if reward.IsZero() {
			return precondition(op.name, ErrNoRewards)
		}
		if err := op.transferOut(caller, reward); err != nil {
			return err
		}

		op.emit(ClaimedRewards{Account: caller, Amount: reward})
		return nil
	})
}

func requireAccountAndAmount(op *operation, account string, amount sdkmath.Uint) error {
	if account == "" {
		return precondition(op.name, ErrMissingAccount)
	}
	if amount.IsNil() || amount.IsZero() {
		return precondition(op.name, ErrZeroAmount)
	}
	return nil
}

// BalanceOf returns the staked principal of account.
func (l *Ledger) BalanceOf(ctx context.Context, account string) (sdkmath.Uint, error) {
	holder, err := l.StakeHolderOf(ctx, account)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}
	return holder.StakedTokens, nil
}

// UnclaimedRewardsOf returns the reward account would realize right now.
func (l *Ledger) UnclaimedRewardsOf(ctx context.Context, account string) (sdkmath.Uint, error) {
	reward := sdkmath.ZeroUint()
	err := l.view(ctx, func(ctx context.Context, tx Tx, block uint64) error {
		state, err := tx.GetLedgerState(ctx)
		if err != nil {
			return err
		}
		holder, err := tx.GetStakeHolder(ctx, account)
		if err != nil {
			return err
		}
		reward = UnclaimedRewards(holder, state, block, l.params)
		return nil
	})
	return reward, err
}

// StakeHolderOf returns a copy of the staking record of account.
func (l *Ledger) StakeHolderOf(ctx context.Context, account string) (*StakeHolder, error) {
	var holder *StakeHolder
	err := l.view(ctx, func(ctx context.Context, tx Tx, _ uint64) error {
		h, err := tx.GetStakeHolder(ctx, account)
		if err != nil {
			return err
		}
		holder = h.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holder, nil
}

// Status returns the global state together with the current block.
func (l *Ledger) Status(ctx context.Context) (*Status, error) {
	var status *Status
	err := l.view(ctx, func(ctx context.Context, tx Tx, block uint64) error {
		state, err := tx.GetLedgerState(ctx)
		if err != nil {
			return err
		}
		status = &Status{State: state.Clone(), CurrentBlock: block, Params: l.params}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}
