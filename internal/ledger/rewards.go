package ledger

import (
	sdkmath "cosmossdk.io/math"
)

// accrualWindow is the number of blocks rewards accrue over for a holder
// checkpointed at lastClaimed. A freeze at or before the checkpoint yields no
// window at all.
func accrualWindow(lastClaimed, stopRewards, now uint64) uint64 {
	if stopRewards == 0 {
		if now <= lastClaimed {
			return 0
		}
		return now - lastClaimed
	}
	if stopRewards <= lastClaimed {
		return 0
	}
	return stopRewards - lastClaimed
}

// UnclaimedRewards returns the reward holder would realize at block now:
// staked * window * rate / scale, floored.
//
// A reward larger than the remaining pool is not paid at all under the cliff
// policy; the clamp policy pays what is left instead.
func UnclaimedRewards(holder *StakeHolder, state *GlobalState, now uint64, params Params) sdkmath.Uint {
	if !holder.HasStake() {
		return sdkmath.ZeroUint()
	}

	window := accrualWindow(holder.LastClaimedBlock, state.StopRewardsBlock, now)
	if window == 0 {
		return sdkmath.ZeroUint()
	}

	reward := holder.StakedTokens.
		MulUint64(window).
		MulUint64(params.RewardRateBps).
		Quo(params.Scale())

	if reward.GT(state.AvailableRewards) {
		if params.PoolExhaustion == PoolExhaustionClamp {
			return cloneUint(state.AvailableRewards)
		}
		return sdkmath.ZeroUint()
	}
	return reward
}

// realize commits the pending reward of account: the pool is debited, the
// checkpoint moves to the current block and the gross amount is added to the
// holder's earnings. Nothing changes when there is nothing to realize.
func (op *operation) realize(account string) (sdkmath.Uint, error) {
	holder, err := op.holder(account)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}

	reward := UnclaimedRewards(holder, op.state, op.block, op.params)
	if reward.IsZero() {
		return reward, nil
	}

	op.state.AvailableRewards = op.state.AvailableRewards.Sub(reward)
	holder.LastClaimedBlock = op.block
	holder.TotalEarnedTokens = holder.TotalEarnedTokens.Add(reward)
	op.touch(account)

	return reward, nil
}

// compound realizes pending rewards and adds them, net of the restake fee, to
// the holder's principal. It returns the gross amount realized, which is also
// what the holder's earnings record.
func (op *operation) compound(account string) (sdkmath.Uint, error) {
	reward, err := op.realize(account)
	if err != nil || reward.IsZero() {
		return reward, err
	}

	net, err := op.applyFee(account, reward, op.state.TakeRestakeFee)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}

	holder, err := op.holder(account)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}
	holder.StakedTokens = holder.StakedTokens.Add(net)
	op.state.TotalStaked = op.state.TotalStaked.Add(net)
	op.touch(account)

	op.emit(RestakedRewards{Account: account, Amount: net})
	return reward, nil
}
