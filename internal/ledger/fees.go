package ledger

import (
	sdkmath "cosmossdk.io/math"
)

// CalculateFee splits amount into the floored fee at rateBps and the net
// remainder.
func CalculateFee(amount sdkmath.Uint, rateBps uint64) (fee, net sdkmath.Uint) {
	if amount.IsZero() || rateBps == 0 {
		return sdkmath.ZeroUint(), cloneUint(amount)
	}
	fee = amount.MulUint64(rateBps).QuoUint64(BasisPoints)
	if fee.GT(amount) {
		fee = cloneUint(amount)
	}
	return fee, amount.Sub(fee)
}

// applyFee takes the configured fee from amount when enabled and routes it to
// the fee recipient. It returns the amount left for the payer.
func (op *operation) applyFee(payer string, amount sdkmath.Uint, enabled bool) (sdkmath.Uint, error) {
	if !enabled {
		return amount, nil
	}

	fee, net := CalculateFee(amount, op.params.FeeRateBps)
	if fee.IsZero() {
		return net, nil
	}

	if err := op.transferOut(op.params.FeeRecipient, fee); err != nil {
		return sdkmath.ZeroUint(), err
	}
	op.emit(PayedFee{Account: payer, Amount: fee})
	return net, nil
}
