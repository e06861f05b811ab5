package model

import sdkmath "cosmossdk.io/math"

// BalanceCollection is the token book backing value transfers in and out of
// the ledger custody account.
const BalanceCollection = "balances"

type BalanceDocument struct {
	Account string `bson:"_id"`
	Amount  string `bson:"amount"`
}

func (d *BalanceDocument) ToAmount() (sdkmath.Uint, error) {
	return parseAmount(d.Amount)
}
