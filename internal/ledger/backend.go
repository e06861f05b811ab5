package ledger

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// Store persists ledger records. Missing records are returned as their zero
// value (NewGlobalState, NewStakeHolder), never as an error.
type Store interface {
	GetLedgerState(ctx context.Context) (*GlobalState, error)
	SaveLedgerState(ctx context.Context, state *GlobalState) error
	GetStakeHolder(ctx context.Context, account string) (*StakeHolder, error)
	SaveStakeHolder(ctx context.Context, account string, holder *StakeHolder) error
	// AppendEvents records the events of a committed operation in the same
	// transaction as the state they describe.
	AppendEvents(ctx context.Context, block uint64, events []Event) error
}

// Bank is the value transfer collaborator. TransferIn moves value from an
// account into the ledger's custody, TransferOut moves it back out.
//
// Transfers run while the ledger holds its lock. An implementation that calls
// back into the ledger must pass the ctx it was given, the ledger then fails
// the nested call with ErrReentrantCall. A call made with any other context
// blocks forever.
type Bank interface {
	TransferIn(ctx context.Context, from string, amount sdkmath.Uint) error
	TransferOut(ctx context.Context, to string, amount sdkmath.Uint) error
}

// Tx is the view of a backend inside a single all-or-nothing unit of work.
type Tx interface {
	Store
	Bank
}

// Backend runs units of work. When fn returns an error nothing it did
// through tx may be visible afterwards, including transfers.
type Backend interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
