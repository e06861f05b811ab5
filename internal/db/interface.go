package db

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
)

type DbInterface interface {
	ledger.Backend

	Ping(ctx context.Context) error
	// GetBalance returns the token book balance of an account, zero for
	// unknown accounts.
	GetBalance(ctx context.Context, account string) (sdkmath.Uint, error)
	CreditBalance(ctx context.Context, account string, amount sdkmath.Uint) error
	// FindUnpublishedEvents returns up to limit outbox events ordered by
	// sequence.
	FindUnpublishedEvents(ctx context.Context, limit int64) ([]model.EventDocument, error)
	MarkEventsPublished(ctx context.Context, ids []string) error
	CountUnpublishedEvents(ctx context.Context) (int64, error)
}
