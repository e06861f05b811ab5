package services

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
)

// LedgerService is the operation surface exposed over HTTP.
type LedgerService interface {
	Stake(ctx context.Context, caller string, amount sdkmath.Uint) *types.Error
	Unstake(ctx context.Context, caller string, amount sdkmath.Uint) *types.Error
	RestakeRewards(ctx context.Context, caller string) *types.Error
	ClaimRewards(ctx context.Context, caller string) *types.Error

	Init(ctx context.Context, caller string) *types.Error
	Pause(ctx context.Context, caller string) *types.Error
	Unpause(ctx context.Context, caller string) *types.Error
	SwitchFees(ctx context.Context, caller string, stakeFee, unstakeFee, restakeFee bool) *types.Error
	SwitchRewards(ctx context.Context, caller string, enable bool) *types.Error
	EmergencyWithdrawRewards(ctx context.Context, caller, destination string, amount sdkmath.Uint) *types.Error

	Account(ctx context.Context, account string) (*types.AccountInfo, *types.Error)
	Status(ctx context.Context) (*types.LedgerStatus, *types.Error)
	Healthcheck(ctx context.Context) *types.Error
}

var _ LedgerService = (*Service)(nil)
