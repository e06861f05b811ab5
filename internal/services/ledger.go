package services

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
	"github.com/babylonlabs-io/staking-rewards-ledger/pkg"
)

func (s *Service) Stake(ctx context.Context, caller string, amount sdkmath.Uint) *types.Error {
	return s.runLedgerOperation(ctx, ledger.OpStake, caller, func() error {
		return s.ledger.Stake(ctx, caller, amount)
	})
}

func (s *Service) Unstake(ctx context.Context, caller string, amount sdkmath.Uint) *types.Error {
	return s.runLedgerOperation(ctx, ledger.OpUnstake, caller, func() error {
		return s.ledger.Unstake(ctx, caller, amount)
	})
}

func (s *Service) RestakeRewards(ctx context.Context, caller string) *types.Error {
	return s.runLedgerOperation(ctx, ledger.OpRestakeRewards, caller, func() error {
		return s.ledger.RestakeRewards(ctx, caller)
	})
}

func (s *Service) ClaimRewards(ctx context.Context, caller string) *types.Error {
	return s.runLedgerOperation(ctx, ledger.OpClaimRewards, caller, func() error {
		return s.ledger.ClaimRewards(ctx, caller)
	})
}

func (s *Service) Init(ctx context.Context, caller string) *types.Error {
	return s.runLedgerOperation(ctx, ledger.OpInit, caller, func() error {
		return s.ledger.Init(ctx, caller)
	})
}

func (s *Service) Pause(ctx context.Context, caller string) *types.Error {
	return s.runLedgerOperation(ctx, ledger.OpPause, caller, func() error {
		return s.ledger.Pause(ctx, caller)
	})
}

func (s *Service) Unpause(ctx context.Context, caller string) *types.Error {
	return s.runLedgerOperation(ctx, ledger.OpUnpause, caller, func() error {
		return s.ledger.Unpause(ctx, caller)
	})
}

func (s *Service) SwitchFees(ctx context.Context, caller string, stakeFee, unstakeFee, restakeFee bool) *types.Error {
	return s.runLedgerOperation(ctx, ledger.OpSwitchFees, caller, func() error {
		return s.ledger.SwitchFees(ctx, caller, stakeFee, unstakeFee, restakeFee)
	})
}

func (s *Service) SwitchRewards(ctx context.Context, caller string, enable bool) *types.Error {
	return s.runLedgerOperation(ctx, ledger.OpSwitchRewards, caller, func() error {
		return s.ledger.SwitchRewards(ctx, caller, enable)
	})
}

func (s *Service) EmergencyWithdrawRewards(
	ctx context.Context, caller, destination string, amount sdkmath.Uint,
) *types.Error {
	if err := s.validateAccount(destination); err != nil {
		return err
	}
	return s.runLedgerOperation(ctx, ledger.OpEmergencyWithdrawRewards, caller, func() error {
		return s.ledger.EmergencyWithdrawRewards(ctx, caller, destination, amount)
	})
}

// Account returns the staking position of account together with its token
// book balance.
func (s *Service) Account(ctx context.Context, account string) (*types.AccountInfo, *types.Error) {
	if err := s.validateAccount(account); err != nil {
		return nil, err
	}

	holder, err := s.ledger.StakeHolderOf(ctx, account)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	unclaimed, err := s.ledger.UnclaimedRewardsOf(ctx, account)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	balance, err := s.db.GetBalance(ctx, account)
	if err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("failed to get balance of %s: %w", account, err))
	}

	return &types.AccountInfo{
		Account:           account,
		Balance:           balance,
		StakedTokens:      holder.StakedTokens,
		UnclaimedRewards:  unclaimed,
		LastClaimedBlock:  holder.LastClaimedBlock,
		TotalEarnedTokens: holder.TotalEarnedTokens,
	}, nil
}

func (s *Service) Status(ctx context.Context) (*types.LedgerStatus, *types.Error) {
	status, err := s.ledger.Status(ctx)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	custody, err := s.db.GetBalance(ctx, s.cfg.Ledger.CustodyAccount)
	if err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("failed to get custody balance: %w", err))
	}

	state := status.State
	return &types.LedgerStatus{
		State:            types.LedgerStateOf(state.Initialized, state.Paused),
		Rewards:          types.RewardsStateOf(state.StopRewardsBlock),
		CurrentBlock:     status.CurrentBlock,
		TotalStaked:      state.TotalStaked,
		AvailableRewards: state.AvailableRewards,
		StopRewardsBlock: state.StopRewardsBlock,
		TakeStakeFee:     state.TakeStakeFee,
		TakeUnstakeFee:   state.TakeUnstakeFee,
		TakeRestakeFee:   state.TakeRestakeFee,
		CustodyBalance:   custody,
		Owner:            status.Params.Owner,
		FeeRecipient:     status.Params.FeeRecipient,
		RewardRateBps:    status.Params.RewardRateBps,
		FeeRateBps:       status.Params.FeeRateBps,
		BlocksPerYear:    status.Params.BlocksPerYear,
		PoolExhaustion:   status.Params.PoolExhaustion.String(),
	}, nil
}

// FundAccount credits the token book, it is operator tooling and not part
// of the public surface.
func (s *Service) FundAccount(ctx context.Context, account string, amount sdkmath.Uint) *types.Error {
	if err := s.validateAccount(account); err != nil {
		return err
	}
	if err := s.db.CreditBalance(ctx, account, amount); err != nil {
		return types.NewInternalServiceError(fmt.Errorf("failed to credit %s: %w", account, err))
	}
	return nil
}

func (s *Service) Healthcheck(ctx context.Context) *types.Error {
	if err := s.db.Ping(ctx); err != nil {
		return types.NewInternalServiceError(fmt.Errorf("failed to ping db: %w", err))
	}
	return nil
}

func (s *Service) runLedgerOperation(ctx context.Context, operation, caller string, f func() error) *types.Error {
	if err := s.validateAccount(caller); err != nil {
		return err
	}

	startTime := time.Now()
	err := f()
	metrics.RecordLedgerOperation(time.Since(startTime), operation, err != nil)

	return mapLedgerError(err)
}

func (s *Service) validateAccount(account string) *types.Error {
	if err := pkg.ValidateAddress(account, s.cfg.Ledger.AddressPrefix); err != nil {
		return types.NewValidationFailedError(fmt.Errorf("invalid account %q: %w", account, err))
	}
	return nil
}
