package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/utils"
)

// InitLedgerCmd initializes the ledger on behalf of the configured owner.
// Usage: ./staking-rewards-ledger init-ledger --config config.yml [--fund-owner]
func InitLedgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-ledger",
		Short: "Initializes the ledger and pulls the reward pool from the owner",
		Args:  cobra.ExactArgs(0),
		RunE:  initLedger,
	}

	cmd.Flags().Bool("fund-owner", false, "Credit the owner with the reward pool before initializing")

	return cmd
}

func initLedger(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	fundOwner, err := cmd.Flags().GetBool("fund-owner")
	if err != nil {
		return fmt.Errorf("failed to parse fund-owner flag: %w", err)
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	service, dbClient, err := openService(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer dbClient.Disconnect(ctx) //nolint:errcheck

	owner := cfg.Ledger.Owner
	if fundOwner {
		pool, err := utils.ParseAmount(cfg.Ledger.RewardPoolAmount)
		if err != nil {
			return err
		}
		if err := service.FundAccount(ctx, owner, pool); err != nil {
			return err
		}
		log.Info().Str("owner", owner).Stringer("amount", pool).Msg("Owner funded")
	}

	if err := service.Init(ctx, owner); err != nil {
		return err
	}

	log.Info().Str("owner", owner).Str("reward_pool", cfg.Ledger.RewardPoolAmount).Msg("Ledger initialized")
	return nil
}
