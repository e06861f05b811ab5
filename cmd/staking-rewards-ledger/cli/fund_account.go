package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/utils"
)

// FundAccountCmd credits tokens to an account of the token book.
// Usage: ./staking-rewards-ledger fund-account --config config.yml --account <addr> --amount <n>
func FundAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund-account",
		Short: "Credits tokens to an account",
		Args:  cobra.ExactArgs(0),
		RunE:  fundAccount,
	}

	cmd.Flags().String("account", "", "Account to credit")
	cmd.Flags().String("amount", "", "Amount of tokens to credit")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func fundAccount(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	account, err := cmd.Flags().GetString("account")
	if err != nil {
		return fmt.Errorf("failed to parse account flag: %w", err)
	}
	rawAmount, err := cmd.Flags().GetString("amount")
	if err != nil {
		return fmt.Errorf("failed to parse amount flag: %w", err)
	}
	amount, err := utils.ParseAmount(rawAmount)
	if err != nil {
		return err
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

	if err := service.FundAccount(ctx, account, amount); err != nil {
		return err
	}

	log.Info().Str("account", account).Stringer("amount", amount).Msg("Account funded")
	return nil
}
