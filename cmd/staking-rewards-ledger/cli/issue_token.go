package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/api"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
)

// IssueTokenCmd signs an API bearer token for an account.
// Usage: ./staking-rewards-ledger issue-token --config config.yml --account <addr> [--ttl 1h]
func IssueTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Signs an API bearer token for an account",
		Args:  cobra.ExactArgs(0),
		RunE:  issueToken,
	}

	cmd.Flags().String("account", "", "Account the token identifies")
	cmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func issueToken(cmd *cobra.Command, _ []string) error {
	account, err := cmd.Flags().GetString("account")
	if err != nil {
		return fmt.Errorf("failed to parse account flag: %w", err)
	}
	ttl, err := cmd.Flags().GetDuration("ttl")
	if err != nil {
		return fmt.Errorf("failed to parse ttl flag: %w", err)
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	token, err := api.NewAuthenticator(cfg.Auth).SignToken(account, ttl)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
