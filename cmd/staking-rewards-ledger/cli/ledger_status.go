package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
)

func LedgerStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger-status",
		Short: "Prints the ledger totals and flags as JSON",
		Args:  cobra.ExactArgs(0),
		RunE:  ledgerStatus,
	}

	cmd.Flags().String("account", "", "Also print the position of this account")

	return cmd
}

func ledgerStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	account, err := cmd.Flags().GetString("account")
	if err != nil {
		return fmt.Errorf("failed to parse account flag: %w", err)
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

	out := map[string]interface{}{}
	status, svcErr := service.Status(ctx)
	if svcErr != nil {
		return svcErr
	}
	out["status"] = status

	if account != "" {
		info, svcErr := service.Account(ctx, account)
		if svcErr != nil {
			return svcErr
		}
		out["account"] = info
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
