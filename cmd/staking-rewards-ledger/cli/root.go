package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/staking-rewards-ledger/pkg"
)

const (
	defaultConfigFileName = "config.yml"
	// configPathEnv overrides the default location of the config file.
	configPathEnv = "LEDGER_CONFIG"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:           "staking-rewards-ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.Getenv(configPathEnv, getDefaultConfigFile(homePath, defaultConfigFileName))

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(InitLedgerCmd())
	rootCmd.AddCommand(FundAccountCmd())
	rootCmd.AddCommand(LedgerStatusCmd())
	rootCmd.AddCommand(IssueTokenCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}
