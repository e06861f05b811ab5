package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
)

type Config struct {
	Db      DbConfig      `mapstructure:"db"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Poller  PollerConfig  `mapstructure:"poller"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}

	if err := cfg.Queue.Validate(); err != nil {
		return fmt.Errorf("queue: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := cfg.Auth.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}

	if err := cfg.Ledger.Validate(); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}

	if cfg.Server.Port == cfg.Metrics.Port {
		return fmt.Errorf("server and metrics cannot share port %d", cfg.Server.Port)
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	v.AutomaticEnv()
	/*
		Nested keys are separated by `_` and any `-` becomes `__` when overriding
		this config via environment variables:
		1. `ledger.owner` can be overridden by `LEDGER_OWNER`
		2. `ledger.fee-recipient` can be overridden by `LEDGER_FEE__RECIPIENT`
	*/
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "__"))
	// zero is a valid fee rate, so the default cannot be applied in Validate
	v.SetDefault("ledger.fee-rate-bps", ledger.DefaultFeeRateBps)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
