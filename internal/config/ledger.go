package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/utils"
	"github.com/babylonlabs-io/staking-rewards-ledger/pkg"
)

// LedgerConfig holds the deployment constants of the ledger. They are read
// once on startup and never change while the service runs.
type LedgerConfig struct {
	Owner          string `mapstructure:"owner"`
	FeeRecipient   string `mapstructure:"fee-recipient"`
	CustodyAccount string `mapstructure:"custody-account"`
	AddressPrefix  string `mapstructure:"address-prefix"`

	RewardRateBps    uint64 `mapstructure:"reward-rate-bps"`
	BlocksPerYear    uint64 `mapstructure:"blocks-per-year"`
	FeeRateBps       uint64 `mapstructure:"fee-rate-bps"`
	RewardPoolAmount string `mapstructure:"reward-pool-amount"`
	PoolExhaustion   string `mapstructure:"pool-exhaustion"`

	BlockInterval time.Duration `mapstructure:"block-interval"`
	// GenesisTime is the RFC 3339 timestamp of block 1.
	GenesisTime string `mapstructure:"genesis-time"`
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.AddressPrefix == "" {
		cfg.AddressPrefix = pkg.DefaultAddressPrefix
	}
	if cfg.CustodyAccount == "" {
		cfg.CustodyAccount = ledger.DefaultCustodyAccount
	}
	if cfg.RewardRateBps == 0 {
		cfg.RewardRateBps = ledger.DefaultRewardRateBps
	}
	if cfg.BlocksPerYear == 0 {
		cfg.BlocksPerYear = ledger.DefaultBlocksPerYear
	}
	if cfg.PoolExhaustion == "" {
		cfg.PoolExhaustion = ledger.PoolExhaustionCliff.String()
	}

	if err := pkg.ValidateAddress(cfg.Owner, cfg.AddressPrefix); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	if err := pkg.ValidateAddress(cfg.FeeRecipient, cfg.AddressPrefix); err != nil {
		return fmt.Errorf("fee-recipient: %w", err)
	}
	if cfg.CustodyAccount == cfg.Owner || cfg.CustodyAccount == cfg.FeeRecipient {
		return errors.New("custody-account must differ from owner and fee-recipient")
	}
	// custody must never collide with a user account
	if pkg.ValidateAddress(cfg.CustodyAccount, cfg.AddressPrefix) == nil {
		return errors.New("custody-account must not be a valid account address")
	}

	if cfg.FeeRateBps > ledger.BasisPoints {
		return fmt.Errorf("fee-rate-bps must not exceed %d", ledger.BasisPoints)
	}

	if _, err := utils.ParseAmount(cfg.RewardPoolAmount); err != nil {
		return fmt.Errorf("reward-pool-amount: %w", err)
	}

	policies := []string{ledger.PoolExhaustionCliff.String(), ledger.PoolExhaustionClamp.String()}
	if !utils.Contains(policies, cfg.PoolExhaustion) {
		return fmt.Errorf("pool-exhaustion must be one of %v", policies)
	}

	if cfg.BlockInterval <= 0 {
		return errors.New("block-interval must be positive")
	}
	if _, err := cfg.Genesis(); err != nil {
		return fmt.Errorf("genesis-time: %w", err)
	}

	return nil
}

func (cfg *LedgerConfig) Genesis() (time.Time, error) {
	if cfg.GenesisTime == "" {
		return time.Time{}, errors.New("missing genesis time")
	}
	return time.Parse(time.RFC3339, cfg.GenesisTime)
}

// Params converts the section into ledger deployment constants.
func (cfg *LedgerConfig) Params() (ledger.Params, error) {
	pool, err := utils.ParseAmount(cfg.RewardPoolAmount)
	if err != nil {
		return ledger.Params{}, err
	}

	params := ledger.Params{
		Owner:            cfg.Owner,
		FeeRecipient:     cfg.FeeRecipient,
		RewardRateBps:    cfg.RewardRateBps,
		BlocksPerYear:    cfg.BlocksPerYear,
		FeeRateBps:       cfg.FeeRateBps,
		RewardPoolAmount: pool,
		PoolExhaustion:   ledger.PoolExhaustionPolicy(cfg.PoolExhaustion),
	}
	return params, params.Validate()
}

// Clock returns the wall-clock block source described by the section.
func (cfg *LedgerConfig) Clock() (*ledger.BlockClock, error) {
	genesis, err := cfg.Genesis()
	if err != nil {
		return nil, err
	}
	return ledger.NewBlockClock(genesis, cfg.BlockInterval)
}
