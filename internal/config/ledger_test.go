package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/staking-rewards-ledger/testutil"
)

func TestLedgerConfig_Validate(t *testing.T) {
	valid := func() LedgerConfig {
		return LedgerConfig{
			Owner:            testutil.RandomAddress(t),
			FeeRecipient:     testutil.RandomAddress(t),
			RewardPoolAmount: "5000",
			BlockInterval:    15 * time.Second,
			GenesisTime:      "2024-01-01T00:00:00Z",
		}
	}

	tests := []struct {
		name   string
		mutate func(cfg *LedgerConfig)
		errMsg string
	}{
		{name: "valid"},
		{name: "bad owner", mutate: func(cfg *LedgerConfig) { cfg.Owner = "owner" }, errMsg: "owner"},
		{name: "bad fee recipient", mutate: func(cfg *LedgerConfig) { cfg.FeeRecipient = "" }, errMsg: "fee-recipient"},
		{name: "custody is owner", mutate: func(cfg *LedgerConfig) { cfg.CustodyAccount = cfg.Owner }, errMsg: "custody-account"},
		{
			name:   "custody is a user account",
			mutate: func(cfg *LedgerConfig) { cfg.CustodyAccount = testutil.RandomAddress(t) },
			errMsg: "custody-account must not be a valid account address",
		},
		{name: "custody with own name", mutate: func(cfg *LedgerConfig) { cfg.CustodyAccount = "staking-pool" }},
		{name: "fee above 100%", mutate: func(cfg *LedgerConfig) { cfg.FeeRateBps = 10_001 }, errMsg: "fee-rate-bps"},
		{name: "empty pool", mutate: func(cfg *LedgerConfig) { cfg.RewardPoolAmount = "0" }, errMsg: "reward-pool-amount"},
		{name: "unknown policy", mutate: func(cfg *LedgerConfig) { cfg.PoolExhaustion = "drain" }, errMsg: "pool-exhaustion"},
		{name: "no block interval", mutate: func(cfg *LedgerConfig) { cfg.BlockInterval = 0 }, errMsg: "block-interval"},
		{name: "bad genesis", mutate: func(cfg *LedgerConfig) { cfg.GenesisTime = "yesterday" }, errMsg: "genesis-time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
