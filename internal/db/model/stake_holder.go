package model

import (
	"fmt"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
)

const StakeHolderCollection = "stake_holders"

type StakeHolderDocument struct {
	Account           string `bson:"_id"` // Primary key
	StakedTokens      string `bson:"staked_tokens"`
	LastClaimedBlock  uint64 `bson:"last_claimed_block"`
	TotalEarnedTokens string `bson:"total_earned_tokens"`
}

func FromStakeHolder(account string, holder *ledger.StakeHolder) *StakeHolderDocument {
	return &StakeHolderDocument{
		Account:           account,
		StakedTokens:      holder.StakedTokens.String(),
		LastClaimedBlock:  holder.LastClaimedBlock,
		TotalEarnedTokens: holder.TotalEarnedTokens.String(),
	}
}

func (d *StakeHolderDocument) ToStakeHolder() (*ledger.StakeHolder, error) {
	staked, err := parseAmount(d.StakedTokens)
	if err != nil {
		return nil, fmt.Errorf("invalid staked tokens of %s: %w", d.Account, err)
	}
	earned, err := parseAmount(d.TotalEarnedTokens)
	if err != nil {
		return nil, fmt.Errorf("invalid earned tokens of %s: %w", d.Account, err)
	}

	return &ledger.StakeHolder{
		StakedTokens:      staked,
		LastClaimedBlock:  d.LastClaimedBlock,
		TotalEarnedTokens: earned,
	}, nil
}
