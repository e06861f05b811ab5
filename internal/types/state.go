package types

// LedgerState is the lifecycle state reported for the ledger as a whole.
type LedgerState string

const (
	StateUninitialized LedgerState = "UNINITIALIZED"
	StateActive        LedgerState = "ACTIVE"
	StatePaused        LedgerState = "PAUSED"
)

func (s LedgerState) String() string {
	return string(s)
}

// LedgerStateOf derives the lifecycle state from the two state flags. A
// ledger paused before its initialization reports as paused.
func LedgerStateOf(initialized, paused bool) LedgerState {
	switch {
	case paused:
		return StatePaused
	case !initialized:
		return StateUninitialized
	default:
		return StateActive
	}
}

// RewardsState tells whether rewards accrue up to the current block.
type RewardsState string

const (
	RewardsAccruing RewardsState = "ACCRUING"
	RewardsFrozen   RewardsState = "FROZEN"
)

func (s RewardsState) String() string {
	return string(s)
}

func RewardsStateOf(stopRewardsBlock uint64) RewardsState {
	if stopRewardsBlock == 0 {
		return RewardsAccruing
	}
	return RewardsFrozen
}
