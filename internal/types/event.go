package types

type EventTypes string

func (e EventTypes) String() string {
	return string(e)
}

const (
	EventStaked                     EventTypes = "Staked"
	EventUnstaked                   EventTypes = "Unstaked"
	EventRestakedRewards            EventTypes = "RestakedRewards"
	EventClaimedRewards             EventTypes = "ClaimedRewards"
	EventPayedFee                   EventTypes = "PayedFee"
	EventSwitchedFees               EventTypes = "SwitchedFees"
	EventSwitchedRewards            EventTypes = "SwitchedRewards"
	EventRewardsWithdrawnEmergently EventTypes = "RewardsWithdrawnEmergently"
)

const (
	EventInitialized EventTypes = "Initialized"
	EventPaused      EventTypes = "Paused"
	EventUnpaused    EventTypes = "Unpaused"
)

// AllEventTypes lists every event the ledger can emit.
func AllEventTypes() []EventTypes {
	return []EventTypes{
		EventStaked,
		EventUnstaked,
		EventRestakedRewards,
		EventClaimedRewards,
		EventPayedFee,
		EventSwitchedFees,
		EventSwitchedRewards,
		EventRewardsWithdrawnEmergently,
		EventInitialized,
		EventPaused,
		EventUnpaused,
	}
}
