package domain

import "time"

// Action is a strategy decision for one bar.
type Action string

// Action constants.
const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Valid reports whether the action is one of the three allowed values.
// Anything else is a strategy contract violation and fails the run.
func (a Action) Valid() bool {
	switch a {
	case ActionBuy, ActionSell, ActionHold:
		return true
	}
	return false
}

// PositionState is the position lifecycle state of a simulation run.
type PositionState string

// Position state constants. Shorts are not modeled.
const (
	PositionFlat PositionState = "FLAT"
	PositionLong PositionState = "LONG"
)

// Position holds the open LONG position of a run, if any.
type Position struct {
	EntryTime  time.Time // entry bar timestamp
	EntryPrice float64   // fill price (entry bar close)
	Quantity   float64   // fractional shares permitted
	EntryIndex int       // index of the entry bar in the series
}
