package domain

import "time"

// Trade represents one closed round trip. Immutable once recorded by the ledger.
type Trade struct {
	EntryTime  time.Time
	EntryPrice float64
	ExitTime   time.Time
	ExitPrice  float64
	Quantity   float64

	PnLAbs float64 // (exit - entry) * quantity, before fees
	PnLPct float64 // (exit - entry) / entry * 100
	Fees   float64 // fixed proportional fee on both fills, 0 unless configured

	HoldingBars  int    // bar count from entry to exit
	ExitReason   string // reason code
	OutcomeClass string // "WIN" | "LOSS"
}

// Exit reason codes. Only signal-driven exits exist; the engine has no
// stop-loss or take-profit automation.
const (
	ExitReasonSignal = "SIGNAL_EXIT"
)

// Outcome class constants. Exactly-zero P&L is classified LOSS: the
// conservative tie-break all win-rate figures rely on.
const (
	OutcomeClassWin  = "WIN"
	OutcomeClassLoss = "LOSS"
)

// TradeRecord is the storage representation of a trade, keyed for batch runs.
type TradeRecord struct {
	TradeID    string // deterministic hash
	RunID      string // owning backtest run
	Symbol     string
	StrategyID string

	EntryTime  time.Time
	EntryPrice float64
	ExitTime   time.Time
	ExitPrice  float64
	Quantity   float64

	PnLAbs       float64
	PnLPct       float64
	Fees         float64
	HoldingBars  int
	ExitReason   string
	OutcomeClass string
}
