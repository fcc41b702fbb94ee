package domain

import "time"

// EquityPoint is one mark-to-market observation of account value:
// cash plus the value of any open position at the bar's close.
type EquityPoint struct {
	Timestamp time.Time
	Equity    float64
}

// ProfitFactorInfinite is reported when there are winning trades and zero
// gross loss. A finite sentinel keeps the value storable and comparable.
const ProfitFactorInfinite = 999.0

// Summary holds the derived metrics of one backtest run, computed once at
// run completion from the trade ledger and the equity curve.
type Summary struct {
	TotalReturnPct float64 // (final - initial) / initial * 100
	NumTrades      int     // realized round trips only
	Wins           int
	Losses         int
	WinRatePct     float64 // 0 when NumTrades == 0
	ProfitFactor   float64 // 0 with no trades; ProfitFactorInfinite when gross loss is 0 and wins exist
	MaxDrawdownPct float64 // largest peak-to-trough decline of the equity curve, reported positive
	SharpeRatio    float64 // annualized from daily equity returns, 0 when volatility is 0
	AvgTradePct    float64 // mean PnLPct over all trades, 0 when empty
	AvgWinPct      float64 // mean PnLPct over WIN trades, 0 when empty
	AvgLossPct     float64 // mean PnLPct over LOSS trades, 0 when empty
}

// BacktestResult is the terminal, immutable snapshot of one run. It is
// created exactly once when the run completes and never mutated, so it is
// safe to share across goroutines without synchronization.
type BacktestResult struct {
	InitialCapital float64
	FinalCapital   float64 // last equity point, includes unrealized open position value

	Trades      []Trade       // chronological, realized only
	EquityCurve []EquityPoint // one point per input bar, chronological

	Summary Summary

	// OpenPosition is the unrealized position left when the series ended
	// LONG. Nil when the run ended FLAT. Never force-closed.
	OpenPosition *Position
}

// RunRecord is the storage representation of one completed backtest run.
type RunRecord struct {
	RunID      string // deterministic hash
	Symbol     string
	StrategyID string

	InitialCapital  float64
	FinalCapital    float64
	PositionSizePct float64
	FeeRate         float64
	BarCount        int

	TotalReturnPct float64
	NumTrades      int
	WinRatePct     float64
	ProfitFactor   float64
	MaxDrawdownPct float64
	SharpeRatio    float64
}

// EquityCurvePoint is the storage representation of one equity observation.
type EquityCurvePoint struct {
	RunID     string
	Timestamp time.Time
	Equity    float64
}
