package reporting

import "time"

// Report represents the backtest summary report structure.
type Report struct {
	// Metadata
	GeneratedAt   time.Time
	SymbolCount   int
	StrategyCount int

	// Data Summary
	DataSummary DataSummary

	// Run Metrics (sorted by symbol, strategy_id)
	RunMetrics []RunMetricRow

	// Strategy Comparison (per strategy, aggregated across symbols)
	StrategyComparison []StrategyComparisonRow
}

// DataSummary contains data description.
type DataSummary struct {
	TotalSymbols   int
	TotalBars      int
	TotalRuns      int
	TotalTrades    int
	DateRangeStart time.Time
	DateRangeEnd   time.Time
}

// RunMetricRow represents one row in the run metrics table.
type RunMetricRow struct {
	Symbol         string
	StrategyID     string
	InitialCapital float64
	FinalCapital   float64
	TotalReturnPct float64
	NumTrades      int
	WinRatePct     float64
	ProfitFactor   float64
	MaxDrawdownPct float64
	SharpeRatio    float64
}

// StrategyComparisonRow aggregates run metrics per strategy across symbols.
type StrategyComparisonRow struct {
	StrategyID     string
	Symbols        int
	TotalTrades    int
	AvgReturnPct   float64
	AvgWinRatePct  float64
	AvgDrawdownPct float64
	BestSymbol     string
	BestReturnPct  float64
}
