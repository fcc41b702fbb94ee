package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# Backtest Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Symbols: %d | Strategies: %d\n\n", r.SymbolCount, r.StrategyCount))

	// Data Summary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Symbols | %d |\n", r.DataSummary.TotalSymbols))
	sb.WriteString(fmt.Sprintf("| Total Bars | %d |\n", r.DataSummary.TotalBars))
	sb.WriteString(fmt.Sprintf("| Total Runs | %d |\n", r.DataSummary.TotalRuns))
	sb.WriteString(fmt.Sprintf("| Total Trades | %d |\n", r.DataSummary.TotalTrades))
	if !r.DataSummary.DateRangeStart.IsZero() {
		sb.WriteString(fmt.Sprintf("| Date Range Start | %s |\n", r.DataSummary.DateRangeStart.Format("2006-01-02")))
		sb.WriteString(fmt.Sprintf("| Date Range End | %s |\n", r.DataSummary.DateRangeEnd.Format("2006-01-02")))
	}
	sb.WriteString("\n")

	// Run Metrics
	sb.WriteString("## Run Metrics\n\n")
	if len(r.RunMetrics) > 0 {
		sb.WriteString("| Symbol | Strategy | Initial | Final | Return% | Trades | WinRate% | PF | MaxDD% | Sharpe |\n")
		sb.WriteString("|--------|----------|---------|-------|---------|--------|----------|----|--------|--------|\n")
		for _, m := range r.RunMetrics {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %.2f | %.2f | %d | %.2f | %.2f | %.2f | %.2f |\n",
				m.Symbol, m.StrategyID,
				m.InitialCapital, m.FinalCapital, m.TotalReturnPct,
				m.NumTrades, m.WinRatePct, m.ProfitFactor, m.MaxDrawdownPct, m.SharpeRatio))
		}
	} else {
		sb.WriteString("No run metrics available.\n")
	}
	sb.WriteString("\n")

	// Strategy Comparison
	sb.WriteString("## Strategy Comparison\n\n")
	if len(r.StrategyComparison) > 0 {
		sb.WriteString("| Strategy | Symbols | Trades | AvgReturn% | AvgWinRate% | AvgMaxDD% | Best Symbol | Best Return% |\n")
		sb.WriteString("|----------|---------|--------|------------|-------------|-----------|-------------|-------------|\n")
		for _, c := range r.StrategyComparison {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f | %.2f | %.2f | %s | %.2f |\n",
				c.StrategyID, c.Symbols, c.TotalTrades,
				c.AvgReturnPct, c.AvgWinRatePct, c.AvgDrawdownPct,
				c.BestSymbol, c.BestReturnPct))
		}
	} else {
		sb.WriteString("No strategy comparison available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
