package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders run metrics as CSV string.
func RenderCSV(metrics []RunMetricRow) string {
	var sb strings.Builder

	sb.WriteString("symbol,strategy_id,initial_capital,final_capital,total_return_pct,")
	sb.WriteString("num_trades,win_rate_pct,profit_factor,max_drawdown_pct,sharpe_ratio\n")

	for _, m := range metrics {
		sb.WriteString(fmt.Sprintf("%s,%s,%.6f,%.6f,%.6f,%d,%.6f,%.6f,%.6f,%.6f\n",
			m.Symbol,
			m.StrategyID,
			m.InitialCapital,
			m.FinalCapital,
			m.TotalReturnPct,
			m.NumTrades,
			m.WinRatePct,
			m.ProfitFactor,
			m.MaxDrawdownPct,
			m.SharpeRatio,
		))
	}

	return sb.String()
}
