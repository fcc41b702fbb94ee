package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
)

// Generator produces reports from stored data.
type Generator struct {
	dailyBarStore    storage.DailyBarStore
	runStore         storage.RunStore
	tradeRecordStore storage.TradeRecordStore
	now              func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(
	dailyBarStore storage.DailyBarStore,
	runStore storage.RunStore,
	tradeStore storage.TradeRecordStore,
) *Generator {
	return &Generator{
		dailyBarStore:    dailyBarStore,
		runStore:         runStore,
		tradeRecordStore: tradeStore,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete report from all stored runs.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	runs, err := g.runStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	dataSummary, err := g.generateDataSummary(ctx, runs)
	if err != nil {
		return nil, err
	}

	metrics := generateRunMetrics(runs)
	comparison := generateStrategyComparison(runs)

	symbolSet := make(map[string]struct{})
	strategySet := make(map[string]struct{})
	for _, r := range runs {
		symbolSet[r.Symbol] = struct{}{}
		strategySet[r.StrategyID] = struct{}{}
	}

	return &Report{
		GeneratedAt:        g.now(),
		SymbolCount:        len(symbolSet),
		StrategyCount:      len(strategySet),
		DataSummary:        *dataSummary,
		RunMetrics:         metrics,
		StrategyComparison: comparison,
	}, nil
}

// generateDataSummary computes data summary from bars and runs.
func (g *Generator) generateDataSummary(ctx context.Context, runs []*domain.RunRecord) (*DataSummary, error) {
	symbols, err := g.dailyBarStore.Symbols(ctx)
	if err != nil {
		return nil, err
	}

	var totalBars int
	var rangeStart, rangeEnd time.Time
	for _, sym := range symbols {
		bars, err := g.dailyBarStore.GetBySymbol(ctx, sym)
		if err != nil {
			return nil, err
		}
		totalBars += len(bars)
		if len(bars) == 0 {
			continue
		}
		first, last := bars[0].Timestamp, bars[len(bars)-1].Timestamp
		if rangeStart.IsZero() || first.Before(rangeStart) {
			rangeStart = first
		}
		if last.After(rangeEnd) {
			rangeEnd = last
		}
	}

	totalTrades := 0
	for _, r := range runs {
		totalTrades += r.NumTrades
	}

	return &DataSummary{
		TotalSymbols:   len(symbols),
		TotalBars:      totalBars,
		TotalRuns:      len(runs),
		TotalTrades:    totalTrades,
		DateRangeStart: rangeStart,
		DateRangeEnd:   rangeEnd,
	}, nil
}

// generateRunMetrics builds sorted run metric rows.
func generateRunMetrics(runs []*domain.RunRecord) []RunMetricRow {
	rows := make([]RunMetricRow, len(runs))
	for i, r := range runs {
		rows[i] = RunMetricRow{
			Symbol:         r.Symbol,
			StrategyID:     r.StrategyID,
			InitialCapital: r.InitialCapital,
			FinalCapital:   r.FinalCapital,
			TotalReturnPct: r.TotalReturnPct,
			NumTrades:      r.NumTrades,
			WinRatePct:     r.WinRatePct,
			ProfitFactor:   r.ProfitFactor,
			MaxDrawdownPct: r.MaxDrawdownPct,
			SharpeRatio:    r.SharpeRatio,
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Symbol != rows[j].Symbol {
			return rows[i].Symbol < rows[j].Symbol
		}
		return rows[i].StrategyID < rows[j].StrategyID
	})
	return rows
}

// generateStrategyComparison aggregates runs per strategy across symbols.
func generateStrategyComparison(runs []*domain.RunRecord) []StrategyComparisonRow {
	groups := make(map[string][]*domain.RunRecord)
	for _, r := range runs {
		groups[r.StrategyID] = append(groups[r.StrategyID], r)
	}

	var rows []StrategyComparisonRow
	for strategyID, group := range groups {
		row := StrategyComparisonRow{
			StrategyID: strategyID,
			Symbols:    len(group),
		}

		var sumReturn, sumWinRate, sumDrawdown float64
		for i, r := range group {
			row.TotalTrades += r.NumTrades
			sumReturn += r.TotalReturnPct
			sumWinRate += r.WinRatePct
			sumDrawdown += r.MaxDrawdownPct
			if i == 0 || r.TotalReturnPct > row.BestReturnPct {
				row.BestSymbol = r.Symbol
				row.BestReturnPct = r.TotalReturnPct
			}
		}
		n := float64(len(group))
		row.AvgReturnPct = sumReturn / n
		row.AvgWinRatePct = sumWinRate / n
		row.AvgDrawdownPct = sumDrawdown / n

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].StrategyID < rows[j].StrategyID
	})
	return rows
}
