package simulation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/idhash"
	"github.com/ravi4j/daily-market-automation-sub001/internal/series"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
	"github.com/ravi4j/daily-market-automation-sub001/internal/strategy"
)

// Runner errors
var (
	ErrNoBars = errors.New("no bars stored for symbol")
)

// Runner executes backtests against stored daily bars and persists results.
type Runner struct {
	dailyBarStore    storage.DailyBarStore
	runStore         storage.RunStore
	tradeRecordStore storage.TradeRecordStore
	equityCurveStore storage.EquityCurveStore
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	DailyBarStore    storage.DailyBarStore
	RunStore         storage.RunStore
	TradeRecordStore storage.TradeRecordStore
	EquityCurveStore storage.EquityCurveStore
}

// NewRunner creates a simulation runner.
func NewRunner(opts RunnerOptions) *Runner {
	return &Runner{
		dailyBarStore:    opts.DailyBarStore,
		runStore:         opts.RunStore,
		tradeRecordStore: opts.TradeRecordStore,
		equityCurveStore: opts.EquityCurveStore,
	}
}

// Run executes one backtest for a symbol with a strategy config.
// Steps:
//  1. Load bars for symbol
//  2. Build validated series
//  3. Apply the indicators the strategy needs
//  4. Build strategy via strategy.FromConfig(cfg)
//  5. Execute the engine
//  6. Persist run, trades and equity curve under a deterministic run_id
func (r *Runner) Run(ctx context.Context, symbol string, strategyCfg domain.StrategyConfig, engineCfg backtest.Config) (*domain.RunRecord, error) {
	stored, err := r.dailyBarStore.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBars, symbol)
	}

	bars := make([]*domain.Bar, len(stored))
	for i, d := range stored {
		bars[i] = d.ToBar()
	}

	applies, err := strategy.Indicators(strategyCfg)
	if err != nil {
		return nil, err
	}
	for _, apply := range applies {
		if err := apply(bars); err != nil {
			return nil, fmt.Errorf("apply indicators: %w", err)
		}
	}

	s, err := series.New(bars)
	if err != nil {
		return nil, err
	}

	strat, err := strategy.FromConfig(strategyCfg)
	if err != nil {
		return nil, err
	}

	result, err := backtest.Run(s, strat, engineCfg)
	if err != nil {
		return nil, err
	}

	runID := idhash.ComputeRunID(symbol, strat.ID(), engineCfg.InitialCapital, engineCfg.PositionSizePct, engineCfg.FeeRate)

	record := buildRunRecord(runID, symbol, strat.ID(), engineCfg, s.Len(), result)

	if err := r.persist(ctx, record, result); err != nil {
		return nil, err
	}

	return record, nil
}

func buildRunRecord(runID, symbol, strategyID string, cfg backtest.Config, barCount int, result *domain.BacktestResult) *domain.RunRecord {
	return &domain.RunRecord{
		RunID:           runID,
		Symbol:          symbol,
		StrategyID:      strategyID,
		InitialCapital:  result.InitialCapital,
		FinalCapital:    result.FinalCapital,
		PositionSizePct: cfg.PositionSizePct,
		FeeRate:         cfg.FeeRate,
		BarCount:        barCount,
		TotalReturnPct:  result.Summary.TotalReturnPct,
		NumTrades:       result.Summary.NumTrades,
		WinRatePct:      result.Summary.WinRatePct,
		ProfitFactor:    result.Summary.ProfitFactor,
		MaxDrawdownPct:  result.Summary.MaxDrawdownPct,
		SharpeRatio:     result.Summary.SharpeRatio,
	}
}

func (r *Runner) persist(ctx context.Context, record *domain.RunRecord, result *domain.BacktestResult) error {
	if r.runStore != nil {
		if err := r.runStore.Insert(ctx, record); err != nil {
			return err // propagates storage.ErrDuplicateKey
		}
	}

	if r.tradeRecordStore != nil {
		trades := make([]*domain.TradeRecord, len(result.Trades))
		for i, tr := range result.Trades {
			trades[i] = &domain.TradeRecord{
				TradeID:      idhash.ComputeTradeID(record.RunID, tr.EntryTime.Unix(), tr.ExitTime.Unix()),
				RunID:        record.RunID,
				Symbol:       record.Symbol,
				StrategyID:   record.StrategyID,
				EntryTime:    tr.EntryTime,
				EntryPrice:   tr.EntryPrice,
				ExitTime:     tr.ExitTime,
				ExitPrice:    tr.ExitPrice,
				Quantity:     tr.Quantity,
				PnLAbs:       tr.PnLAbs,
				PnLPct:       tr.PnLPct,
				Fees:         tr.Fees,
				HoldingBars:  tr.HoldingBars,
				ExitReason:   tr.ExitReason,
				OutcomeClass: tr.OutcomeClass,
			}
		}
		if err := r.tradeRecordStore.InsertBulk(ctx, trades); err != nil {
			return err
		}
	}

	if r.equityCurveStore != nil {
		points := make([]*domain.EquityCurvePoint, len(result.EquityCurve))
		for i, p := range result.EquityCurve {
			points[i] = &domain.EquityCurvePoint{
				RunID:     record.RunID,
				Timestamp: p.Timestamp,
				Equity:    p.Equity,
			}
		}
		if err := r.equityCurveStore.InsertBulk(ctx, points); err != nil {
			return err
		}
	}

	return nil
}
