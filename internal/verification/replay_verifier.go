package verification

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

var (
	// ErrRunNotFound is returned when the run ID doesn't exist.
	ErrRunNotFound = errors.New("run not found")

	// ErrUnknownStrategy is returned when a stored strategy ID has no config.
	ErrUnknownStrategy = errors.New("unknown strategy ID")
)

// ReplayVerifier implements Verifier by re-executing stored runs.
type ReplayVerifier struct {
	runStore      storage.RunStore
	tradeStore    storage.TradeRecordStore
	dailyBarStore storage.DailyBarStore

	// strategyConfigs maps strategy ID to its configuration.
	// Must be pre-populated with all known strategy configs.
	strategyConfigs map[string]domain.StrategyConfig
}

// ReplayVerifierOptions contains configuration for creating a ReplayVerifier.
type ReplayVerifierOptions struct {
	RunStore        storage.RunStore
	TradeStore      storage.TradeRecordStore
	DailyBarStore   storage.DailyBarStore
	StrategyConfigs map[string]domain.StrategyConfig
}

// NewReplayVerifier creates a new ReplayVerifier.
func NewReplayVerifier(opts ReplayVerifierOptions) *ReplayVerifier {
	return &ReplayVerifier{
		runStore:        opts.RunStore,
		tradeStore:      opts.TradeStore,
		dailyBarStore:   opts.DailyBarStore,
		strategyConfigs: opts.StrategyConfigs,
	}
}

// VerifyRun verifies a single run by replaying the backtest.
func (v *ReplayVerifier) VerifyRun(ctx context.Context, runID string) (*VerificationResult, error) {
	// 1. Load stored run
	stored, err := v.runStore.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	// 2. Replay the backtest
	replayed, replayedTrades, err := v.replayRun(ctx, stored)
	if err != nil {
		return nil, err
	}

	// 3. Compare run records
	divergences := CompareRunRecords(stored, replayed)

	// 4. Compare trade records
	tradeDivergences, err := v.compareTrades(ctx, runID, replayedTrades)
	if err != nil {
		return nil, err
	}
	divergences = append(divergences, tradeDivergences...)

	return &VerificationResult{
		RunID:       runID,
		Match:       len(divergences) == 0,
		Divergences: divergences,
	}, nil
}

// VerifyAll verifies all stored runs.
func (v *ReplayVerifier) VerifyAll(ctx context.Context) (*VerificationReport, error) {
	runs, err := v.runStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &VerificationReport{
		TotalRuns: len(runs),
		Results:   make([]VerificationResult, 0, len(runs)),
	}

	for _, run := range runs {
		result, err := v.VerifyRun(ctx, run.RunID)
		if err != nil {
			report.Results = append(report.Results, VerificationResult{
				RunID: run.RunID,
				Match: false,
				Divergences: []FieldDivergence{
					{Field: "Error", Expected: nil, Actual: err.Error()},
				},
			})
			report.DivergentRuns++
			continue
		}

		report.Results = append(report.Results, *result)
		if result.Match {
			report.MatchedRuns++
		} else {
			report.DivergentRuns++
		}
	}

	return report, nil
}

// replayRun re-executes the backtest with the stored run's parameters.
func (v *ReplayVerifier) replayRun(ctx context.Context, stored *domain.RunRecord) (*domain.RunRecord, []*domain.TradeRecord, error) {
	strategyCfg, ok := v.strategyConfigs[stored.StrategyID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, stored.StrategyID)
	}

	dailyBars, err := v.dailyBarStore.GetBySymbol(ctx, stored.Symbol)
	if err != nil {
		return nil, nil, err
	}

	bars := make([]*domain.Bar, len(dailyBars))
	for i, d := range dailyBars {
		bars[i] = d.ToBar()
	}
	applies, err := strategy.Indicators(strategyCfg)
	if err != nil {
		return nil, nil, err
	}
	for _, apply := range applies {
		if err := apply(bars); err != nil {
			return nil, nil, err
		}
	}

	s, err := series.New(bars)
	if err != nil {
		return nil, nil, err
	}

	strat, err := strategy.FromConfig(strategyCfg)
	if err != nil {
		return nil, nil, err
	}

	engineCfg := backtest.Config{
		InitialCapital:  stored.InitialCapital,
		PositionSizePct: stored.PositionSizePct,
		FeeRate:         stored.FeeRate,
	}

	result, err := backtest.Run(s, strat, engineCfg)
	if err != nil {
		return nil, nil, err
	}

	replayed := &domain.RunRecord{
		RunID:           idhash.ComputeRunID(stored.Symbol, strat.ID(), engineCfg.InitialCapital, engineCfg.PositionSizePct, engineCfg.FeeRate),
		Symbol:          stored.Symbol,
		StrategyID:      strat.ID(),
		InitialCapital:  result.InitialCapital,
		FinalCapital:    result.FinalCapital,
		PositionSizePct: engineCfg.PositionSizePct,
		FeeRate:         engineCfg.FeeRate,
		BarCount:        s.Len(),
		TotalReturnPct:  result.Summary.TotalReturnPct,
		NumTrades:       result.Summary.NumTrades,
		WinRatePct:      result.Summary.WinRatePct,
		ProfitFactor:    result.Summary.ProfitFactor,
		MaxDrawdownPct:  result.Summary.MaxDrawdownPct,
		SharpeRatio:     result.Summary.SharpeRatio,
	}

	trades := make([]*domain.TradeRecord, len(result.Trades))
	for i, tr := range result.Trades {
		trades[i] = &domain.TradeRecord{
			TradeID:      idhash.ComputeTradeID(replayed.RunID, tr.EntryTime.Unix(), tr.ExitTime.Unix()),
			RunID:        replayed.RunID,
			Symbol:       stored.Symbol,
			StrategyID:   strat.ID(),
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

	return replayed, trades, nil
}

// compareTrades checks replayed trades against the stored ones for a run.
func (v *ReplayVerifier) compareTrades(ctx context.Context, runID string, replayed []*domain.TradeRecord) ([]FieldDivergence, error) {
	if v.tradeStore == nil {
		return nil, nil
	}

	stored, err := v.tradeStore.GetByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}

	if len(stored) != len(replayed) {
		return []FieldDivergence{
			{Field: "TradeCount", Expected: len(stored), Actual: len(replayed)},
		}, nil
	}

	var divergences []FieldDivergence
	for i := range stored {
		divergences = append(divergences, CompareTradeRecords(stored[i], replayed[i])...)
	}
	return divergences, nil
}

var _ Verifier = (*ReplayVerifier)(nil)
