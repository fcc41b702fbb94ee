// Package orchestrator provides E2E pipeline orchestration.
// It coordinates: load symbols → simulate → report
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/observability"
	"github.com/ravi4j/daily-market-automation-sub001/internal/simulation"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
)

// DefaultConcurrency bounds how many backtests run at once.
const DefaultConcurrency = 4

// Orchestrator coordinates backtest execution across symbols and strategies.
// Each (symbol, strategy) pair is an independent run; pairs execute
// concurrently, while each individual run stays strictly sequential.
type Orchestrator struct {
	dailyBarStore    storage.DailyBarStore
	runStore         storage.RunStore
	tradeRecordStore storage.TradeRecordStore
	equityCurveStore storage.EquityCurveStore

	strategyConfigs []domain.StrategyConfig
	engineConfig    backtest.Config

	concurrency int
	metrics     *observability.Metrics
	verbose     bool
}

// Options for creating Orchestrator.
type Options struct {
	DailyBarStore    storage.DailyBarStore
	RunStore         storage.RunStore
	TradeRecordStore storage.TradeRecordStore
	EquityCurveStore storage.EquityCurveStore

	StrategyConfigs []domain.StrategyConfig
	EngineConfig    backtest.Config

	Concurrency int // 0 means DefaultConcurrency
	Metrics     *observability.Metrics
	Verbose     bool
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		dailyBarStore:    opts.DailyBarStore,
		runStore:         opts.RunStore,
		tradeRecordStore: opts.TradeRecordStore,
		equityCurveStore: opts.EquityCurveStore,
		strategyConfigs:  opts.StrategyConfigs,
		engineConfig:     opts.EngineConfig,
		concurrency:      concurrency,
		metrics:          opts.Metrics,
		verbose:          opts.Verbose,
	}
}

// RunResult contains results from orchestrator execution.
type RunResult struct {
	SymbolsProcessed int
	RunsCreated      int
	Runs             []*domain.RunRecord
	Errors           []string
}

// Run executes backtests for every (symbol, strategy) combination.
// Phases:
//  1. Load symbols
//  2. Simulate each (symbol, strategy) combination concurrently
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{}

	o.log("Phase 1: Loading symbols...")
	symbols, err := o.dailyBarStore.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("phase 1 (load symbols) failed: %w", err)
	}
	result.SymbolsProcessed = len(symbols)
	o.log("  Found %d symbols", len(symbols))

	if len(symbols) == 0 {
		return result, nil
	}

	o.log("Phase 2: Running backtests...")
	runs, errs := o.runSimulations(ctx, symbols)
	result.Runs = runs
	result.RunsCreated = len(runs)
	result.Errors = errs
	o.log("  Created %d runs (%d errors)", len(runs), len(errs))

	return result, nil
}

// runSimulations runs all symbol/strategy combinations with bounded concurrency.
func (o *Orchestrator) runSimulations(ctx context.Context, symbols []string) ([]*domain.RunRecord, []string) {
	runner := simulation.NewRunner(simulation.RunnerOptions{
		DailyBarStore:    o.dailyBarStore,
		RunStore:         o.runStore,
		TradeRecordStore: o.tradeRecordStore,
		EquityCurveStore: o.equityCurveStore,
	})

	var mu sync.Mutex
	var runs []*domain.RunRecord
	var errs []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for _, symbol := range symbols {
		for _, strategyCfg := range o.strategyConfigs {
			symbol, strategyCfg := symbol, strategyCfg
			g.Go(func() error {
				if o.metrics != nil {
					o.metrics.RunsStarted.Inc()
				}

				start := time.Now()
				record, err := runner.Run(gctx, symbol, strategyCfg, o.engineConfig)
				if err != nil {
					// Already simulated with identical parameters.
					if errors.Is(err, storage.ErrDuplicateKey) {
						return nil
					}
					if o.metrics != nil {
						o.metrics.RunsFailed.Inc()
					}
					mu.Lock()
					errs = append(errs, fmt.Sprintf("simulate %s/%s: %v", symbol, strategyCfg.StrategyType, err))
					mu.Unlock()
					return nil
				}

				if o.metrics != nil {
					o.metrics.RunsCompleted.Inc()
					o.metrics.TradesRecorded.Add(float64(record.NumTrades))
					o.metrics.RecordRunDuration(strategyCfg.StrategyType, time.Since(start).Seconds())
				}

				mu.Lock()
				runs = append(runs, record)
				mu.Unlock()
				return nil
			})
		}
	}

	// Workers report per-run failures through errs, never as group errors.
	_ = g.Wait()

	// Deterministic output order regardless of completion order.
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Symbol != runs[j].Symbol {
			return runs[i].Symbol < runs[j].Symbol
		}
		return runs[i].StrategyID < runs[j].StrategyID
	})
	sort.Strings(errs)

	return runs, errs
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		log.Printf("[orchestrator] "+format, args...)
	}
}
