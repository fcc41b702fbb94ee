package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/loader"
	"github.com/ravi4j/daily-market-automation-sub001/internal/simulation"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
	chstore "github.com/ravi4j/daily-market-automation-sub001/internal/storage/clickhouse"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage/memory"
	pgstore "github.com/ravi4j/daily-market-automation-sub001/internal/storage/postgres"
)

func main() {
	// Data source
	csvPath := flag.String("csv", "", "CSV file with daily bars (symbol taken from filename unless --symbol is set)")
	symbol := flag.String("symbol", "", "Symbol to backtest (required with DSNs, optional with --csv)")

	// Strategy
	strategyType := flag.String("strategy", "", "Strategy: SMA_CROSS, RSI_REVERSION, BUY_HOLD (required)")
	fastPeriod := flag.Int("fast-period", 10, "Fast SMA period for SMA_CROSS")
	slowPeriod := flag.Int("slow-period", 30, "Slow SMA period for SMA_CROSS")
	rsiPeriod := flag.Int("rsi-period", 14, "RSI period for RSI_REVERSION")
	buyBelow := flag.Float64("buy-below", 30, "RSI buy threshold for RSI_REVERSION")
	sellAbove := flag.Float64("sell-above", 70, "RSI sell threshold for RSI_REVERSION")

	// Engine
	capital := flag.Float64("capital", 10000, "Initial capital")
	sizePct := flag.Float64("size-pct", 1.0, "Position size as fraction of cash per entry")
	feeRate := flag.Float64("fee-rate", 0, "Proportional fee per fill notional")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")

	// Output
	outputJSON := flag.Bool("json", false, "Output as JSON")
	persistResult := flag.Bool("persist", false, "Persist run, trades and equity curve (requires --postgres-dsn and --clickhouse-dsn)")

	flag.Parse()

	logger := log.New(os.Stderr, "[backtest] ", log.LstdFlags)

	*strategyType = strings.ToUpper(*strategyType)
	if err := validateFlags(*strategyType, *csvPath, *symbol, *postgresDSN, *clickhouseDSN, *persistResult); err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	// Create stores
	var barStore storage.DailyBarStore = memory.NewDailyBarStore()
	var runStore storage.RunStore = memory.NewRunStore()
	var tradeStore storage.TradeRecordStore = memory.NewTradeRecordStore()
	var curveStore storage.EquityCurveStore = memory.NewEquityCurveStore()

	if *csvPath != "" {
		if *symbol == "" {
			base := filepath.Base(*csvPath)
			*symbol = strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
		}

		bars, err := loader.ReadFile(*csvPath)
		if err != nil {
			logger.Fatalf("load bars: %v", err)
		}

		stored := make([]*domain.DailyBar, len(bars))
		for i, b := range bars {
			stored[i] = &domain.DailyBar{
				Symbol:    *symbol,
				Timestamp: b.Timestamp,
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				Volume:    b.Volume,
			}
		}
		if err := barStore.InsertBulk(ctx, stored); err != nil {
			logger.Fatalf("store bars: %v", err)
		}
		logger.Printf("Loaded %d bars for %s from %s", len(bars), *symbol, *csvPath)
	} else {
		// PostgreSQL for runs and trade records
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("connect to postgres: %v", err)
		}
		defer pool.Close()

		runStore = pgstore.NewRunStore(pool)
		tradeStore = pgstore.NewTradeRecordStore(pool)

		// ClickHouse for bars and equity curves
		conn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("connect to clickhouse: %v", err)
		}
		defer conn.Close()

		barStore = chstore.NewDailyBarStore(conn)
		curveStore = chstore.NewEquityCurveStore(conn)
	}

	strategyConfig := buildStrategyConfig(*strategyType, *fastPeriod, *slowPeriod, *rsiPeriod, *buyBelow, *sellAbove)

	engineConfig := backtest.Config{
		InitialCapital:  *capital,
		PositionSizePct: *sizePct,
		FeeRate:         *feeRate,
	}

	opts := simulation.RunnerOptions{DailyBarStore: barStore}
	if *persistResult {
		opts.RunStore = runStore
		opts.TradeRecordStore = tradeStore
		opts.EquityCurveStore = curveStore
	}
	runner := simulation.NewRunner(opts)

	logger.Printf("Running backtest: symbol=%s strategy=%s capital=%.2f", *symbol, *strategyType, *capital)

	record, err := runner.Run(ctx, *symbol, strategyConfig, engineConfig)
	if err != nil {
		logger.Fatalf("backtest failed: %v", err)
	}

	if *outputJSON {
		output, _ := json.MarshalIndent(record, "", "  ")
		fmt.Println(string(output))
	} else {
		printRunRecord(record)
	}
}

// validateFlags rejects bad flag combinations before any work starts.
func validateFlags(strategyType, csvPath, symbol, postgresDSN, clickhouseDSN string, persist bool) error {
	if strategyType == "" {
		return errors.New("--strategy is required")
	}
	if strategyType != domain.StrategyTypeSMACross &&
		strategyType != domain.StrategyTypeRSIReversion &&
		strategyType != domain.StrategyTypeBuyHold {
		return fmt.Errorf("invalid strategy: %s. Must be SMA_CROSS, RSI_REVERSION, or BUY_HOLD", strategyType)
	}
	if csvPath == "" && (postgresDSN == "" || clickhouseDSN == "") {
		return errors.New("either --csv or both --postgres-dsn and --clickhouse-dsn are required")
	}
	if csvPath == "" && symbol == "" {
		return errors.New("--symbol is required when loading bars from storage")
	}
	// CSV runs write to in-memory stores that vanish on exit, so
	// persistence only makes sense against the databases.
	if persist && csvPath != "" {
		return errors.New("--persist requires --postgres-dsn and --clickhouse-dsn instead of --csv")
	}
	return nil
}

// buildStrategyConfig creates a StrategyConfig from CLI flags.
func buildStrategyConfig(strategyType string, fastPeriod, slowPeriod, rsiPeriod int, buyBelow, sellAbove float64) domain.StrategyConfig {
	cfg := domain.StrategyConfig{StrategyType: strategyType}

	switch strategyType {
	case domain.StrategyTypeSMACross:
		cfg.FastPeriod = &fastPeriod
		cfg.SlowPeriod = &slowPeriod
	case domain.StrategyTypeRSIReversion:
		cfg.RSIPeriod = &rsiPeriod
		cfg.BuyBelow = &buyBelow
		cfg.SellAbove = &sellAbove
	}

	return cfg
}

// printRunRecord outputs a human-readable run record.
func printRunRecord(r *domain.RunRecord) {
	fmt.Println()
	fmt.Println("=== Backtest Result ===")
	fmt.Printf("Run ID:           %s\n", r.RunID)
	fmt.Printf("Symbol:           %s\n", r.Symbol)
	fmt.Printf("Strategy:         %s\n", r.StrategyID)
	fmt.Printf("Bars:             %d\n", r.BarCount)
	fmt.Println()
	fmt.Printf("Initial Capital:  %.2f\n", r.InitialCapital)
	fmt.Printf("Final Capital:    %.2f\n", r.FinalCapital)
	fmt.Printf("Total Return:     %.2f%%\n", r.TotalReturnPct)
	fmt.Println()
	fmt.Printf("Trades:           %d\n", r.NumTrades)
	fmt.Printf("Win Rate:         %.2f%%\n", r.WinRatePct)
	fmt.Printf("Profit Factor:    %.2f\n", r.ProfitFactor)
	fmt.Printf("Max Drawdown:     %.2f%%\n", r.MaxDrawdownPct)
	fmt.Printf("Sharpe Ratio:     %.2f\n", r.SharpeRatio)
}
