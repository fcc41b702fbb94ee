package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/config"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/loader"
	"github.com/ravi4j/daily-market-automation-sub001/internal/observability"
	"github.com/ravi4j/daily-market-automation-sub001/internal/orchestrator"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
	chstore "github.com/ravi4j/daily-market-automation-sub001/internal/storage/clickhouse"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage/memory"
	pgstore "github.com/ravi4j/daily-market-automation-sub001/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	dataDir := flag.String("data-dir", "", "Directory of <SYMBOL>.csv files to ingest before running")
	metricsAddr := flag.String("metrics-addr", "", "Address to serve Prometheus metrics on (e.g. :9090), empty to disable")
	flag.Parse()

	logger := log.New(os.Stderr, "[pipeline] ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	if len(cfg.Strategies) == 0 {
		logger.Fatal("no strategies configured")
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

	var barStore storage.DailyBarStore = memory.NewDailyBarStore()
	var runStore storage.RunStore = memory.NewRunStore()
	var tradeStore storage.TradeRecordStore = memory.NewTradeRecordStore()
	var curveStore storage.EquityCurveStore = memory.NewEquityCurveStore()

	if cfg.Storage.Backend == "database" {
		pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			logger.Fatalf("connect to postgres: %v", err)
		}
		defer pool.Close()

		runStore = pgstore.NewRunStore(pool)
		tradeStore = pgstore.NewTradeRecordStore(pool)

		conn, err := chstore.NewConn(ctx, cfg.Storage.ClickHouseDSN)
		if err != nil {
			logger.Fatalf("connect to clickhouse: %v", err)
		}
		defer conn.Close()

		barStore = chstore.NewDailyBarStore(conn)
		curveStore = chstore.NewEquityCurveStore(conn)
	}

	metrics := observability.NewMetrics("")

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			logger.Printf("Serving metrics on %s/metrics", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Printf("metrics server: %v", err)
			}
		}()
	}

	if *dataDir != "" {
		if err := ingestDir(ctx, *dataDir, barStore, metrics, logger); err != nil {
			logger.Fatalf("ingest %s: %v", *dataDir, err)
		}
	}

	o := orchestrator.New(orchestrator.Options{
		DailyBarStore:    barStore,
		RunStore:         runStore,
		TradeRecordStore: tradeStore,
		EquityCurveStore: curveStore,
		StrategyConfigs:  cfg.DomainStrategies(),
		EngineConfig: backtest.Config{
			InitialCapital:  cfg.Engine.InitialCapital,
			PositionSizePct: cfg.Engine.PositionSizePct,
			FeeRate:         cfg.Engine.FeeRate,
		},
		Concurrency: cfg.Pipeline.Concurrency,
		Metrics:     metrics,
		Verbose:     cfg.Pipeline.Verbose,
	})

	result, err := o.Run(ctx)
	if err != nil {
		logger.Fatalf("pipeline failed: %v", err)
	}

	fmt.Println()
	fmt.Println("=== Pipeline Summary ===")
	fmt.Printf("Symbols:      %d\n", result.SymbolsProcessed)
	fmt.Printf("Runs created: %d\n", result.RunsCreated)
	fmt.Printf("Errors:       %d\n", len(result.Errors))
	for _, e := range result.Errors {
		fmt.Printf("  - %s\n", e)
	}
}

// ingestDir loads every <SYMBOL>.csv file in dir into the bar store.
// The symbol is the uppercased filename without extension.
func ingestDir(ctx context.Context, dir string, store storage.DailyBarStore, metrics *observability.Metrics, logger *log.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		symbol := strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))

		bars, err := loader.ReadFile(filepath.Join(dir, name))
		if err != nil {
			metrics.LoadErrors.WithLabelValues("parse").Inc()
			return fmt.Errorf("load %s: %w", name, err)
		}
		metrics.BarsLoaded.Add(float64(len(bars)))

		stored := make([]*domain.DailyBar, len(bars))
		for i, b := range bars {
			stored[i] = &domain.DailyBar{
				Symbol:    symbol,
				Timestamp: b.Timestamp,
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				Volume:    b.Volume,
			}
		}
		if err := store.InsertBulk(ctx, stored); err != nil {
			metrics.LoadErrors.WithLabelValues("store").Inc()
			return fmt.Errorf("store %s: %w", name, err)
		}
		metrics.BarsStored.Add(float64(len(stored)))

		logger.Printf("Ingested %d bars for %s", len(bars), symbol)
	}

	return nil
}
