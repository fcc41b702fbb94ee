package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ravi4j/daily-market-automation-sub001/internal/reporting"
	chstore "github.com/ravi4j/daily-market-automation-sub001/internal/storage/clickhouse"
	pgstore "github.com/ravi4j/daily-market-automation-sub001/internal/storage/postgres"
)

func main() {
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (required)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string (required)")
	format := flag.String("format", "markdown", "Output format: markdown or csv")
	output := flag.String("output", "", "Output file path, empty for stdout")
	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)

	if *postgresDSN == "" || *clickhouseDSN == "" {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required")
	}
	if *format != "markdown" && *format != "csv" {
		logger.Fatalf("Invalid format: %s. Must be markdown or csv", *format)
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

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	conn, err := chstore.NewConn(ctx, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("connect to clickhouse: %v", err)
	}
	defer conn.Close()

	generator := reporting.NewGenerator(
		chstore.NewDailyBarStore(conn),
		pgstore.NewRunStore(pool),
		pgstore.NewTradeRecordStore(pool),
	)

	report, err := generator.Generate(ctx)
	if err != nil {
		logger.Fatalf("generate report: %v", err)
	}

	var rendered string
	switch *format {
	case "csv":
		rendered = reporting.RenderCSV(report.RunMetrics)
	default:
		rendered = reporting.RenderMarkdown(report)
	}

	if *output == "" {
		fmt.Print(rendered)
		return
	}

	if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
		logger.Fatalf("write %s: %v", *output, err)
	}
	logger.Printf("Report written to %s", *output)
}
