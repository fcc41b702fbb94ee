package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/simulation"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage/memory"
)

func seedRun(t *testing.T) (*memory.DailyBarStore, *memory.RunStore, *memory.TradeRecordStore, *domain.RunRecord) {
	t.Helper()
	ctx := context.Background()

	barStore := memory.NewDailyBarStore()
	runStore := memory.NewRunStore()
	tradeStore := memory.NewTradeRecordStore()

	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 105, 95, 110, 108}
	var bars []*domain.DailyBar
	for i, c := range closes {
		bars = append(bars, &domain.DailyBar{
			Symbol:    "AAPL",
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		})
	}
	if err := barStore.InsertBulk(ctx, bars); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	runner := simulation.NewRunner(simulation.RunnerOptions{
		DailyBarStore:    barStore,
		RunStore:         runStore,
		TradeRecordStore: tradeStore,
	})

	record, err := runner.Run(ctx, "AAPL",
		domain.StrategyConfig{StrategyType: domain.StrategyTypeBuyHold},
		backtest.Config{InitialCapital: 10000, PositionSizePct: 1.0},
	)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	return barStore, runStore, tradeStore, record
}

func newVerifier(barStore *memory.DailyBarStore, runStore *memory.RunStore, tradeStore *memory.TradeRecordStore) *ReplayVerifier {
	return NewReplayVerifier(ReplayVerifierOptions{
		RunStore:      runStore,
		TradeStore:    tradeStore,
		DailyBarStore: barStore,
		StrategyConfigs: map[string]domain.StrategyConfig{
			"BUY_HOLD": {StrategyType: domain.StrategyTypeBuyHold},
		},
	})
}

func TestVerifyRunMatch(t *testing.T) {
	barStore, runStore, tradeStore, record := seedRun(t)

	verifier := newVerifier(barStore, runStore, tradeStore)

	result, err := verifier.VerifyRun(context.Background(), record.RunID)
	if err != nil {
		t.Fatalf("VerifyRun() error = %v", err)
	}

	if !result.Match {
		t.Errorf("VerifyRun() Match = false, divergences: %+v", result.Divergences)
	}
	if result.RunID != record.RunID {
		t.Errorf("result.RunID = %s, want %s", result.RunID, record.RunID)
	}
}

func TestVerifyRunDivergence(t *testing.T) {
	barStore, _, tradeStore, record := seedRun(t)

	// Corrupt the stored record.
	tampered := *record
	tampered.FinalCapital += 500
	tamperedStore := memory.NewRunStore()
	if err := tamperedStore.Insert(context.Background(), &tampered); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	verifier := newVerifier(barStore, tamperedStore, tradeStore)

	result, err := verifier.VerifyRun(context.Background(), record.RunID)
	if err != nil {
		t.Fatalf("VerifyRun() error = %v", err)
	}

	if result.Match {
		t.Fatal("VerifyRun() Match = true for tampered record")
	}

	found := false
	for _, d := range result.Divergences {
		if d.Field == "FinalCapital" {
			found = true
		}
	}
	if !found {
		t.Errorf("divergences %+v do not name FinalCapital", result.Divergences)
	}
}

func TestVerifyRunNotFound(t *testing.T) {
	barStore, runStore, tradeStore, _ := seedRun(t)

	verifier := newVerifier(barStore, runStore, tradeStore)

	_, err := verifier.VerifyRun(context.Background(), "nonexistent-run")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("VerifyRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestVerifyRunUnknownStrategy(t *testing.T) {
	barStore, runStore, tradeStore, record := seedRun(t)

	verifier := NewReplayVerifier(ReplayVerifierOptions{
		RunStore:        runStore,
		TradeStore:      tradeStore,
		DailyBarStore:   barStore,
		StrategyConfigs: map[string]domain.StrategyConfig{},
	})

	_, err := verifier.VerifyRun(context.Background(), record.RunID)
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("VerifyRun() error = %v, want ErrUnknownStrategy", err)
	}
}

func TestVerifyAll(t *testing.T) {
	barStore, runStore, tradeStore, _ := seedRun(t)

	verifier := newVerifier(barStore, runStore, tradeStore)

	report, err := verifier.VerifyAll(context.Background())
	if err != nil {
		t.Fatalf("VerifyAll() error = %v", err)
	}

	if report.TotalRuns != 1 {
		t.Errorf("TotalRuns = %d, want 1", report.TotalRuns)
	}
	if report.MatchedRuns != 1 {
		t.Errorf("MatchedRuns = %d, want 1", report.MatchedRuns)
	}
	if report.DivergentRuns != 0 {
		t.Errorf("DivergentRuns = %d, want 0", report.DivergentRuns)
	}
}

func TestCompareRunRecordsWithinTolerance(t *testing.T) {
	a := &domain.RunRecord{RunID: "r", Symbol: "AAPL", StrategyID: "BUY_HOLD", FinalCapital: 10000}
	b := &domain.RunRecord{RunID: "r", Symbol: "AAPL", StrategyID: "BUY_HOLD", FinalCapital: 10000 + 1e-9}

	if d := CompareRunRecords(a, b); len(d) != 0 {
		t.Errorf("CompareRunRecords() = %+v, want no divergences within tolerance", d)
	}

	b.FinalCapital = 10000.001
	if d := CompareRunRecords(a, b); len(d) == 0 {
		t.Error("CompareRunRecords() found no divergence beyond tolerance")
	}
}
