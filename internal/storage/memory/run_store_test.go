package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
)

func TestRunStore_InsertAndGet(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	run := &domain.RunRecord{
		RunID:          "run1",
		Symbol:         "AAPL",
		StrategyID:     "SMA_CROSS_10_30",
		InitialCapital: 10000,
		FinalCapital:   11000,
		TotalReturnPct: 10,
		NumTrades:      3,
	}

	if err := store.Insert(ctx, run); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "run1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FinalCapital != 11000 {
		t.Errorf("FinalCapital mismatch: got %f, want %f", got.FinalCapital, 11000.0)
	}
	if got.StrategyID != "SMA_CROSS_10_30" {
		t.Errorf("StrategyID mismatch: got %s", got.StrategyID)
	}
}

func TestRunStore_DuplicateKey(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	run := &domain.RunRecord{RunID: "run1", Symbol: "AAPL", StrategyID: "BUY_HOLD"}

	if err := store.Insert(ctx, run); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	err := store.Insert(ctx, run)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestRunStore_NotFound(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	_, err := store.GetByID(ctx, "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRunStore_InvalidInput(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Insert(ctx, &domain.RunRecord{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty run_id, got %v", err)
	}
}

func TestRunStore_GetBySymbol(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r1", Symbol: "AAPL", StrategyID: "SMA_CROSS_10_30"})
	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r2", Symbol: "AAPL", StrategyID: "BUY_HOLD"})
	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r3", Symbol: "MSFT", StrategyID: "BUY_HOLD"})

	runs, err := store.GetBySymbol(ctx, "AAPL")
	if err != nil {
		t.Fatalf("GetBySymbol failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	// Ordered by strategy_id ASC
	if runs[0].StrategyID != "BUY_HOLD" || runs[1].StrategyID != "SMA_CROSS_10_30" {
		t.Errorf("Runs not ordered by strategy_id: %s, %s", runs[0].StrategyID, runs[1].StrategyID)
	}
}

func TestRunStore_GetByStrategy(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r1", Symbol: "MSFT", StrategyID: "BUY_HOLD"})
	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r2", Symbol: "AAPL", StrategyID: "BUY_HOLD"})
	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r3", Symbol: "AAPL", StrategyID: "SMA_CROSS_10_30"})

	runs, err := store.GetByStrategy(ctx, "BUY_HOLD")
	if err != nil {
		t.Fatalf("GetByStrategy failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	// Ordered by symbol ASC
	if runs[0].Symbol != "AAPL" || runs[1].Symbol != "MSFT" {
		t.Errorf("Runs not ordered by symbol: %s, %s", runs[0].Symbol, runs[1].Symbol)
	}
}

func TestRunStore_GetAll(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	runs, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected empty result, got %d", len(runs))
	}

	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r1", Symbol: "MSFT", StrategyID: "BUY_HOLD"})
	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r2", Symbol: "AAPL", StrategyID: "SMA_CROSS_10_30"})
	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r3", Symbol: "AAPL", StrategyID: "BUY_HOLD"})

	runs, err = store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	// Ordered by (symbol, strategy_id)
	if runs[0].RunID != "r3" || runs[1].RunID != "r2" || runs[2].RunID != "r1" {
		t.Errorf("Runs not ordered by (symbol, strategy_id): %s, %s, %s",
			runs[0].RunID, runs[1].RunID, runs[2].RunID)
	}
}

func TestRunStore_ReturnsCopies(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	_ = store.Insert(ctx, &domain.RunRecord{RunID: "r1", Symbol: "AAPL", StrategyID: "BUY_HOLD", FinalCapital: 11000})

	got, _ := store.GetByID(ctx, "r1")
	got.FinalCapital = 0

	again, _ := store.GetByID(ctx, "r1")
	if again.FinalCapital != 11000 {
		t.Error("Mutating a returned record changed the stored copy")
	}
}
