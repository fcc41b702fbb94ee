package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
)

func TestDailyBarStore_InsertBulkAndGet(t *testing.T) {
	store := NewDailyBarStore()
	ctx := context.Background()

	bars := []*domain.DailyBar{
		{Symbol: "AAPL", Timestamp: testTime(3), Open: 101, High: 103, Low: 100, Close: 102, Volume: 2000},
		{Symbol: "AAPL", Timestamp: testTime(2), Open: 100, High: 102, Low: 99, Close: 101, Volume: 1000},
		{Symbol: "MSFT", Timestamp: testTime(2), Open: 300, High: 305, Low: 299, Close: 303, Volume: 5000},
	}

	if err := store.InsertBulk(ctx, bars); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetBySymbol(ctx, "AAPL")
	if err != nil {
		t.Fatalf("GetBySymbol failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 bars, got %d", len(got))
	}
	// Ordered by timestamp ASC regardless of insert order
	if !got[0].Timestamp.Before(got[1].Timestamp) {
		t.Error("Bars not ordered by timestamp")
	}
	if got[0].Close != 101 {
		t.Errorf("Close mismatch: got %f, want %f", got[0].Close, 101.0)
	}
}

func TestDailyBarStore_DuplicateKey(t *testing.T) {
	store := NewDailyBarStore()
	ctx := context.Background()

	bar := &domain.DailyBar{Symbol: "AAPL", Timestamp: testTime(2), Close: 100}

	if err := store.InsertBulk(ctx, []*domain.DailyBar{bar}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	err := store.InsertBulk(ctx, []*domain.DailyBar{bar})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestDailyBarStore_IntraBatchDuplicate(t *testing.T) {
	store := NewDailyBarStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.DailyBar{
		{Symbol: "AAPL", Timestamp: testTime(2), Close: 100},
		{Symbol: "AAPL", Timestamp: testTime(2), Close: 101},
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	// Atomic: nothing from the failed batch may land
	got, _ := store.GetBySymbol(ctx, "AAPL")
	if len(got) != 0 {
		t.Errorf("Expected empty store after failed batch, got %d bars", len(got))
	}
}

func TestDailyBarStore_GetByTimeRange(t *testing.T) {
	store := NewDailyBarStore()
	ctx := context.Background()

	var bars []*domain.DailyBar
	for day := 2; day <= 6; day++ {
		bars = append(bars, &domain.DailyBar{
			Symbol: "AAPL", Timestamp: testTime(day), Open: 100, High: 101, Low: 99, Close: 100, Volume: 100,
		})
	}
	if err := store.InsertBulk(ctx, bars); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	// Inclusive on both ends
	got, err := store.GetByTimeRange(ctx, "AAPL", testTime(3), testTime(5))
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 bars in range, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(testTime(3)) || !got[2].Timestamp.Equal(testTime(5)) {
		t.Error("Range endpoints not inclusive")
	}
}

func TestDailyBarStore_Symbols(t *testing.T) {
	store := NewDailyBarStore()
	ctx := context.Background()

	symbols, err := store.Symbols(ctx)
	if err != nil {
		t.Fatalf("Symbols failed: %v", err)
	}
	if len(symbols) != 0 {
		t.Errorf("Expected no symbols, got %v", symbols)
	}

	_ = store.InsertBulk(ctx, []*domain.DailyBar{
		{Symbol: "MSFT", Timestamp: testTime(2), Close: 300},
		{Symbol: "AAPL", Timestamp: testTime(2), Close: 100},
		{Symbol: "AAPL", Timestamp: testTime(3), Close: 101},
	})

	symbols, err = store.Symbols(ctx)
	if err != nil {
		t.Fatalf("Symbols failed: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAPL" || symbols[1] != "MSFT" {
		t.Errorf("Expected [AAPL MSFT], got %v", symbols)
	}
}

func TestDailyBarStore_EmptyResult(t *testing.T) {
	store := NewDailyBarStore()
	ctx := context.Background()

	got, err := store.GetBySymbol(ctx, "UNKNOWN")
	if err != nil {
		t.Fatalf("GetBySymbol failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %d", len(got))
	}
}
