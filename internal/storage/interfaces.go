package storage

import (
	"context"
	"time"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// DailyBarStore provides access to daily_bars storage.
type DailyBarStore interface {
	// InsertBulk adds multiple bars. Fails entire batch on duplicate (symbol, timestamp).
	InsertBulk(ctx context.Context, bars []*domain.DailyBar) error

	// GetBySymbol retrieves all bars for a symbol, ordered by timestamp ASC.
	GetBySymbol(ctx context.Context, symbol string) ([]*domain.DailyBar, error)

	// GetByTimeRange retrieves bars for a symbol within [start, end] (inclusive).
	GetByTimeRange(ctx context.Context, symbol string, start, end time.Time) ([]*domain.DailyBar, error)

	// Symbols returns the distinct symbols present, sorted ASC.
	Symbols(ctx context.Context) ([]string, error)
}

// RunStore provides access to backtest_runs storage.
type RunStore interface {
	// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, r *domain.RunRecord) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.RunRecord, error)

	// GetBySymbol retrieves all runs for a symbol, ordered by strategy_id ASC.
	GetBySymbol(ctx context.Context, symbol string) ([]*domain.RunRecord, error)

	// GetByStrategy retrieves all runs for a strategy, ordered by symbol ASC.
	GetByStrategy(ctx context.Context, strategyID string) ([]*domain.RunRecord, error)

	// GetAll retrieves all runs, ordered by (symbol, strategy_id) ASC.
	GetAll(ctx context.Context) ([]*domain.RunRecord, error)
}

// TradeRecordStore provides access to trade_records storage.
type TradeRecordStore interface {
	// Insert adds a new trade. Returns ErrDuplicateKey if trade_id exists.
	Insert(ctx context.Context, t *domain.TradeRecord) error

	// InsertBulk adds multiple trades atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, trades []*domain.TradeRecord) error

	// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, tradeID string) (*domain.TradeRecord, error)

	// GetByRunID retrieves all trades for a run, ordered by entry_time ASC.
	GetByRunID(ctx context.Context, runID string) ([]*domain.TradeRecord, error)
}

// EquityCurveStore provides access to equity_curves storage.
type EquityCurveStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate (run_id, timestamp).
	InsertBulk(ctx context.Context, points []*domain.EquityCurvePoint) error

	// GetByRunID retrieves all points for a run, ordered by timestamp ASC.
	GetByRunID(ctx context.Context, runID string) ([]*domain.EquityCurvePoint, error)
}
