package postgres

import (
	"context"
	"fmt"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
)

// RunStore implements storage.RunStore using PostgreSQL.
type RunStore struct {
	pool *Pool
}

// NewRunStore creates a new RunStore.
func NewRunStore(pool *Pool) *RunStore {
	return &RunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RunStore = (*RunStore)(nil)

const runColumns = `
	run_id, symbol, strategy_id,
	initial_capital, final_capital, position_size_pct, fee_rate, bar_count,
	total_return_pct, num_trades, win_rate_pct, profit_factor,
	max_drawdown_pct, sharpe_ratio
`

// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
func (s *RunStore) Insert(ctx context.Context, r *domain.RunRecord) error {
	query := `
		INSERT INTO backtest_runs (` + runColumns + `) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14
		)
	`

	_, err := s.pool.Exec(ctx, query,
		r.RunID, r.Symbol, r.StrategyID,
		r.InitialCapital, r.FinalCapital, r.PositionSizePct, r.FeeRate, r.BarCount,
		r.TotalReturnPct, r.NumTrades, r.WinRatePct, r.ProfitFactor,
		r.MaxDrawdownPct, r.SharpeRatio,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *RunStore) GetByID(ctx context.Context, runID string) (*domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM backtest_runs WHERE run_id = $1`

	row := s.pool.QueryRow(ctx, query, runID)
	r, err := scanRun(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get run by id: %w", err)
	}
	return r, nil
}

// GetBySymbol retrieves all runs for a symbol, ordered by strategy_id ASC.
func (s *RunStore) GetBySymbol(ctx context.Context, symbol string) ([]*domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM backtest_runs WHERE symbol = $1 ORDER BY strategy_id ASC`
	return s.queryRuns(ctx, query, symbol)
}

// GetByStrategy retrieves all runs for a strategy, ordered by symbol ASC.
func (s *RunStore) GetByStrategy(ctx context.Context, strategyID string) ([]*domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM backtest_runs WHERE strategy_id = $1 ORDER BY symbol ASC`
	return s.queryRuns(ctx, query, strategyID)
}

// GetAll retrieves all runs, ordered by (symbol, strategy_id) ASC.
func (s *RunStore) GetAll(ctx context.Context) ([]*domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM backtest_runs ORDER BY symbol ASC, strategy_id ASC`
	return s.queryRuns(ctx, query)
}

func (s *RunStore) queryRuns(ctx context.Context, query string, args ...any) ([]*domain.RunRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var result []*domain.RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return result, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.RunRecord, error) {
	var r domain.RunRecord
	err := row.Scan(
		&r.RunID, &r.Symbol, &r.StrategyID,
		&r.InitialCapital, &r.FinalCapital, &r.PositionSizePct, &r.FeeRate, &r.BarCount,
		&r.TotalReturnPct, &r.NumTrades, &r.WinRatePct, &r.ProfitFactor,
		&r.MaxDrawdownPct, &r.SharpeRatio,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
