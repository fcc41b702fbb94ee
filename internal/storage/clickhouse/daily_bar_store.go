package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
)

// DailyBarStore implements storage.DailyBarStore using ClickHouse.
type DailyBarStore struct {
	conn *Conn
}

// NewDailyBarStore creates a new DailyBarStore.
func NewDailyBarStore(conn *Conn) *DailyBarStore {
	return &DailyBarStore{conn: conn}
}

// Compile-time interface check.
var _ storage.DailyBarStore = (*DailyBarStore)(nil)

// InsertBulk adds multiple bars. Fails entire batch on duplicate (symbol, timestamp).
func (s *DailyBarStore) InsertBulk(ctx context.Context, bars []*domain.DailyBar) error {
	if len(bars) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		symbol string
		ts     int64
	}
	seen := make(map[key]struct{})
	for _, b := range bars {
		k := key{b.Symbol, b.Timestamp.Unix()}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, b := range bars {
		exists, err := s.exists(ctx, b.Symbol, b.Timestamp)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO daily_bars (
			symbol, timestamp, open, high, low, close, volume
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, b := range bars {
		err = batch.Append(
			b.Symbol, b.Timestamp, b.Open, b.High, b.Low, b.Close, uint64(b.Volume),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetBySymbol retrieves all bars for a symbol, ordered by timestamp ASC.
func (s *DailyBarStore) GetBySymbol(ctx context.Context, symbol string) ([]*domain.DailyBar, error) {
	query := `
		SELECT symbol, timestamp, open, high, low, close, volume
		FROM daily_bars
		WHERE symbol = ?
		ORDER BY timestamp ASC
	`

	rows, err := s.conn.Query(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("query by symbol: %w", err)
	}
	defer rows.Close()

	return scanDailyBars(rows)
}

// GetByTimeRange retrieves bars for a symbol within [start, end] (inclusive).
func (s *DailyBarStore) GetByTimeRange(ctx context.Context, symbol string, start, end time.Time) ([]*domain.DailyBar, error) {
	query := `
		SELECT symbol, timestamp, open, high, low, close, volume
		FROM daily_bars
		WHERE symbol = ? AND timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp ASC
	`

	rows, err := s.conn.Query(ctx, query, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanDailyBars(rows)
}

// Symbols returns the distinct symbols present, sorted ASC.
func (s *DailyBarStore) Symbols(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT symbol FROM daily_bars ORDER BY symbol ASC`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbols: %w", err)
	}
	return symbols, nil
}

// exists checks if a bar with the given key exists.
func (s *DailyBarStore) exists(ctx context.Context, symbol string, ts time.Time) (bool, error) {
	query := `
		SELECT count(*) FROM daily_bars
		WHERE symbol = ? AND timestamp = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, symbol, ts).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanDailyBars scans multiple rows.
func scanDailyBars(rows chRows) ([]*domain.DailyBar, error) {
	var bars []*domain.DailyBar

	for rows.Next() {
		var b domain.DailyBar
		var volume uint64

		err := rows.Scan(
			&b.Symbol, &b.Timestamp, &b.Open, &b.High, &b.Low, &b.Close, &volume,
		)
		if err != nil {
			return nil, fmt.Errorf("scan daily bar row: %w", err)
		}

		b.Volume = int64(volume)
		bars = append(bars, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily bar rows: %w", err)
	}

	return bars, nil
}
