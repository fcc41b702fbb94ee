package clickhouse

import (
	"context"
	"fmt"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
)

// EquityCurveStore implements storage.EquityCurveStore using ClickHouse.
type EquityCurveStore struct {
	conn *Conn
}

// NewEquityCurveStore creates a new EquityCurveStore.
func NewEquityCurveStore(conn *Conn) *EquityCurveStore {
	return &EquityCurveStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EquityCurveStore = (*EquityCurveStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate (run_id, timestamp).
func (s *EquityCurveStore) InsertBulk(ctx context.Context, points []*domain.EquityCurvePoint) error {
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		runID string
		ts    int64
	}
	seen := make(map[key]struct{})
	for _, p := range points {
		k := key{p.RunID, p.Timestamp.Unix()}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, p := range points {
		exists, err := s.exists(ctx, p.RunID, p.Timestamp.Unix())
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO equity_curves (
			run_id, timestamp, equity
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(p.RunID, p.Timestamp, p.Equity); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves all points for a run, ordered by timestamp ASC.
func (s *EquityCurveStore) GetByRunID(ctx context.Context, runID string) ([]*domain.EquityCurvePoint, error) {
	query := `
		SELECT run_id, timestamp, equity
		FROM equity_curves
		WHERE run_id = ?
		ORDER BY timestamp ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run id: %w", err)
	}
	defer rows.Close()

	var points []*domain.EquityCurvePoint
	for rows.Next() {
		var p domain.EquityCurvePoint
		if err := rows.Scan(&p.RunID, &p.Timestamp, &p.Equity); err != nil {
			return nil, fmt.Errorf("scan equity curve row: %w", err)
		}
		points = append(points, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equity curve rows: %w", err)
	}

	return points, nil
}

// exists checks if a point with the given key exists.
func (s *EquityCurveStore) exists(ctx context.Context, runID string, tsUnix int64) (bool, error) {
	query := `
		SELECT count(*) FROM equity_curves
		WHERE run_id = ? AND toUnixTimestamp(timestamp) = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, runID, tsUnix).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
