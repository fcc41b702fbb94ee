package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/storage"
)

// EquityCurveStore is an in-memory implementation of storage.EquityCurveStore.
type EquityCurveStore struct {
	mu   sync.RWMutex
	data map[string]*domain.EquityCurvePoint // keyed by (run_id, timestamp)
}

// NewEquityCurveStore creates a new in-memory equity curve store.
func NewEquityCurveStore() *EquityCurveStore {
	return &EquityCurveStore{
		data: make(map[string]*domain.EquityCurvePoint),
	}
}

// pointKey generates a unique key for an equity point.
func pointKey(runID string, ts time.Time) string {
	return fmt.Sprintf("%s|%d", runID, ts.Unix())
}

// InsertBulk adds multiple points. Fails entire batch on duplicate.
func (s *EquityCurveStore) InsertBulk(_ context.Context, points []*domain.EquityCurvePoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(points))

	// First pass: check for duplicates (existing + intra-batch)
	for _, p := range points {
		if p == nil || p.RunID == "" {
			return storage.ErrInvalidInput
		}
		key := pointKey(p.RunID, p.Timestamp)

		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	// Second pass: insert all
	for _, p := range points {
		pointCopy := *p
		s.data[pointKey(p.RunID, p.Timestamp)] = &pointCopy
	}

	return nil
}

// GetByRunID retrieves all points for a run, ordered by timestamp ASC.
func (s *EquityCurveStore) GetByRunID(_ context.Context, runID string) ([]*domain.EquityCurvePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.EquityCurvePoint
	for _, p := range s.data {
		if p.RunID == runID {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	return result, nil
}

var _ storage.EquityCurveStore = (*EquityCurveStore)(nil)
