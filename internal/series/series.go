// Package series builds validated, immutable price series for simulation.
// All indicator computation happens before a series is sealed; the engine
// only ever borrows read-only access.
package series

import (
	"errors"
	"fmt"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// Validation errors.
var (
	ErrEmptySeries      = errors.New("price series is empty")
	ErrUnorderedSeries  = errors.New("price series timestamps are not strictly increasing")
	ErrNonPositivePrice = errors.New("price series contains a non-positive price")
	ErrNegativeVolume   = errors.New("price series contains a negative volume")
)

// Series is an ordered sequence of bars with strictly increasing timestamps.
// Construction is the only mutation; afterwards the series is read-only.
type Series struct {
	bars []*domain.Bar
}

// New validates the bars and seals them into a Series. Bars are deep-copied
// so later mutation of the caller's slice cannot leak into a running
// simulation. Fails fast with the offending timestamp/value on the first
// malformed bar; nothing is retried.
func New(bars []*domain.Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, ErrEmptySeries
	}

	sealed := make([]*domain.Bar, len(bars))
	for i, b := range bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return nil, fmt.Errorf("%w: bar %s (o=%g h=%g l=%g c=%g)",
				ErrNonPositivePrice, b.Timestamp.Format("2006-01-02"), b.Open, b.High, b.Low, b.Close)
		}
		if b.Volume < 0 {
			return nil, fmt.Errorf("%w: bar %s (volume=%d)",
				ErrNegativeVolume, b.Timestamp.Format("2006-01-02"), b.Volume)
		}
		if i > 0 && !bars[i-1].Timestamp.Before(b.Timestamp) {
			return nil, fmt.Errorf("%w: bar %d (%s) after bar %d (%s)",
				ErrUnorderedSeries, i, b.Timestamp.Format("2006-01-02"),
				i-1, bars[i-1].Timestamp.Format("2006-01-02"))
		}
		sealed[i] = b.Clone()
	}

	return &Series{bars: sealed}, nil
}

// FromDailyBars converts stored daily bars into a validated series.
func FromDailyBars(daily []*domain.DailyBar) (*Series, error) {
	bars := make([]*domain.Bar, len(daily))
	for i, d := range daily {
		bars[i] = d.ToBar()
	}
	return New(bars)
}

// Len returns the number of bars.
func (s *Series) Len() int {
	return len(s.bars)
}

// At returns the bar at index i. Callers must not mutate it.
func (s *Series) At(i int) *domain.Bar {
	return s.bars[i]
}

// First returns the first bar.
func (s *Series) First() *domain.Bar {
	return s.bars[0]
}

// Last returns the last bar.
func (s *Series) Last() *domain.Bar {
	return s.bars[len(s.bars)-1]
}

// Truncate returns a new series containing bars [0, n). Used by tests to
// confirm that results up to a bar are unaffected by appended future bars.
func (s *Series) Truncate(n int) (*Series, error) {
	if n <= 0 || n > len(s.bars) {
		return nil, fmt.Errorf("truncate length %d out of range [1,%d]", n, len(s.bars))
	}
	return &Series{bars: s.bars[:n]}, nil
}

// Closes returns the close column, in order. Convenience for indicator code.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.bars))
	for i, b := range s.bars {
		closes[i] = b.Close
	}
	return closes
}
