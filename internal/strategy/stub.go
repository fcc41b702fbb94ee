package strategy

import (
	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// StubStrategy always holds. It collects the bars it saw for verification,
// which makes it useful for asserting call order in tests.
type StubStrategy struct {
	bars []*domain.Bar
}

// NewStubStrategy creates a new stub strategy.
func NewStubStrategy() *StubStrategy {
	return &StubStrategy{bars: make([]*domain.Bar, 0)}
}

// Evaluate collects the bar and holds.
func (s *StubStrategy) Evaluate(bar *domain.Bar, _ domain.PositionState) domain.Action {
	s.bars = append(s.bars, bar)
	return domain.ActionHold
}

// ID returns the strategy identifier.
func (s *StubStrategy) ID() string {
	return "stub"
}

// Bars returns the collected bars for test verification.
func (s *StubStrategy) Bars() []*domain.Bar {
	return s.bars
}

var _ backtest.Strategy = (*StubStrategy)(nil)
