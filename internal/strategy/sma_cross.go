package strategy

import (
	"fmt"

	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/indicators"
)

// SMACrossStrategy goes long while the fast moving average is above the slow
// one and exits when it drops below. Warm-up bars without both columns hold.
type SMACrossStrategy struct {
	FastPeriod int
	SlowPeriod int

	fastField string
	slowField string
}

// NewSMACrossStrategy creates a new SMACrossStrategy.
func NewSMACrossStrategy(fastPeriod, slowPeriod int) *SMACrossStrategy {
	return &SMACrossStrategy{
		FastPeriod: fastPeriod,
		SlowPeriod: slowPeriod,
		fastField:  indicators.SMAName(fastPeriod),
		slowField:  indicators.SMAName(slowPeriod),
	}
}

// ID returns the strategy identifier including parameters.
func (s *SMACrossStrategy) ID() string {
	return fmt.Sprintf("SMA_CROSS_%d_%d", s.FastPeriod, s.SlowPeriod)
}

// Evaluate implements backtest.Strategy.
func (s *SMACrossStrategy) Evaluate(bar *domain.Bar, state domain.PositionState) domain.Action {
	fast, okFast := bar.Field(s.fastField)
	slow, okSlow := bar.Field(s.slowField)
	if !okFast || !okSlow {
		return domain.ActionHold
	}

	switch {
	case fast > slow && state == domain.PositionFlat:
		return domain.ActionBuy
	case fast < slow && state == domain.PositionLong:
		return domain.ActionSell
	}
	return domain.ActionHold
}

var _ backtest.Strategy = (*SMACrossStrategy)(nil)
