package strategy

import (
	"fmt"

	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/indicators"
)

// RSIReversionStrategy buys oversold bars and sells overbought ones.
// Bars without the RSI column (warm-up) hold.
type RSIReversionStrategy struct {
	Period    int
	BuyBelow  float64
	SellAbove float64

	field string
}

// NewRSIReversionStrategy creates a new RSIReversionStrategy.
func NewRSIReversionStrategy(period int, buyBelow, sellAbove float64) *RSIReversionStrategy {
	return &RSIReversionStrategy{
		Period:    period,
		BuyBelow:  buyBelow,
		SellAbove: sellAbove,
		field:     indicators.RSIName(period),
	}
}

// ID returns the strategy identifier including parameters.
func (s *RSIReversionStrategy) ID() string {
	return fmt.Sprintf("RSI_REVERSION_%d_%g_%g", s.Period, s.BuyBelow, s.SellAbove)
}

// Evaluate implements backtest.Strategy.
func (s *RSIReversionStrategy) Evaluate(bar *domain.Bar, state domain.PositionState) domain.Action {
	rsi, ok := bar.Field(s.field)
	if !ok {
		return domain.ActionHold
	}

	switch {
	case rsi < s.BuyBelow && state == domain.PositionFlat:
		return domain.ActionBuy
	case rsi > s.SellAbove && state == domain.PositionLong:
		return domain.ActionSell
	}
	return domain.ActionHold
}

var _ backtest.Strategy = (*RSIReversionStrategy)(nil)
