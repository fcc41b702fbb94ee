package strategy

import (
	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// BuyHoldStrategy buys on the first bar and never exits. The engine ignores
// the repeated BUY while LONG, so the strategy stays stateless.
type BuyHoldStrategy struct{}

// NewBuyHoldStrategy creates a new BuyHoldStrategy.
func NewBuyHoldStrategy() *BuyHoldStrategy {
	return &BuyHoldStrategy{}
}

// ID returns the strategy identifier.
func (s *BuyHoldStrategy) ID() string {
	return "BUY_HOLD"
}

// Evaluate implements backtest.Strategy.
func (s *BuyHoldStrategy) Evaluate(_ *domain.Bar, state domain.PositionState) domain.Action {
	if state == domain.PositionFlat {
		return domain.ActionBuy
	}
	return domain.ActionHold
}

var _ backtest.Strategy = (*BuyHoldStrategy)(nil)
