// Package strategy provides pluggable decision rules for the backtest
// engine. Every strategy is a pure mapping from (current bar, position
// state) to an action; none can see past or future bars, which rules out
// look-ahead by construction.
package strategy

import (
	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// Func adapts a plain decision function to backtest.Strategy.
type Func struct {
	Name string
	Fn   func(bar *domain.Bar, state domain.PositionState) domain.Action
}

// Evaluate calls the wrapped function.
func (f Func) Evaluate(bar *domain.Bar, state domain.PositionState) domain.Action {
	return f.Fn(bar, state)
}

// ID returns the configured name.
func (f Func) ID() string {
	return f.Name
}

var _ backtest.Strategy = Func{}
