package backtest

import "github.com/ravi4j/daily-market-automation-sub001/internal/domain"

// ScriptedStrategy replays a fixed sequence of actions, one per bar.
// Bars beyond the script get HOLD. Used by engine tests to drive exact
// trade shapes without indicator plumbing.
type ScriptedStrategy struct {
	actions []domain.Action
	calls   int
}

// NewScriptedStrategy creates a strategy that emits the given actions in order.
func NewScriptedStrategy(actions ...domain.Action) *ScriptedStrategy {
	return &ScriptedStrategy{actions: actions}
}

// Evaluate returns the next scripted action.
func (s *ScriptedStrategy) Evaluate(_ *domain.Bar, _ domain.PositionState) domain.Action {
	i := s.calls
	s.calls++
	if i < len(s.actions) {
		return s.actions[i]
	}
	return domain.ActionHold
}

// ID returns the strategy identifier.
func (s *ScriptedStrategy) ID() string {
	return "SCRIPTED"
}

// Calls returns how many times Evaluate has been invoked.
func (s *ScriptedStrategy) Calls() int {
	return s.calls
}
