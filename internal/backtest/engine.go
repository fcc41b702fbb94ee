// Package backtest simulates a trading strategy bar-by-bar over a daily
// price series, producing a trade ledger, an equity curve and summary
// metrics. A run is a pure deterministic computation: input is fully
// materialized before it starts and the result is immutable afterwards.
package backtest

import (
	"errors"
	"fmt"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/metrics"
	"github.com/ravi4j/daily-market-automation-sub001/internal/series"
)

// Engine errors.
var (
	ErrInvalidCapital      = errors.New("initial capital must be positive")
	ErrInvalidPositionSize = errors.New("position size pct must be in (0,1]")
	ErrInvalidFeeRate      = errors.New("fee rate must not be negative")
	ErrNilStrategy         = errors.New("strategy must not be nil")
	ErrInvalidAction       = errors.New("strategy returned an action outside BUY/SELL/HOLD")
)

// Strategy maps the current bar and position state to an action. It must be
// deterministic for fixed inputs and must not retain references to bars
// across calls; the interface gives it no access to past or future bars.
type Strategy interface {
	// Evaluate is called once per bar, in chronological order.
	Evaluate(bar *domain.Bar, state domain.PositionState) domain.Action

	// ID returns the strategy identifier (includes parameters).
	ID() string
}

// Config holds the explicit run parameters. There is no global configuration:
// every run carries its own.
type Config struct {
	InitialCapital  float64 // starting cash, > 0
	PositionSizePct float64 // fraction of current cash allocated per entry, (0,1]
	FeeRate         float64 // proportional fee per fill notional; 0 disables fees
}

// Validate fails fast on malformed parameters; nothing is retried.
func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidCapital, c.InitialCapital)
	}
	if c.PositionSizePct <= 0 || c.PositionSizePct > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidPositionSize, c.PositionSizePct)
	}
	if c.FeeRate < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidFeeRate, c.FeeRate)
	}
	return nil
}

// Run simulates the strategy over the series and returns the terminal
// result. Bars are processed strictly in order; each decision sees only the
// current bar and the current position state.
//
// Position lifecycle per bar:
//
//	FLAT --BUY--> LONG   (allocates PositionSizePct of cash at the close)
//	LONG --SELL--> FLAT  (records a Trade at the close)
//	FLAT --SELL--> FLAT  (no-op, never shorts)
//	LONG --BUY--> LONG   (no-op, never pyramids)
//
// A series that ends LONG leaves the position open: it is excluded from the
// realized ledger but its mark-to-market value is part of final capital.
func Run(s *series.Series, strat Strategy, cfg Config) (*domain.BacktestResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strat == nil {
		return nil, ErrNilStrategy
	}
	if s == nil || s.Len() == 0 {
		return nil, series.ErrEmptySeries
	}

	var (
		cash   = cfg.InitialCapital
		state  = domain.PositionFlat
		ledger = NewLedger()
		curve  = make([]domain.EquityPoint, 0, s.Len())
		open   *domain.Position
	)

	for i := 0; i < s.Len(); i++ {
		bar := s.At(i)

		action := strat.Evaluate(bar, state)
		if !action.Valid() {
			return nil, fmt.Errorf("%w: got %q at bar %s",
				ErrInvalidAction, action, bar.Timestamp.Format("2006-01-02"))
		}

		switch {
		case action == domain.ActionBuy && state == domain.PositionFlat:
			// Size the position so that notional plus entry fee fits the
			// allocation; with FeeRate 0 this is pct*cash/close exactly.
			alloc := cfg.PositionSizePct * cash
			qty := alloc / (bar.Close * (1 + cfg.FeeRate))
			notional := qty * bar.Close
			fee := notional * cfg.FeeRate
			cash -= notional + fee
			open = &domain.Position{
				EntryTime:  bar.Timestamp,
				EntryPrice: bar.Close,
				Quantity:   qty,
				EntryIndex: i,
			}
			ledger.OpenPosition(open, fee)
			state = domain.PositionLong

		case action == domain.ActionSell && state == domain.PositionLong:
			notional := open.Quantity * bar.Close
			fee := notional * cfg.FeeRate
			cash += notional - fee
			ledger.ClosePosition(bar.Timestamp, bar.Close, i, fee)
			open = nil
			state = domain.PositionFlat

			// BUY while LONG, SELL while FLAT, HOLD: no state change.
		}

		equity := cash
		if state == domain.PositionLong {
			equity += open.Quantity * bar.Close
		}
		curve = append(curve, domain.EquityPoint{Timestamp: bar.Timestamp, Equity: equity})
	}

	finalCapital := curve[len(curve)-1].Equity
	trades := ledger.Trades()

	return &domain.BacktestResult{
		InitialCapital: cfg.InitialCapital,
		FinalCapital:   finalCapital,
		Trades:         trades,
		EquityCurve:    curve,
		Summary:        metrics.Compute(trades, curve, cfg.InitialCapital, finalCapital),
		OpenPosition:   open,
	}, nil
}
