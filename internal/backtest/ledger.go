package backtest

import (
	"time"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// Ledger accumulates closed trades in order. Append-only, with at most one
// open trade in flight at a time.
type Ledger struct {
	trades   []domain.Trade
	open     *domain.Position
	entryFee float64
}

// NewLedger creates an empty trade ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// OpenPosition registers the entry of a new position. The engine guarantees
// no position is already open when this is called.
func (l *Ledger) OpenPosition(p *domain.Position, entryFee float64) {
	l.open = p
	l.entryFee = entryFee
}

// ClosePosition realizes the open position at the given exit fill and
// appends the completed trade. Exactly-zero P&L classifies as LOSS.
func (l *Ledger) ClosePosition(exitTime time.Time, exitPrice float64, exitIndex int, exitFee float64) domain.Trade {
	p := l.open

	pnlAbs := (exitPrice - p.EntryPrice) * p.Quantity
	pnlPct := (exitPrice - p.EntryPrice) / p.EntryPrice * 100

	class := domain.OutcomeClassLoss
	if pnlAbs > 0 {
		class = domain.OutcomeClassWin
	}

	t := domain.Trade{
		EntryTime:    p.EntryTime,
		EntryPrice:   p.EntryPrice,
		ExitTime:     exitTime,
		ExitPrice:    exitPrice,
		Quantity:     p.Quantity,
		PnLAbs:       pnlAbs,
		PnLPct:       pnlPct,
		Fees:         l.entryFee + exitFee,
		HoldingBars:  exitIndex - p.EntryIndex,
		ExitReason:   domain.ExitReasonSignal,
		OutcomeClass: class,
	}

	l.trades = append(l.trades, t)
	l.open = nil
	l.entryFee = 0
	return t
}

// Trades returns the realized trades in chronological order.
func (l *Ledger) Trades() []domain.Trade {
	return l.trades
}

// Open returns the position currently in flight, or nil.
func (l *Ledger) Open() *domain.Position {
	return l.open
}
