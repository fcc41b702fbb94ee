package strategy

import (
	"testing"
	"time"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/indicators"
)

func testBars(closes ...float64) []*domain.Bar {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]*domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = &domain.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return bars
}

func TestBuyHold_Evaluate(t *testing.T) {
	s := NewBuyHoldStrategy()
	bar := testBars(100)[0]

	if got := s.Evaluate(bar, domain.PositionFlat); got != domain.ActionBuy {
		t.Errorf("Expected BUY while flat, got %s", got)
	}
	if got := s.Evaluate(bar, domain.PositionLong); got != domain.ActionHold {
		t.Errorf("Expected HOLD while long, got %s", got)
	}
}

func TestSMACross_Evaluate(t *testing.T) {
	s := NewSMACrossStrategy(2, 3)
	bar := testBars(100)[0]

	// Warm-up: no columns yet
	if got := s.Evaluate(bar, domain.PositionFlat); got != domain.ActionHold {
		t.Errorf("Expected HOLD during warm-up, got %s", got)
	}

	bar.SetIndicator(indicators.SMAName(2), 105)
	bar.SetIndicator(indicators.SMAName(3), 100)
	if got := s.Evaluate(bar, domain.PositionFlat); got != domain.ActionBuy {
		t.Errorf("Expected BUY with fast above slow while flat, got %s", got)
	}
	if got := s.Evaluate(bar, domain.PositionLong); got != domain.ActionHold {
		t.Errorf("Expected HOLD with fast above slow while long, got %s", got)
	}

	bar.SetIndicator(indicators.SMAName(2), 95)
	if got := s.Evaluate(bar, domain.PositionLong); got != domain.ActionSell {
		t.Errorf("Expected SELL with fast below slow while long, got %s", got)
	}
	if got := s.Evaluate(bar, domain.PositionFlat); got != domain.ActionHold {
		t.Errorf("Expected HOLD with fast below slow while flat, got %s", got)
	}

	// Equal averages never trigger
	bar.SetIndicator(indicators.SMAName(2), 100)
	if got := s.Evaluate(bar, domain.PositionFlat); got != domain.ActionHold {
		t.Errorf("Expected HOLD with equal averages, got %s", got)
	}
}

func TestRSIReversion_Evaluate(t *testing.T) {
	s := NewRSIReversionStrategy(14, 30, 70)
	bar := testBars(100)[0]

	if got := s.Evaluate(bar, domain.PositionFlat); got != domain.ActionHold {
		t.Errorf("Expected HOLD during warm-up, got %s", got)
	}

	bar.SetIndicator(indicators.RSIName(14), 25)
	if got := s.Evaluate(bar, domain.PositionFlat); got != domain.ActionBuy {
		t.Errorf("Expected BUY on oversold while flat, got %s", got)
	}
	if got := s.Evaluate(bar, domain.PositionLong); got != domain.ActionHold {
		t.Errorf("Expected HOLD on oversold while long, got %s", got)
	}

	bar.SetIndicator(indicators.RSIName(14), 75)
	if got := s.Evaluate(bar, domain.PositionLong); got != domain.ActionSell {
		t.Errorf("Expected SELL on overbought while long, got %s", got)
	}
	if got := s.Evaluate(bar, domain.PositionFlat); got != domain.ActionHold {
		t.Errorf("Expected HOLD on overbought while flat, got %s", got)
	}

	// Exactly at a threshold never triggers
	bar.SetIndicator(indicators.RSIName(14), 30)
	if got := s.Evaluate(bar, domain.PositionFlat); got != domain.ActionHold {
		t.Errorf("Expected HOLD at the buy threshold, got %s", got)
	}
}

func TestFunc_Adapter(t *testing.T) {
	f := Func{
		Name: "ALWAYS_BUY",
		Fn: func(_ *domain.Bar, _ domain.PositionState) domain.Action {
			return domain.ActionBuy
		},
	}

	if f.ID() != "ALWAYS_BUY" {
		t.Errorf("Expected ID ALWAYS_BUY, got %s", f.ID())
	}
	if got := f.Evaluate(testBars(100)[0], domain.PositionFlat); got != domain.ActionBuy {
		t.Errorf("Expected BUY, got %s", got)
	}
}
