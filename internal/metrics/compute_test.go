package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

func makeTrade(pnlAbs, pnlPct float64) domain.Trade {
	class := domain.OutcomeClassLoss
	if pnlAbs > 0 {
		class = domain.OutcomeClassWin
	}
	return domain.Trade{PnLAbs: pnlAbs, PnLPct: pnlPct, OutcomeClass: class}
}

func makeCurve(equities ...float64) []domain.EquityPoint {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	curve := make([]domain.EquityPoint, len(equities))
	for i, e := range equities {
		curve[i] = domain.EquityPoint{Timestamp: base.AddDate(0, 0, i), Equity: e}
	}
	return curve
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute_WinRate(t *testing.T) {
	trades := []domain.Trade{
		makeTrade(100, 5),
		makeTrade(-50, -2),
		makeTrade(200, 8),
		makeTrade(0, 0), // zero P&L counts as a loss
	}
	s := Compute(trades, makeCurve(10000, 10250), 10000, 10250)

	if s.NumTrades != 4 {
		t.Errorf("Expected 4 trades, got %d", s.NumTrades)
	}
	if s.Wins != 2 || s.Losses != 2 {
		t.Errorf("Expected 2 wins / 2 losses, got %d / %d", s.Wins, s.Losses)
	}
	if !floatEq(s.WinRatePct, 50) {
		t.Errorf("Expected win rate 50%%, got %g", s.WinRatePct)
	}
}

func TestCompute_ProfitFactor(t *testing.T) {
	trades := []domain.Trade{
		makeTrade(300, 3),
		makeTrade(-100, -1),
	}
	s := Compute(trades, makeCurve(10000, 10200), 10000, 10200)

	if !floatEq(s.ProfitFactor, 3) {
		t.Errorf("Expected profit factor 3, got %g", s.ProfitFactor)
	}
}

func TestCompute_ProfitFactorNoLosses(t *testing.T) {
	trades := []domain.Trade{makeTrade(100, 5), makeTrade(50, 2)}
	s := Compute(trades, makeCurve(10000, 10150), 10000, 10150)

	if s.ProfitFactor != domain.ProfitFactorInfinite {
		t.Errorf("Expected sentinel %g, got %g", domain.ProfitFactorInfinite, s.ProfitFactor)
	}
}

func TestCompute_ProfitFactorNoTrades(t *testing.T) {
	s := Compute(nil, makeCurve(10000, 10000), 10000, 10000)

	if s.ProfitFactor != 0 {
		t.Errorf("Expected profit factor 0 with no trades, got %g", s.ProfitFactor)
	}
	if s.WinRatePct != 0 {
		t.Errorf("Expected win rate 0 with no trades, got %g", s.WinRatePct)
	}
}

func TestCompute_ZeroPnLTradesOnly(t *testing.T) {
	// All break-even trades: no gross gain, no gross loss, no wins
	trades := []domain.Trade{makeTrade(0, 0), makeTrade(0, 0)}
	s := Compute(trades, makeCurve(10000, 10000), 10000, 10000)

	if s.ProfitFactor != 0 {
		t.Errorf("Expected profit factor 0, got %g", s.ProfitFactor)
	}
	if s.Wins != 0 || s.Losses != 2 {
		t.Errorf("Expected 0 wins / 2 losses, got %d / %d", s.Wins, s.Losses)
	}
}

func TestMaxDrawdown(t *testing.T) {
	// Peak 12000, trough 9000: 25% decline
	curve := makeCurve(10000, 12000, 9000, 11000)
	if dd := maxDrawdown(curve); !floatEq(dd, 25) {
		t.Errorf("Expected drawdown 25, got %g", dd)
	}
}

func TestMaxDrawdown_Monotonic(t *testing.T) {
	curve := makeCurve(10000, 10500, 11000, 11500)
	if dd := maxDrawdown(curve); dd != 0 {
		t.Errorf("Expected drawdown 0 for rising curve, got %g", dd)
	}
}

func TestMaxDrawdown_LaterDeeperTrough(t *testing.T) {
	// First dip 10%, later dip 20% from the higher peak
	curve := makeCurve(10000, 9000, 12000, 9600)
	if dd := maxDrawdown(curve); !floatEq(dd, 20) {
		t.Errorf("Expected drawdown 20, got %g", dd)
	}
}

func TestMaxDrawdown_Empty(t *testing.T) {
	if dd := maxDrawdown(nil); dd != 0 {
		t.Errorf("Expected drawdown 0 for empty curve, got %g", dd)
	}
}

func TestSharpeRatio_FlatCurveIsZero(t *testing.T) {
	curve := makeCurve(10000, 10000, 10000, 10000)
	if sr := sharpeRatio(curve); sr != 0 {
		t.Errorf("Expected Sharpe 0 for zero volatility, got %g", sr)
	}
}

func TestSharpeRatio_ShortCurveIsZero(t *testing.T) {
	if sr := sharpeRatio(makeCurve(10000, 10100)); sr != 0 {
		t.Errorf("Expected Sharpe 0 for a two-point curve, got %g", sr)
	}
}

func TestSharpeRatio_Annualized(t *testing.T) {
	curve := makeCurve(10000, 10100, 10150, 10300)

	returns := []float64{0.01, 10150.0/10100.0 - 1, 10300.0/10150.0 - 1}
	m := mean(returns)
	sd := stddev(returns, m)
	want := m / sd * math.Sqrt(252)

	if sr := sharpeRatio(curve); !floatEq(sr, want) {
		t.Errorf("Expected Sharpe %g, got %g", want, sr)
	}
}

func TestCompute_Averages(t *testing.T) {
	trades := []domain.Trade{
		makeTrade(100, 10),
		makeTrade(50, 4),
		makeTrade(-30, -2),
	}
	s := Compute(trades, makeCurve(10000, 10120), 10000, 10120)

	if !floatEq(s.AvgTradePct, 4) {
		t.Errorf("Expected avg trade 4%%, got %g", s.AvgTradePct)
	}
	if !floatEq(s.AvgWinPct, 7) {
		t.Errorf("Expected avg win 7%%, got %g", s.AvgWinPct)
	}
	if !floatEq(s.AvgLossPct, -2) {
		t.Errorf("Expected avg loss -2%%, got %g", s.AvgLossPct)
	}
}

func TestCompute_TotalReturn(t *testing.T) {
	s := Compute(nil, makeCurve(10000, 8500), 10000, 8500)
	if !floatEq(s.TotalReturnPct, -15) {
		t.Errorf("Expected total return -15%%, got %g", s.TotalReturnPct)
	}
}
