// Package metrics derives summary statistics from a completed run's trade
// ledger and equity curve. Degenerate cases (no trades, zero gross loss,
// zero volatility) resolve to documented sentinels, never to errors.
package metrics

import (
	"math"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// tradingDaysPerYear annualizes daily return statistics.
const tradingDaysPerYear = 252

// Compute calculates all summary metrics for one run. Trades and curve must
// be in chronological order; the curve has one point per input bar.
func Compute(trades []domain.Trade, curve []domain.EquityPoint, initialCapital, finalCapital float64) domain.Summary {
	s := domain.Summary{
		TotalReturnPct: (finalCapital - initialCapital) / initialCapital * 100,
		NumTrades:      len(trades),
	}

	var grossGain, grossLoss float64
	var winPcts, lossPcts, allPcts []float64
	for _, t := range trades {
		allPcts = append(allPcts, t.PnLPct)
		if t.OutcomeClass == domain.OutcomeClassWin {
			s.Wins++
			grossGain += t.PnLAbs
			winPcts = append(winPcts, t.PnLPct)
		} else {
			s.Losses++
			grossLoss += -t.PnLAbs
			lossPcts = append(lossPcts, t.PnLPct)
		}
	}

	if s.NumTrades > 0 {
		s.WinRatePct = float64(s.Wins) / float64(s.NumTrades) * 100
	}

	s.ProfitFactor = profitFactor(grossGain, grossLoss, s.Wins)
	s.MaxDrawdownPct = maxDrawdown(curve)
	s.SharpeRatio = sharpeRatio(curve)
	s.AvgTradePct = mean(allPcts)
	s.AvgWinPct = mean(winPcts)
	s.AvgLossPct = mean(lossPcts)

	return s
}

// profitFactor is gross gain over gross loss. With no losing volume it
// reports domain.ProfitFactorInfinite when wins exist, else 0.
func profitFactor(grossGain, grossLoss float64, wins int) float64 {
	if grossLoss == 0 {
		if wins > 0 {
			return domain.ProfitFactorInfinite
		}
		return 0
	}
	return grossGain / grossLoss
}

// maxDrawdown scans the equity curve once, tracking the running peak and the
// worst percentage decline after each peak update. Reported positive: 12.5
// means a 12.5% peak-to-trough decline.
func maxDrawdown(curve []domain.EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}

	peak := curve[0].Equity
	maxDD := 0.0
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		if peak > 0 {
			dd := (peak - p.Equity) / peak * 100
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// sharpeRatio annualizes mean-over-stddev of bar-to-bar equity returns.
// Returns 0 when the curve is too short or volatility is zero.
func sharpeRatio(curve []domain.EquityPoint) float64 {
	if len(curve) < 3 {
		return 0
	}

	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			return 0
		}
		returns = append(returns, (curve[i].Equity-prev)/prev)
	}

	m := mean(returns)
	sd := stddev(returns, m)
	if sd == 0 {
		return 0
	}
	return m / sd * math.Sqrt(tradingDaysPerYear)
}

// mean is the arithmetic mean, 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(xs []float64, mean float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		diff := x - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}
