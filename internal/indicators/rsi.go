package indicators

import (
	"fmt"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// RSIName returns the column name for the relative strength index.
func RSIName(period int) string {
	return fmt.Sprintf("rsi_%d", period)
}

// ApplyRSI appends the Wilder-smoothed RSI of closes as a named column.
// The first period bars are warm-up and stay absent. All-gain stretches
// report 100 rather than dividing by zero.
func ApplyRSI(bars []*domain.Bar, period int) error {
	if period <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}
	name := RSIName(period)
	if len(bars) < period+1 {
		return nil // all warm-up
	}

	// Initial averages over the first period changes.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	bars[period].SetIndicator(name, rsiValue(avgGain, avgLoss))

	// Wilder smoothing for the remaining bars.
	for i := period + 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		bars[i].SetIndicator(name, rsiValue(avgGain, avgLoss))
	}
	return nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
