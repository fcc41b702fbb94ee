// Package indicators computes derived columns over raw bars before a series
// is sealed. Each indicator appends a named field; warm-up rows get no value,
// so a strategy consulting them sees a defined absent lookup and decides its
// own fallback.
package indicators

import (
	"errors"
	"fmt"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// ErrInvalidPeriod is returned for non-positive indicator periods.
var ErrInvalidPeriod = errors.New("indicator period must be positive")

// SMAName returns the column name for a simple moving average of the period.
func SMAName(period int) string {
	return fmt.Sprintf("sma_%d", period)
}

// EMAName returns the column name for an exponential moving average.
func EMAName(period int) string {
	return fmt.Sprintf("ema_%d", period)
}

// ApplySMA appends the simple moving average of closes as a named column.
// The first period-1 bars are warm-up and stay absent.
func ApplySMA(bars []*domain.Bar, period int) error {
	if period <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}

	name := SMAName(period)
	sum := 0.0
	for i, b := range bars {
		sum += b.Close
		if i >= period {
			sum -= bars[i-period].Close
		}
		if i >= period-1 {
			b.SetIndicator(name, sum/float64(period))
		}
	}
	return nil
}

// ApplyEMA appends the exponential moving average of closes as a named
// column, seeded with the SMA of the first period closes.
func ApplyEMA(bars []*domain.Bar, period int) error {
	if period <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}
	name := EMAName(period)
	if len(bars) < period {
		return nil // all warm-up
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += bars[i].Close
	}
	ema := seed / float64(period)
	bars[period-1].SetIndicator(name, ema)

	k := 2.0 / float64(period+1)
	for i := period; i < len(bars); i++ {
		ema = bars[i].Close*k + ema*(1-k)
		bars[i].SetIndicator(name, ema)
	}
	return nil
}
