package indicators

import (
	"fmt"
	"math"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// Bollinger band column names for the given period.
func BandUpperName(period int) string { return fmt.Sprintf("bb_upper_%d", period) }
func BandLowerName(period int) string { return fmt.Sprintf("bb_lower_%d", period) }

// ApplyBollinger appends upper and lower Bollinger bands (SMA ± width
// standard deviations over the period) as named columns. Population stddev
// over the window, matching the common charting definition.
func ApplyBollinger(bars []*domain.Bar, period int, width float64) error {
	if period <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}

	upper := BandUpperName(period)
	lower := BandLowerName(period)

	for i := period - 1; i < len(bars); i++ {
		window := bars[i-period+1 : i+1]

		sum := 0.0
		for _, b := range window {
			sum += b.Close
		}
		m := sum / float64(period)

		sumSq := 0.0
		for _, b := range window {
			d := b.Close - m
			sumSq += d * d
		}
		sd := math.Sqrt(sumSq / float64(period))

		bars[i].SetIndicator(upper, m+width*sd)
		bars[i].SetIndicator(lower, m-width*sd)
	}
	return nil
}
