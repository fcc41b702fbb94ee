package domain

import "time"

// Canonical field names addressable through Bar.Field.
const (
	FieldOpen   = "open"
	FieldHigh   = "high"
	FieldLow    = "low"
	FieldClose  = "close"
	FieldVolume = "volume"
)

// Bar represents one daily price observation plus any indicator columns
// appended before simulation. Immutable once a series is built from it.
type Bar struct {
	Timestamp time.Time // trading day, strictly increasing within a series
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64

	// Indicators holds named indicator values (SMA, RSI, ...). Warm-up rows
	// simply have no entry for a column; lookup reports absence, never a crash.
	Indicators map[string]float64
}

// Field returns the named numeric field of the bar. Canonical price/volume
// names resolve to the fixed columns; anything else is an indicator lookup.
// The second return is false when the field is absent (e.g. warm-up rows).
func (b *Bar) Field(name string) (float64, bool) {
	switch name {
	case FieldOpen:
		return b.Open, true
	case FieldHigh:
		return b.High, true
	case FieldLow:
		return b.Low, true
	case FieldClose:
		return b.Close, true
	case FieldVolume:
		return float64(b.Volume), true
	}
	v, ok := b.Indicators[name]
	return v, ok
}

// SetIndicator records a named indicator value on the bar. Used by the
// indicator layer before the series is sealed; never called mid-simulation.
func (b *Bar) SetIndicator(name string, value float64) {
	if b.Indicators == nil {
		b.Indicators = make(map[string]float64)
	}
	b.Indicators[name] = value
}

// Clone returns a deep copy of the bar, including indicator columns.
func (b *Bar) Clone() *Bar {
	c := *b
	if b.Indicators != nil {
		c.Indicators = make(map[string]float64, len(b.Indicators))
		for k, v := range b.Indicators {
			c.Indicators[k] = v
		}
	}
	return &c
}

// DailyBar is the storage representation of one raw OHLCV observation for a
// symbol. Indicator columns are derived data and are not persisted.
type DailyBar struct {
	Symbol    string
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// ToBar converts a stored daily bar into a simulation bar.
func (d *DailyBar) ToBar() *Bar {
	return &Bar{
		Timestamp: d.Timestamp,
		Open:      d.Open,
		High:      d.High,
		Low:       d.Low,
		Close:     d.Close,
		Volume:    d.Volume,
	}
}
