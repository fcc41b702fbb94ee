package domain

// StrategyConfig represents strategy configuration parameters.
type StrategyConfig struct {
	StrategyType string // "SMA_CROSS" | "RSI_REVERSION" | "BUY_HOLD"

	// SMA_CROSS parameters
	FastPeriod *int
	SlowPeriod *int

	// RSI_REVERSION parameters
	RSIPeriod *int
	BuyBelow  *float64
	SellAbove *float64
}

// Strategy type constants.
const (
	StrategyTypeSMACross     = "SMA_CROSS"
	StrategyTypeRSIReversion = "RSI_REVERSION"
	StrategyTypeBuyHold      = "BUY_HOLD"
)
