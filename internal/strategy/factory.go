package strategy

import (
	"errors"

	"github.com/ravi4j/daily-market-automation-sub001/internal/backtest"
	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
	"github.com/ravi4j/daily-market-automation-sub001/internal/indicators"
)

// Factory errors.
var (
	ErrUnknownStrategyType = errors.New("unknown strategy type")
	ErrMissingFastPeriod   = errors.New("SMA_CROSS requires FastPeriod")
	ErrMissingSlowPeriod   = errors.New("SMA_CROSS requires SlowPeriod")
	ErrFastNotBelowSlow    = errors.New("SMA_CROSS requires FastPeriod < SlowPeriod")
	ErrMissingRSIPeriod    = errors.New("RSI_REVERSION requires RSIPeriod")
	ErrMissingBuyBelow     = errors.New("RSI_REVERSION requires BuyBelow")
	ErrMissingSellAbove    = errors.New("RSI_REVERSION requires SellAbove")
	ErrThresholdOrder      = errors.New("RSI_REVERSION requires BuyBelow < SellAbove")
)

// FromConfig creates a Strategy from domain.StrategyConfig.
// Validates required parameters per strategy type.
func FromConfig(cfg domain.StrategyConfig) (backtest.Strategy, error) {
	switch cfg.StrategyType {
	case domain.StrategyTypeSMACross:
		return fromSMACrossConfig(cfg)
	case domain.StrategyTypeRSIReversion:
		return fromRSIReversionConfig(cfg)
	case domain.StrategyTypeBuyHold:
		return NewBuyHoldStrategy(), nil
	default:
		return nil, ErrUnknownStrategyType
	}
}

func fromSMACrossConfig(cfg domain.StrategyConfig) (*SMACrossStrategy, error) {
	if cfg.FastPeriod == nil {
		return nil, ErrMissingFastPeriod
	}
	if cfg.SlowPeriod == nil {
		return nil, ErrMissingSlowPeriod
	}
	if *cfg.FastPeriod >= *cfg.SlowPeriod {
		return nil, ErrFastNotBelowSlow
	}
	return NewSMACrossStrategy(*cfg.FastPeriod, *cfg.SlowPeriod), nil
}

func fromRSIReversionConfig(cfg domain.StrategyConfig) (*RSIReversionStrategy, error) {
	if cfg.RSIPeriod == nil {
		return nil, ErrMissingRSIPeriod
	}
	if cfg.BuyBelow == nil {
		return nil, ErrMissingBuyBelow
	}
	if cfg.SellAbove == nil {
		return nil, ErrMissingSellAbove
	}
	if *cfg.BuyBelow >= *cfg.SellAbove {
		return nil, ErrThresholdOrder
	}
	return NewRSIReversionStrategy(*cfg.RSIPeriod, *cfg.BuyBelow, *cfg.SellAbove), nil
}

// Indicators returns the indicator computations a configured strategy needs,
// so callers can prepare the series before a run.
func Indicators(cfg domain.StrategyConfig) ([]func([]*domain.Bar) error, error) {
	switch cfg.StrategyType {
	case domain.StrategyTypeSMACross:
		if cfg.FastPeriod == nil || cfg.SlowPeriod == nil {
			return nil, ErrMissingFastPeriod
		}
		fast, slow := *cfg.FastPeriod, *cfg.SlowPeriod
		return []func([]*domain.Bar) error{
			func(bars []*domain.Bar) error { return indicators.ApplySMA(bars, fast) },
			func(bars []*domain.Bar) error { return indicators.ApplySMA(bars, slow) },
		}, nil
	case domain.StrategyTypeRSIReversion:
		if cfg.RSIPeriod == nil {
			return nil, ErrMissingRSIPeriod
		}
		period := *cfg.RSIPeriod
		return []func([]*domain.Bar) error{
			func(bars []*domain.Bar) error { return indicators.ApplyRSI(bars, period) },
		}, nil
	case domain.StrategyTypeBuyHold:
		return nil, nil
	default:
		return nil, ErrUnknownStrategyType
	}
}
