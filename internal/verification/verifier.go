// Package verification checks that stored backtest runs can be reproduced.
// A run is verified by re-executing the simulation with the stored
// parameters and comparing every derived value against the stored record.
package verification

import (
	"context"
	"math"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// FloatTolerance is the tolerance for float64 comparisons.
const FloatTolerance = 1e-7

// FieldDivergence represents a mismatch between stored and replayed values.
type FieldDivergence struct {
	Field    string      // field name
	Expected interface{} // stored value
	Actual   interface{} // replayed value
}

// VerificationResult contains the result of verifying a single run.
type VerificationResult struct {
	RunID       string            // verified run ID
	Match       bool              // true if all fields match
	Divergences []FieldDivergence // list of divergent fields
}

// VerificationReport contains results for batch verification.
type VerificationReport struct {
	TotalRuns     int                  // total runs verified
	MatchedRuns   int                  // runs that matched exactly
	DivergentRuns int                  // runs with divergences
	Results       []VerificationResult // individual results
}

// Verifier interface for run replay verification.
type Verifier interface {
	// VerifyRun verifies a single run by ID.
	// It loads the stored run, re-executes the backtest with the same
	// parameters, and compares all derived fields.
	VerifyRun(ctx context.Context, runID string) (*VerificationResult, error)

	// VerifyAll verifies all stored runs.
	// Returns a report with individual results.
	VerifyAll(ctx context.Context) (*VerificationReport, error)
}

// CompareRunRecords compares two run records and returns divergences.
// Uses FloatTolerance for float64 comparisons.
func CompareRunRecords(stored, replayed *domain.RunRecord) []FieldDivergence {
	var divergences []FieldDivergence

	addString := func(field, expected, actual string) {
		if expected != actual {
			divergences = append(divergences, FieldDivergence{Field: field, Expected: expected, Actual: actual})
		}
	}
	addInt := func(field string, expected, actual int) {
		if expected != actual {
			divergences = append(divergences, FieldDivergence{Field: field, Expected: expected, Actual: actual})
		}
	}
	addFloat := func(field string, expected, actual float64) {
		if !floatEquals(expected, actual) {
			divergences = append(divergences, FieldDivergence{Field: field, Expected: expected, Actual: actual})
		}
	}

	addString("RunID", stored.RunID, replayed.RunID)
	addString("Symbol", stored.Symbol, replayed.Symbol)
	addString("StrategyID", stored.StrategyID, replayed.StrategyID)
	addFloat("InitialCapital", stored.InitialCapital, replayed.InitialCapital)
	addFloat("FinalCapital", stored.FinalCapital, replayed.FinalCapital)
	addFloat("PositionSizePct", stored.PositionSizePct, replayed.PositionSizePct)
	addFloat("FeeRate", stored.FeeRate, replayed.FeeRate)
	addInt("BarCount", stored.BarCount, replayed.BarCount)
	addFloat("TotalReturnPct", stored.TotalReturnPct, replayed.TotalReturnPct)
	addInt("NumTrades", stored.NumTrades, replayed.NumTrades)
	addFloat("WinRatePct", stored.WinRatePct, replayed.WinRatePct)
	addFloat("ProfitFactor", stored.ProfitFactor, replayed.ProfitFactor)
	addFloat("MaxDrawdownPct", stored.MaxDrawdownPct, replayed.MaxDrawdownPct)
	addFloat("SharpeRatio", stored.SharpeRatio, replayed.SharpeRatio)

	return divergences
}

// CompareTradeRecords compares two trade records and returns divergences.
func CompareTradeRecords(stored, replayed *domain.TradeRecord) []FieldDivergence {
	var divergences []FieldDivergence

	add := func(field string, expected, actual interface{}, equal bool) {
		if !equal {
			divergences = append(divergences, FieldDivergence{Field: field, Expected: expected, Actual: actual})
		}
	}

	add("TradeID", stored.TradeID, replayed.TradeID, stored.TradeID == replayed.TradeID)
	add("RunID", stored.RunID, replayed.RunID, stored.RunID == replayed.RunID)
	add("EntryTime", stored.EntryTime, replayed.EntryTime, stored.EntryTime.Equal(replayed.EntryTime))
	add("EntryPrice", stored.EntryPrice, replayed.EntryPrice, floatEquals(stored.EntryPrice, replayed.EntryPrice))
	add("ExitTime", stored.ExitTime, replayed.ExitTime, stored.ExitTime.Equal(replayed.ExitTime))
	add("ExitPrice", stored.ExitPrice, replayed.ExitPrice, floatEquals(stored.ExitPrice, replayed.ExitPrice))
	add("Quantity", stored.Quantity, replayed.Quantity, floatEquals(stored.Quantity, replayed.Quantity))
	add("PnLAbs", stored.PnLAbs, replayed.PnLAbs, floatEquals(stored.PnLAbs, replayed.PnLAbs))
	add("PnLPct", stored.PnLPct, replayed.PnLPct, floatEquals(stored.PnLPct, replayed.PnLPct))
	add("Fees", stored.Fees, replayed.Fees, floatEquals(stored.Fees, replayed.Fees))
	add("HoldingBars", stored.HoldingBars, replayed.HoldingBars, stored.HoldingBars == replayed.HoldingBars)
	add("ExitReason", stored.ExitReason, replayed.ExitReason, stored.ExitReason == replayed.ExitReason)
	add("OutcomeClass", stored.OutcomeClass, replayed.OutcomeClass, stored.OutcomeClass == replayed.OutcomeClass)

	return divergences
}

// floatEquals compares two float64 values within FloatTolerance.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= FloatTolerance
}
