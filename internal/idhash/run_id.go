package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeRunID computes a deterministic run_id using SHA256.
// Formula: SHA256(symbol|strategy_id|initial_capital|position_size_pct|fee_rate)
// Returns hex-encoded hash (64 characters). Identical run parameters always
// map to the same ID, which is what makes re-runs verifiable.
func ComputeRunID(symbol, strategyID string, initialCapital, positionSizePct, feeRate float64) string {
	data := fmt.Sprintf("%s|%s|%g|%g|%g",
		symbol,
		strategyID,
		initialCapital,
		positionSizePct,
		feeRate,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
