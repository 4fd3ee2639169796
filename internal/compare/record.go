// Package compare orchestrates benchmark runs of the naive baseline against
// the divide-and-conquer engine, collects per-pair performance records,
// fits the empirical complexity constants, and renders comparison reports.
package compare

import (
	"fmt"
	"math"
)

// Theoretical complexity exponents used by the empirical fitter.
var (
	// ExponentNaive is the naive baseline's exponent: T(n) ≈ c·n³.
	ExponentNaive = 3.0
	// ExponentStrassen is the divide-and-conquer exponent:
	// T(n) ≈ c·n^log2(7) ≈ c·n^2.807.
	ExponentStrassen = math.Log(7) / math.Log(2)
)

// PerformanceRecord captures the outcome of one (A, B) pair comparison:
// matrix size, elapsed milliseconds and scalar multiplication counts for
// each algorithm. Records are immutable once created and collected in the
// order the pairs were processed.
type PerformanceRecord struct {
	// Size is the side length n of the multiplied matrices.
	Size int `json:"size"`
	// NaiveTimeMs is the naive run's elapsed wall-clock milliseconds.
	NaiveTimeMs int64 `json:"naiveTimeMs"`
	// StrassenTimeMs is the divide-and-conquer run's elapsed milliseconds.
	StrassenTimeMs int64 `json:"strassenTimeMs"`
	// NaiveMultiplications is the naive run's scalar multiplication count.
	NaiveMultiplications int64 `json:"naiveMultiplications"`
	// StrassenMultiplications is the divide-and-conquer run's count.
	StrassenMultiplications int64 `json:"strassenMultiplications"`
}

// String renders the record as a single log-friendly line.
func (r PerformanceRecord) String() string {
	return fmt.Sprintf("Size: %d | Naive Time: %d ms | Strassen Time: %d ms | Naive Multiplications: %d | Strassen Multiplications: %d",
		r.Size, r.NaiveTimeMs, r.StrassenTimeMs, r.NaiveMultiplications, r.StrassenMultiplications)
}
