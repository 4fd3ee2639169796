package compare

import "math"

// Fitting guards. Samples at or below the noise floor carry no usable
// timing signal and are excluded; the epsilon keeps the closed-form
// denominator away from division by a vanishing value.
const (
	// noiseFloorMs is the minimum elapsed time a sample must exceed to
	// participate in the fit. Millisecond-resolution timings of tiny
	// matrices are dominated by clock granularity.
	noiseFloorMs = 0
	// denominatorEpsilon bounds the smallest acceptable Σ(n^2e).
	denominatorEpsilon = 1e-12
)

// Sample is one (size, elapsed-time) observation fed to the fitter.
type Sample struct {
	Size   int
	TimeMs int64
}

// FitConstant estimates the constant c in T(n) ≈ c·n^exponent from the
// given samples by least squares. The closed form minimizing
// Σ(T(n) − c·n^exponent)² is
//
//	c = Σ(T(n)·n^exponent) / Σ(n^(2·exponent))
//
// Samples with non-positive elapsed time are excluded as timing noise.
// The function is pure and never fails: it returns 0 when no usable
// samples remain or the denominator is numerically negligible.
//
// Parameters:
//   - samples: The (size, time) observations.
//   - exponent: The theoretical exponent (ExponentNaive or ExponentStrassen).
//
// Returns:
//   - float64: The best-fit constant c, or 0.
func FitConstant(samples []Sample, exponent float64) float64 {
	var numerator, denominator float64
	for _, s := range samples {
		if s.TimeMs <= noiseFloorMs || s.Size <= 0 {
			continue
		}
		nPow := math.Pow(float64(s.Size), exponent)
		numerator += float64(s.TimeMs) * nPow
		denominator += math.Pow(float64(s.Size), 2*exponent)
	}
	if denominator < denominatorEpsilon {
		return 0
	}
	return numerator / denominator
}

// NaiveSamples projects the naive timings out of a record sequence.
func NaiveSamples(records []PerformanceRecord) []Sample {
	samples := make([]Sample, len(records))
	for i, r := range records {
		samples[i] = Sample{Size: r.Size, TimeMs: r.NaiveTimeMs}
	}
	return samples
}

// StrassenSamples projects the divide-and-conquer timings out of a record
// sequence.
func StrassenSamples(records []PerformanceRecord) []Sample {
	samples := make([]Sample, len(records))
	for i, r := range records {
		samples[i] = Sample{Size: r.Size, TimeMs: r.StrassenTimeMs}
	}
	return samples
}
