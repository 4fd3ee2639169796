package compare

import (
	"context"

	"github.com/SecondBook5/MatrixMultiplication/internal/algorithms"
	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
	"github.com/SecondBook5/MatrixMultiplication/internal/metrics"
)

// DefaultEqualityEpsilon is the elementwise tolerance used when checking
// that the two algorithms agree. The benchmark inputs are integer-valued,
// for which Strassen is exact in float64, so the tolerance only matters for
// caller-supplied real-valued matrices.
const DefaultEqualityEpsilon = 1e-6

// PairResult is the full outcome of comparing both algorithms on one
// (A, B) pair: the two products, the agreement verdict and the condensed
// performance record.
type PairResult struct {
	// Record holds the sizes, timings and multiplication counts.
	Record PerformanceRecord
	// NaiveProduct is the baseline's product matrix.
	NaiveProduct *matrix.Matrix
	// EngineProduct is the divide-and-conquer engine's product matrix.
	EngineProduct *matrix.Matrix
	// Match reports whether the two products agree within the driver's
	// equality tolerance.
	Match bool
}

// Driver runs the naive baseline and the configured divide-and-conquer
// engine over a sequence of validated matrix pairs, producing one
// PairResult per pair. Each algorithm run gets a fresh metrics collector,
// so records can never contaminate each other.
//
// The two runs of a pair execute sequentially on the calling goroutine to
// keep the wall-clock comparison fair; the engine itself may still fan out
// internally when Options.Parallel is set.
type Driver struct {
	naive   algorithms.Multiplier
	engine  algorithms.Multiplier
	opts    algorithms.Options
	epsilon float64

	// Progress, when non-nil, is invoked after each completed pair with
	// the 1-based pair index and the total pair count.
	Progress func(done, total int)
}

// NewDriver builds a Driver around the named divide-and-conquer engine
// ("strassen" or "winograd").
//
// Returns:
//   - *Driver: The configured driver.
//   - error: ErrInvalidArgument for an unknown engine name.
func NewDriver(engineName string, opts algorithms.Options) (*Driver, error) {
	engine, err := algorithms.New(engineName)
	if err != nil {
		return nil, err
	}
	return &Driver{
		naive:   algorithms.Naive{},
		engine:  engine,
		opts:    opts,
		epsilon: DefaultEqualityEpsilon,
	}, nil
}

// EngineName returns the display name of the configured engine.
func (d *Driver) EngineName() string { return d.engine.Name() }

// Run processes the pairs in order. The context is consulted between pairs
// only: an individual multiplication always runs to completion (the engine
// has no cancellation semantics), but a deadline or cancellation stops
// further pairs from starting.
//
// Parameters:
//   - ctx: Governs whether the next pair may start.
//   - pairs: The validated same-size square matrix pairs.
//
// Returns:
//   - []PairResult: One result per completed pair, in input order.
//   - error: The context error if the run was cut short, or the first
//     multiplication failure.
func (d *Driver) Run(ctx context.Context, pairs []matrix.Pair) ([]PairResult, error) {
	results := make([]PairResult, 0, len(pairs))
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := d.runPair(pair)
		if err != nil {
			return results, apperrors.WrapError(err, "pair %d", i+1)
		}
		results = append(results, res)
		if d.Progress != nil {
			d.Progress(i+1, len(pairs))
		}
	}
	return results, nil
}

// runPair executes both algorithms on one pair and condenses the metrics.
func (d *Driver) runPair(pair matrix.Pair) (PairResult, error) {
	naiveMetrics := metrics.NewCollector()
	naiveProduct, err := d.naive.Multiply(pair.A, pair.B, naiveMetrics, d.opts)
	if err != nil {
		return PairResult{}, err
	}

	engineMetrics := metrics.NewCollector()
	engineProduct, err := d.engine.Multiply(pair.A, pair.B, engineMetrics, d.opts)
	if err != nil {
		return PairResult{}, err
	}

	return PairResult{
		Record: PerformanceRecord{
			Size:                    pair.A.Size(),
			NaiveTimeMs:             naiveMetrics.ElapsedTimeMs(),
			StrassenTimeMs:          engineMetrics.ElapsedTimeMs(),
			NaiveMultiplications:    naiveMetrics.MultiplicationCount(),
			StrassenMultiplications: engineMetrics.MultiplicationCount(),
		},
		NaiveProduct:  naiveProduct,
		EngineProduct: engineProduct,
		Match:         matrix.EqualWithin(naiveProduct, engineProduct, d.epsilon),
	}, nil
}

// Records projects the condensed performance records out of a result
// sequence, preserving order.
func Records(results []PairResult) []PerformanceRecord {
	records := make([]PerformanceRecord, len(results))
	for i, res := range results {
		records[i] = res.Record
	}
	return records
}

// AllMatch reports whether every pair's products agreed. A false return is
// the condition the caller maps to the mismatch exit code.
func AllMatch(results []PairResult) bool {
	for _, res := range results {
		if !res.Match {
			return false
		}
	}
	return true
}
