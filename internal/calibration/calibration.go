// Package calibration estimates the optimal parallel fork threshold for the
// divide-and-conquer engine on the current machine. It times the engine
// sequentially and in parallel on a few seeded inputs and picks the
// smallest size at which forking clearly pays for its overhead.
package calibration

import (
	"context"
	"runtime"
	"time"

	"github.com/SecondBook5/MatrixMultiplication/internal/algorithms"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
	"github.com/SecondBook5/MatrixMultiplication/internal/metrics"
)

// Calibration defaults. The probe sizes span the range where forking
// typically starts to win; three iterations smooth scheduler jitter.
const (
	DefaultIterations = 3
	DefaultSeed       = 1
)

// DefaultProbeSizes are the matrix sizes timed during calibration.
var DefaultProbeSizes = []int{32, 64, 128}

// Calibrator times sequential versus parallel engine runs to estimate the
// fork threshold.
type Calibrator struct {
	// ProbeSizes are the matrix sizes to time (default: DefaultProbeSizes).
	ProbeSizes []int
	// Iterations is the number of timed runs averaged per configuration.
	Iterations int
	// Engine is the divide-and-conquer strategy under calibration.
	Engine algorithms.Multiplier
}

// NewCalibrator returns a Calibrator with default settings and the
// canonical Strassen engine.
func NewCalibrator() *Calibrator {
	return &Calibrator{
		ProbeSizes: DefaultProbeSizes,
		Iterations: DefaultIterations,
		Engine:     algorithms.Strassen{},
	}
}

// EstimateParallelThreshold times each probe size with forking disabled and
// enabled and returns the smallest size where the parallel run is at least
// 10% faster. When no size shows a clear win (or the machine has a single
// CPU) it returns the engine's default threshold.
//
// The probes run sequentially on the calling goroutine so the timings are
// not distorted by each other; the context is consulted between probes.
//
// Returns:
//   - int: The estimated threshold.
//   - error: The context error if calibration was cut short.
func (c *Calibrator) EstimateParallelThreshold(ctx context.Context) (int, error) {
	if runtime.NumCPU() <= 1 {
		return algorithms.DefaultParallelThreshold, nil
	}

	for _, size := range c.ProbeSizes {
		if err := ctx.Err(); err != nil {
			return algorithms.DefaultParallelThreshold, err
		}
		a, err := matrix.Random(size, DefaultSeed)
		if err != nil {
			return algorithms.DefaultParallelThreshold, err
		}
		b, err := matrix.Random(size, DefaultSeed+1)
		if err != nil {
			return algorithms.DefaultParallelThreshold, err
		}

		seq, err := c.timeRun(a, b, algorithms.Options{})
		if err != nil {
			return algorithms.DefaultParallelThreshold, err
		}
		// Threshold just below the probe size so this size forks.
		par, err := c.timeRun(a, b, algorithms.Options{Parallel: true, ParallelThreshold: size / 2})
		if err != nil {
			return algorithms.DefaultParallelThreshold, err
		}

		if par < seq*9/10 {
			return size / 2, nil
		}
	}
	return algorithms.DefaultParallelThreshold, nil
}

// timeRun averages the engine's wall-clock time over the configured number
// of iterations, with one untimed warm-up run.
func (c *Calibrator) timeRun(a, b *matrix.Matrix, opts algorithms.Options) (time.Duration, error) {
	if _, err := c.Engine.Multiply(a, b, metrics.NewCollector(), opts); err != nil {
		return 0, err
	}
	var total time.Duration
	for i := 0; i < c.Iterations; i++ {
		start := time.Now()
		if _, err := c.Engine.Multiply(a, b, metrics.NewCollector(), opts); err != nil {
			return 0, err
		}
		total += time.Since(start)
	}
	return total / time.Duration(c.Iterations), nil
}
