// Package algorithms provides the matrix multiplication strategies under
// comparison: the triple-loop naive baseline and the divide-and-conquer
// Strassen engine in its canonical and Winograd-reduced forms.
//
// Every strategy implements the Multiplier interface and reports into an
// explicitly passed metrics.Collector, so callers can benchmark strategies
// against each other without shared state between runs.
package algorithms

import (
	"runtime"
	"sort"

	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
	"github.com/SecondBook5/MatrixMultiplication/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the submatrix size above which the parallel
// engine fans the seven recursive products out to goroutines. Below it the
// goroutine and split overhead outweighs the win.
const DefaultParallelThreshold = 64

// Options carries the per-run tuning knobs shared by all strategies.
type Options struct {
	// Parallel enables the fork/join execution model in the recursive
	// engine. The sequential and parallel paths produce bit-identical
	// results; only wall-clock time differs.
	Parallel bool
	// ParallelThreshold is the submatrix size above which recursive
	// products are forked. Zero selects DefaultParallelThreshold.
	ParallelThreshold int
	// ZeroSkip short-circuits a multiplication whose operands include an
	// all-zero matrix, returning the zero product with a multiplication
	// count of 0. It is applied symmetrically by every strategy so counts
	// stay comparable across algorithms.
	ZeroSkip bool
}

// parallelThreshold resolves the effective fork threshold.
func (o Options) parallelThreshold() int {
	if o.ParallelThreshold > 0 {
		return o.ParallelThreshold
	}
	return DefaultParallelThreshold
}

// Multiplier is the strategy interface implemented by each multiplication
// algorithm. Implementations validate their operands, drive the collector's
// timer around the computation, and count exactly one increment per scalar
// product performed.
type Multiplier interface {
	// Name returns a descriptive name for the strategy.
	Name() string

	// Multiply computes the product of two same-size square matrices,
	// recording elapsed time and scalar multiplication count into mc.
	Multiply(a, b *matrix.Matrix, mc *metrics.Collector, opts Options) (*matrix.Matrix, error)
}

// builders maps registry names to strategy constructors.
var builders = map[string]func() Multiplier{
	"naive":    func() Multiplier { return Naive{} },
	"strassen": func() Multiplier { return Strassen{} },
	"winograd": func() Multiplier { return Winograd{} },
}

// New returns the strategy registered under the given name.
//
// Returns:
//   - Multiplier: The requested strategy.
//   - error: ErrInvalidArgument for an unknown name.
func New(name string) (Multiplier, error) {
	b, ok := builders[name]
	if !ok {
		return nil, apperrors.WrapError(apperrors.ErrInvalidArgument, "unknown algorithm %q", name)
	}
	return b(), nil
}

// Names lists the registered strategy names in stable order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validateOperands checks the preconditions common to every strategy:
// both operands present and of equal size.
func validateOperands(a, b *matrix.Matrix) error {
	if a == nil || b == nil {
		return apperrors.WrapError(apperrors.ErrNilOperand, "multiplication operand")
	}
	if a.Size() != b.Size() {
		return apperrors.WrapError(apperrors.ErrDimensionMismatch, "%d vs %d", a.Size(), b.Size())
	}
	return nil
}

// productTask is one of the seven recursive products of a Strassen-family
// recursion frame, executed either inline or on a forked goroutine.
type productTask struct {
	dst  **matrix.Matrix
	a, b *matrix.Matrix
}

// runProducts executes the frame's recursive products with the supplied
// recursion function. When inParallel is set the tasks fan out to a
// goroutine group bounded by the hardware parallelism and the frame joins
// on all of them before returning; otherwise they run in the calling
// goroutine. A failure in any task aborts the whole frame.
func runProducts(mul func(a, b *matrix.Matrix) (*matrix.Matrix, error), tasks []productTask, inParallel bool) error {
	if inParallel {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range tasks {
			t := &tasks[i]
			g.Go(func() error {
				res, err := mul(t.a, t.b)
				if err != nil {
					return err
				}
				*t.dst = res
				return nil
			})
		}
		return g.Wait()
	}
	for i := range tasks {
		res, err := mul(tasks[i].a, tasks[i].b)
		if err != nil {
			return err
		}
		*tasks[i].dst = res
	}
	return nil
}

// quadrants splits m into its four equal quadrants (11, 12, 21, 22).
// The parent size must be even, which the power-of-two validation of the
// recursive engines guarantees.
func quadrants(m *matrix.Matrix) (q11, q12, q21, q22 *matrix.Matrix, err error) {
	half := m.Size() / 2
	if q11, err = matrix.Split(m, 0, 0, half); err != nil {
		return nil, nil, nil, nil, err
	}
	if q12, err = matrix.Split(m, 0, half, half); err != nil {
		return nil, nil, nil, nil, err
	}
	if q21, err = matrix.Split(m, half, 0, half); err != nil {
		return nil, nil, nil, nil, err
	}
	if q22, err = matrix.Split(m, half, half, half); err != nil {
		return nil, nil, nil, nil, err
	}
	return q11, q12, q21, q22, nil
}

// assemble merges the four result quadrants into a fresh n×n matrix.
func assemble(n int, c11, c12, c21, c22 *matrix.Matrix) (*matrix.Matrix, error) {
	half := n / 2
	out, err := matrix.New(n)
	if err != nil {
		return nil, err
	}
	if err := matrix.Merge(out, c11, 0, 0); err != nil {
		return nil, err
	}
	if err := matrix.Merge(out, c12, 0, half); err != nil {
		return nil, err
	}
	if err := matrix.Merge(out, c21, half, 0); err != nil {
		return nil, err
	}
	if err := matrix.Merge(out, c22, half, half); err != nil {
		return nil, err
	}
	return out, nil
}

// zeroProduct returns the zero matrix result of a short-circuited
// multiplication, shared by the strategies' ZeroSkip paths.
func zeroProduct(n int) (*matrix.Matrix, error) {
	return matrix.New(n)
}
