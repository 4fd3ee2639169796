package algorithms

import (
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
	"github.com/SecondBook5/MatrixMultiplication/internal/metrics"
)

// Naive is the triple-nested-loop O(n³) baseline. It accepts any square
// size (power-of-two is not required) and counts exactly one multiplication
// per scalar product, so a dense size-n run always reports n³.
//
// The loop nest uses i-k-j order with the A element hoisted out of the
// inner loop for cache locality; reordering is free to vary because it
// changes neither the count nor the result.
type Naive struct{}

// Name returns the descriptive name of the algorithm.
func (Naive) Name() string {
	return "Naive (O(n^3))"
}

// Multiply computes a·b with the classic triple loop.
//
// Parameters:
//   - a, b: Same-size square operands.
//   - mc: The metrics collector for this run; a fresh one is substituted
//     when nil so the method is always safe to call.
//   - opts: Per-run options; only ZeroSkip applies to the naive path.
//
// Returns:
//   - *matrix.Matrix: The product.
//   - error: ErrNilOperand or ErrDimensionMismatch on invalid operands.
func (Naive) Multiply(a, b *matrix.Matrix, mc *metrics.Collector, opts Options) (*matrix.Matrix, error) {
	if err := validateOperands(a, b); err != nil {
		return nil, err
	}
	if mc == nil {
		mc = metrics.NewCollector()
	}

	mc.StartTimer()
	defer func() { _ = mc.StopTimer() }()

	n := a.Size()
	if opts.ZeroSkip && (a.IsZero() || b.IsZero()) {
		return zeroProduct(n)
	}

	out, err := matrix.New(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			aik := a.Value(i, k)
			for j := 0; j < n; j++ {
				out.SetValue(i, j, out.Value(i, j)+aik*b.Value(k, j))
				mc.IncrementMultiplicationCount()
			}
		}
	}
	return out, nil
}
