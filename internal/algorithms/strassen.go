package algorithms

import (
	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
	"github.com/SecondBook5/MatrixMultiplication/internal/metrics"
)

// Strassen is the canonical divide-and-conquer engine. Each recursion frame
// splits the operands into quadrants, computes seven recursive products
// (instead of the classical eight) and reassembles the result, giving an
// O(n^log2(7)) ≈ O(n^2.81) multiplication count: exactly 7^log2(n) leaf
// multiplications for a size-n run.
//
// The recursion is the only state. When Options.Parallel is set, frames at
// sizes above the threshold fork their seven products and join before
// assembly; the parallel and sequential paths are referentially transparent.
type Strassen struct{}

// Name returns the descriptive name of the algorithm.
func (Strassen) Name() string {
	return "Strassen (O(n^2.81))"
}

// Multiply computes a·b with the canonical Strassen recurrence.
//
// Parameters:
//   - a, b: Same-size square operands whose size is a power of two.
//   - mc: The metrics collector for this run; a fresh one is substituted
//     when nil so the method is always safe to call.
//   - opts: Per-run options (parallelism, zero short-circuit).
//
// Returns:
//   - *matrix.Matrix: The exact product.
//   - error: ErrNilOperand, ErrDimensionMismatch, or ErrInvalidSize when a
//     size is not a power of two.
func (Strassen) Multiply(a, b *matrix.Matrix, mc *metrics.Collector, opts Options) (*matrix.Matrix, error) {
	if err := validateRecursiveOperands(a, b); err != nil {
		return nil, err
	}
	if mc == nil {
		mc = metrics.NewCollector()
	}

	mc.StartTimer()
	defer func() { _ = mc.StopTimer() }()

	if opts.ZeroSkip && (a.IsZero() || b.IsZero()) {
		return zeroProduct(a.Size())
	}
	return strassenRecurse(a, b, mc, opts)
}

// strassenRecurse implements one frame of the canonical recurrence:
//
//	P1 = (A11+A22)·(B11+B22)   P5 = (A11+A12)·B22
//	P2 = (A21+A22)·B11         P6 = (A21−A11)·(B11+B12)
//	P3 = A11·(B12−B22)         P7 = (A12−A22)·(B21+B22)
//	P4 = A22·(B21−B11)
//
//	C11 = P1+P4−P5+P7   C12 = P3+P5
//	C21 = P2+P4         C22 = P1+P3−P2+P6
func strassenRecurse(a, b *matrix.Matrix, mc *metrics.Collector, opts Options) (*matrix.Matrix, error) {
	n := a.Size()
	if n == 1 {
		mc.IncrementMultiplicationCount()
		return matrix.FromRows([][]float64{{a.Value(0, 0) * b.Value(0, 0)}})
	}

	a11, a12, a21, a22, err := quadrants(a)
	if err != nil {
		return nil, err
	}
	b11, b12, b21, b22, err := quadrants(b)
	if err != nil {
		return nil, err
	}

	// Pre-additions for the seven products (10 of the canonical 18
	// elementwise operations happen here, the other 8 during assembly).
	s1, err := matrix.Add(a11, a22)
	if err != nil {
		return nil, err
	}
	s2, err := matrix.Add(b11, b22)
	if err != nil {
		return nil, err
	}
	s3, err := matrix.Add(a21, a22)
	if err != nil {
		return nil, err
	}
	s4, err := matrix.Sub(b12, b22)
	if err != nil {
		return nil, err
	}
	s5, err := matrix.Sub(b21, b11)
	if err != nil {
		return nil, err
	}
	s6, err := matrix.Add(a11, a12)
	if err != nil {
		return nil, err
	}
	s7, err := matrix.Sub(a21, a11)
	if err != nil {
		return nil, err
	}
	s8, err := matrix.Add(b11, b12)
	if err != nil {
		return nil, err
	}
	s9, err := matrix.Sub(a12, a22)
	if err != nil {
		return nil, err
	}
	s10, err := matrix.Add(b21, b22)
	if err != nil {
		return nil, err
	}

	var p1, p2, p3, p4, p5, p6, p7 *matrix.Matrix
	tasks := []productTask{
		{&p1, s1, s2},
		{&p2, s3, b11},
		{&p3, a11, s4},
		{&p4, a22, s5},
		{&p5, s6, b22},
		{&p6, s7, s8},
		{&p7, s9, s10},
	}
	recurse := func(x, y *matrix.Matrix) (*matrix.Matrix, error) {
		return strassenRecurse(x, y, mc, opts)
	}
	inParallel := opts.Parallel && n > opts.parallelThreshold()
	if err := runProducts(recurse, tasks, inParallel); err != nil {
		return nil, err
	}

	c11, err := addSub(p1, p4, p5, p7) // P1+P4−P5+P7
	if err != nil {
		return nil, err
	}
	c12, err := matrix.Add(p3, p5)
	if err != nil {
		return nil, err
	}
	c21, err := matrix.Add(p2, p4)
	if err != nil {
		return nil, err
	}
	c22, err := addSub(p1, p3, p2, p6) // P1+P3−P2+P6
	if err != nil {
		return nil, err
	}

	return assemble(n, c11, c12, c21, c22)
}

// addSub computes w + x − y + z, the shape of both corner-quadrant
// assemblies in the canonical recurrence.
func addSub(w, x, y, z *matrix.Matrix) (*matrix.Matrix, error) {
	sum, err := matrix.Add(w, x)
	if err != nil {
		return nil, err
	}
	diff, err := matrix.Sub(sum, y)
	if err != nil {
		return nil, err
	}
	return matrix.Add(diff, z)
}

// validateRecursiveOperands extends the common operand validation with the
// power-of-two size requirement of the divide-and-conquer engines.
func validateRecursiveOperands(a, b *matrix.Matrix) error {
	if err := validateOperands(a, b); err != nil {
		return err
	}
	if !matrix.IsPowerOfTwo(a.Size()) {
		return apperrors.WrapError(apperrors.ErrInvalidSize,
			"size %d is not a power of two", a.Size())
	}
	return nil
}
