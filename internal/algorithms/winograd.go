package algorithms

import (
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
	"github.com/SecondBook5/MatrixMultiplication/internal/metrics"
)

// Winograd is the Winograd-reduced form of the Strassen engine. It keeps
// the same seven recursive products per frame but reuses shared pre- and
// post-computation terms, cutting the elementwise additions/subtractions
// from the canonical 18 to 15. The numeric result and the multiplication
// count are identical to the canonical form; only the additive operation
// count (and thus constant-factor running time) differs.
type Winograd struct{}

// Name returns the descriptive name of the algorithm.
func (Winograd) Name() string {
	return "Strassen-Winograd (O(n^2.81))"
}

// Multiply computes a·b with the Winograd-reduced recurrence. The contract
// is the same as Strassen.Multiply.
func (Winograd) Multiply(a, b *matrix.Matrix, mc *metrics.Collector, opts Options) (*matrix.Matrix, error) {
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
	return winogradRecurse(a, b, mc, opts)
}

// winogradRecurse implements one frame of the Winograd-reduced recurrence.
// Eight shared pre-computations feed the seven products, and two shared
// post-computation terms feed the quadrant assembly:
//
//	S1 = A21+A22    S5 = B12−B11      P1 = S2·S6   P5 = S1·S5
//	S2 = S1−A11     S6 = B22−S5       P2 = A11·B11 P6 = S4·B22
//	S3 = A11−A21    S7 = B22−B12      P3 = A12·B21 P7 = A22·S8
//	S4 = A12−S2     S8 = S6−B21       P4 = S3·S7
//
//	T1 = P1+P2   T2 = T1+P4
//	C11 = P2+P3   C12 = T1+P5+P6   C21 = T2−P7   C22 = T2+P5
func winogradRecurse(a, b *matrix.Matrix, mc *metrics.Collector, opts Options) (*matrix.Matrix, error) {
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

	// Pre-computations (8 additions/subtractions).
	s1, err := matrix.Add(a21, a22)
	if err != nil {
		return nil, err
	}
	s2, err := matrix.Sub(s1, a11)
	if err != nil {
		return nil, err
	}
	s3, err := matrix.Sub(a11, a21)
	if err != nil {
		return nil, err
	}
	s4, err := matrix.Sub(a12, s2)
	if err != nil {
		return nil, err
	}
	s5, err := matrix.Sub(b12, b11)
	if err != nil {
		return nil, err
	}
	s6, err := matrix.Sub(b22, s5)
	if err != nil {
		return nil, err
	}
	s7, err := matrix.Sub(b22, b12)
	if err != nil {
		return nil, err
	}
	s8, err := matrix.Sub(s6, b21)
	if err != nil {
		return nil, err
	}

	var p1, p2, p3, p4, p5, p6, p7 *matrix.Matrix
	tasks := []productTask{
		{&p1, s2, s6},
		{&p2, a11, b11},
		{&p3, a12, b21},
		{&p4, s3, s7},
		{&p5, s1, s5},
		{&p6, s4, b22},
		{&p7, a22, s8},
	}
	recurse := func(x, y *matrix.Matrix) (*matrix.Matrix, error) {
		return winogradRecurse(x, y, mc, opts)
	}
	inParallel := opts.Parallel && n > opts.parallelThreshold()
	if err := runProducts(recurse, tasks, inParallel); err != nil {
		return nil, err
	}

	// Post-computations (7 additions/subtractions including the two
	// shared T terms).
	t1, err := matrix.Add(p1, p2)
	if err != nil {
		return nil, err
	}
	t2, err := matrix.Add(t1, p4)
	if err != nil {
		return nil, err
	}
	c11, err := matrix.Add(p2, p3)
	if err != nil {
		return nil, err
	}
	c12a, err := matrix.Add(t1, p5)
	if err != nil {
		return nil, err
	}
	c12, err := matrix.Add(c12a, p6)
	if err != nil {
		return nil, err
	}
	c21, err := matrix.Sub(t2, p7)
	if err != nil {
		return nil, err
	}
	c22, err := matrix.Add(t2, p5)
	if err != nil {
		return nil, err
	}

	return assemble(n, c11, c12, c21, c22)
}
