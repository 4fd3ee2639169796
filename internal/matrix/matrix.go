// Package matrix provides the dense square matrix container used by the
// multiplication algorithms, together with the elementwise operations
// (add, subtract, split, merge) that form the substrate of the recursive
// divide-and-conquer engine.
//
// Matrices are structurally immutable: once constructed, their size never
// changes and every operation returns a fresh instance. The single
// documented exception is Merge, which writes into a pre-allocated result
// buffer as a performance optimization for quadrant assembly.
package matrix

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
)

// Matrix is a dense n×n grid of real values stored in row-major order.
// The buffer length is always size², an invariant enforced by every
// constructor.
type Matrix struct {
	size int
	data []float64
}

// Pair groups the two operands of one multiplication comparison.
type Pair struct {
	A *Matrix
	B *Matrix
}

// New creates a zero-valued matrix of the given size.
//
// Parameters:
//   - size: The side length; must be strictly positive.
//
// Returns:
//   - *Matrix: A new zero matrix.
//   - error: ErrInvalidSize if size is not positive.
func New(size int) (*Matrix, error) {
	if size <= 0 {
		return nil, apperrors.WrapError(apperrors.ErrInvalidSize, "size must be positive, got %d", size)
	}
	return &Matrix{size: size, data: make([]float64, size*size)}, nil
}

// FromRows creates a matrix from a square 2D slice. The input is deep-copied,
// so later mutation of rows does not affect the matrix.
//
// Parameters:
//   - rows: The row-major values; every row must have len(rows) elements.
//
// Returns:
//   - *Matrix: A new matrix holding a copy of the values.
//   - error: ErrInvalidSize if rows is empty or ragged/non-square.
func FromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, apperrors.WrapError(apperrors.ErrInvalidSize, "no rows supplied")
	}
	m := &Matrix{size: n, data: make([]float64, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, apperrors.WrapError(apperrors.ErrInvalidSize,
				"row %d has %d columns, want %d", i, len(row), n)
		}
		copy(m.data[i*n:(i+1)*n], row)
	}
	return m, nil
}

// Identity creates the n×n identity matrix.
func Identity(size int) (*Matrix, error) {
	m, err := New(size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < size; i++ {
		m.data[i*size+i] = 1
	}
	return m, nil
}

// Random creates a matrix of small integer values drawn from a seeded
// generator. Integer values keep products exactly representable in float64,
// so cross-algorithm comparisons can be exact.
//
// Parameters:
//   - size: The side length; must be strictly positive.
//   - seed: The PRNG seed, for reproducible benchmark inputs.
func Random(size int, seed int64) (*Matrix, error) {
	m, err := New(size)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range m.data {
		m.data[i] = float64(rng.Intn(10))
	}
	return m, nil
}

// Size returns the side length of the matrix.
func (m *Matrix) Size() int { return m.size }

// At returns the element at row i, column j.
//
// Returns:
//   - float64: The element value.
//   - error: ErrOutOfBounds if either index is outside [0, size).
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || j < 0 || i >= m.size || j >= m.size {
		return 0, apperrors.WrapError(apperrors.ErrOutOfBounds,
			"index (%d,%d) outside %dx%d matrix", i, j, m.size, m.size)
	}
	return m.data[i*m.size+j], nil
}

// Set assigns the element at row i, column j. It exists for callers that
// build matrices incrementally (e.g., the file reader); algorithm code never
// mutates an existing matrix except through Merge.
//
// Returns:
//   - error: ErrOutOfBounds if either index is outside [0, size).
func (m *Matrix) Set(i, j int, v float64) error {
	if i < 0 || j < 0 || i >= m.size || j >= m.size {
		return apperrors.WrapError(apperrors.ErrOutOfBounds,
			"index (%d,%d) outside %dx%d matrix", i, j, m.size, m.size)
	}
	m.data[i*m.size+j] = v
	return nil
}

// Value returns the element at row i, column j without bounds checking.
// It is the hot-path accessor for the multiplication loops, where indices
// are guaranteed valid by construction; external callers should prefer At.
func (m *Matrix) Value(i, j int) float64 { return m.data[i*m.size+j] }

// SetValue assigns the element at row i, column j without bounds checking.
// Hot-path counterpart of Set, used when filling freshly allocated results.
func (m *Matrix) SetValue(i, j int, v float64) { m.data[i*m.size+j] = v }

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{size: m.size, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

// Rows returns the matrix values as a freshly allocated 2D slice.
func (m *Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.size)
	for i := 0; i < m.size; i++ {
		rows[i] = make([]float64, m.size)
		copy(rows[i], m.data[i*m.size:(i+1)*m.size])
	}
	return rows
}

// IsZero reports whether every element of the matrix is exactly zero.
func (m *Matrix) IsZero() bool {
	for _, v := range m.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether two matrices have the same size and exactly equal
// elements. For integral inputs this is the correct comparison; use
// EqualWithin for values carrying floating-point rounding.
func Equal(a, b *Matrix) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.size != b.size {
		return false
	}
	for i, v := range a.data {
		if v != b.data[i] {
			return false
		}
	}
	return true
}

// EqualWithin reports whether two matrices have the same size and elementwise
// differences no larger than eps.
func EqualWithin(a, b *Matrix, eps float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.size != b.size {
		return false
	}
	for i, v := range a.data {
		if math.Abs(v-b.data[i]) > eps {
			return false
		}
	}
	return true
}

// IsPowerOfTwo reports whether n is 2^k for some non-negative integer k.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// String renders the matrix row by row, for verbose reporting and debugging.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.size; i++ {
		for j := 0; j < m.size; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.size+j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
