package matrix

import (
	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
)

// Add returns the elementwise sum of two same-size matrices.
//
// Parameters:
//   - a: The first operand.
//   - b: The second operand.
//
// Returns:
//   - *Matrix: A new matrix holding a + b.
//   - error: ErrNilOperand if an operand is absent, ErrDimensionMismatch if
//     the sizes disagree.
func Add(a, b *Matrix) (*Matrix, error) {
	if err := checkOperands(a, b); err != nil {
		return nil, err
	}
	out := &Matrix{size: a.size, data: make([]float64, len(a.data))}
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out, nil
}

// Sub returns the elementwise difference a − b of two same-size matrices.
//
// Returns:
//   - *Matrix: A new matrix holding a − b.
//   - error: ErrNilOperand if an operand is absent, ErrDimensionMismatch if
//     the sizes disagree.
func Sub(a, b *Matrix) (*Matrix, error) {
	if err := checkOperands(a, b); err != nil {
		return nil, err
	}
	out := &Matrix{size: a.size, data: make([]float64, len(a.data))}
	for i := range a.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out, nil
}

// Split extracts a newSize×newSize quadrant of src starting at the given
// row and column offsets. The returned submatrix is an independent copy;
// later operations on it never alias the parent.
//
// Parameters:
//   - src: The parent matrix.
//   - rowOff, colOff: The top-left corner of the window.
//   - newSize: The side length of the extracted quadrant.
//
// Returns:
//   - *Matrix: The extracted quadrant.
//   - error: ErrNilOperand if src is absent, ErrInvalidSize if newSize is
//     not positive, ErrOutOfBounds if the window exceeds the parent.
func Split(src *Matrix, rowOff, colOff, newSize int) (*Matrix, error) {
	if src == nil {
		return nil, apperrors.WrapError(apperrors.ErrNilOperand, "split source")
	}
	if newSize <= 0 {
		return nil, apperrors.WrapError(apperrors.ErrInvalidSize, "split size %d", newSize)
	}
	if rowOff < 0 || colOff < 0 || rowOff+newSize > src.size || colOff+newSize > src.size {
		return nil, apperrors.WrapError(apperrors.ErrOutOfBounds,
			"split window (%d,%d)+%d exceeds %dx%d parent", rowOff, colOff, newSize, src.size, src.size)
	}
	out := &Matrix{size: newSize, data: make([]float64, newSize*newSize)}
	for i := 0; i < newSize; i++ {
		srcRow := (rowOff + i) * src.size
		copy(out.data[i*newSize:(i+1)*newSize], src.data[srcRow+colOff:srcRow+colOff+newSize])
	}
	return out, nil
}

// Merge writes sub into dst at the given row and column offsets, overwriting
// in place. This is the only mutating operation in the package; it exists so
// quadrant assembly can fill a single pre-allocated result buffer instead of
// allocating intermediate copies.
//
// Parameters:
//   - dst: The pre-allocated target matrix (mutated).
//   - sub: The quadrant to write.
//   - rowOff, colOff: The top-left corner of the destination window.
//
// Returns:
//   - error: ErrNilOperand if either matrix is absent, ErrOutOfBounds if the
//     quadrant does not fit inside dst at the given offsets.
func Merge(dst, sub *Matrix, rowOff, colOff int) error {
	if dst == nil || sub == nil {
		return apperrors.WrapError(apperrors.ErrNilOperand, "merge requires both target and submatrix")
	}
	if rowOff < 0 || colOff < 0 || rowOff+sub.size > dst.size || colOff+sub.size > dst.size {
		return apperrors.WrapError(apperrors.ErrOutOfBounds,
			"merge window (%d,%d)+%d exceeds %dx%d target", rowOff, colOff, sub.size, dst.size, dst.size)
	}
	for i := 0; i < sub.size; i++ {
		dstRow := (rowOff + i) * dst.size
		copy(dst.data[dstRow+colOff:dstRow+colOff+sub.size], sub.data[i*sub.size:(i+1)*sub.size])
	}
	return nil
}

// checkOperands validates the common preconditions of the elementwise
// operations: both operands present and of equal size.
func checkOperands(a, b *Matrix) error {
	if a == nil || b == nil {
		return apperrors.WrapError(apperrors.ErrNilOperand, "elementwise operation")
	}
	if a.size != b.size {
		return apperrors.WrapError(apperrors.ErrDimensionMismatch, "%d vs %d", a.size, b.size)
	}
	return nil
}
