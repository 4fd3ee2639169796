// Package matrixio reads matrix pair input files. The format is line
// oriented: a line holding the size n, then n whitespace-separated rows of
// matrix A, then n rows of matrix B; blank lines between pairs are
// ignored and the whole sequence may repeat for any number of pairs.
//
// The reader validates everything it hands out — square shape, row widths,
// numeric tokens — so downstream consumers receive only well-formed pairs.
package matrixio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
)

// ReadPairsFile opens path and reads every matrix pair from it.
func ReadPairsFile(path string) ([]matrix.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()
	pairs, err := ReadPairs(f)
	if err != nil {
		return nil, apperrors.WrapError(err, "%s", path)
	}
	return pairs, nil
}

// ReadPairs reads all (A, B) matrix pairs from r.
//
// Returns:
//   - []matrix.Pair: The parsed pairs, in file order.
//   - error: A parse error naming the offending line, or an I/O error.
func ReadPairs(r io.Reader) ([]matrix.Pair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var pairs []matrix.Pair
	lineNo := 0
	for {
		sizeLine, ok := nextNonBlank(scanner, &lineNo)
		if !ok {
			break
		}
		n, err := strconv.Atoi(sizeLine)
		if err != nil || n <= 0 {
			return nil, apperrors.WrapError(apperrors.ErrInvalidSize,
				"line %d: expected a positive matrix size, got %q", lineNo, sizeLine)
		}

		a, err := readMatrix(scanner, &lineNo, n, "A")
		if err != nil {
			return nil, err
		}
		b, err := readMatrix(scanner, &lineNo, n, "B")
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, matrix.Pair{A: a, B: b})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return pairs, nil
}

// nextNonBlank advances the scanner to the next non-blank line.
func nextNonBlank(scanner *bufio.Scanner, lineNo *int) (string, bool) {
	for scanner.Scan() {
		*lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

// readMatrix reads the next n rows as an n×n matrix.
func readMatrix(scanner *bufio.Scanner, lineNo *int, n int, name string) (*matrix.Matrix, error) {
	rows := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		line, ok := nextNonBlank(scanner, lineNo)
		if !ok {
			return nil, fmt.Errorf("unexpected end of input while reading row %d of matrix %s", i+1, name)
		}
		tokens := strings.Fields(line)
		if len(tokens) != n {
			return nil, apperrors.WrapError(apperrors.ErrDimensionMismatch,
				"line %d: row %d of matrix %s has %d columns, want %d", *lineNo, i+1, name, len(tokens), n)
		}
		row := make([]float64, n)
		for j, tok := range tokens {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, apperrors.WrapError(apperrors.ErrInvalidArgument,
					"line %d: matrix %s row %d: invalid number %q", *lineNo, name, i+1, tok)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return matrix.FromRows(rows)
}

// RandomPairs generates one seeded random integer-valued pair per requested
// size, in order. It is the input source for benchmark runs without an
// input file.
func RandomPairs(sizes []int, seed int64) ([]matrix.Pair, error) {
	pairs := make([]matrix.Pair, 0, len(sizes))
	for i, n := range sizes {
		a, err := matrix.Random(n, seed+int64(2*i))
		if err != nil {
			return nil, err
		}
		b, err := matrix.Random(n, seed+int64(2*i)+1)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, matrix.Pair{A: a, B: b})
	}
	return pairs, nil
}
