package algorithms

import (
	"errors"
	"testing"

	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
	"github.com/SecondBook5/MatrixMultiplication/internal/metrics"
)

func TestStrassenMultiply(t *testing.T) {
	t.Parallel()

	t.Run("1x1 base case", func(t *testing.T) {
		t.Parallel()
		a := mustFromRows(t, [][]float64{{3}})
		b := mustFromRows(t, [][]float64{{7}})
		mc := metrics.NewCollector()
		got, err := Strassen{}.Multiply(a, b, mc, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if got.Value(0, 0) != 21 {
			t.Errorf("1x1 product = %g, want 21", got.Value(0, 0))
		}
		if count := mc.MultiplicationCount(); count != 1 {
			t.Errorf("count = %d, want 1", count)
		}
	})

	t.Run("2x2 fixture", func(t *testing.T) {
		t.Parallel()
		a := mustFromRows(t, [][]float64{{1, 2}, {3, 4}})
		b := mustFromRows(t, [][]float64{{5, 6}, {7, 8}})
		want := mustFromRows(t, [][]float64{{19, 22}, {43, 50}})

		mc := metrics.NewCollector()
		got, err := Strassen{}.Multiply(a, b, mc, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if !matrix.Equal(got, want) {
			t.Errorf("product = \n%v want \n%v", got, want)
		}
		if count := mc.MultiplicationCount(); count != 7 {
			t.Errorf("count = %d, want 7 (one Strassen frame)", count)
		}
	})

	t.Run("count follows the seven-power law", func(t *testing.T) {
		t.Parallel()
		// 7^log2(n): n=4 → 49, n=8 → 343, n=16 → 2401.
		for _, tc := range []struct {
			n    int
			want int64
		}{{4, 49}, {8, 343}, {16, 2401}} {
			a, _ := matrix.Random(tc.n, int64(tc.n))
			b, _ := matrix.Random(tc.n, int64(tc.n)+1)
			mc := metrics.NewCollector()
			if _, err := (Strassen{}).Multiply(a, b, mc, Options{}); err != nil {
				t.Fatalf("n=%d: %v", tc.n, err)
			}
			if got := mc.MultiplicationCount(); got != tc.want {
				t.Errorf("n=%d: count = %d, want %d", tc.n, got, tc.want)
			}
		}
	})

	t.Run("beats the naive count at 8x8", func(t *testing.T) {
		t.Parallel()
		a, _ := matrix.Random(8, 1)
		b, _ := matrix.Random(8, 2)

		naiveMC := metrics.NewCollector()
		strassenMC := metrics.NewCollector()
		naiveProduct, err := Naive{}.Multiply(a, b, naiveMC, Options{})
		if err != nil {
			t.Fatal(err)
		}
		strassenProduct, err := Strassen{}.Multiply(a, b, strassenMC, Options{})
		if err != nil {
			t.Fatal(err)
		}

		if !matrix.Equal(naiveProduct, strassenProduct) {
			t.Error("algorithms disagree on integer inputs")
		}
		if naiveMC.MultiplicationCount() != 512 {
			t.Errorf("naive count = %d, want 512", naiveMC.MultiplicationCount())
		}
		if strassenMC.MultiplicationCount() != 343 {
			t.Errorf("strassen count = %d, want 343", strassenMC.MultiplicationCount())
		}
	})

	t.Run("identity is neutral", func(t *testing.T) {
		t.Parallel()
		a, _ := matrix.Random(8, 5)
		id, _ := matrix.Identity(8)
		got, err := Strassen{}.Multiply(a, id, metrics.NewCollector(), Options{})
		if err != nil {
			t.Fatal(err)
		}
		if !matrix.Equal(got, a) {
			t.Error("A·I should equal A")
		}
	})

	t.Run("rejects non-power-of-two sizes", func(t *testing.T) {
		t.Parallel()
		a, _ := matrix.Random(3, 1)
		b, _ := matrix.Random(3, 2)
		if _, err := (Strassen{}).Multiply(a, b, nil, Options{}); !errors.Is(err, apperrors.ErrInvalidSize) {
			t.Errorf("size-3 error = %v, want ErrInvalidSize", err)
		}
	})

	t.Run("validates operands", func(t *testing.T) {
		t.Parallel()
		a, _ := matrix.New(2)
		small, _ := matrix.New(1)
		if _, err := (Strassen{}).Multiply(a, small, nil, Options{}); !errors.Is(err, apperrors.ErrDimensionMismatch) {
			t.Errorf("size mismatch error = %v, want ErrDimensionMismatch", err)
		}
		if _, err := (Strassen{}).Multiply(nil, a, nil, Options{}); !errors.Is(err, apperrors.ErrNilOperand) {
			t.Errorf("nil operand error = %v, want ErrNilOperand", err)
		}
	})
}

// The parallel path must be referentially transparent: identical product and
// identical multiplication count, whatever the threshold.
func TestStrassenParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	a, _ := matrix.Random(16, 11)
	b, _ := matrix.Random(16, 12)

	seqMC := metrics.NewCollector()
	seq, err := Strassen{}.Multiply(a, b, seqMC, Options{})
	if err != nil {
		t.Fatal(err)
	}

	for _, threshold := range []int{1, 2, 4, 8} {
		parMC := metrics.NewCollector()
		par, err := Strassen{}.Multiply(a, b, parMC, Options{Parallel: true, ParallelThreshold: threshold})
		if err != nil {
			t.Fatalf("threshold %d: %v", threshold, err)
		}
		if !matrix.Equal(seq, par) {
			t.Errorf("threshold %d: parallel product differs from sequential", threshold)
		}
		if seqMC.MultiplicationCount() != parMC.MultiplicationCount() {
			t.Errorf("threshold %d: parallel count %d differs from sequential %d",
				threshold, parMC.MultiplicationCount(), seqMC.MultiplicationCount())
		}
	}
}

func TestStrassenZeroSkip(t *testing.T) {
	t.Parallel()

	zero, _ := matrix.New(8)
	dense, _ := matrix.Random(8, 1)

	mc := metrics.NewCollector()
	got, err := Strassen{}.Multiply(dense, zero, mc, Options{ZeroSkip: true})
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Error("short-circuited product should be the zero matrix")
	}
	if count := mc.MultiplicationCount(); count != 0 {
		t.Errorf("short-circuited count = %d, want 0", count)
	}

	// Without the flag the full 7^k count is preserved even for zero inputs.
	mc2 := metrics.NewCollector()
	if _, err := (Strassen{}).Multiply(dense, zero, mc2, Options{}); err != nil {
		t.Fatal(err)
	}
	if count := mc2.MultiplicationCount(); count != 343 {
		t.Errorf("full count = %d, want 343", count)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("known names", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"naive", "strassen", "winograd"} {
			m, err := New(name)
			if err != nil {
				t.Errorf("New(%q) returned error: %v", name, err)
				continue
			}
			if m.Name() == "" {
				t.Errorf("New(%q).Name() is empty", name)
			}
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		if _, err := New("gauss"); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("New(unknown) error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("names are sorted", func(t *testing.T) {
		t.Parallel()
		names := Names()
		want := []string{"naive", "strassen", "winograd"}
		if len(names) != len(want) {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
			}
		}
	})
}
