package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/SecondBook5/MatrixMultiplication/internal/algorithms"
	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
)

func testPairs(t *testing.T, sizes ...int) []matrix.Pair {
	t.Helper()
	pairs := make([]matrix.Pair, 0, len(sizes))
	for i, n := range sizes {
		a, err := matrix.Random(n, int64(100+2*i))
		if err != nil {
			t.Fatal(err)
		}
		b, err := matrix.Random(n, int64(101+2*i))
		if err != nil {
			t.Fatal(err)
		}
		pairs = append(pairs, matrix.Pair{A: a, B: b})
	}
	return pairs
}

func TestNewDriver(t *testing.T) {
	t.Parallel()

	t.Run("known engines", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"strassen", "winograd"} {
			d, err := NewDriver(name, algorithms.Options{})
			if err != nil {
				t.Errorf("NewDriver(%q) returned error: %v", name, err)
				continue
			}
			if d.EngineName() == "" {
				t.Errorf("NewDriver(%q).EngineName() is empty", name)
			}
		}
	})

	t.Run("unknown engine", func(t *testing.T) {
		t.Parallel()
		if _, err := NewDriver("coppersmith", algorithms.Options{}); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("NewDriver(unknown) error = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestDriverRun(t *testing.T) {
	t.Parallel()

	t.Run("produces one matching record per pair", func(t *testing.T) {
		t.Parallel()
		driver, err := NewDriver("strassen", algorithms.Options{})
		if err != nil {
			t.Fatal(err)
		}
		pairs := testPairs(t, 2, 4, 8)

		results, err := driver.Run(context.Background(), pairs)
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("len(results) = %d, want 3", len(results))
		}

		wantCounts := map[int]struct{ naive, strassen int64 }{
			2: {8, 7},
			4: {64, 49},
			8: {512, 343},
		}
		for i, res := range results {
			r := res.Record
			if r.Size != pairs[i].A.Size() {
				t.Errorf("result %d: Size = %d, want %d", i, r.Size, pairs[i].A.Size())
			}
			want := wantCounts[r.Size]
			if r.NaiveMultiplications != want.naive {
				t.Errorf("n=%d: naive count = %d, want %d", r.Size, r.NaiveMultiplications, want.naive)
			}
			if r.StrassenMultiplications != want.strassen {
				t.Errorf("n=%d: strassen count = %d, want %d", r.Size, r.StrassenMultiplications, want.strassen)
			}
			if !res.Match {
				t.Errorf("n=%d: products should agree", r.Size)
			}
			if r.NaiveTimeMs < 0 || r.StrassenTimeMs < 0 {
				t.Errorf("n=%d: negative timing", r.Size)
			}
		}
		if !AllMatch(results) {
			t.Error("AllMatch should be true")
		}
	})

	t.Run("winograd engine", func(t *testing.T) {
		t.Parallel()
		driver, err := NewDriver("winograd", algorithms.Options{})
		if err != nil {
			t.Fatal(err)
		}
		results, err := driver.Run(context.Background(), testPairs(t, 4))
		if err != nil {
			t.Fatal(err)
		}
		if results[0].Record.StrassenMultiplications != 49 {
			t.Errorf("winograd count = %d, want 49", results[0].Record.StrassenMultiplications)
		}
		if !results[0].Match {
			t.Error("winograd should agree with naive")
		}
	})

	t.Run("canceled context stops the run", func(t *testing.T) {
		t.Parallel()
		driver, err := NewDriver("strassen", algorithms.Options{})
		if err != nil {
			t.Fatal(err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := driver.Run(ctx, testPairs(t, 2, 4))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run error = %v, want context.Canceled", err)
		}
		if len(results) != 0 {
			t.Errorf("len(results) = %d, want 0 after immediate cancel", len(results))
		}
	})

	t.Run("invalid pair aborts with pair index", func(t *testing.T) {
		t.Parallel()
		driver, err := NewDriver("strassen", algorithms.Options{})
		if err != nil {
			t.Fatal(err)
		}
		a, _ := matrix.Random(3, 1) // not a power of two
		b, _ := matrix.Random(3, 2)
		pairs := append(testPairs(t, 2), matrix.Pair{A: a, B: b})

		results, err := driver.Run(context.Background(), pairs)
		if !errors.Is(err, apperrors.ErrInvalidSize) {
			t.Errorf("Run error = %v, want ErrInvalidSize", err)
		}
		if len(results) != 1 {
			t.Errorf("len(results) = %d, want 1 completed pair", len(results))
		}
	})

	t.Run("progress callback fires per pair", func(t *testing.T) {
		t.Parallel()
		driver, err := NewDriver("strassen", algorithms.Options{})
		if err != nil {
			t.Fatal(err)
		}
		var calls []int
		driver.Progress = func(done, total int) {
			if total != 2 {
				t.Errorf("total = %d, want 2", total)
			}
			calls = append(calls, done)
		}
		if _, err := driver.Run(context.Background(), testPairs(t, 2, 2)); err != nil {
			t.Fatal(err)
		}
		if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
			t.Errorf("progress calls = %v, want [1 2]", calls)
		}
	})
}

func TestRecordsAndAllMatch(t *testing.T) {
	t.Parallel()

	results := []PairResult{
		{Record: PerformanceRecord{Size: 2}, Match: true},
		{Record: PerformanceRecord{Size: 4}, Match: false},
	}
	records := Records(results)
	if len(records) != 2 || records[1].Size != 4 {
		t.Errorf("Records = %v", records)
	}
	if AllMatch(results) {
		t.Error("AllMatch should be false when any pair mismatches")
	}
	if !AllMatch(results[:1]) {
		t.Error("AllMatch should be true for all-matching results")
	}
	if !AllMatch(nil) {
		t.Error("AllMatch of empty results is vacuously true")
	}
}
