package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SecondBook5/MatrixMultiplication/internal/compare"
	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
)

func TestNew(t *testing.T) {
	t.Run("valid arguments", func(t *testing.T) {
		a, err := New([]string{"matrixbench", "-sizes", "2,4"}, os.Stderr)
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}
		if a.Config.Sizes[0] != 2 {
			t.Errorf("Sizes = %v", a.Config.Sizes)
		}
	})

	t.Run("invalid arguments", func(t *testing.T) {
		var errOut strings.Builder
		if _, err := New([]string{"matrixbench", "-algo", "gauss"}, &errOut); err == nil {
			t.Error("unknown algorithm should fail")
		}
	})

	t.Run("help is recognizable", func(t *testing.T) {
		var errOut strings.Builder
		_, err := New([]string{"matrixbench", "-h"}, &errOut)
		if err == nil || !IsHelpError(err) {
			t.Errorf("-h error = %v, want flag.ErrHelp", err)
		}
	})
}

func TestRunCSV(t *testing.T) {
	var errOut strings.Builder
	a, err := New([]string{"matrixbench", "-sizes", "2,4", "-csv", "-q", "-no-color"}, &errOut)
	if err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut.String())
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("CSV lines = %d, want header + 2 rows:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[1], "2,") || !strings.HasPrefix(lines[2], "4,") {
		t.Errorf("rows = %v", lines[1:])
	}
}

func TestRunJSON(t *testing.T) {
	a, err := New([]string{"matrixbench", "-sizes", "2", "-json", "-q", "-algo", "winograd"}, os.Stderr)
	if err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}

	var records []compare.PerformanceRecord
	if err := json.Unmarshal([]byte(out.String()), &records); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(records) != 1 || records[0].Size != 2 || records[0].StrassenMultiplications != 7 {
		t.Errorf("records = %+v", records)
	}
}

func TestRunFromInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")
	content := "2\n1 2\n3 4\n5 6\n7 8\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := New([]string{"matrixbench", "-input", path, "-csv", "-q"}, os.Stderr)
	if err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "2,") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunMissingInputFile(t *testing.T) {
	var errOut strings.Builder
	a, err := New([]string{"matrixbench", "-input", filepath.Join(t.TempDir(), "absent.txt"), "-q"}, &errOut)
	if err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errOut.String(), "Input error") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestRunMalformedInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("not-a-size\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var errOut strings.Builder
	a, err := New([]string{"matrixbench", "-input", path, "-q"}, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRunCanceledContext(t *testing.T) {
	var errOut strings.Builder
	a, err := New([]string{"matrixbench", "-sizes", "2", "-q"}, &errOut)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRunSavesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	a, err := New([]string{"matrixbench", "-sizes", "2", "-csv", "-q", "-o", path}, os.Stderr)
	if err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not saved: %v", err)
	}
	if !strings.Contains(string(data), "naiveMultiplications") {
		t.Errorf("saved report = %q", string(data))
	}
}

func TestRunParallelEngine(t *testing.T) {
	a, err := New([]string{"matrixbench", "-sizes", "8", "-parallel", "-parallel-threshold", "2", "-csv", "-q"}, os.Stderr)
	if err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "8,") {
		t.Errorf("output = %q", out.String())
	}
}
