// Package cli provides output utilities for rendering and exporting the
// comparison report.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SecondBook5/MatrixMultiplication/internal/compare"
)

// OutputConfig holds the presentation settings for the comparison report.
type OutputConfig struct {
	// OutputFile is the path to additionally save the report (empty for
	// terminal output only).
	OutputFile string
	// JSONOutput emits the records as JSON instead of a table.
	JSONOutput bool
	// CSVOutput emits the records as CSV instead of a table.
	CSVOutput bool
	// Quiet suppresses headers, footers and verification notes.
	Quiet bool
	// Verbose prints the operands and products of each pair.
	Verbose bool
	// EngineName is the display name of the divide-and-conquer engine.
	EngineName string
}

// PrintExecutionConfig prints a short header describing the run: the engine,
// the execution mode and the pair count. Suppressed in quiet mode.
//
// Parameters:
//   - out: The output writer.
//   - engineName: The display name of the engine.
//   - parallel: Whether fork/join execution is enabled.
//   - zeroSkip: Whether the zero-matrix short circuit is enabled.
//   - pairCount: The number of pairs to process.
func PrintExecutionConfig(out io.Writer, engineName string, parallel, zeroSkip bool, pairCount int) {
	mode := "sequential"
	if parallel {
		mode = "parallel"
	}
	fmt.Fprintf(out, "%sBenchmark:%s Naive (O(n^3)) vs %s%s%s | mode: %s%s%s | zero-skip: %v | pairs: %s%d%s\n",
		ColorBold(), ColorReset(),
		ColorBlue(), engineName, ColorReset(),
		ColorCyan(), mode, ColorReset(),
		zeroSkip,
		ColorCyan(), pairCount, ColorReset())
}

// RenderComparison renders the full comparison report in the configured
// format. The table format appends the least-squares complexity constants;
// JSON and CSV emit the raw records only.
//
// Parameters:
//   - out: The output writer.
//   - results: The per-pair outcomes from the driver.
//   - config: The presentation settings.
//
// Returns:
//   - error: A rendering or file-save failure.
func RenderComparison(out io.Writer, results []compare.PairResult, config OutputConfig) error {
	records := compare.Records(results)

	var report string
	switch {
	case config.JSONOutput:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal records: %w", err)
		}
		report = string(data) + "\n"
		fmt.Fprint(out, report)
	case config.CSVOutput:
		report = compare.RenderCSV(records)
		fmt.Fprint(out, report)
	default:
		var sb strings.Builder
		if err := compare.RenderTable(&sb, records); err != nil {
			return err
		}
		report = sb.String()
		fmt.Fprint(out, report)
		if !config.Quiet {
			printVerification(out, results)
		}
	}

	if config.Verbose && !config.JSONOutput && !config.CSVOutput {
		printPairDetails(out, results, config.EngineName)
	}

	if config.OutputFile != "" {
		if err := writeReportToFile(config.OutputFile, config.EngineName, report); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%sReport saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}
	return nil
}

// printVerification prints one line per pair stating whether the two
// algorithms produced the same product.
func printVerification(out io.Writer, results []compare.PairResult) {
	fmt.Fprintln(out)
	for i, res := range results {
		if res.Match {
			fmt.Fprintf(out, "%s✓%s pair %d (n=%d): products agree\n",
				ColorGreen(), ColorReset(), i+1, res.Record.Size)
		} else {
			fmt.Fprintf(out, "%s✗ pair %d (n=%d): PRODUCTS DIFFER%s\n",
				ColorRed(), i+1, res.Record.Size, ColorReset())
		}
	}
}

// printPairDetails prints the products of each pair. Intended for small
// matrices; large products make for a noisy terminal, which is the user's
// choice with -v.
func printPairDetails(out io.Writer, results []compare.PairResult, engineName string) {
	for i, res := range results {
		fmt.Fprintf(out, "\n%s--- Pair %d (n=%d) ---%s\n", ColorBold(), i+1, res.Record.Size, ColorReset())
		fmt.Fprintf(out, "Naive product:\n%s\n", res.NaiveProduct)
		fmt.Fprintf(out, "%s product:\n%s\n", engineName, res.EngineProduct)
	}
}

// writeReportToFile saves the rendered report with a small header.
func writeReportToFile(path, engineName, report string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Matrix Multiplication Benchmark Report\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Engine: %s\n", engineName)
	fmt.Fprintf(file, "\n")
	_, err = fmt.Fprint(file, report)
	return err
}
