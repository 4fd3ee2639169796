package compare

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// RenderTable writes the performance records as an aligned text table with
// one row per processed pair, followed by the fitted complexity constants
// for each algorithm. It writes plain text only; coloring is the caller's
// concern.
//
// Parameters:
//   - w: The destination writer.
//   - records: The records to render, in processing order.
//
// Returns:
//   - error: A write or flush failure.
func RenderTable(w io.Writer, records []PerformanceRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No performance data available.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Matrix n\tNaive Time (ms)\tNaive Count\tStrassen Time (ms)\tStrassen Count")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\n",
			r.Size, r.NaiveTimeMs, r.NaiveMultiplications, r.StrassenTimeMs, r.StrassenMultiplications)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	cNaive := FitConstant(NaiveSamples(records), ExponentNaive)
	cStrassen := FitConstant(StrassenSamples(records), ExponentStrassen)
	_, err := fmt.Fprintf(w, "\nLeast-squares fit: naive T(n) ≈ %.3e·n^%.1f, strassen T(n) ≈ %.3e·n^%.3f\n",
		cNaive, ExponentNaive, cStrassen, ExponentStrassen)
	return err
}

// RenderCSV returns the records in CSV form for spreadsheet consumption.
func RenderCSV(records []PerformanceRecord) string {
	var sb strings.Builder
	sb.WriteString("n,naiveTimeMs,naiveMultiplications,strassenTimeMs,strassenMultiplications\n")
	for _, r := range records {
		fmt.Fprintf(&sb, "%d,%d,%d,%d,%d\n",
			r.Size, r.NaiveTimeMs, r.NaiveMultiplications, r.StrassenTimeMs, r.StrassenMultiplications)
	}
	return sb.String()
}
