// Package cli builds the command-line presentation of the benchmark: the
// asynchronous progress display while pairs are processed, and the
// formatting of the comparison report.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/SecondBook5/MatrixMultiplication/internal/ui"
)

const (
	// ProgressRefreshRate is the spinner and progress bar refresh interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the character width of the progress bar.
	ProgressBarWidth = 40
)

// Color helpers delegate to the ui package so the CLI stays decoupled from
// theme management.

// ColorReset returns the reset escape code from the active theme.
func ColorReset() string { return ui.ColorReset() }

// ColorRed returns the error color from the active theme.
func ColorRed() string { return ui.ColorRed() }

// ColorGreen returns the success color from the active theme.
func ColorGreen() string { return ui.ColorGreen() }

// ColorYellow returns the warning color from the active theme.
func ColorYellow() string { return ui.ColorYellow() }

// ColorBlue returns the primary color from the active theme.
func ColorBlue() string { return ui.ColorBlue() }

// ColorCyan returns the secondary color from the active theme.
func ColorCyan() string { return ui.ColorCyan() }

// ColorBold returns the bold escape code from the active theme.
func ColorBold() string { return ui.ColorBold() }

// FormatExecutionDuration formats a duration for display: microseconds below
// a millisecond, milliseconds below a second, the default representation
// otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: The formatted duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a real terminal animation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts the spinner library to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner is a package variable so tests can substitute a fake spinner.
var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressBar renders a textual progress bar of the given width.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress drives the spinner and progress bar while the benchmark
// driver works through its pairs. It runs in a dedicated goroutine, reads
// completed-pair counts from progressChan, and refreshes the display on a
// ticker. When the channel closes it prints a persistent 100% line and
// returns.
//
// Parameters:
//   - wg: Signals completion of the display routine.
//   - progressChan: Receives the 1-based count of completed pairs.
//   - totalPairs: The number of pairs in the run.
//   - out: The writer the progress display renders to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan int, totalPairs int, out io.Writer) {
	defer wg.Done()
	if totalPairs <= 0 {
		for range progressChan { // Drain the channel
		}
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	done := 0
	for {
		select {
		case completed, ok := <-progressChan:
			if !ok {
				if !spinnerStopped {
					s.Stop()
					spinnerStopped = true
				}
				bar := progressBar(1.0, ProgressBarWidth)
				fmt.Fprintf(out, "Progress: %6.2f%% [%s] %d/%d pairs\n", 100.0, bar, totalPairs, totalPairs)
				return
			}
			done = completed
		case <-ticker.C:
			progress := float64(done) / float64(totalPairs)
			bar := progressBar(progress, ProgressBarWidth)
			s.UpdateSuffix(fmt.Sprintf(" Progress: %6.2f%% [%s] %d/%d pairs", progress*100, bar, done, totalPairs))
		}
	}
}
