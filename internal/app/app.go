// Package app wires the benchmark together: configuration, input loading,
// the comparison driver, progress display and report rendering. It exposes
// a single Run entry point that returns a process exit code.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/SecondBook5/MatrixMultiplication/internal/algorithms"
	"github.com/SecondBook5/MatrixMultiplication/internal/calibration"
	"github.com/SecondBook5/MatrixMultiplication/internal/cli"
	"github.com/SecondBook5/MatrixMultiplication/internal/compare"
	"github.com/SecondBook5/MatrixMultiplication/internal/config"
	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrixio"
	"github.com/SecondBook5/MatrixMultiplication/internal/server"
	"github.com/SecondBook5/MatrixMultiplication/internal/ui"
)

// Application is one configured matrixbench instance.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates an Application by parsing the command-line arguments.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: The configured application.
//   - error: A parsing or validation failure.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "matrixbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, algorithms.Names())
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// IsHelpError reports whether err means --help was requested, so callers can
// exit with success after the usage text.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// Run executes the application in the configured mode and returns the
// process exit code.
//
// Parameters:
//   - ctx: Governs cancellation of the benchmark run.
//   - out: The writer for standard output.
//
// Returns:
//   - int: ExitSuccess, or the exit code describing the failure.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer()
	}
	return a.runBenchmark(ctx, out)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runBenchmark executes the CLI comparison run.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	opts := a.Config.ToOptions()
	if a.Config.AutoCalibrate && a.Config.Parallel && a.Config.ParallelThreshold == 0 {
		opts.ParallelThreshold = a.autoCalibrate(ctx, out)
	}

	pairs, err := a.loadPairs()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Input error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	if len(pairs) == 0 {
		fmt.Fprintln(a.ErrWriter, "Input error: no matrix pairs to benchmark")
		return apperrors.ExitErrorConfig
	}

	driver, err := compare.NewDriver(a.Config.Algo, opts)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet && !a.Config.JSONOutput && !a.Config.CSVOutput {
		cli.PrintExecutionConfig(out, driver.EngineName(), opts.Parallel, opts.ZeroSkip, len(pairs))
	}

	results, runErr := a.runWithProgress(ctx, driver, pairs, out)
	if runErr != nil {
		return a.reportRunError(runErr, results, out)
	}

	return a.render(results, driver.EngineName(), out)
}

// autoCalibrate estimates the fork threshold before the run. Failures fall
// back to the engine default; calibration is best-effort.
func (a *Application) autoCalibrate(ctx context.Context, out io.Writer) int {
	if !a.Config.Quiet {
		fmt.Fprintln(out, "Calibrating parallel threshold...")
	}
	threshold, err := calibration.NewCalibrator().EstimateParallelThreshold(ctx)
	if err != nil {
		return algorithms.DefaultParallelThreshold
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Calibrated parallel threshold: %d\n", threshold)
	}
	return threshold
}

// loadPairs resolves the benchmark inputs: the input file when given,
// seeded random pairs otherwise.
func (a *Application) loadPairs() ([]matrix.Pair, error) {
	if a.Config.InputFile != "" {
		return matrixio.ReadPairsFile(a.Config.InputFile)
	}
	return matrixio.RandomPairs(a.Config.Sizes, a.Config.Seed)
}

// runWithProgress runs the driver with the spinner-based progress display
// attached unless quiet or machine-readable output is requested.
func (a *Application) runWithProgress(ctx context.Context, driver *compare.Driver, pairs []matrix.Pair, out io.Writer) ([]compare.PairResult, error) {
	showProgress := !a.Config.Quiet && !a.Config.JSONOutput && !a.Config.CSVOutput
	if !showProgress {
		return driver.Run(ctx, pairs)
	}

	progressChan := make(chan int, len(pairs))
	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, len(pairs), out)

	driver.Progress = func(done, total int) {
		select {
		case progressChan <- done:
		default:
		}
	}
	results, err := driver.Run(ctx, pairs)
	driver.Progress = nil
	close(progressChan)
	wg.Wait()
	return results, err
}

// reportRunError maps a driver failure to an exit code, rendering whatever
// partial results exist first.
func (a *Application) reportRunError(err error, results []compare.PairResult, out io.Writer) int {
	if len(results) > 0 {
		_ = a.render(results, a.Config.Algo, out)
	}
	if apperrors.IsContextError(err) {
		fmt.Fprintf(a.ErrWriter, "Benchmark interrupted: %v\n", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.ExitErrorTimeout
		}
		return apperrors.ExitErrorCanceled
	}
	fmt.Fprintf(a.ErrWriter, "Benchmark failed: %v\n", err)
	return apperrors.ExitErrorGeneric
}

// render writes the comparison report and maps a product mismatch to its
// dedicated exit code.
func (a *Application) render(results []compare.PairResult, engineName string, out io.Writer) int {
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		JSONOutput: a.Config.JSONOutput,
		CSVOutput:  a.Config.CSVOutput,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		EngineName: engineName,
	}
	if err := cli.RenderComparison(out, results, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Output error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !compare.AllMatch(results) {
		fmt.Fprintf(a.ErrWriter, "Result mismatch: the algorithms disagree on at least one pair\n")
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}
