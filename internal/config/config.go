// Package config provides the configuration management for the matrixbench
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SecondBook5/MatrixMultiplication/internal/algorithms"
	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
)

const (
	// EnvPrefix is the prefix for all environment variables used by
	// matrixbench. Environment variables provide an alternative to CLI
	// flags for configuration, following the 12-Factor App methodology.
	EnvPrefix = "MATRIXBENCH_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultSizes is the default benchmark size list when no input file
	// is supplied.
	DefaultSizes = "2,4,8,16,32,64"
	// DefaultAlgo is the default divide-and-conquer engine.
	DefaultAlgo = "strassen"
	// DefaultTimeout is the default benchmark run timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultSeed seeds the random pair generator for reproducible runs.
	DefaultSeed int64 = 42
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the benchmark inputs to performance-tuning parameters.
type AppConfig struct {
	// InputFile is the matrix pair file to benchmark. When empty, random
	// pairs are generated for the sizes in Sizes.
	InputFile string
	// Sizes lists the power-of-two matrix sizes for random benchmark mode.
	Sizes []int
	// Algo selects the divide-and-conquer engine ("strassen" or "winograd").
	Algo string
	// Parallel enables the fork/join execution model in the engine.
	Parallel bool
	// ParallelThreshold is the submatrix size above which recursive
	// products fork. Zero selects the engine default.
	ParallelThreshold int
	// ZeroSkip enables the zero-matrix short circuit in every algorithm.
	ZeroSkip bool
	// Seed seeds the random pair generator.
	Seed int64
	// Timeout bounds the whole benchmark run.
	Timeout time.Duration
	// Verbose, if true, prints each pair's operands and products.
	Verbose bool
	// JSONOutput, if true, emits the records as JSON instead of a table.
	JSONOutput bool
	// CSVOutput, if true, emits the records as CSV instead of a table.
	CSVOutput bool
	// Quiet suppresses progress and informational output for scripting.
	Quiet bool
	// NoColor disables colored output (also respects NO_COLOR env var).
	NoColor bool
	// OutputFile, if set, additionally saves the rendered report there.
	OutputFile string
	// AutoCalibrate runs a short parallel-threshold calibration at startup.
	AutoCalibrate bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
}

// ToOptions converts the application configuration into algorithm options
// for use by the multipliers.
func (c AppConfig) ToOptions() algorithms.Options {
	return algorithms.Options{
		Parallel:          c.Parallel,
		ParallelThreshold: c.ParallelThreshold,
		ZeroSkip:          c.ZeroSkip,
	}
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen engine is supported.
//
// Parameters:
//   - availableAlgos: A slice of strings listing the valid engine names.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.ParallelThreshold < 0 {
		return apperrors.NewConfigError("parallel threshold cannot be negative: %d", c.ParallelThreshold)
	}
	if c.InputFile == "" {
		if len(c.Sizes) == 0 {
			return apperrors.NewConfigError("either an input file or a size list is required")
		}
		for _, n := range c.Sizes {
			if !matrix.IsPowerOfTwo(n) {
				return apperrors.NewConfigError("benchmark size %d is not a power of two", n)
			}
		}
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: [%s]",
			c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseSizes parses a comma-separated size list ("2,4,8") into integers.
//
// Returns:
//   - []int: The parsed sizes.
//   - error: A ConfigError naming the first invalid entry.
func ParseSizes(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	parts := strings.Split(spec, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, apperrors.NewConfigError("invalid size %q in size list", strings.TrimSpace(p))
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableAlgos: A slice of valid engine names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Divide-and-conquer engine: one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	var sizesSpec string
	fs.StringVar(&config.InputFile, "input", "", "Matrix pair input file (size line, n rows of A, n rows of B, repeated).")
	fs.StringVar(&config.InputFile, "i", "", "Matrix pair input file (shorthand).")
	fs.StringVar(&sizesSpec, "sizes", DefaultSizes, "Comma-separated power-of-two sizes for random benchmark mode.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.BoolVar(&config.Parallel, "parallel", false, "Fork the seven recursive products above the parallel threshold.")
	fs.IntVar(&config.ParallelThreshold, "parallel-threshold", 0, "Submatrix size above which recursion forks (0 = engine default).")
	fs.BoolVar(&config.ZeroSkip, "zero-skip", false, "Short-circuit multiplications by an all-zero operand (reports 0 multiplications).")
	fs.Int64Var(&config.Seed, "seed", DefaultSeed, "Seed for random benchmark inputs.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the benchmark run.")
	fs.BoolVar(&config.Verbose, "v", false, "Print each pair's operands and products.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output records in JSON format.")
	fs.BoolVar(&config.CSVOutput, "csv", false, "Output records in CSV format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the rendered report.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.AutoCalibrate, "auto-calibrate", false, "Calibrate the parallel threshold at startup (adds load time).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set.
	applyEnvOverrides(&config, &sizesSpec, fs)

	sizes, err := ParseSizes(sizesSpec)
	if err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, errors.New("invalid configuration")
	}
	config.Sizes = sizes

	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
