package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// applyEnvOverrides reads environment variables and overrides configuration
// values for flags that were not explicitly set on the command line.
// The precedence order is: CLI flag > environment variable > default value.
//
// Supported environment variables (all prefixed with EnvPrefix):
//   - MATRIXBENCH_INPUT: matrix pair input file
//   - MATRIXBENCH_SIZES: comma-separated size list
//   - MATRIXBENCH_ALGO: divide-and-conquer engine name
//   - MATRIXBENCH_PARALLEL: enable fork/join execution ("true"/"false")
//   - MATRIXBENCH_PARALLEL_THRESHOLD: fork threshold (integer)
//   - MATRIXBENCH_ZERO_SKIP: enable zero-matrix short circuit
//   - MATRIXBENCH_SEED: random generator seed (integer)
//   - MATRIXBENCH_TIMEOUT: benchmark timeout (duration, e.g. "2m")
//   - MATRIXBENCH_QUIET: quiet mode ("true"/"false")
//   - MATRIXBENCH_NO_COLOR: disable colors ("true"/"false")
//   - MATRIXBENCH_OUTPUT: report output file
//   - MATRIXBENCH_PORT: server port
func applyEnvOverrides(config *AppConfig, sizesSpec *string, fs *flag.FlagSet) {
	// Track which flags were explicitly set on the command line.
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	if v := os.Getenv(EnvPrefix + "INPUT"); v != "" && !setFlags["input"] && !setFlags["i"] {
		config.InputFile = v
	}
	if v := os.Getenv(EnvPrefix + "SIZES"); v != "" && !setFlags["sizes"] {
		*sizesSpec = v
	}
	if v := os.Getenv(EnvPrefix + "ALGO"); v != "" && !setFlags["algo"] {
		config.Algo = v
	}
	if v := os.Getenv(EnvPrefix + "PARALLEL"); v != "" && !setFlags["parallel"] {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Parallel = b
		}
	}
	if v := os.Getenv(EnvPrefix + "PARALLEL_THRESHOLD"); v != "" && !setFlags["parallel-threshold"] {
		if n, err := strconv.Atoi(v); err == nil {
			config.ParallelThreshold = n
		}
	}
	if v := os.Getenv(EnvPrefix + "ZERO_SKIP"); v != "" && !setFlags["zero-skip"] {
		if b, err := strconv.ParseBool(v); err == nil {
			config.ZeroSkip = b
		}
	}
	if v := os.Getenv(EnvPrefix + "SEED"); v != "" && !setFlags["seed"] {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Seed = n
		}
	}
	if v := os.Getenv(EnvPrefix + "TIMEOUT"); v != "" && !setFlags["timeout"] {
		if d, err := time.ParseDuration(v); err == nil {
			config.Timeout = d
		}
	}
	if v := os.Getenv(EnvPrefix + "QUIET"); v != "" && !setFlags["quiet"] && !setFlags["q"] {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Quiet = b
		}
	}
	if v := os.Getenv(EnvPrefix + "NO_COLOR"); v != "" && !setFlags["no-color"] {
		if b, err := strconv.ParseBool(v); err == nil {
			config.NoColor = b
		}
	}
	// Honor the NO_COLOR convention (https://no-color.org/).
	if os.Getenv("NO_COLOR") != "" {
		config.NoColor = true
	}
	if v := os.Getenv(EnvPrefix + "OUTPUT"); v != "" && !setFlags["output"] && !setFlags["o"] {
		config.OutputFile = v
	}
	if v := os.Getenv(EnvPrefix + "PORT"); v != "" && !setFlags["port"] {
		config.Port = v
	}
}
