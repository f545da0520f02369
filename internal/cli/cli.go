package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aai-institute/mlbench/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// repeatable collects the values of a flag given multiple times.
type repeatable []string

func (r *repeatable) String() string {
	return strings.Join(*r, ",")
}

func (r *repeatable) Set(v string) error {
	*r = append(*r, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mlbench", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mlbench - a benchmark runner for machine learning workloads.

Usage:
  mlbench [options] [MANIFEST_PATH]

Arguments:
  MANIFEST_PATH
    Path to a single .hcl run manifest or a directory containing one.
    Omitted, the run is driven entirely by flags.

Options:
`)
		flagSet.PrintDefaults()
	}

	suiteFlag := flagSet.String("suite", "", "Name of the benchmark suite to run.")
	outputFlag := flagSet.String("o", "", "Destination file for results, e.g. results.json.gz.")
	modeFlag := flagSet.String("context-mode", "", "Context handling on write. Options: 'flatten', 'inline', or 'omit'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var tags, contextVals repeatable
	flagSet.Var(&tags, "t", "Only run benchmarks marked with the given tag. Repeatable.")
	flagSet.Var(&contextVals, "c", "Additional context value of the form <key>=<value>. Repeatable.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	literals := make(map[string]string, len(contextVals))
	for _, pair := range contextVals {
		k, v, found := strings.Cut(pair, "=")
		if !found || k == "" {
			return nil, false, &ExitError{Code: 2, Message: "context values need to be of the form <key>=<value>"}
		}
		literals[k] = v
	}

	config, err := app.NewConfig(app.Config{
		ManifestPath: flagSet.Arg(0),
		Suite:        *suiteFlag,
		Tags:         tags,
		ContextVals:  literals,
		Output:       *outputFlag,
		ContextMode:  *modeFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
