package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vk/rtdeps/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("rtdeps", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprint(output, `
rtdeps - Resolves the runtime assets a script host loads for its package dependencies.

Usage:
  rtdeps [options] TARGET

Arguments:
  TARGET
    A directory of scripts, a single script file, or a compiled artifact (.dll).
    The dependency graph is read from rtdeps.hcl next to the scripts, or from
    <artifact>.rtdeps.hcl next to a compiled artifact.

Options:
`)
		flagSet.PrintDefaults()
	}

	ridFlag := flagSet.String("rid", "", "Runtime identifier override, e.g. 'linux-musl-x64'. Defaults to '<platform>-<arch>'.")
	platformFlag := flagSet.String("platform", "", "Platform override, e.g. 'win', 'linux', 'osx'.")
	archFlag := flagSet.String("arch", "", "Architecture override, e.g. 'x64', 'arm64'.")
	frameworkFlag := flagSet.String("framework", "", "Target framework used to probe bundled scripts, e.g. 'net8.0'.")
	globalPackagesFlag := flagSet.String("global-packages", "", "Global package store. Defaults to $NUGET_PACKAGES or ~/.nuget/packages.")
	sourcesFlag := flagSet.StringArrayP("source", "s", nil, "Package source the graph was restored from. Repeatable.")
	compiledFlag := flagSet.Bool("compiled", false, "Treat TARGET as a compiled artifact regardless of its extension.")
	outputFlag := flagSet.StringP("output", "o", "yaml", "Report format. Options: 'yaml', 'json' or 'text'.")
	workersFlag := flagSet.Int("workers", 1, "Number of libraries resolved concurrently.")
	metricsFlag := flagSet.String("metrics-textfile", "", "Write resolution metrics in Prometheus text format to this file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'trace', 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No target provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected a single TARGET, got %d", flagSet.NArg())}
	}
	target := flagSet.Arg(0)
	slog.Debug("Target determined.", "target", target)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "trace", "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'trace', 'debug', 'info', 'warn', or 'error'"}
	}

	outputFormat := strings.ToLower(*outputFlag)
	switch outputFormat {
	case app.OutputYAML, app.OutputJSON, app.OutputText:
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid output: must be 'yaml', 'json', or 'text'"}
	}

	if *workersFlag < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be at least 1"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Target:            target,
		Compiled:          *compiledFlag,
		PackageSources:    *sourcesFlag,
		Platform:          *platformFlag,
		Architecture:      *archFlag,
		RuntimeIdentifier: *ridFlag,
		TargetFramework:   *frameworkFlag,
		GlobalPackages:    *globalPackagesFlag,
		OutputFormat:      outputFormat,
		MetricsTextfile:   *metricsFlag,
		LogFormat:         logFormat,
		LogLevel:          logLevel,
		WorkerCount:       *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
