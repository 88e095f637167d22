package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/scaffgo/internal/app"
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
	flagSet := flag.NewFlagSet("scaffgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
ScaffGo - A declarative, plan-driven project generator.

Usage:
  scaffgo [options] [GENOME_PATH]

Arguments:
  GENOME_PATH
    Path to the genome .hcl file describing the project to generate.

Options:
`)
		flagSet.PrintDefaults()
	}

	genomeFlag := flagSet.String("genome", "", "Path to the genome file.")
	gFlag := flagSet.String("g", "", "Path to the genome file (shorthand).")
	outFlag := flagSet.String("out", ".", "Directory the project is generated into.")
	modulesPathFlag := flagSet.String("modules-path", "modules", "Path to the directory containing module manifests.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *genomeFlag != "" {
		path = *genomeFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Genome path determined.", "path", path)

	if path == "" {
		slog.Debug("No genome path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	// Log-format and log-level validation lives in app.NewConfig.
	config, err := app.NewConfig(app.Config{
		GenomePath:  path,
		ModulesPath: *modulesPathFlag,
		OutputDir:   *outFlag,
		LogFormat:   strings.ToLower(*logFormatFlag),
		LogLevel:    strings.ToLower(*logLevelFlag),
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
