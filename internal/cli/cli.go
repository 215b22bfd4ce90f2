// Package cli translates command-line arguments into an application
// configuration.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/pathweaver/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("pathweaver", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
PathWeaver - configuration-driven path and file-name resolution.

Usage:
  pathweaver [options] COMMAND [ARGS...]

Commands:
  validate                 Check the configuration documents for problems.
  path KEY [k=v ...]       Resolve a file template into a concrete path.
  context [k=v ...]        Print the merged resolution context.
  debug KEY [k=v ...]      Resolve a template with per-placeholder tracing.
  ensure-dirs              Create every directory the paths document names.
  scan OUT [PATTERN ...]   Write a manifest CSV of matching project files.

Options:
`)
		flagSet.PrintDefaults()
	}

	configDirFlag := flagSet.String("config-dir", "config", "Directory holding paths.yaml, params.yaml and files.yaml.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	strictFlag := flagSet.Bool("strict", false, "Treat unresolved placeholders as errors instead of leaving them verbatim.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Command:   flagSet.Arg(0),
		Args:      flagSet.Args()[1:],
		ConfigDir: *configDirFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Strict:    *strictFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
