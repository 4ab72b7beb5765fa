// Package cli parses command-line arguments into an application config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/keymapctl/internal/app"
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

const usage = `keymapctl - ZMK keymap maintenance tooling.

Usage:
  keymapctl <command> [options]

Commands:
  validate    Check each keymap for required includes, a keymap node, and
              layers; non-zero exit when any file has an error finding.
  format      Rewrite every binding array into an aligned grid, in place,
              optionally piping through clang-format.
  visualize   Draw the configured keymap to SVG via keymap-drawer.

Run 'keymapctl <command> -h' for the command's options.
`

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return nil, true, nil
	}

	mode := args[0]
	switch mode {
	case "validate", "format", "visualize":
	default:
		fmt.Fprint(output, usage)
		return nil, true, nil
	}

	flagSet := flag.NewFlagSet("keymapctl "+mode, flag.ContinueOnError)
	flagSet.SetOutput(output)

	configFlag := flagSet.String("config", "", "Path to the tool config file. Defaults to keymapctl.hcl when present.")
	keymapDirFlag := flagSet.String("keymap-dir", "", "Directory searched for keymap files, overriding the config file.")
	columnsFlag := flagSet.Int("columns", 0, "Bindings per grid row, overriding the config file.")
	fieldWidthFlag := flagSet.Int("field-width", 0, "Padded width of each grid cell, overriding the config file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
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

	config, err := app.NewConfig(app.Config{
		Mode:       mode,
		ConfigPath: *configFlag,
		KeymapDir:  *keymapDirFlag,
		Columns:    *columnsFlag,
		FieldWidth: *fieldWidthFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
