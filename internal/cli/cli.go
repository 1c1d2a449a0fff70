package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/maxsalles/mx/internal/app"
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

// listFlag collects a flag given several times or as a comma-separated list.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(s string) error {
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mx", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mx - Reports the options that attribute-driven aspects read from markup.

Usage:
  mx [options] MARKUP_PATH...

Arguments:
  MARKUP_PATH
    Path to an .html file or a directory containing .html files.

Options:
`)
		flagSet.PrintDefaults()
	}

	var configPaths, resourcePaths, aspects listFlag
	flagSet.Var(&configPaths, "config", "HCL configuration file or directory. May be repeated.")
	flagSet.Var(&resourcePaths, "resources", "Resource file or directory (.hcl, .json, .yaml, .yml). May be repeated.")
	flagSet.Var(&aspects, "aspects", "Comma-separated aspect names, added to the configured ones.")
	prefixFlag := flagSet.String("prefix", "", "Attribute prefix. Overrides the configured one (default \"mx\").")
	selectFlag := flagSet.String("select", "", "Only mount the subtrees matching this CSS selector.")
	outputFlag := flagSet.String("output", app.OutputJSON, "Report format. Options: 'json' or 'text'.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := flagSet.Args()
	if len(paths) == 0 {
		slog.Debug("No markup path provided, printing usage and exiting.")
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
		MarkupPaths:   paths,
		ConfigPaths:   configPaths,
		ResourcePaths: resourcePaths,
		Prefix:        *prefixFlag,
		Aspects:       aspects,
		Selector:      *selectFlag,
		Output:        strings.ToLower(*outputFlag),
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
