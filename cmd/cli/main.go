package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/maxsalles/mx/internal/app"
	"github.com/maxsalles/mx/internal/cli"
	"github.com/maxsalles/mx/internal/hcl_adapter"
)

// main is the entrypoint for the mx application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	mx, err := app.NewApp(outW, logW, appConfig, hcl_adapter.NewLoader())
	if err != nil {
		return err
	}

	return mx.Run(context.Background())
}
