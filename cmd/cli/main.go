package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/pathweaver/internal/app"
	"github.com/specialistvlad/pathweaver/internal/cli"
	"github.com/specialistvlad/pathweaver/internal/settings"
)

// main is the entrypoint for the pathweaver application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A missing .env is fine; a malformed one is worth surfacing before any
	// task that might read its settings.
	if err := settings.LoadDotenv(); err != nil {
		return err
	}

	pw := app.NewApp(outW, appConfig)
	return pw.Run(context.Background())
}
