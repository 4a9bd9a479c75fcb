package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/justyntemme/vcparam/internal/cli"
	"github.com/justyntemme/vcparam/internal/ctxlog"
)

// main is the entrypoint for the vcstate tool.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := inv.Config.NewLogger(logW)
	ctx = ctxlog.WithLogger(ctx, logger)

	return inv.Execute(ctx, outW)
}
