package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/animaut/internal/cli"
	"github.com/matzehuels/animaut/pkg/errors"
)

// Exit codes.
const (
	exitFailure   = 1
	exitUsage     = 2   // invalid input, missing files
	exitInterrupt = 130 // SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		code := exitCode(err)
		if code != exitInterrupt {
			fmt.Fprintln(os.Stderr, "error:", errors.UserMessage(err))
		}
		os.Exit(code)
	}
}

func exitCode(err error) int {
	switch {
	case stderrors.Is(err, context.Canceled):
		return exitInterrupt
	case errors.IsInvalid(err), errors.Is(err, errors.ErrCodeFileNotFound):
		return exitUsage
	default:
		return exitFailure
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Flags are parsed by the time PersistentPreRunE runs, so the level is
	// applied there, before config loading logs anything.
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if loadConfig != nil {
			return loadConfig(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
