package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prototool",
	Short: "Generates and synchronizes the meeting protocols of the student council",
	Long: `prototool fetches the next Sitzung from the council API, renders the Protokoll
skeleton and stores it in the Hugo content tree, the clipboard or the pad.
Edited protocols are imported back from the clipboard or the pad.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
// The first SIGINT or SIGTERM cancels the command's context, aborting fetches and prompts.
func Execute() {
	ctx := lifecycle.NewSignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	ctx.Stop()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError prints err and, when it wraps something, the deepest cause on its own line.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if cause := rootCause(err); cause != err {
		fmt.Fprintf(os.Stderr, "caused by: %v\n", cause)
	}
}

func rootCause(err error) error {
	for {
		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			errs := x.Unwrap()
			if len(errs) == 0 {
				return err
			}
			err = errs[len(errs)-1]
		default:
			next := errors.Unwrap(err)
			if next == nil {
				return err
			}
			err = next
		}
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
