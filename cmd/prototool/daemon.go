package main

import (
	"context"
	"os"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/fscs/prototool/pkg/adapters/clipboard"
)

// daemonCmd is started by the clipboard adapter in a detached process. It owns the
// clipboard until another application takes it over or it is told to stop.
var daemonCmd = &cobra.Command{
	Use:    clipboard.DaemonCommand,
	Hidden: true,
	Args:   cobra.NoArgs,
	// Skip the root logger setup: stdio is detached.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	RunE: func(cmd *cobra.Command, args []string) error {
		ready := os.NewFile(clipboard.ReadyFD, "ready")
		return lifecycle.Run(lifecycle.Job(func(ctx context.Context) error {
			return clipboard.Serve(ctx, os.Stdin, ready)
		}))
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
