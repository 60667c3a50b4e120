package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fscs/prototool/internal/config"
	"github.com/fscs/prototool/internal/platform"
)

type componentStatus struct {
	Type  string `json:"type"`
	State any    `json:"state"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the configuration and the state of every component as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags(), config.DefaultFiles()...)
		if err != nil {
			return err
		}
		gen, err := platform.New(cfg, platform.WithLogger(slog.Default()))
		if err != nil {
			return err
		}

		components := []componentStatus{{Type: gen.ComponentType(), State: gen.State()}}
		for _, c := range gen.Components() {
			components = append(components, componentStatus{Type: c.ComponentType(), State: c.State()})
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			Config     config.Config     `json:"config"`
			Components []componentStatus `json:"components"`
		}{cfg, components})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
