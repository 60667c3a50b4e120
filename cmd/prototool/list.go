package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fscs/prototool/internal/config"
	"github.com/fscs/prototool/internal/platform"
)

var listJSON bool

type listItem struct {
	Path  string `json:"path"`
	Date  string `json:"date,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored Protokolle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags(), config.DefaultFiles()...)
		if err != nil {
			return err
		}
		store, err := platform.OpenStore(cfg, platform.WithLogger(slog.Default()))
		if err != nil {
			return err
		}

		entries, err := store.List(cmd.Context())
		if err != nil {
			return err
		}

		items := make([]listItem, 0, len(entries))
		for _, e := range entries {
			item := listItem{Path: e.Path}
			if e.Err != nil {
				item.Error = e.Err.Error()
			} else {
				item.Date = e.Date.Format("2006-01-02")
				item.Kind = e.Kind.String()
			}
			items = append(items, item)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(items)
		}

		for _, item := range items {
			if item.Error != "" {
				fmt.Printf("%s  (%s)\n", item.Path, item.Error)
				continue
			}
			fmt.Printf("%s  %s  %s\n", item.Date, item.Kind, item.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringP("lang", "l", "", "Language directory below the content directory")
	listCmd.Flags().String("content-dir", "", "Content directory, relative to the site root or absolute")
}
