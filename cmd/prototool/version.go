package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fscs/prototool"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of prototool and how it was built",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		fmt.Fprintln(cmd.OutOrStdout(), versionLine(prototool.Version, info))
	},
}

// versionLine reads like "prototool 0.1.0 (go1.26.0, rev 1a2b3c4d5e6f, modified)".
// The build details are left out when the binary carries none.
func versionLine(version string, info *debug.BuildInfo) string {
	line := "prototool " + strings.TrimSpace(version)
	if info == nil {
		return line
	}

	details := []string{info.GoVersion}
	settings := map[string]string{}
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	if rev := settings["vcs.revision"]; rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		details = append(details, "rev "+rev)
	}
	if settings["vcs.modified"] == "true" {
		details = append(details, "modified")
	}
	return line + " (" + strings.Join(details, ", ") + ")"
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
