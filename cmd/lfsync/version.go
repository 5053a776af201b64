package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the lfsync version",
	GroupID:           "system",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printJSON(map[string]string{"version": version, "go": runtime.Version()})
		}
		fmt.Printf("lfsync %s (%s)\n", version, runtime.Version())
		return nil
	},
}
