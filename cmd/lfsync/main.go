package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/lfsync/internal/config"
	"github.com/alfredjeanlab/lfsync/internal/ui"
)

var (
	configPath string
	jsonOutput bool
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "lfsync <command>",
	Short:        "Replicate a data catalog and its permissions between regions",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupUI()
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
		slog.SetDefault(logger)
		return nil
	},
}

// skipConfig is used as PersistentPreRunE by commands that do not need the
// replication configuration.
func skipConfig(cmd *cobra.Command, args []string) error {
	setupUI()
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	return nil
}

func setupUI() {
	if noColor || !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}
}

// commandContext returns a context cancelled on SIGINT or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (default $LFSYNC_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "replication", Title: "Replication:"},
		&cobra.Group{ID: "snapshot", Title: "Snapshot:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Replication
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(eventsCmd)

	// Snapshot
	rootCmd.AddCommand(snapshotCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
