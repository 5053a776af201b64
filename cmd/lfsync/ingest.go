package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/lfsync/internal/audit"
	"github.com/alfredjeanlab/lfsync/internal/events"
	"github.com/alfredjeanlab/lfsync/internal/ingest"
	"github.com/alfredjeanlab/lfsync/internal/store"
)

var ingestCmd = &cobra.Command{
	Use:     "ingest",
	Short:   "Capture new catalog and permission changes from the source audit trail",
	GroupID: "replication",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if h, _ := cmd.Flags().GetInt("lookback-hours"); h > 0 {
			cfg.LookbackHours = h
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		pub := openPublisher()
		defer pub.Close()

		run, err := newIngestRun(ctx, s, pub)
		if err != nil {
			return err
		}
		rep, err := run(ctx)
		if jsonOutput {
			if perr := printJSON(rep); perr != nil {
				return perr
			}
		} else {
			printCounts("Ingest", []string{"seen", "skipped", "inserted", "duplicates", "errors"}, map[string]int{
				"seen":       rep.Seen,
				"skipped":    rep.Skipped,
				"inserted":   rep.Inserted,
				"duplicates": rep.Duplicates,
				"errors":     rep.Errors,
			})
		}
		return err
	},
}

// newIngestRun wires the audit source to the store and returns one ingest
// pass. The pass summary is published on the event bus.
func newIngestRun(ctx context.Context, s store.Store, pub events.Publisher) (func(context.Context) (ingest.Report, error), error) {
	source, err := audit.NewCloudTrail(ctx, cfg.SourceRegion)
	if err != nil {
		return nil, fmt.Errorf("audit trail (%s): %w", cfg.SourceRegion, err)
	}
	in := ingest.New(source, s, cfg.Lookback(), logger)
	return func(ctx context.Context) (ingest.Report, error) {
		started := time.Now()
		rep, err := in.Run(ctx)
		publishPass(ctx, pub, events.TopicIngestCompleted, started, map[string]int{
			"seen":       rep.Seen,
			"inserted":   rep.Inserted,
			"duplicates": rep.Duplicates,
			"errors":     rep.Errors,
		}, err)
		return rep, err
	}, nil
}

func init() {
	ingestCmd.Flags().Int("lookback-hours", 0, "override lookback_hours for this run")
}
