package main

import (
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
	"github.com/alfredjeanlab/lfsync/internal/events"
	"github.com/alfredjeanlab/lfsync/internal/replay"
	"github.com/alfredjeanlab/lfsync/internal/store"
)

var replayCmd = &cobra.Command{
	Use:     "replay",
	Short:   "Apply captured events to the target catalog",
	GroupID: "replication",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		pub := openPublisher()
		defer pub.Close()

		target, err := targetCatalog(ctx)
		if err != nil {
			return err
		}

		rep, err := newReplayer(s, target, pub).Run(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rep)
		}
		printCounts("Replay", []string{"total", "processed", "idempotent", "failed"}, map[string]int{
			"total":      rep.Total,
			"processed":  rep.Processed,
			"idempotent": rep.Idempotent,
			"failed":     rep.Failed,
		})
		return nil
	},
}

func newReplayer(s store.Store, target catalog.Target, pub events.Publisher) *replay.Replayer {
	return replay.New(s, target, pub, replay.Options{Buckets: cfg.Buckets()}, logger)
}
