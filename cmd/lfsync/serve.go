package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/lfsync/internal/schedule"
	"github.com/alfredjeanlab/lfsync/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Run ingest, replay and snapshot sync on a schedule",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// Connect to Postgres.
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		publisher := openPublisher()
		defer publisher.Close()

		target, err := targetCatalog(ctx)
		if err != nil {
			return err
		}

		ingestRun, err := newIngestRun(ctx, store, publisher)
		if err != nil {
			return err
		}
		replayer := newReplayer(store, target, publisher)

		units := []schedule.Unit{
			{
				Name:     "ingest",
				Interval: cfg.IngestInterval,
				Run: func(ctx context.Context) error {
					_, err := ingestRun(ctx)
					return err
				},
			},
			{
				Name:     "replay",
				Interval: cfg.ReplayInterval,
				Run: func(ctx context.Context) error {
					_, err := replayer.Run(ctx)
					return err
				},
			},
		}
		if cfg.SnapshotInterval > 0 || cfg.SnapshotSchedule != "" {
			job, err := newSnapshotJob(ctx)
			if err != nil {
				return err
			}
			units = append(units, schedule.Unit{
				Name:     "snapshot",
				Interval: cfg.SnapshotInterval,
				Cron:     cfg.SnapshotSchedule,
				Run: func(ctx context.Context) error {
					_, err := runSnapshotJob(ctx, job, publisher)
					return err
				},
			})
		}

		var names []string
		for _, u := range units {
			if u.Enabled() {
				names = append(names, u.Name)
			}
		}
		srv := server.New(names, cfg.AuthToken, logger)
		for i := range units {
			units[i].Run = srv.Track(units[i].Name, units[i].Run)
		}
		scheduler, err := schedule.NewScheduler(units, logger)
		if err != nil {
			return err
		}

		// Start gRPC listener.
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return err
		}
		go func() {
			logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
			if err := srv.Serve(lis); err != nil {
				logger.Error("gRPC server error", "err", err)
			}
		}()

		scheduler.Start(ctx)
		logger.Info("lfsync started",
			"units", scheduler.Units(),
			"source_region", cfg.SourceRegion,
			"target_region", cfg.TargetRegion,
		)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown. Passes in flight stop between events.
		scheduler.Stop()
		logger.Info("scheduler stopped")

		srv.Stop()
		logger.Info("gRPC server stopped")

		logger.Info("shutdown complete")
		return nil
	},
}
