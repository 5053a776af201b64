package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
	"github.com/alfredjeanlab/lfsync/internal/catalog/awscatalog"
	"github.com/alfredjeanlab/lfsync/internal/events"
	"github.com/alfredjeanlab/lfsync/internal/idgen"
	"github.com/alfredjeanlab/lfsync/internal/store/postgres"
)

func openStore() (*postgres.PostgresStore, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	s, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	return s, nil
}

// openPublisher connects to NATS when configured. Publication is
// best-effort, so a connection failure falls back to the no-op publisher.
func openPublisher() events.Publisher {
	if cfg.NATSURL == "" {
		logger.Debug("events disabled (LFSYNC_NATS_URL not set)")
		return &events.NoopPublisher{}
	}
	pub, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		logger.Warn("events disabled", "nats_url", cfg.NATSURL, "err", err)
		return &events.NoopPublisher{}
	}
	logger.Info("events enabled", "nats_url", cfg.NATSURL)
	return pub
}

func sourceCatalog(ctx context.Context) (*awscatalog.Client, error) {
	c, err := awscatalog.New(ctx, cfg.SourceRegion)
	if err != nil {
		return nil, fmt.Errorf("source catalog (%s): %w", cfg.SourceRegion, err)
	}
	return c, nil
}

func targetClient(ctx context.Context) (*awscatalog.Client, error) {
	c, err := awscatalog.New(ctx, cfg.TargetRegion)
	if err != nil {
		return nil, fmt.Errorf("target catalog (%s): %w", cfg.TargetRegion, err)
	}
	return c, nil
}

// targetCatalog is the target used for writes, paced by target_rate_limit.
func targetCatalog(ctx context.Context) (catalog.Target, error) {
	c, err := targetClient(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Throttle(c, cfg.TargetRateLimit), nil
}

// publishPass publishes a pass summary. Errors are logged and dropped.
func publishPass(ctx context.Context, pub events.Publisher, topic string, started time.Time, counts map[string]int, passErr error) {
	ev := events.PassCompleted{
		RunID:    idgen.MustRunID(),
		Started:  started,
		Duration: time.Since(started).Round(time.Millisecond).String(),
		Counts:   counts,
	}
	if passErr != nil {
		ev.Error = passErr.Error()
	}
	if err := pub.Publish(ctx, topic, ev); err != nil {
		logger.Warn("publish pass summary failed", "topic", topic, "err", err)
	}
}
