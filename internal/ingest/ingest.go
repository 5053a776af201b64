// Package ingest captures successful catalog mutations from the audit trail
// into the event store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/lfsync/internal/audit"
	"github.com/alfredjeanlab/lfsync/internal/model"
	"github.com/alfredjeanlab/lfsync/internal/store"
)

// DefaultLookback is how far back each pass reads the audit trail.
const DefaultLookback = 24 * time.Hour

// Report summarizes one ingest pass.
type Report struct {
	Seen       int `json:"seen"`
	Skipped    int `json:"skipped"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// Ingestor polls the audit trail and stores every successful, allow-listed
// mutation exactly once.
type Ingestor struct {
	source   audit.Source
	store    store.Store
	sources  []string
	lookback time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// New creates an ingestor reading the tracked sources over the given
// lookback window. A zero lookback uses DefaultLookback.
func New(source audit.Source, s store.Store, lookback time.Duration, logger *slog.Logger) *Ingestor {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Ingestor{
		source:   source,
		store:    s,
		sources:  model.TrackedSources,
		lookback: lookback,
		logger:   logger,
		now:      time.Now,
	}
}

// Run performs one ingest pass. Per-record failures are logged and counted;
// a failed lookup of one source does not stop the others. The returned error
// joins the lookup failures.
func (in *Ingestor) Run(ctx context.Context) (Report, error) {
	var (
		rep  Report
		errs []error
	)
	since := in.now().Add(-in.lookback)
	for _, src := range in.sources {
		err := in.source.Lookup(ctx, src, since, func(r audit.Record) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in.handle(ctx, r, &rep)
			return nil
		})
		if err != nil {
			in.logger.Error("audit lookup failed", "source", src, "err", err)
			errs = append(errs, fmt.Errorf("ingest %s: %w", src, err))
		}
	}
	in.logger.Info("ingest complete",
		"seen", rep.Seen,
		"skipped", rep.Skipped,
		"inserted", rep.Inserted,
		"duplicates", rep.Duplicates,
		"errors", rep.Errors,
	)
	return rep, errors.Join(errs...)
}

func (in *Ingestor) handle(ctx context.Context, r audit.Record, rep *Report) {
	rep.Seen++
	name := model.EventName(r.Name)
	if !name.IsReplicated() {
		rep.Skipped++
		return
	}
	ok, err := r.Succeeded()
	if err != nil {
		in.logger.Warn("unreadable audit record", "event_id", r.ID, "event_name", r.Name, "err", err)
		rep.Skipped++
		return
	}
	if !ok {
		in.logger.Debug("skipping failed call", "event_id", r.ID, "event_name", r.Name)
		rep.Skipped++
		return
	}

	ev := &model.Event{
		ID:       r.ID,
		Source:   r.Source,
		Name:     name,
		Time:     r.Time,
		Username: r.Username,
		Payload:  r.Raw,
		Status:   model.StatusUnprocessed,
	}
	if err := model.ValidateEvent(ev); err != nil {
		in.logger.Warn("invalid audit record", "event_id", r.ID, "event_name", r.Name, "err", err)
		rep.Skipped++
		return
	}
	res, err := in.store.Insert(ctx, ev)
	if err != nil {
		in.logger.Error("insert event failed", "event_id", r.ID, "event_name", r.Name, "err", err)
		rep.Errors++
		return
	}
	switch res {
	case store.AlreadyExists:
		rep.Duplicates++
	default:
		in.logger.Debug("captured event", "event_id", r.ID, "event_name", r.Name)
		rep.Inserted++
	}
}
