// Package replay re-applies captured audit events to the target catalog.
//
// Every event is applied independently. Error kinds that mean "this change is
// already in effect" are treated as success so that duplicate delivery and
// retries after a partial failure converge instead of failing forever.
package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
	"github.com/alfredjeanlab/lfsync/internal/events"
	"github.com/alfredjeanlab/lfsync/internal/idgen"
	"github.com/alfredjeanlab/lfsync/internal/model"
	"github.com/alfredjeanlab/lfsync/internal/normalize"
	"github.com/alfredjeanlab/lfsync/internal/store"
)

var (
	// ErrMalformedPayload marks events whose request parameters cannot be
	// turned into a valid call.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrUnsupportedEvent marks events with no replay handler.
	ErrUnsupportedEvent = errors.New("unsupported event")
)

// Outcome is the result of replaying one event.
type Outcome int

const (
	// Unprocessed leaves the event for the next pass.
	Unprocessed Outcome = iota
	// Processed means the call succeeded.
	Processed
	// Idempotent means the call failed in a way that shows the change is
	// already in effect.
	Idempotent
)

func (o Outcome) String() string {
	switch o {
	case Processed:
		return "processed"
	case Idempotent:
		return "idempotent"
	}
	return "unprocessed"
}

// Done reports whether the event should be marked processed.
func (o Outcome) Done() bool {
	return o == Processed || o == Idempotent
}

// Topic returns the event-bus topic the outcome is published on.
func (o Outcome) Topic() string {
	switch o {
	case Processed:
		return events.TopicReplayProcessed
	case Idempotent:
		return events.TopicReplayIdempotent
	}
	return events.TopicReplayUnprocessed
}

// Result describes what happened to one event.
type Result struct {
	EventID   string
	EventName model.EventName
	Operation catalog.Operation
	Outcome   Outcome
	// Reason explains idempotent and unprocessed outcomes.
	Reason string
	Err    error
}

// Report summarizes one replay pass.
type Report struct {
	Total      int `json:"total"`
	Processed  int `json:"processed"`
	Idempotent int `json:"idempotent"`
	Failed     int `json:"failed"`
}

// Options control pre-processing of replayed calls.
type Options struct {
	// Buckets rewrites storage locations from source to target buckets.
	Buckets catalog.BucketMapping
}

// Replayer drains unprocessed events from the store into the target.
type Replayer struct {
	store     store.Store
	target    catalog.Target
	publisher events.Publisher
	opts      Options
	logger    *slog.Logger
}

// New creates a replayer. A nil publisher disables outcome publication.
func New(s store.Store, target catalog.Target, pub events.Publisher, opts Options, logger *slog.Logger) *Replayer {
	if pub == nil {
		pub = &events.NoopPublisher{}
	}
	return &Replayer{
		store:     s,
		target:    target,
		publisher: pub,
		opts:      opts,
		logger:    logger,
	}
}

// Run performs one replay pass over the events that are unprocessed when the
// pass starts. It returns an error only when the pending events cannot be
// listed; per-event failures are reported in the Report. Cancelling ctx stops
// the pass between events.
func (r *Replayer) Run(ctx context.Context) (Report, error) {
	var rep Report
	pending, err := r.store.ListUnprocessed(ctx)
	if err != nil {
		return rep, fmt.Errorf("list unprocessed events: %w", err)
	}
	runID := idgen.MustRunID()
	started := time.Now()
	logger := r.logger.With("run_id", runID)
	logger.Info("replay started", "pending", len(pending))

	for _, ev := range pending {
		if ctx.Err() != nil {
			logger.Warn("replay interrupted", "remaining", len(pending)-rep.Total, "err", ctx.Err())
			break
		}
		rep.Total++
		res := r.Apply(ctx, ev)
		if res.Outcome.Done() {
			if err := r.store.MarkProcessed(ctx, ev.ID); err != nil {
				res.Outcome = Unprocessed
				res.Reason = "mark processed failed"
				res.Err = err
			}
		}
		r.record(ctx, logger, runID, res, &rep)
	}

	logger.Info("replay complete",
		"total", rep.Total,
		"processed", rep.Processed,
		"idempotent", rep.Idempotent,
		"failed", rep.Failed,
		"duration", time.Since(started).String(),
	)
	r.publish(ctx, events.TopicReplayCompleted, events.PassCompleted{
		RunID:    runID,
		Started:  started.UTC(),
		Duration: time.Since(started).String(),
		Counts: map[string]int{
			"total":      rep.Total,
			"processed":  rep.Processed,
			"idempotent": rep.Idempotent,
			"failed":     rep.Failed,
		},
	})
	return rep, nil
}

func (r *Replayer) record(ctx context.Context, logger *slog.Logger, runID string, res Result, rep *Report) {
	attrs := []any{
		"event_id", res.EventID,
		"event_name", res.EventName,
		"operation", res.Operation,
		"outcome", res.Outcome,
	}
	switch res.Outcome {
	case Processed:
		rep.Processed++
		logger.Info("event replayed", attrs...)
	case Idempotent:
		rep.Idempotent++
		logger.Info("event already applied", append(attrs, "reason", res.Reason)...)
	default:
		rep.Failed++
		logger.Error("event left unprocessed", append(attrs, "reason", res.Reason, "err", res.Err)...)
	}
	r.publish(ctx, res.Outcome.Topic(), events.ReplayOutcome{
		RunID:     runID,
		EventID:   res.EventID,
		EventName: string(res.EventName),
		Operation: string(res.Operation),
		Outcome:   res.Outcome.String(),
		Reason:    res.Reason,
	})
}

func (r *Replayer) publish(ctx context.Context, topic string, event any) {
	if err := r.publisher.Publish(ctx, topic, event); err != nil {
		r.logger.Warn("publish failed", "topic", topic, "err", err)
	}
}

// Apply replays a single event against the target and classifies the result.
// It never marks the event; Run does that for Processed and Idempotent
// outcomes. A panic while applying is recovered and reported as Unprocessed.
func (r *Replayer) Apply(ctx context.Context, ev *model.Event) (res Result) {
	res = Result{EventID: ev.ID, EventName: ev.Name}
	defer func() {
		if p := recover(); p != nil {
			res.Outcome = Unprocessed
			res.Reason = "panic"
			res.Err = fmt.Errorf("panic replaying %s: %v", ev.ID, p)
		}
	}()

	h, ok := handlers[ev.Name]
	if !ok {
		return unprocessed(res, fmt.Errorf("%w: %s", ErrUnsupportedEvent, ev.Name))
	}
	res.Operation = h.op

	call, err := r.decode(ev, h)
	if err != nil {
		return unprocessed(res, err)
	}

	failures, err := call.Apply(ctx, r.target)
	if err != nil {
		kind := catalog.KindOf(err)
		if h.tolerates(kind) {
			res.Outcome = Idempotent
			res.Reason = kind.String()
			return res
		}
		return unprocessed(res, err)
	}

	var rejected []catalog.Failure
	for _, f := range failures {
		if !h.tolerates(f.Kind()) {
			rejected = append(rejected, f)
		}
	}
	switch {
	case len(rejected) > 0:
		return unprocessed(res, fmt.Errorf("%d of %d items failed, first: %s %s",
			len(rejected), len(failures), rejected[0].Code, rejected[0].Message))
	case len(failures) > 0:
		res.Outcome = Idempotent
		res.Reason = fmt.Sprintf("%d items already applied", len(failures))
	default:
		res.Outcome = Processed
	}
	return res
}

// decode turns the event payload into a typed call: extract the request
// parameters, normalize their keys, pre-process, then decode.
func (r *Replayer) decode(ev *model.Event, h handler) (catalog.Call, error) {
	params, err := ev.RequestParameters()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: no request parameters", ErrMalformedPayload)
	}
	norm := normalize.Map(params)
	if h.prepare != nil {
		if err := h.prepare(norm, r.opts); err != nil {
			return nil, err
		}
	}
	call, err := catalog.Decode(h.op, norm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return call, nil
}

func unprocessed(res Result, err error) Result {
	res.Outcome = Unprocessed
	res.Err = err
	res.Reason = reason(err)
	return res
}

// reason is a short label for an unprocessed outcome: the service error code
// when there is one, otherwise the error text.
func reason(err error) string {
	var ce *catalog.Error
	if errors.As(err, &ce) && ce.Code != "" {
		return ce.Code
	}
	return err.Error()
}
