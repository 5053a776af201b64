package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Event topic constants
const (
	// Replay outcomes, one topic per outcome.
	TopicReplayProcessed   = "lfsync.replay.processed"
	TopicReplayIdempotent  = "lfsync.replay.idempotent"
	TopicReplayUnprocessed = "lfsync.replay.unprocessed"

	// Pass summaries.
	TopicIngestCompleted   = "lfsync.ingest.completed"
	TopicReplayCompleted   = "lfsync.replay.completed"
	TopicSnapshotExtracted = "lfsync.snapshot.extracted"
	TopicSnapshotRestored  = "lfsync.snapshot.restored"

	// TopicAll matches every lfsync topic.
	TopicAll = "lfsync.>"

	topicPrefix = "lfsync."
)

// ErrInvalidTopic is returned for subjects outside the lfsync namespace and
// for wildcard subjects on publish.
var ErrInvalidTopic = errors.New("invalid topic")

// CheckTopic validates a subject. Wildcards are only allowed when
// subscribing.
func CheckTopic(topic string, subscribe bool) error {
	rest, ok := strings.CutPrefix(topic, topicPrefix)
	if !ok || rest == "" {
		return fmt.Errorf("%w %q: must start with %q", ErrInvalidTopic, topic, topicPrefix)
	}
	for _, tok := range strings.Split(rest, ".") {
		switch {
		case tok == "":
			return fmt.Errorf("%w %q: empty token", ErrInvalidTopic, topic)
		case (tok == "*" || tok == ">") && !subscribe:
			return fmt.Errorf("%w %q: wildcards cannot be published to", ErrInvalidTopic, topic)
		}
	}
	return nil
}

// Message is one payload received from the bus with its subject.
type Message struct {
	Topic string
	Data  []byte
}

// ReplayOutcome is published once per replayed event.
type ReplayOutcome struct {
	RunID     string `json:"run_id"`
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	Operation string `json:"operation,omitempty"`
	Outcome   string `json:"outcome"`
	Reason    string `json:"reason,omitempty"`
}

// PassCompleted summarizes one ingest, replay or snapshot run.
type PassCompleted struct {
	RunID    string         `json:"run_id"`
	Started  time.Time      `json:"started"`
	Duration string         `json:"duration"`
	Counts   map[string]int `json:"counts"`
	Error    string         `json:"error,omitempty"`
}

// Publisher emits JSON events. Publication is best-effort: callers log
// errors and carry on.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
