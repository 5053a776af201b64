package store

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/lfsync/internal/model"
)

// ErrNotFound is returned by Get when no event has the requested id.
var ErrNotFound = errors.New("event not found")

// InsertResult reports whether Insert created a new record.
type InsertResult int

const (
	Inserted InsertResult = iota
	AlreadyExists
)

func (r InsertResult) String() string {
	if r == AlreadyExists {
		return "already_exists"
	}
	return "inserted"
}

// Store defines the persistence interface for captured audit events.
//
// Insert and MarkProcessed must be linearizable per event id: concurrent
// ingest and replay passes rely on the store, not on locking of their own.
type Store interface {
	// Insert stores the event unless one with the same id already exists.
	// An existing record is never overwritten.
	Insert(ctx context.Context, event *model.Event) (InsertResult, error)

	// ListUnprocessed returns unprocessed events ordered by event time.
	ListUnprocessed(ctx context.Context) ([]*model.Event, error)

	// MarkProcessed flags the event as processed. Unknown ids and events that
	// are already processed are no-ops.
	MarkProcessed(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)

	Close() error
}
