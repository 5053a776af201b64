package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alfredjeanlab/lfsync/internal/model"
	"github.com/alfredjeanlab/lfsync/internal/store"
)

// eventColumns is the column list used for SELECT statements on the audit_events table.
const eventColumns = `event_id, event_source, event_name, event_time, username,
	payload, processed, inserted_at, processed_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queryInsertEvent inserts e unless its id is already present. New events
// always start unprocessed regardless of e.Status.
func queryInsertEvent(ctx context.Context, db executor, e *model.Event) (store.InsertResult, error) {
	insertedAt := e.InsertedAt
	if insertedAt.IsZero() {
		insertedAt = time.Now().UTC()
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO audit_events (
			event_id, event_source, event_name, event_time, username,
			payload, processed, inserted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id) DO NOTHING`,
		e.ID,
		e.Source,
		string(e.Name),
		e.Time,
		nullString(e.Username),
		jsonbBytes(e.Payload),
		string(model.StatusUnprocessed),
		insertedAt,
	)
	if err != nil {
		return store.Inserted, fmt.Errorf("insert event %s: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return store.Inserted, fmt.Errorf("insert event %s: %w", e.ID, err)
	}
	if n == 0 {
		return store.AlreadyExists, nil
	}
	return store.Inserted, nil
}

func queryListUnprocessed(ctx context.Context, db executor) ([]*model.Event, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM audit_events WHERE processed = $1 ORDER BY event_time ASC, event_id ASC`,
		string(model.StatusUnprocessed))
	if err != nil {
		return nil, fmt.Errorf("list unprocessed events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// queryMarkProcessed only touches unprocessed rows, so repeated calls and
// unknown ids affect nothing.
func queryMarkProcessed(ctx context.Context, db executor, id string, at time.Time) error {
	_, err := db.ExecContext(ctx,
		`UPDATE audit_events SET processed = $1, processed_at = $2 WHERE event_id = $3 AND processed = $4`,
		string(model.StatusProcessed), at, id, string(model.StatusUnprocessed))
	if err != nil {
		return fmt.Errorf("mark event %s processed: %w", id, err)
	}
	return nil
}

func queryGetEvent(ctx context.Context, db executor, id string) (*model.Event, error) {
	row := db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM audit_events WHERE event_id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return e, nil
}

func queryListEvents(ctx context.Context, db executor, filter model.EventFilter) ([]*model.Event, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "processed IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(filter.Names) > 0 {
		placeholders := make([]string, len(filter.Names))
		for i, n := range filter.Names {
			placeholders[i] = nextArg()
			args = append(args, string(n))
		}
		whereClauses = append(whereClauses, "event_name IN ("+strings.Join(placeholders, ", ")+")")
	}

	q := `SELECT ` + eventColumns + ` FROM audit_events`
	if len(whereClauses) > 0 {
		q += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	q += " ORDER BY event_time ASC, event_id ASC"
	if filter.Limit > 0 {
		q += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}
