package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/lfsync/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanEvent scans a single row into a model.Event.
// The row must contain columns in the order defined by eventColumns.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		name        string
		username    sql.NullString
		payload     []byte
		status      string
		processedAt sql.NullTime
	)

	err := row.Scan(
		&e.ID,
		&e.Source,
		&name,
		&e.Time,
		&username,
		&payload,
		&status,
		&e.InsertedAt,
		&processedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Name = model.EventName(name)
	e.Username = username.String
	e.Status = model.Status(status)
	if len(payload) > 0 {
		e.Payload = json.RawMessage(payload)
	}
	if processedAt.Valid {
		t := processedAt.Time
		e.ProcessedAt = &t
	}
	return &e, nil
}

// scanEvents scans all rows into a slice of events.
func scanEvents(rows *sql.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// jsonbBytes converts json.RawMessage to a []byte suitable for JSONB columns.
// An empty payload is stored as an empty object since the column is NOT NULL.
func jsonbBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return []byte("{}")
	}
	return []byte(m)
}
