package model

import (
	"encoding/json"
	"time"
)

// Status is the replay status of a captured audit event. Values match the
// single-character flags stored in the events table.
type Status string

const (
	StatusUnprocessed Status = "N"
	StatusProcessed   Status = "Y"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnprocessed, StatusProcessed:
		return true
	}
	return false
}

// Event sources tracked by the ingestor.
const (
	SourceGlue          = "glue.amazonaws.com"
	SourceLakeFormation = "lakeformation.amazonaws.com"
)

// TrackedSources lists the audit sources polled on every ingest pass.
var TrackedSources = []string{SourceGlue, SourceLakeFormation}

// Event is a captured audit record of a successful mutating call against the
// source catalog or permissions service.
type Event struct {
	ID          string          `json:"event_id"`
	Source      string          `json:"event_source"`
	Name        EventName       `json:"event_name"`
	Time        time.Time       `json:"event_time"`
	Username    string          `json:"username,omitempty"`
	Payload     json.RawMessage `json:"raw_payload"`
	Status      Status          `json:"processed"`
	InsertedAt  time.Time       `json:"inserted_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}

// IsProcessed reports whether the event has been replayed.
func (e *Event) IsProcessed() bool {
	return e.Status == StatusProcessed
}

// RequestParameters returns the "requestParameters" section of the raw audit
// payload. It returns nil when the payload has no such section.
func (e *Event) RequestParameters() (map[string]any, error) {
	var envelope struct {
		RequestParameters map[string]any `json:"requestParameters"`
	}
	if len(e.Payload) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(e.Payload, &envelope); err != nil {
		return nil, err
	}
	return envelope.RequestParameters, nil
}
