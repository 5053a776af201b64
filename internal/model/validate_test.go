package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// validEvent returns an Event that passes all validation rules.
func validEvent() Event {
	return Event{
		ID:      "5b1c0e4e-0d0e-4a3e-9f2a-8d2c8b1f7a10",
		Source:  SourceGlue,
		Name:    EventCreateTable,
		Time:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Payload: json.RawMessage(`{"requestParameters":{"databaseName":"sales"}}`),
		Status:  StatusUnprocessed,
	}
}

// fieldErrors extracts a *ValidationError from err or fails the test.
func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve.Errors
}

// hasFieldError reports whether the error list contains an error for the given field.
func hasFieldError(errs []FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestValidateEvent_Valid(t *testing.T) {
	e := validEvent()
	if err := ValidateEvent(&e); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidateEvent_Fields(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Event)
		field  string
	}{
		{"EmptyID", func(e *Event) { e.ID = "  " }, "event_id"},
		{"LongID", func(e *Event) { e.ID = strings.Repeat("x", maxEventIDLength+1) }, "event_id"},
		{"ReadOnlyCall", func(e *Event) { e.Name = "GetTable" }, "event_name"},
		{"ZeroTime", func(e *Event) { e.Time = time.Time{} }, "event_time"},
		{"BadStatus", func(e *Event) { e.Status = "P" }, "processed"},
		{"EmptyPayload", func(e *Event) { e.Payload = nil }, "raw_payload"},
		{"ArrayPayload", func(e *Event) { e.Payload = json.RawMessage(`[1]`) }, "raw_payload"},
		{"TruncatedPayload", func(e *Event) { e.Payload = json.RawMessage(`{"requestParameters":`) }, "raw_payload"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := validEvent()
			tc.mutate(&e)
			errs := fieldErrors(t, ValidateEvent(&e))
			if !hasFieldError(errs, tc.field) {
				t.Fatalf("expected error on %s, got %v", tc.field, errs)
			}
		})
	}
}

func TestValidateEvent_CollectsAll(t *testing.T) {
	err := ValidateEvent(&Event{})
	errs := fieldErrors(t, err)
	if len(errs) != 5 {
		t.Fatalf("expected 5 field errors, got %d: %v", len(errs), errs)
	}
	if !strings.HasPrefix(err.Error(), "validation failed: event_id: is required") {
		t.Fatalf("Error() = %q", err.Error())
	}
}
