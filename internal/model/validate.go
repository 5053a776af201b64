package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// maxEventIDLength matches the width of the event_id column.
const maxEventIDLength = 255

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateEvent checks a captured Event before it is stored.
// It returns a *ValidationError if any rules fail, or nil if the event is valid.
func ValidateEvent(e *Event) error {
	var ve ValidationError

	// ID: required, fits the key column.
	id := strings.TrimSpace(e.ID)
	if id == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "event_id", Message: "is required"})
	} else if len(e.ID) > maxEventIDLength {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "event_id",
			Message: fmt.Sprintf("must be %d characters or fewer", maxEventIDLength),
		})
	}

	// Name: only replicated calls are stored.
	if !e.Name.IsReplicated() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "event_name",
			Message: fmt.Sprintf("%q is not a replicated event", e.Name),
		})
	}

	if e.Time.IsZero() {
		ve.Errors = append(ve.Errors, FieldError{Field: "event_time", Message: "is required"})
	}

	// Status: must be a valid enum value (closed set).
	if !e.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "processed",
			Message: fmt.Sprintf("invalid value %q", e.Status),
		})
	}

	// Payload: a JSON object; replay reads requestParameters from it.
	payload := bytes.TrimSpace(e.Payload)
	if len(payload) == 0 || payload[0] != '{' || !json.Valid(payload) {
		ve.Errors = append(ve.Errors, FieldError{Field: "raw_payload", Message: "must be a JSON object"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
