// Package audit reads catalog mutation records from the account's audit
// trail.
package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Record is one audit-trail entry.
type Record struct {
	ID       string
	Source   string
	Name     string
	Time     time.Time
	Username string
	// Raw is the full audit record as JSON. Request parameters are under
	// requestParameters.
	Raw json.RawMessage
}

// Source pages through the audit trail.
type Source interface {
	// Lookup calls fn for every record of the given event source at or after
	// since, newest first. A non-nil error from fn stops the lookup.
	Lookup(ctx context.Context, source string, since time.Time, fn func(Record) error) error
}

// Succeeded reports whether the recorded call completed without error. A call
// fails when the record has an errorCode, or when its responseElements carry
// a non-empty failures list (partial failure of a batch call).
func (r Record) Succeeded() (bool, error) {
	var doc map[string]any
	if err := json.Unmarshal(r.Raw, &doc); err != nil {
		return false, err
	}
	if code, ok := doc["errorCode"]; ok && code != nil {
		return false, nil
	}
	resp, ok := doc["responseElements"].(map[string]any)
	if !ok {
		return true, nil
	}
	for k, v := range resp {
		if !strings.EqualFold(k, "failures") {
			continue
		}
		if list, ok := v.([]any); ok && len(list) > 0 {
			return false, nil
		}
	}
	return true, nil
}
