package main

import (
	"strings"
	"testing"
	"time"

	"github.com/alfredjeanlab/lfsync/internal/events"
)

func TestFormatActivity(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	tests := []struct {
		name string
		msg  events.Message
		want []string
	}{
		{
			name: "replay outcome",
			msg: events.Message{
				Topic: events.TopicReplayUnprocessed,
				Data:  []byte(`{"event_id":"ev-1","event_name":"CreateTable","outcome":"unprocessed","reason":"AccessDeniedException"}`),
			},
			want: []string{"12:30:45", "CreateTable", "ev-1", "AccessDeniedException"},
		},
		{
			name: "pass completed",
			msg: events.Message{
				Topic: events.TopicIngestCompleted,
				Data:  []byte(`{"run_id":"run-1","duration":"2s","counts":{"inserted":3}}`),
			},
			want: []string{events.TopicIngestCompleted, "completed", "2s", "inserted:3"},
		},
		{
			name: "failed pass",
			msg: events.Message{
				Topic: events.TopicSnapshotRestored,
				Data:  []byte(`{"run_id":"run-2","duration":"1s","error":"boom"}`),
			},
			want: []string{"failed"},
		},
		{
			name: "undecodable payload",
			msg:  events.Message{Topic: events.TopicReplayProcessed, Data: []byte(`not json`)},
			want: []string{events.TopicReplayProcessed, "not json"},
		},
		{
			name: "unknown topic",
			msg:  events.Message{Topic: "lfsync.other", Data: []byte(`{"x":1}`)},
			want: []string{"lfsync.other", `{"x":1}`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatActivity(at, tt.msg)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("formatActivity() = %q, missing %q", got, w)
				}
			}
		})
	}
}
