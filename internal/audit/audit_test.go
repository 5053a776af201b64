package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
)

func TestSucceeded(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"plain success", `{"eventName":"CreateTable","responseElements":null}`, true},
		{"no response elements", `{"eventName":"CreateTable"}`, true},
		{"error code", `{"errorCode":"AlreadyExistsException","responseElements":null}`, false},
		{"empty failures", `{"responseElements":{"failures":[]}}`, true},
		{"failures", `{"responseElements":{"failures":[{"error":{"errorCode":"InvalidInputException"}}]}}`, false},
		{"capitalized failures", `{"responseElements":{"Failures":[{}]}}`, false},
		{"other response", `{"responseElements":{"tableName":"t"}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Record{Raw: json.RawMessage(tt.raw)}.Succeeded()
			if err != nil {
				t.Fatalf("Succeeded: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Succeeded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSucceededMalformed(t *testing.T) {
	if _, err := (Record{Raw: json.RawMessage(`{`)}).Succeeded(); err == nil {
		t.Fatal("expected error for malformed record")
	}
}

type fakeLookup struct {
	pages []*cloudtrail.LookupEventsOutput
	input *cloudtrail.LookupEventsInput
}

func (f *fakeLookup) LookupEvents(_ context.Context, in *cloudtrail.LookupEventsInput, _ ...func(*cloudtrail.Options)) (*cloudtrail.LookupEventsOutput, error) {
	f.input = in
	i := 0
	if in.NextToken != nil {
		i = len(*in.NextToken)
	}
	return f.pages[i], nil
}

func TestCloudTrailLookup(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f := &fakeLookup{pages: []*cloudtrail.LookupEventsOutput{
		{
			Events: []types.Event{{
				EventId:         aws.String("e1"),
				EventName:       aws.String("CreateTable"),
				EventSource:     aws.String("glue.amazonaws.com"),
				EventTime:       aws.Time(when),
				Username:        aws.String("alice"),
				CloudTrailEvent: aws.String(`{"requestParameters":{"databaseName":"db"}}`),
			}},
			NextToken: aws.String("x"),
		},
		{Events: []types.Event{{EventId: aws.String("e2"), EventName: aws.String("DeleteTable")}}},
	}}
	ct := NewCloudTrailWithClient(f)

	var got []Record
	since := when.Add(-time.Hour)
	err := ct.Lookup(context.Background(), "glue.amazonaws.com", since, func(r Record) error {
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].ID != "e1" || got[0].Username != "alice" || !got[0].Time.Equal(when) {
		t.Fatalf("unexpected first record: %+v", got[0])
	}
	if got[1].Source != "glue.amazonaws.com" || string(got[1].Raw) != "{}" {
		t.Fatalf("unexpected defaults: %+v", got[1])
	}
	if aws.ToInt32(f.input.MaxResults) != PageSize || !aws.ToTime(f.input.StartTime).Equal(since) {
		t.Fatalf("unexpected lookup input: %+v", f.input)
	}
}
