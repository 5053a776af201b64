package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
)

// PageSize is the number of records requested per lookup page.
const PageSize = 50

// CloudTrail reads management events from CloudTrail.
type CloudTrail struct {
	client cloudtrail.LookupEventsAPIClient
}

// NewCloudTrail loads the default AWS configuration for region.
func NewCloudTrail(ctx context.Context, region string) (*CloudTrail, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &CloudTrail{client: cloudtrail.NewFromConfig(cfg)}, nil
}

// NewCloudTrailWithClient wraps an existing lookup client.
func NewCloudTrailWithClient(c cloudtrail.LookupEventsAPIClient) *CloudTrail {
	return &CloudTrail{client: c}
}

func (c *CloudTrail) Lookup(ctx context.Context, source string, since time.Time, fn func(Record) error) error {
	p := cloudtrail.NewLookupEventsPaginator(c.client, &cloudtrail.LookupEventsInput{
		LookupAttributes: []types.LookupAttribute{{
			AttributeKey:   types.LookupAttributeKeyEventSource,
			AttributeValue: aws.String(source),
		}},
		StartTime:  aws.Time(since),
		MaxResults: aws.Int32(PageSize),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("lookup events for %s: %w", source, err)
		}
		for _, e := range page.Events {
			if err := fn(toRecord(source, e)); err != nil {
				return err
			}
		}
	}
	return nil
}

func toRecord(source string, e types.Event) Record {
	r := Record{
		ID:       aws.ToString(e.EventId),
		Source:   aws.ToString(e.EventSource),
		Name:     aws.ToString(e.EventName),
		Time:     aws.ToTime(e.EventTime).UTC(),
		Username: aws.ToString(e.Username),
		Raw:      json.RawMessage(aws.ToString(e.CloudTrailEvent)),
	}
	if r.Source == "" {
		r.Source = source
	}
	if len(r.Raw) == 0 {
		r.Raw = json.RawMessage("{}")
	}
	return r
}
