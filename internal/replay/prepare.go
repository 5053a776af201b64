package replay

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

// prepareTable fixes up CreateTable and UpdateTable parameters: the row
// filtering flag is not an input member, the integer members arrive as
// strings or floats, and the location must point at the target bucket.
func prepareTable(p map[string]any, opts Options) error {
	ti, err := member(p, "TableInput")
	if err != nil {
		return err
	}
	deleteFold(ti, "isRowFilteringEnabled")
	if err := coerceInt(ti, "Retention"); err != nil {
		return err
	}
	sd, ok := ti["StorageDescriptor"].(map[string]any)
	if !ok {
		return nil
	}
	if err := coerceInt(sd, "NumberOfBuckets"); err != nil {
		return err
	}
	remapLocation(sd, "Location", opts.Buckets)
	return nil
}

// preparePartitions coerces the bucket count of the first partition and
// remaps every partition location.
func preparePartitions(p map[string]any, opts Options) error {
	list, ok := p["PartitionInputList"].([]any)
	if !ok || len(list) == 0 {
		return fmt.Errorf("%w: PartitionInputList is missing or empty", ErrMalformedPayload)
	}
	for i, item := range list {
		part, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: PartitionInputList[%d] is not an object", ErrMalformedPayload, i)
		}
		sd, ok := part["StorageDescriptor"].(map[string]any)
		if !ok {
			continue
		}
		if i == 0 {
			if err := coerceInt(sd, "NumberOfBuckets"); err != nil {
				return err
			}
		}
		remapLocation(sd, "Location", opts.Buckets)
	}
	return nil
}

// prepareSettings drops the settings members that are owned by the target
// account.
func prepareSettings(p map[string]any, _ Options) error {
	s, err := member(p, "DataLakeSettings")
	if err != nil {
		return err
	}
	deleteFold(s, "Parameters")
	deleteFold(s, "whitelistedForExternalDataFiltering")
	deleteFold(s, "disallowGrantOnIAMAllowedPrincipals")
	return nil
}

func member(p map[string]any, key string) (map[string]any, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s is missing", ErrMalformedPayload, key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an object", ErrMalformedPayload, key)
	}
	return m, nil
}

// deleteFold removes every key of m equal to key under case folding.
func deleteFold(m map[string]any, key string) {
	for k := range m {
		if strings.EqualFold(k, key) {
			delete(m, k)
		}
	}
}

// coerceInt replaces m[key] with its integer value. Absent keys are left
// alone.
func coerceInt(m map[string]any, key string) error {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, key, err)
	}
	m[key] = n
	return nil
}

func toInt(v any) (int64, error) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		return int64(t), nil
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case json.Number:
		return t.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	}
	return 0, fmt.Errorf("unexpected type %T", v)
}

func remapLocation(m map[string]any, key string, buckets catalog.BucketMapping) {
	loc, ok := m[key].(string)
	if !ok {
		return
	}
	if out, changed := buckets.Remap(loc); changed {
		m[key] = out
	}
}
