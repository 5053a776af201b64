package awscatalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

// toInput converts typed parameters into an SDK input structure. Both sides
// use the service's member names, so the JSON encoding of one decodes into
// the other.
func toInput(op catalog.Operation, params any, in any) error {
	if err := catalog.Convert(params, in); err != nil {
		return fmt.Errorf("%s: convert parameters: %w", op, err)
	}
	return nil
}

// toObject converts an SDK output structure into a generic object, dropping
// null members.
func toObject(v any) (catalog.Object, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	prune(obj)
	return obj, nil
}

func prune(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			if x == nil {
				delete(t, k)
				continue
			}
			prune(x)
		}
	case []any:
		for _, x := range t {
			prune(x)
		}
	}
}

// classify wraps a service error in a *catalog.Error carrying its kind.
func classify(op catalog.Operation, err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &catalog.Error{
			Op:      op,
			Kind:    catalog.KindFromCode(apiErr.ErrorCode()),
			Code:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
			Err:     err,
		}
	}
	return &catalog.Error{Op: op, Kind: catalog.KindUnknown, Code: "Unknown", Message: err.Error(), Err: err}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
