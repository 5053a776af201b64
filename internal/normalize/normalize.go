// Package normalize rewrites audit-trail request parameters into the exact
// parameter shape expected by the catalog and permissions APIs.
//
// Audit records carry request parameters in camelCase ("databaseName",
// "storageDescriptor"); the APIs expect PascalCase ("DatabaseName",
// "StorageDescriptor"). The transform works on the generic tree produced by
// encoding/json: map[string]any, []any and scalars.
package normalize

import "sort"

// Value is a node of a decoded JSON document: map[string]any, []any, string,
// float64, json.Number, bool or nil.
type Value = any

// Normalize returns a copy of v with every map key replaced by its canonical
// spelling. Unknown keys are kept verbatim. String elements of lists are
// looked up in the same dictionary. The input is never modified and the
// function never fails; values of unexpected types are returned unchanged.
func Normalize(v Value) Value {
	switch t := v.(type) {
	case map[string]any:
		return Map(t)
	case []any:
		return List(t)
	default:
		return v
	}
}

// Map normalizes the keys of m recursively.
//
// List values accumulate under their canonical key: two source keys that
// differ only by case and both hold lists produce one concatenated list.
// Keys are visited in sorted order so accumulation is deterministic.
func Map(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		ck := Canonical(k)
		switch v := m[k].(type) {
		case map[string]any:
			out[ck] = Map(v)
		case []any:
			existing, _ := out[ck].([]any)
			out[ck] = append(existing, List(v)...)
		default:
			out[ck] = v
		}
	}
	return out
}

// List normalizes each element of l.
func List(l []any) []any {
	out := make([]any, 0, len(l))
	for _, v := range l {
		switch t := v.(type) {
		case map[string]any:
			out = append(out, Map(t))
		case []any:
			out = append(out, List(t))
		case string:
			out = append(out, Canonical(t))
		default:
			out = append(out, v)
		}
	}
	return out
}
