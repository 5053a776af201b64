package catalog

import "strings"

// BucketMapping rewrites the bucket (host) component of storage locations,
// e.g. {"src-bucket": "dst-bucket"}.
type BucketMapping map[string]string

// Remap returns location with its bucket replaced when the bucket is in the
// mapping. The scheme and path are preserved byte for byte. Locations without
// a scheme, or whose bucket is not mapped, are returned unchanged.
func (m BucketMapping) Remap(location string) (string, bool) {
	i := strings.Index(location, "://")
	if i <= 0 || len(m) == 0 {
		return location, false
	}
	scheme, rest := location[:i+3], location[i+3:]
	bucket, path := rest, ""
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		bucket, path = rest[:j], rest[j:]
	}
	target, ok := m[bucket]
	if !ok || bucket == "" {
		return location, false
	}
	return scheme + target + path, true
}

// BucketOf returns the bucket component of location, or "" when location has
// no scheme.
func BucketOf(location string) string {
	i := strings.Index(location, "://")
	if i <= 0 {
		return ""
	}
	rest := location[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		return rest[:j]
	}
	return rest
}
