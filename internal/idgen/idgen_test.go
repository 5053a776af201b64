package idgen

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewRunID_Length(t *testing.T) {
	id, err := NewRunID()
	if err != nil {
		t.Fatalf("NewRunID() error: %v", err)
	}
	wantLen := len(RunPrefix) + Length
	if len(id) != wantLen {
		t.Errorf("NewRunID() length = %d, want %d (id=%q)", len(id), wantLen, id)
	}
}

func TestNewRunID_Charset(t *testing.T) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(RunPrefix) + `[a-z0-9]+$`)
	for i := 0; i < 100; i++ {
		id, err := NewRunID()
		if err != nil {
			t.Fatalf("NewRunID() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("NewRunID() = %q, does not match expected charset pattern", id)
		}
	}
}

func TestNewRunID_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id := MustRunID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	id, err := GenerateWithPrefix("snap-")
	if err != nil {
		t.Fatalf("GenerateWithPrefix() error: %v", err)
	}
	if !strings.HasPrefix(id, "snap-") {
		t.Errorf("GenerateWithPrefix() = %q, want prefix %q", id, "snap-")
	}
}
