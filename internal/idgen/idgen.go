// Package idgen generates run identifiers backed by nanoid. Every ingest,
// replay and snapshot pass gets one so its log lines and published events can
// be correlated.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// RunPrefix is prepended to every run ID.
var RunPrefix = "run-"

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 12

// NewRunID returns a new unique run ID.
func NewRunID() (string, error) {
	return GenerateWithPrefix(RunPrefix)
}

// MustRunID is NewRunID for callers that cannot proceed without an ID.
func MustRunID() string {
	id, err := NewRunID()
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
