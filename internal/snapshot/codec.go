// Package snapshot extracts the source catalog into a line-oriented file,
// restores such a file into the target catalog, and compares the table sets
// of both sides.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alfredjeanlab/lfsync/internal/model"
)

// maxLineSize bounds a single snapshot line. Table definitions with many
// columns run to a few hundred kilobytes.
const maxLineSize = 16 << 20

// Writer encodes snapshot records as kind<TAB>database<TAB>object<TAB>json
// lines.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write encodes rec. The body is compacted so it holds no raw tabs or
// newlines.
func (w *Writer) Write(rec model.SnapshotRecord) error {
	if strings.ContainsAny(rec.Database+rec.Object, "\t\n") {
		return fmt.Errorf("snapshot: %s name %q.%q contains a tab or newline", rec.Kind, rec.Database, rec.Object)
	}
	var body bytes.Buffer
	if err := json.Compact(&body, rec.Body); err != nil {
		return fmt.Errorf("snapshot: compact %s %s body: %w", rec.Kind, rec.Database, err)
	}
	_, err := fmt.Fprintf(w.w, "%s\t%s\t%s\t%s\n", rec.Kind, rec.Database, rec.Object, body.Bytes())
	return err
}

// Flush writes buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Reader decodes snapshot lines.
type Reader struct {
	s    *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{s: s}
}

// Next returns the next record, or io.EOF after the last one. Blank lines are
// skipped. The kind is returned as written; callers decide what to do with
// kinds they do not know.
func (r *Reader) Next() (model.SnapshotRecord, error) {
	for r.s.Scan() {
		r.line++
		line := strings.TrimRight(r.s.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return ParseLine(line, r.line)
	}
	if err := r.s.Err(); err != nil {
		return model.SnapshotRecord{}, fmt.Errorf("snapshot: read line %d: %w", r.line+1, err)
	}
	return model.SnapshotRecord{}, io.EOF
}

// ParseLine decodes one snapshot line. n is used in error messages only.
func ParseLine(line string, n int) (model.SnapshotRecord, error) {
	parts := strings.SplitN(line, "\t", 4)
	if len(parts) != 4 {
		return model.SnapshotRecord{}, fmt.Errorf("snapshot: line %d: want 4 tab-separated fields, got %d", n, len(parts))
	}
	body := json.RawMessage(parts[3])
	if !json.Valid(body) {
		return model.SnapshotRecord{}, fmt.Errorf("snapshot: line %d: body is not valid JSON", n)
	}
	return model.SnapshotRecord{
		Kind:     model.RecordKind(parts[0]),
		Database: parts[1],
		Object:   parts[2],
		Body:     body,
	}, nil
}
