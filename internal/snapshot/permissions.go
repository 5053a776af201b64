package snapshot

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

// AllTables is the table name the permissions service reports for grants on
// every table of a database.
const AllTables = "ALL_TABLES"

// PermissionsFile is the object name of a permissions export.
const PermissionsFile = "permissions.jsonl"

// PermissionsReport summarizes one permissions apply run.
type PermissionsReport struct {
	Read       int `json:"read"`
	Skipped    int `json:"skipped"`
	Granted    int `json:"granted"`
	Idempotent int `json:"idempotent"`
	Failed     int `json:"failed"`
}

// ExportPermissions writes every permission entry of the source as one JSON
// object per line and returns the number of entries written.
func ExportPermissions(ctx context.Context, source catalog.Source, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	err := source.Permissions(ctx, func(p catalog.Object) error {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode permission: %w", err)
		}
		data = append(data, '\n')
		if _, err := bw.Write(data); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("export permissions: %w", err)
	}
	return n, bw.Flush()
}

// ApplyPermissions grants every exported entry whose database is in the
// allow-list. Entries naming ALL_TABLES become table-wildcard grants. Grants
// that fail because the grant or its resource already settled are counted as
// idempotent; other failures are logged and counted and the run continues.
func ApplyPermissions(ctx context.Context, target catalog.PermissionsTarget, r io.Reader, databases []string, logger *slog.Logger) (*PermissionsReport, error) {
	rep := &PermissionsReport{}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for s.Scan() {
		line++
		raw := bytes.TrimSpace(s.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Read++

		var p catalog.GrantPermissionsParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return rep, fmt.Errorf("permissions line %d: %w", line, err)
		}
		db := p.Resource.DatabaseName()
		if db == "" || !Selected(databases, db) {
			rep.Skipped++
			continue
		}
		ExpandAllTables(p.Resource)

		err := target.GrantPermissions(ctx, &p)
		switch kind := catalog.KindOf(err); {
		case err == nil:
			rep.Granted++
		case kind == catalog.KindAlreadyExists || kind == catalog.KindEntityNotFound:
			rep.Idempotent++
		default:
			logger.Error("grant failed", "database", db, "line", line, "err", err)
			rep.Failed++
		}
	}
	if err := s.Err(); err != nil {
		return rep, fmt.Errorf("read permissions: %w", err)
	}
	logger.Info("permissions applied",
		"read", rep.Read,
		"skipped", rep.Skipped,
		"granted", rep.Granted,
		"idempotent", rep.Idempotent,
		"failed", rep.Failed,
	)
	return rep, nil
}

// ExpandAllTables rewrites table resources named ALL_TABLES into table
// wildcards. A column-level ALL_TABLES resource becomes a plain table
// wildcard; its column selection is dropped.
func ExpandAllTables(r *catalog.Resource) {
	if r == nil {
		return
	}
	if t := r.Table; t != nil && t.Name == AllTables {
		t.Name = ""
		t.TableWildcard = &catalog.Wildcard{}
	}
	if tc := r.TableWithColumns; tc != nil && tc.Name == AllTables {
		r.Table = &catalog.TableResource{
			CatalogId:     tc.CatalogId,
			DatabaseName:  tc.DatabaseName,
			TableWildcard: &catalog.Wildcard{},
		}
		r.TableWithColumns = nil
	}
}
