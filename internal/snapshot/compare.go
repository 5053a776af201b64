package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

// ErrNotImplemented is returned by operations that are declared but not yet
// available.
var ErrNotImplemented = errors.New("not implemented")

// Comparison is the outer join of the source and target table sets.
type Comparison struct {
	Matched    []catalog.TableRef `json:"matched"`
	SourceOnly []catalog.TableRef `json:"source_only"`
	TargetOnly []catalog.TableRef `json:"target_only"`
}

// InSync reports whether both sides hold the same tables.
func (c *Comparison) InSync() bool {
	return len(c.SourceOnly) == 0 && len(c.TargetOnly) == 0
}

// Compare lists the tables of databases on both sides concurrently and joins
// them on (schema, table). Every result list is sorted by schema, then table.
func Compare(ctx context.Context, source, target catalog.TableLister, databases []string) (*Comparison, error) {
	var src, dst []catalog.TableRef
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		refs, err := source.ListTables(gctx, databases)
		if err != nil {
			return fmt.Errorf("list source tables: %w", err)
		}
		src = refs
		return nil
	})
	g.Go(func() error {
		refs, err := target.ListTables(gctx, databases)
		if err != nil {
			return fmt.Errorf("list target tables: %w", err)
		}
		dst = refs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return compareRefs(src, dst), nil
}

func compareRefs(src, dst []catalog.TableRef) *Comparison {
	inSrc := make(map[catalog.TableRef]bool, len(src))
	for _, r := range src {
		inSrc[r] = true
	}
	inDst := make(map[catalog.TableRef]bool, len(dst))
	for _, r := range dst {
		inDst[r] = true
	}

	c := &Comparison{}
	for r := range inSrc {
		if inDst[r] {
			c.Matched = append(c.Matched, r)
		} else {
			c.SourceOnly = append(c.SourceOnly, r)
		}
	}
	for r := range inDst {
		if !inSrc[r] {
			c.TargetOnly = append(c.TargetOnly, r)
		}
	}
	sortRefs(c.Matched)
	sortRefs(c.SourceOnly)
	sortRefs(c.TargetOnly)
	return c
}

func sortRefs(refs []catalog.TableRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Schema != refs[j].Schema {
			return refs[i].Schema < refs[j].Schema
		}
		return refs[i].Table < refs[j].Table
	})
}

// DeleteTargetOnly would drop the target-only tables of a comparison. It is
// declared so callers can wire the delete_target_objects setting, but always
// returns ErrNotImplemented.
func DeleteTargetOnly(_ context.Context, _ catalog.CatalogTarget, _ *Comparison) error {
	return ErrNotImplemented
}

// SQLLister lists tables from an information_schema.tables view reachable
// through database/sql.
type SQLLister struct {
	db *sql.DB
}

func NewSQLLister(db *sql.DB) *SQLLister {
	return &SQLLister{db: db}
}

var _ catalog.TableLister = (*SQLLister)(nil)

const listTablesQuery = `SELECT table_schema, table_name
	FROM information_schema.tables
	WHERE table_schema = ANY($1)
	ORDER BY table_schema, table_name`

// listAllTablesQuery skips the system schemas of the engine itself.
const listAllTablesQuery = `SELECT table_schema, table_name
	FROM information_schema.tables
	WHERE table_schema NOT IN ('information_schema', 'pg_catalog')
	ORDER BY table_schema, table_name`

func (l *SQLLister) ListTables(ctx context.Context, databases []string) ([]catalog.TableRef, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if catalog.SelectsAll(databases) {
		rows, err = l.db.QueryContext(ctx, listAllTablesQuery)
	} else {
		rows, err = l.db.QueryContext(ctx, listTablesQuery, pq.Array(databases))
	}
	if err != nil {
		return nil, fmt.Errorf("query information_schema.tables: %w", err)
	}
	defer rows.Close()

	var refs []catalog.TableRef
	for rows.Next() {
		var r catalog.TableRef
		if err := rows.Scan(&r.Schema, &r.Table); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}
