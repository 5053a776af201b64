package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
	"github.com/alfredjeanlab/lfsync/internal/model"
)

// AllDatabases selects every database of the catalog.
const AllDatabases = catalog.AllDatabases

// DatabaseCounts holds per-database object counts of an extract or restore.
type DatabaseCounts struct {
	Tables     int `json:"tables"`
	Partitions int `json:"partitions"`
}

// ExtractReport summarizes one extract run.
type ExtractReport struct {
	Databases map[string]*DatabaseCounts `json:"databases"`
}

func (r *ExtractReport) counts(db string) *DatabaseCounts {
	if r.Databases == nil {
		r.Databases = make(map[string]*DatabaseCounts)
	}
	c, ok := r.Databases[db]
	if !ok {
		c = &DatabaseCounts{}
		r.Databases[db] = c
	}
	return c
}

// Totals returns the number of databases, tables and partitions extracted.
func (r *ExtractReport) Totals() (databases, tables, partitions int) {
	for _, c := range r.Databases {
		databases++
		tables += c.Tables
		partitions += c.Partitions
	}
	return databases, tables, partitions
}

// Extractor writes allow-listed databases and their objects as snapshot
// records.
type Extractor struct {
	source     catalog.Source
	databases  []string
	partitions bool
	logger     *slog.Logger
}

// NewExtractor creates an extractor for the given database allow-list. A
// list containing AllDatabases selects every database. When partitions is set
// the partitions of each table are extracted too.
func NewExtractor(source catalog.Source, databases []string, partitions bool, logger *slog.Logger) *Extractor {
	return &Extractor{
		source:     source,
		databases:  databases,
		partitions: partitions,
		logger:     logger,
	}
}

// Selected reports whether database name is in the allow-list.
func Selected(databases []string, name string) bool {
	return catalog.SelectsAll(databases) || slices.Contains(databases, name)
}

// Extract writes the snapshot to w.
func (e *Extractor) Extract(ctx context.Context, w io.Writer) (*ExtractReport, error) {
	rep := &ExtractReport{Databases: make(map[string]*DatabaseCounts)}
	sw := NewWriter(w)

	err := e.source.Databases(ctx, func(db catalog.Object) error {
		name, _ := db["Name"].(string)
		if !Selected(e.databases, name) {
			return nil
		}
		e.logger.Info("extracting database", "database", name)
		if err := writeRecord(sw, model.RecordDatabase, name, "", db, model.DatabaseVolatileFields); err != nil {
			return err
		}
		counts := rep.counts(name)
		return e.source.Tables(ctx, name, func(t catalog.Object) error {
			table, _ := t["Name"].(string)
			if err := writeRecord(sw, model.RecordTable, name, table, t, model.TableVolatileFields); err != nil {
				return err
			}
			counts.Tables++
			if !e.partitions {
				return nil
			}
			return e.source.Partitions(ctx, name, table, func(p catalog.Object) error {
				if err := writeRecord(sw, model.RecordPartition, name, table, p, model.PartitionVolatileFields); err != nil {
					return err
				}
				counts.Partitions++
				return nil
			})
		})
	})
	if err != nil {
		return rep, fmt.Errorf("extract: %w", err)
	}
	if err := sw.Flush(); err != nil {
		return rep, fmt.Errorf("extract: flush: %w", err)
	}

	for db, c := range rep.Databases {
		e.logger.Info("extracted database", "database", db, "tables", c.Tables, "partitions", c.Partitions)
	}
	dbs, tables, parts := rep.Totals()
	e.logger.Info("extract complete", "databases", dbs, "tables", tables, "partitions", parts)
	return rep, nil
}

func writeRecord(sw *Writer, kind model.RecordKind, db, object string, body catalog.Object, volatile []string) error {
	stripped := make(map[string]any, len(body))
	for k, v := range body {
		if !slices.Contains(volatile, k) {
			stripped[k] = v
		}
	}
	data, err := json.Marshal(stripped)
	if err != nil {
		return fmt.Errorf("encode %s %s.%s: %w", kind, db, object, err)
	}
	return sw.Write(model.SnapshotRecord{Kind: kind, Database: db, Object: object, Body: data})
}
