package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
	"github.com/alfredjeanlab/lfsync/internal/model"
)

// RestoreReport summarizes one restore run.
type RestoreReport struct {
	Databases map[string]*DatabaseCounts `json:"databases"`
	// DatabasesRestored counts applied database records.
	DatabasesRestored int `json:"databases_restored"`
	Failed            int `json:"failed"`
	Skipped           int `json:"skipped"`
}

func (r *RestoreReport) counts(db string) *DatabaseCounts {
	c, ok := r.Databases[db]
	if !ok {
		c = &DatabaseCounts{}
		r.Databases[db] = c
	}
	return c
}

// Restorer applies snapshot records to the target catalog with
// create-or-update semantics.
type Restorer struct {
	target  catalog.CatalogTarget
	buckets catalog.BucketMapping
	remap   bool
	logger  *slog.Logger
}

// NewRestorer creates a restorer. When remap is set, database, table and
// partition locations are rewritten through buckets.
func NewRestorer(target catalog.CatalogTarget, buckets catalog.BucketMapping, remap bool, logger *slog.Logger) *Restorer {
	return &Restorer{target: target, buckets: buckets, remap: remap, logger: logger}
}

// Restore reads snapshot records from r and applies them in order. Database
// and table failures are logged and counted and the restore continues.
// Partition failures, malformed lines and read errors stop the restore.
// Records of unknown kind are skipped.
func (rs *Restorer) Restore(ctx context.Context, r io.Reader) (*RestoreReport, error) {
	rep := &RestoreReport{Databases: make(map[string]*DatabaseCounts)}
	sr := NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rec, err := sr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rep, err
		}
		switch rec.Kind {
		case model.RecordDatabase:
			if err := rs.restoreDatabase(ctx, rec); err != nil {
				rs.logger.Error("restore database failed", "database", rec.Database, "err", err)
				rep.Failed++
				continue
			}
			rep.DatabasesRestored++
			rep.counts(rec.Database)
		case model.RecordTable:
			if err := rs.restoreTable(ctx, rec); err != nil {
				rs.logger.Error("restore table failed", "database", rec.Database, "table", rec.Object, "err", err)
				rep.Failed++
				continue
			}
			rep.counts(rec.Database).Tables++
		case model.RecordPartition:
			if err := rs.restorePartition(ctx, rec); err != nil {
				return rep, fmt.Errorf("restore partition of %s.%s: %w", rec.Database, rec.Object, err)
			}
			rep.counts(rec.Database).Partitions++
		default:
			rs.logger.Warn("skipping snapshot record of unknown kind", "kind", rec.Kind, "database", rec.Database)
			rep.Skipped++
		}
	}

	var tables, parts int
	for db, c := range rep.Databases {
		tables += c.Tables
		parts += c.Partitions
		rs.logger.Info("restored database", "database", db, "tables", c.Tables, "partitions", c.Partitions)
	}
	rs.logger.Info("restore complete",
		"databases", rep.DatabasesRestored,
		"tables", tables,
		"partitions", parts,
		"failed", rep.Failed,
		"skipped", rep.Skipped,
	)
	return rep, nil
}

func (rs *Restorer) remapLocation(loc *string) {
	if !rs.remap || *loc == "" {
		return
	}
	if out, ok := rs.buckets.Remap(*loc); ok {
		*loc = out
	}
}

func (rs *Restorer) restoreDatabase(ctx context.Context, rec model.SnapshotRecord) error {
	var in catalog.DatabaseInput
	if err := json.Unmarshal(rec.Body, &in); err != nil {
		return fmt.Errorf("decode database: %w", err)
	}
	if in.Name == "" {
		in.Name = rec.Database
	}
	rs.remapLocation(&in.LocationUri)

	err := rs.target.CreateDatabase(ctx, &catalog.CreateDatabaseParams{DatabaseInput: &in})
	if catalog.IsAlreadyExists(err) {
		err = rs.target.UpdateDatabase(ctx, &catalog.UpdateDatabaseParams{Name: in.Name, DatabaseInput: &in})
	}
	return err
}

func (rs *Restorer) restoreTable(ctx context.Context, rec model.SnapshotRecord) error {
	var in catalog.TableInput
	if err := json.Unmarshal(rec.Body, &in); err != nil {
		return fmt.Errorf("decode table: %w", err)
	}
	if in.Name == "" {
		in.Name = rec.Object
	}
	if in.StorageDescriptor != nil {
		rs.remapLocation(&in.StorageDescriptor.Location)
	}

	err := rs.target.CreateTable(ctx, &catalog.CreateTableParams{DatabaseName: rec.Database, TableInput: &in})
	if catalog.IsAlreadyExists(err) {
		err = rs.target.UpdateTable(ctx, &catalog.UpdateTableParams{DatabaseName: rec.Database, TableInput: &in})
	}
	return err
}

func (rs *Restorer) restorePartition(ctx context.Context, rec model.SnapshotRecord) error {
	var in catalog.PartitionInput
	if err := json.Unmarshal(rec.Body, &in); err != nil {
		return fmt.Errorf("decode partition: %w", err)
	}
	if in.StorageDescriptor != nil {
		rs.remapLocation(&in.StorageDescriptor.Location)
	}

	err := rs.target.CreatePartition(ctx, &catalog.CreatePartitionParams{
		DatabaseName:   rec.Database,
		TableName:      rec.Object,
		PartitionInput: &in,
	})
	if catalog.IsAlreadyExists(err) {
		err = rs.target.UpdatePartition(ctx, &catalog.UpdatePartitionParams{
			DatabaseName:       rec.Database,
			TableName:          rec.Object,
			PartitionValueList: in.Values,
			PartitionInput:     &in,
		})
		if err != nil {
			return fmt.Errorf("update partition %s: %w", strings.Join(in.Values, "/"), err)
		}
	}
	return err
}
