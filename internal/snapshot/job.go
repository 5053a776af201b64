package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

// Job runs the batch path end to end: extract the source catalog to object
// storage and restore it into the target, then export and apply permissions.
type Job struct {
	Source catalog.Source
	Target catalog.Target

	Store ObjectStore
	Key   string

	// PermissionsStore and PermissionsKey locate the permissions export.
	PermissionsStore ObjectStore
	PermissionsKey   string

	Databases         []string
	IncludePartitions bool
	Buckets           catalog.BucketMapping
	RemapLocations    bool

	SyncCatalog         bool
	SyncPermissions     bool
	DeleteTargetObjects bool

	Logger *slog.Logger
}

// JobReport collects the reports of the steps that ran.
type JobReport struct {
	Extract     *ExtractReport     `json:"extract,omitempty"`
	Restore     *RestoreReport     `json:"restore,omitempty"`
	Exported    int                `json:"permissions_exported"`
	Permissions *PermissionsReport `json:"permissions,omitempty"`
}

// Run executes the enabled steps. A failed catalog step stops the job before
// permissions are applied, since grants on missing tables would fail anyway.
func (j *Job) Run(ctx context.Context) (*JobReport, error) {
	rep := &JobReport{}
	if j.SyncCatalog {
		if err := j.syncCatalog(ctx, rep); err != nil {
			return rep, err
		}
	}
	if j.SyncPermissions {
		if err := j.syncPermissions(ctx, rep); err != nil {
			return rep, err
		}
	}
	if j.DeleteTargetObjects {
		if err := DeleteTargetOnly(ctx, j.Target, nil); errors.Is(err, ErrNotImplemented) {
			j.Logger.Warn("delete_target_objects is set but deleting target-only objects is not implemented")
		}
	}
	return rep, nil
}

func (j *Job) syncCatalog(ctx context.Context, rep *JobReport) error {
	var buf bytes.Buffer
	ex, err := NewExtractor(j.Source, j.Databases, j.IncludePartitions, j.Logger).Extract(ctx, &buf)
	rep.Extract = ex
	if err != nil {
		return err
	}
	if err := j.Store.Put(ctx, j.Key, buf.Bytes()); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	j.Logger.Info("snapshot stored", "key", j.Key, "bytes", buf.Len())

	data, err := j.Store.Get(ctx, j.Key)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	rs, err := NewRestorer(j.Target, j.Buckets, j.RemapLocations, j.Logger).Restore(ctx, bytes.NewReader(data))
	rep.Restore = rs
	return err
}

func (j *Job) syncPermissions(ctx context.Context, rep *JobReport) error {
	var buf bytes.Buffer
	n, err := ExportPermissions(ctx, j.Source, &buf)
	rep.Exported = n
	if err != nil {
		return err
	}
	if err := j.PermissionsStore.Put(ctx, j.PermissionsKey, buf.Bytes()); err != nil {
		return fmt.Errorf("store permissions: %w", err)
	}
	data, err := j.PermissionsStore.Get(ctx, j.PermissionsKey)
	if err != nil {
		return fmt.Errorf("load permissions: %w", err)
	}
	pr, err := ApplyPermissions(ctx, j.Target, bytes.NewReader(data), j.Databases, j.Logger)
	rep.Permissions = pr
	return err
}
