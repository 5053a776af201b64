package snapshot

import (
	"context"
	"strings"
	"testing"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

func TestJobRun(t *testing.T) {
	store := NewFileStore(t.TempDir())
	src := testSource()
	src.permissions = permissionSource().permissions
	tgt := newMemTarget()

	job := &Job{
		Source:            src,
		Target:            tgt,
		Store:             store,
		Key:               "catalog.tsv",
		PermissionsStore:  store,
		PermissionsKey:    JoinKey("perms", PermissionsFile),
		Databases:         []string{"sales"},
		IncludePartitions: true,
		Buckets:           catalog.BucketMapping{"src-bucket": "dst-bucket"},
		RemapLocations:    true,
		SyncCatalog:       true,
		SyncPermissions:   true,
		Logger:            discardLogger(),
	}
	rep, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Restore == nil || rep.Restore.DatabasesRestored != 1 {
		t.Fatalf("restore report = %+v", rep.Restore)
	}
	if _, ok := tgt.tables["sales.orders"]; !ok {
		t.Fatal("table not restored")
	}
	if len(tgt.partitions) != 1 {
		t.Fatalf("partitions = %d", len(tgt.partitions))
	}
	if rep.Exported != 4 || rep.Permissions.Granted != 2 {
		t.Fatalf("permissions: exported %d, report %+v", rep.Exported, rep.Permissions)
	}

	data, err := store.Get(context.Background(), "catalog.tsv")
	if err != nil {
		t.Fatalf("snapshot not stored: %v", err)
	}
	if !strings.HasPrefix(string(data), "database\tsales\t") {
		t.Fatalf("snapshot = %q", data)
	}
}

func TestJobSkipsDisabledSteps(t *testing.T) {
	tgt := newMemTarget()
	job := &Job{
		Source:              testSource(),
		Target:              tgt,
		Store:               NewFileStore(t.TempDir()),
		Key:                 "catalog.tsv",
		Databases:           []string{AllDatabases},
		DeleteTargetObjects: true,
		Logger:              discardLogger(),
	}
	rep, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Extract != nil || rep.Permissions != nil || len(tgt.databases) != 0 {
		t.Fatalf("disabled steps ran: %+v", rep)
	}
}
