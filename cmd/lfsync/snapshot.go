package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
	"github.com/alfredjeanlab/lfsync/internal/events"
	"github.com/alfredjeanlab/lfsync/internal/snapshot"
	"github.com/alfredjeanlab/lfsync/internal/ui"
)

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Short:   "Copy the whole catalog between regions through a snapshot file",
	GroupID: "snapshot",
}

var snapshotExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Write the allow-listed source databases to the snapshot location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := cfg.RequireSnapshot(); err != nil {
			return err
		}
		pub := openPublisher()
		defer pub.Close()

		source, err := sourceCatalog(ctx)
		if err != nil {
			return err
		}
		store, key, err := snapshot.Open(ctx, cfg.SnapshotLocation, cfg.SourceRegion, cfg.S3Endpoint)
		if err != nil {
			return err
		}

		started := time.Now()
		var buf bytes.Buffer
		rep, err := snapshot.NewExtractor(source, cfg.Databases, cfg.IncludePartitions, logger).Extract(ctx, &buf)
		if err == nil {
			err = store.Put(ctx, key, buf.Bytes())
		}
		dbs, tables, parts := rep.Totals()
		publishPass(ctx, pub, events.TopicSnapshotExtracted, started, map[string]int{
			"databases":  dbs,
			"tables":     tables,
			"partitions": parts,
		}, err)
		if err != nil {
			return err
		}
		logger.Info("snapshot written", "location", cfg.SnapshotLocation, "bytes", buf.Len())

		if jsonOutput {
			return printJSON(rep)
		}
		printDatabaseCounts("Extract", rep.Databases)
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Create or update target objects from the snapshot location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := cfg.RequireSnapshot(); err != nil {
			return err
		}
		pub := openPublisher()
		defer pub.Close()

		target, err := targetCatalog(ctx)
		if err != nil {
			return err
		}
		store, key, err := snapshot.Open(ctx, cfg.SnapshotLocation, cfg.SourceRegion, cfg.S3Endpoint)
		if err != nil {
			return err
		}
		data, err := store.Get(ctx, key)
		if err != nil {
			return err
		}

		started := time.Now()
		rep, err := snapshot.NewRestorer(target, cfg.Buckets(), cfg.UpdateTableLocation, logger).Restore(ctx, bytes.NewReader(data))
		publishPass(ctx, pub, events.TopicSnapshotRestored, started, map[string]int{
			"databases": rep.DatabasesRestored,
			"failed":    rep.Failed,
			"skipped":   rep.Skipped,
		}, err)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(rep)
		}
		printDatabaseCounts("Restore", rep.Databases)
		if rep.Failed > 0 {
			fmt.Println(ui.RenderFail(fmt.Sprintf("%d objects failed; see log", rep.Failed)))
		}
		return nil
	},
}

var snapshotCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the table sets of the source and target catalogs",
	Long: `Compare lists the tables of the allow-listed databases on both sides and
reports matched, source-only and target-only tables.

With --target-dsn the target side is read from an information_schema.tables
view over a SQL connection instead of the target catalog API.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		source, err := sourceCatalog(ctx)
		if err != nil {
			return err
		}
		target, closeTarget, err := targetLister(ctx, cmd)
		if err != nil {
			return err
		}
		defer closeTarget()

		c, err := snapshot.Compare(ctx, source, target, cfg.Databases)
		if err != nil {
			return err
		}
		if cfg.DeleteTargetObjects {
			if err := snapshot.DeleteTargetOnly(ctx, nil, c); errors.Is(err, snapshot.ErrNotImplemented) {
				logger.Warn("delete_target_objects is set but deleting target-only objects is not implemented",
					"target_only", len(c.TargetOnly))
			}
		}

		if jsonOutput {
			return printJSON(c)
		}
		printComparison(c)
		return nil
	},
}

// targetLister returns the table lister for the target side of a compare.
func targetLister(ctx context.Context, cmd *cobra.Command) (catalog.TableLister, func(), error) {
	dsn, _ := cmd.Flags().GetString("target-dsn")
	if dsn == "" {
		t, err := targetClient(ctx)
		return t, func() {}, err
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open target information schema: %w", err)
	}
	return snapshot.NewSQLLister(db), func() { db.Close() }, nil
}

var snapshotSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Extract, store and restore the catalog, then sync permissions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		pub := openPublisher()
		defer pub.Close()

		job, err := newSnapshotJob(ctx)
		if err != nil {
			return err
		}
		rep, err := runSnapshotJob(ctx, job, pub)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rep)
		}
		if rep.Restore != nil {
			printDatabaseCounts("Restore", rep.Restore.Databases)
		}
		if rep.Permissions != nil {
			p := rep.Permissions
			printCounts("Permissions", []string{"exported", "granted", "idempotent", "skipped", "failed"}, map[string]int{
				"exported":   rep.Exported,
				"granted":    p.Granted,
				"idempotent": p.Idempotent,
				"skipped":    p.Skipped,
				"failed":     p.Failed,
			})
		}
		return nil
	},
}

// newSnapshotJob wires the batch path from the configuration.
func newSnapshotJob(ctx context.Context) (*snapshot.Job, error) {
	if !cfg.SyncCatalog && !cfg.SyncPermissions {
		return nil, errors.New("both sync_catalog and sync_permissions are disabled")
	}
	source, err := sourceCatalog(ctx)
	if err != nil {
		return nil, err
	}
	target, err := targetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	job := &snapshot.Job{
		Source:              source,
		Target:              target,
		Databases:           cfg.Databases,
		IncludePartitions:   cfg.IncludePartitions,
		Buckets:             cfg.Buckets(),
		RemapLocations:      cfg.UpdateTableLocation,
		SyncCatalog:         cfg.SyncCatalog,
		SyncPermissions:     cfg.SyncPermissions,
		DeleteTargetObjects: cfg.DeleteTargetObjects,
		Logger:              logger,
	}
	if cfg.SyncCatalog {
		if err := cfg.RequireSnapshot(); err != nil {
			return nil, err
		}
		job.Store, job.Key, err = snapshot.Open(ctx, cfg.SnapshotLocation, cfg.SourceRegion, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
	}
	if cfg.SyncPermissions {
		if cfg.PermissionsLocation == "" {
			return nil, errors.New("LFSYNC_PERMISSIONS_LOCATION (permissions_location) is required when sync_permissions is set")
		}
		var prefix string
		job.PermissionsStore, prefix, err = snapshot.OpenPrefix(ctx, cfg.PermissionsLocation, cfg.SourceRegion, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		job.PermissionsKey = snapshot.JoinKey(prefix, cfg.SourceRegion, snapshot.PermissionsFile)
	}
	return job, nil
}

func runSnapshotJob(ctx context.Context, job *snapshot.Job, pub events.Publisher) (*snapshot.JobReport, error) {
	started := time.Now()
	rep, err := job.Run(ctx)
	counts := map[string]int{"permissions_exported": rep.Exported}
	if rep.Restore != nil {
		counts["databases"] = rep.Restore.DatabasesRestored
		counts["failed"] = rep.Restore.Failed
	}
	if rep.Permissions != nil {
		counts["permissions_granted"] = rep.Permissions.Granted
		counts["permissions_failed"] = rep.Permissions.Failed
	}
	publishPass(ctx, pub, events.TopicSnapshotRestored, started, counts, err)
	return rep, err
}

func printDatabaseCounts(title string, dbs map[string]*snapshot.DatabaseCounts) {
	fmt.Println(ui.RenderAccent(title))
	if len(dbs) == 0 {
		fmt.Println(ui.RenderMuted("  no databases"))
		return
	}
	for _, name := range sortedKeys(dbs) {
		c := dbs[name]
		fmt.Printf("  %s: %d tables, %d partitions\n", name, c.Tables, c.Partitions)
	}
}

func printComparison(c *snapshot.Comparison) {
	section := func(title string, refs []catalog.TableRef, render func(string) string) {
		fmt.Printf("%s (%d)\n", ui.RenderAccent(title), len(refs))
		for _, r := range refs {
			fmt.Println("  " + render(r.Schema+"."+r.Table))
		}
	}
	section("Matched", c.Matched, ui.RenderOK)
	section("Source only", c.SourceOnly, ui.RenderWarn)
	section("Target only", c.TargetOnly, ui.RenderFail)
	if c.InSync() {
		fmt.Println(ui.RenderOK("in sync"))
	}
}

func init() {
	snapshotCompareCmd.Flags().String("target-dsn", "", "read target tables from information_schema over this SQL connection")

	snapshotCmd.AddCommand(snapshotExtractCmd, snapshotRestoreCmd, snapshotCompareCmd, snapshotSyncCmd)
}
