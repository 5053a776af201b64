package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
	"github.com/alfredjeanlab/lfsync/internal/model"
)

func testSource() *memSource {
	return &memSource{
		databases: []catalog.Object{
			{"Name": "sales", "LocationUri": "s3://src-bucket/sales", "CreateTime": "2024-01-01T00:00:00Z", "CatalogId": "111"},
			{"Name": "scratch"},
		},
		tables: map[string][]catalog.Object{
			"sales": {
				{
					"Name":         "orders",
					"DatabaseName": "sales",
					"CreateTime":   "2024-01-01T00:00:00Z",
					"UpdateTime":   "2024-01-02T00:00:00Z",
					"CreatedBy":    "arn:aws:iam::111:user/a",
					"TableType":    "EXTERNAL_TABLE",
					"StorageDescriptor": map[string]any{
						"Location":        "s3://src-bucket/sales/orders",
						"NumberOfBuckets": float64(-1),
					},
				},
			},
			"scratch": {{"Name": "tmp"}},
		},
		partitions: map[string][]catalog.Object{
			"sales.orders": {
				{
					"Values":       []any{"2024-01-01"},
					"DatabaseName": "sales",
					"TableName":    "orders",
					"CreationTime": "2024-01-01T00:00:00Z",
					"StorageDescriptor": map[string]any{
						"Location": "s3://src-bucket/sales/orders/dt=2024-01-01",
					},
				},
			},
		},
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	recs := []model.SnapshotRecord{
		{Kind: model.RecordDatabase, Database: "sales", Body: json.RawMessage(`{ "Name": "sales",
			"Description": "tab\there" }`)},
		{Kind: model.RecordTable, Database: "sales", Object: "orders", Body: json.RawMessage(`{"Name":"orders"}`)},
	}
	for _, r := range recs {
		if err := w.Write(r); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "database\tsales\t\t{") {
		t.Fatalf("database line = %q", lines[0])
	}

	r := NewReader(&buf)
	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal(first.Body, &body); err != nil || body["Description"] != "tab\there" {
		t.Fatalf("body = %s (%v)", first.Body, err)
	}
	second, err := r.Next()
	if err != nil || second.Object != "orders" || second.Kind != model.RecordTable {
		t.Fatalf("second = %+v (%v)", second, err)
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestWriterRejectsTabInName(t *testing.T) {
	w := NewWriter(io.Discard)
	err := w.Write(model.SnapshotRecord{Kind: model.RecordTable, Database: "a\tb", Body: json.RawMessage(`{}`)})
	if err == nil {
		t.Fatal("expected error for tab in database name")
	}
}

func TestParseLineErrors(t *testing.T) {
	if _, err := ParseLine("table\tdb\tt", 1); err == nil {
		t.Fatal("expected error for 3 fields")
	}
	if _, err := ParseLine("table\tdb\tt\t{", 1); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	rec, err := ParseLine("view\tdb\tv\t{}", 1)
	if err != nil || rec.Kind.IsValid() {
		t.Fatalf("unknown kind should parse: %+v %v", rec, err)
	}
}

func TestExtract(t *testing.T) {
	var buf bytes.Buffer
	rep, err := NewExtractor(testSource(), []string{"sales"}, true, discardLogger()).Extract(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	dbs, tables, parts := rep.Totals()
	if dbs != 1 || tables != 1 || parts != 1 {
		t.Fatalf("totals = %d/%d/%d", dbs, tables, parts)
	}

	r := NewReader(&buf)
	var recs []model.SnapshotRecord
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		recs = append(recs, rec)
	}
	if len(recs) != 3 {
		t.Fatalf("records = %d", len(recs))
	}
	wantKinds := []model.RecordKind{model.RecordDatabase, model.RecordTable, model.RecordPartition}
	for i, k := range wantKinds {
		if recs[i].Kind != k {
			t.Fatalf("record %d kind = %s, want %s", i, recs[i].Kind, k)
		}
	}
	if recs[2].Object != "orders" {
		t.Fatalf("partition object = %q", recs[2].Object)
	}

	volatile := map[model.RecordKind][]string{
		model.RecordDatabase:  model.DatabaseVolatileFields,
		model.RecordTable:     model.TableVolatileFields,
		model.RecordPartition: model.PartitionVolatileFields,
	}
	for _, rec := range recs {
		var body map[string]any
		if err := json.Unmarshal(rec.Body, &body); err != nil {
			t.Fatalf("body: %v", err)
		}
		for _, f := range volatile[rec.Kind] {
			if _, ok := body[f]; ok {
				t.Errorf("%s record kept volatile field %s", rec.Kind, f)
			}
		}
	}
}

func TestExtractAllDatabasesWithoutPartitions(t *testing.T) {
	var buf bytes.Buffer
	rep, err := NewExtractor(testSource(), []string{AllDatabases}, false, discardLogger()).Extract(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	dbs, tables, parts := rep.Totals()
	if dbs != 2 || tables != 2 || parts != 0 {
		t.Fatalf("totals = %d/%d/%d", dbs, tables, parts)
	}
}

func extracted(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := NewExtractor(testSource(), []string{AllDatabases}, true, discardLogger()).Extract(context.Background(), &buf); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return buf.Bytes()
}

func TestRestoreRemapsOwnLocations(t *testing.T) {
	tgt := newMemTarget()
	buckets := catalog.BucketMapping{"src-bucket": "dst-bucket"}
	rep, err := NewRestorer(tgt, buckets, true, discardLogger()).Restore(context.Background(), bytes.NewReader(extracted(t)))
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if rep.DatabasesRestored != 2 || rep.Failed != 0 {
		t.Fatalf("report = %+v", rep)
	}
	if got := tgt.databases["sales"].LocationUri; got != "s3://dst-bucket/sales" {
		t.Errorf("database location = %q", got)
	}
	if got := tgt.tables["sales.orders"].StorageDescriptor.Location; got != "s3://dst-bucket/sales/orders" {
		t.Errorf("table location = %q", got)
	}
	p := tgt.partitions["sales.orders/2024-01-01"]
	if p == nil || p.StorageDescriptor.Location != "s3://dst-bucket/sales/orders/dt=2024-01-01" {
		t.Errorf("partition = %+v", p)
	}
}

func TestRestoreWithoutRemapKeepsLocations(t *testing.T) {
	tgt := newMemTarget()
	buckets := catalog.BucketMapping{"src-bucket": "dst-bucket"}
	if _, err := NewRestorer(tgt, buckets, false, discardLogger()).Restore(context.Background(), bytes.NewReader(extracted(t))); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := tgt.tables["sales.orders"].StorageDescriptor.Location; got != "s3://src-bucket/sales/orders" {
		t.Errorf("table location = %q", got)
	}
}

func TestRestoreTwiceUpdates(t *testing.T) {
	tgt := newMemTarget()
	data := extracted(t)
	rs := NewRestorer(tgt, nil, false, discardLogger())
	if _, err := rs.Restore(context.Background(), bytes.NewReader(data)); err != nil {
		t.Fatalf("first Restore: %v", err)
	}
	rep, err := rs.Restore(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("second Restore: %v", err)
	}
	// 2 databases + 2 tables + 1 partition fall back to update.
	if tgt.updates != 5 || rep.Failed != 0 {
		t.Fatalf("updates = %d, report = %+v", tgt.updates, rep)
	}
	if len(tgt.tables) != 2 {
		t.Fatalf("tables = %d", len(tgt.tables))
	}
}

func TestRestoreSkipsUnknownKindsAndContinuesOnTableError(t *testing.T) {
	tgt := newMemTarget()
	tgt.tableErr["sales.bad"] = &catalog.Error{Op: catalog.OpCreateTable, Kind: catalog.KindInvalidInput, Code: "InvalidInputException"}
	input := strings.Join([]string{
		"database\tsales\t\t{\"Name\":\"sales\"}",
		"view\tsales\tv\t{\"Name\":\"v\"}",
		"table\tsales\tbad\t{\"Name\":\"bad\"}",
		"",
		"table\tsales\tgood\t{\"Name\":\"good\"}",
	}, "\n")

	rep, err := NewRestorer(tgt, nil, false, discardLogger()).Restore(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if rep.Skipped != 1 || rep.Failed != 1 || rep.Databases["sales"].Tables != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if _, ok := tgt.tables["sales.good"]; !ok {
		t.Fatal("restore stopped after table error")
	}
}

func TestRestoreAbortsOnPartitionError(t *testing.T) {
	tgt := newMemTarget()
	tgt.partErr = &catalog.Error{Op: catalog.OpCreatePartition, Kind: catalog.KindEntityNotFound, Code: "EntityNotFoundException"}
	input := "partition\tsales\torders\t{\"Values\":[\"1\"]}\ntable\tsales\tlater\t{\"Name\":\"later\"}\n"

	_, err := NewRestorer(tgt, nil, false, discardLogger()).Restore(context.Background(), strings.NewReader(input))
	if catalog.KindOf(err) != catalog.KindEntityNotFound {
		t.Fatalf("err = %v", err)
	}
	if _, ok := tgt.tables["sales.later"]; ok {
		t.Fatal("restore continued after partition error")
	}
}

func TestRestoreMalformedLine(t *testing.T) {
	_, err := NewRestorer(newMemTarget(), nil, false, discardLogger()).Restore(context.Background(), strings.NewReader("garbage\n"))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestCompareScenario(t *testing.T) {
	src := staticLister{{Schema: "db1", Table: "t2"}, {Schema: "db1", Table: "t1"}}
	dst := staticLister{{Schema: "db1", Table: "t1"}, {Schema: "db1", Table: "t3"}}

	c, err := Compare(context.Background(), src, dst, []string{"db1"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	check := func(name string, got []catalog.TableRef, want catalog.TableRef) {
		t.Helper()
		if len(got) != 1 || got[0] != want {
			t.Errorf("%s = %v, want [%v]", name, got, want)
		}
	}
	check("matched", c.Matched, catalog.TableRef{Schema: "db1", Table: "t1"})
	check("source only", c.SourceOnly, catalog.TableRef{Schema: "db1", Table: "t2"})
	check("target only", c.TargetOnly, catalog.TableRef{Schema: "db1", Table: "t3"})
	if c.InSync() {
		t.Error("InSync = true")
	}
}

func TestCompareListError(t *testing.T) {
	boom := errors.New("access denied")
	_, err := Compare(context.Background(), staticLister{{Schema: "db1", Table: "t1"}}, failingLister{boom}, []string{"db1"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if !strings.Contains(err.Error(), "list target tables") {
		t.Fatalf("err = %v", err)
	}
}

func TestCompareSorted(t *testing.T) {
	c := compareRefs(
		[]catalog.TableRef{{Schema: "b", Table: "x"}, {Schema: "a", Table: "z"}, {Schema: "a", Table: "y"}},
		[]catalog.TableRef{{Schema: "b", Table: "x"}, {Schema: "a", Table: "z"}, {Schema: "a", Table: "y"}},
	)
	want := []catalog.TableRef{{Schema: "a", Table: "y"}, {Schema: "a", Table: "z"}, {Schema: "b", Table: "x"}}
	for i := range want {
		if c.Matched[i] != want[i] {
			t.Fatalf("Matched = %v", c.Matched)
		}
	}
	if !c.InSync() {
		t.Error("InSync = false")
	}
}

func TestDeleteTargetOnlyNotImplemented(t *testing.T) {
	if err := DeleteTargetOnly(context.Background(), newMemTarget(), &Comparison{}); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("err = %v", err)
	}
}
