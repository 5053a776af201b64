// Package catalog defines the typed contract of the target catalog and
// permissions services: per-operation parameters, the error taxonomy
// returned by implementations, and storage-location remapping.
package catalog

import (
	"context"
	"encoding/json"
	"slices"
)

// Operation names a target catalog or permissions API call.
type Operation string

const (
	OpCreateDatabase         Operation = "CreateDatabase"
	OpUpdateDatabase         Operation = "UpdateDatabase"
	OpDeleteDatabase         Operation = "DeleteDatabase"
	OpCreateTable            Operation = "CreateTable"
	OpUpdateTable            Operation = "UpdateTable"
	OpDeleteTable            Operation = "DeleteTable"
	OpCreatePartition        Operation = "CreatePartition"
	OpUpdatePartition        Operation = "UpdatePartition"
	OpBatchCreatePartition   Operation = "BatchCreatePartition"
	OpRegisterResource       Operation = "RegisterResource"
	OpDeregisterResource     Operation = "DeregisterResource"
	OpPutDataLakeSettings    Operation = "PutDataLakeSettings"
	OpCreateLFTag            Operation = "CreateLFTag"
	OpDeleteLFTag            Operation = "DeleteLFTag"
	OpUpdateLFTag            Operation = "UpdateLFTag"
	OpAddLFTagsToResource    Operation = "AddLFTagsToResource"
	OpGrantPermissions       Operation = "GrantPermissions"
	OpRevokePermissions      Operation = "RevokePermissions"
	OpBatchGrantPermissions  Operation = "BatchGrantPermissions"
	OpBatchRevokePermissions Operation = "BatchRevokePermissions"
)

func (o Operation) String() string {
	return string(o)
}

// CatalogTarget is the subset of the catalog service used for replication.
type CatalogTarget interface {
	CreateDatabase(ctx context.Context, p *CreateDatabaseParams) error
	UpdateDatabase(ctx context.Context, p *UpdateDatabaseParams) error
	DeleteDatabase(ctx context.Context, p *DeleteDatabaseParams) error
	CreateTable(ctx context.Context, p *CreateTableParams) error
	UpdateTable(ctx context.Context, p *UpdateTableParams) error
	DeleteTable(ctx context.Context, p *DeleteTableParams) error
	CreatePartition(ctx context.Context, p *CreatePartitionParams) error
	UpdatePartition(ctx context.Context, p *UpdatePartitionParams) error
	BatchCreatePartition(ctx context.Context, p *BatchCreatePartitionParams) ([]Failure, error)
}

// PermissionsTarget is the subset of the permissions service used for
// replication.
type PermissionsTarget interface {
	RegisterResource(ctx context.Context, p *RegisterResourceParams) error
	DeregisterResource(ctx context.Context, p *DeregisterResourceParams) error
	PutDataLakeSettings(ctx context.Context, p *PutDataLakeSettingsParams) error
	CreateLFTag(ctx context.Context, p *CreateLFTagParams) error
	DeleteLFTag(ctx context.Context, p *DeleteLFTagParams) error
	UpdateLFTag(ctx context.Context, p *UpdateLFTagParams) error
	AddLFTagsToResource(ctx context.Context, p *AddLFTagsToResourceParams) ([]Failure, error)
	GrantPermissions(ctx context.Context, p *GrantPermissionsParams) error
	RevokePermissions(ctx context.Context, p *RevokePermissionsParams) error
	BatchGrantPermissions(ctx context.Context, p *BatchPermissionsParams) ([]Failure, error)
	BatchRevokePermissions(ctx context.Context, p *BatchPermissionsParams) ([]Failure, error)
}

// Target is the replication target: one catalog plus its permissions service.
type Target interface {
	CatalogTarget
	PermissionsTarget
}

// Object is a catalog object as returned by the source service, keyed by API
// member names.
type Object = map[string]any

// Source reads the full catalog for snapshot extraction.
type Source interface {
	Databases(ctx context.Context, fn func(Object) error) error
	Tables(ctx context.Context, database string, fn func(Object) error) error
	Partitions(ctx context.Context, database, table string, fn func(Object) error) error
	Permissions(ctx context.Context, fn func(Object) error) error
}

// Convert re-encodes v into out through JSON. It bridges the generic objects
// produced by the normalizer and the source reader into typed parameters.
func Convert(v any, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// TableRef names one table by schema (database) and table name.
type TableRef struct {
	Schema string
	Table  string
}

// AllDatabases in a database allow-list selects every database of the
// catalog.
const AllDatabases = "ALL_DATABASE"

// SelectsAll reports whether the allow-list contains AllDatabases.
func SelectsAll(databases []string) bool {
	return slices.Contains(databases, AllDatabases)
}

// TableLister lists the tables of the given databases. An allow-list
// containing AllDatabases lists every database.
type TableLister interface {
	ListTables(ctx context.Context, databases []string) ([]TableRef, error)
}
