package model

import "encoding/json"

// RecordKind identifies the catalog object type held by a snapshot record.
type RecordKind string

const (
	RecordDatabase  RecordKind = "database"
	RecordTable     RecordKind = "table"
	RecordPartition RecordKind = "partition"
)

// String returns the string representation of the record kind.
func (k RecordKind) String() string {
	return string(k)
}

// IsValid checks whether the kind is a known value. Snapshot readers skip
// records whose kind is not valid.
func (k RecordKind) IsValid() bool {
	switch k {
	case RecordDatabase, RecordTable, RecordPartition:
		return true
	}
	return false
}

// SnapshotRecord is one line of a catalog snapshot.
type SnapshotRecord struct {
	Kind     RecordKind      `json:"kind"`
	Database string          `json:"database_name"`
	Object   string          `json:"object_name,omitempty"` // table name; empty for databases
	Body     json.RawMessage `json:"body"`
}

// Volatile fields are server-assigned and stripped from snapshot bodies.
var (
	DatabaseVolatileFields  = []string{"CreateTime", "CatalogId", "VersionId"}
	TableVolatileFields     = []string{"CatalogId", "DatabaseName", "LastAccessTime", "CreateTime", "UpdateTime", "CreatedBy", "IsRegisteredWithLakeFormation", "VersionId"}
	PartitionVolatileFields = []string{"CatalogId", "DatabaseName", "TableName", "CreationTime", "LastAccessTime", "LastAnalyzedTime"}
)
