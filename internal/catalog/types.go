package catalog

// The shapes below follow the catalog API's input structures. JSON names are
// the API's own member names, which is what the normalizer produces.

// Column is a table or partition-key column.
type Column struct {
	Name       string            `json:"Name"`
	Type       string            `json:"Type,omitempty"`
	Comment    string            `json:"Comment,omitempty"`
	Parameters map[string]string `json:"Parameters,omitempty"`
}

// SerDeInfo describes the serialization library of a storage descriptor.
type SerDeInfo struct {
	Name                 string            `json:"Name,omitempty"`
	SerializationLibrary string            `json:"SerializationLibrary,omitempty"`
	Parameters           map[string]string `json:"Parameters,omitempty"`
}

// Order is a sort column.
type Order struct {
	Column    string `json:"Column"`
	SortOrder int32  `json:"SortOrder"`
}

// SkewedInfo describes skewed column values.
type SkewedInfo struct {
	SkewedColumnNames             []string          `json:"SkewedColumnNames,omitempty"`
	SkewedColumnValues            []string          `json:"SkewedColumnValues,omitempty"`
	SkewedColumnValueLocationMaps map[string]string `json:"SkewedColumnValueLocationMaps,omitempty"`
}

// SchemaID identifies a schema registry schema.
type SchemaID struct {
	SchemaArn    string `json:"SchemaArn,omitempty"`
	SchemaName   string `json:"SchemaName,omitempty"`
	RegistryName string `json:"RegistryName,omitempty"`
}

// SchemaReference points a storage descriptor at a registry schema.
type SchemaReference struct {
	SchemaId            *SchemaID `json:"SchemaId,omitempty"`
	SchemaVersionId     string    `json:"SchemaVersionId,omitempty"`
	SchemaVersionNumber *int64    `json:"SchemaVersionNumber,omitempty"`
}

// StorageDescriptor describes the physical storage of a table or partition.
type StorageDescriptor struct {
	Columns                []Column          `json:"Columns,omitempty"`
	Location               string            `json:"Location,omitempty"`
	AdditionalLocations    []string          `json:"AdditionalLocations,omitempty"`
	InputFormat            string            `json:"InputFormat,omitempty"`
	OutputFormat           string            `json:"OutputFormat,omitempty"`
	Compressed             bool              `json:"Compressed"`
	NumberOfBuckets        int32             `json:"NumberOfBuckets"`
	SerdeInfo              *SerDeInfo        `json:"SerdeInfo,omitempty"`
	BucketColumns          []string          `json:"BucketColumns,omitempty"`
	SortColumns            []Order           `json:"SortColumns,omitempty"`
	Parameters             map[string]string `json:"Parameters,omitempty"`
	SkewedInfo             *SkewedInfo       `json:"SkewedInfo,omitempty"`
	StoredAsSubDirectories bool              `json:"StoredAsSubDirectories"`
	SchemaReference        *SchemaReference  `json:"SchemaReference,omitempty"`
}

// TableIdentifier names a table in another catalog (resource links).
type TableIdentifier struct {
	CatalogId    string `json:"CatalogId,omitempty"`
	DatabaseName string `json:"DatabaseName,omitempty"`
	Name         string `json:"Name,omitempty"`
	Region       string `json:"Region,omitempty"`
}

// DatabaseIdentifier names a database in another catalog (resource links).
type DatabaseIdentifier struct {
	CatalogId    string `json:"CatalogId,omitempty"`
	DatabaseName string `json:"DatabaseName,omitempty"`
	Region       string `json:"Region,omitempty"`
}

// TableInput is the definition used to create or update a table.
type TableInput struct {
	Name              string             `json:"Name"`
	Description       string             `json:"Description,omitempty"`
	Owner             string             `json:"Owner,omitempty"`
	Retention         int32              `json:"Retention"`
	StorageDescriptor *StorageDescriptor `json:"StorageDescriptor,omitempty"`
	PartitionKeys     []Column           `json:"PartitionKeys,omitempty"`
	ViewOriginalText  string             `json:"ViewOriginalText,omitempty"`
	ViewExpandedText  string             `json:"ViewExpandedText,omitempty"`
	TableType         string             `json:"TableType,omitempty"`
	Parameters        map[string]string  `json:"Parameters,omitempty"`
	TargetTable       *TableIdentifier   `json:"TargetTable,omitempty"`
}

// PrincipalPermissions is a default permission entry of a database or data
// lake settings.
type PrincipalPermissions struct {
	Principal   *DataLakePrincipal `json:"Principal,omitempty"`
	Permissions []string           `json:"Permissions,omitempty"`
}

// DatabaseInput is the definition used to create or update a database.
type DatabaseInput struct {
	Name                          string                 `json:"Name"`
	Description                   string                 `json:"Description,omitempty"`
	LocationUri                   string                 `json:"LocationUri,omitempty"`
	Parameters                    map[string]string      `json:"Parameters,omitempty"`
	CreateTableDefaultPermissions []PrincipalPermissions `json:"CreateTableDefaultPermissions,omitempty"`
	TargetDatabase                *DatabaseIdentifier    `json:"TargetDatabase,omitempty"`
}

// PartitionInput is the definition used to create or update a partition.
type PartitionInput struct {
	Values            []string           `json:"Values"`
	StorageDescriptor *StorageDescriptor `json:"StorageDescriptor,omitempty"`
	Parameters        map[string]string  `json:"Parameters,omitempty"`
}

// PartitionIndex is a partition index declared at table creation.
type PartitionIndex struct {
	Keys      []string `json:"Keys"`
	IndexName string   `json:"IndexName"`
}
