package normalize

import "strings"

// canonicalKeys maps lowercased audit-trail parameter names to the exact
// names expected by the catalog and permissions APIs.
var canonicalKeys = map[string]string{
	"additionallocations":              "AdditionalLocations",
	"allowexternaldatafiltering":       "AllowExternalDataFiltering",
	"allrowswildcard":                  "AllRowsWildcard",
	"authorizedsessiontagvaluelist":    "AuthorizedSessionTagValueList",
	"bucketcolumns":                    "BucketColumns",
	"catalog":                          "Catalog",
	"catalogid":                        "CatalogId",
	"column":                           "Column",
	"columnnames":                      "ColumnNames",
	"columns":                          "Columns",
	"columnwildcard":                   "ColumnWildcard",
	"comment":                          "Comment",
	"compressed":                       "Compressed",
	"createdatabasedefaultpermissions": "CreateDatabaseDefaultPermissions",
	"createtabledefaultpermissions":    "CreateTableDefaultPermissions",
	"database":                         "Database",
	"databaseinput":                    "DatabaseInput",
	"databasename":                     "DatabaseName",
	"datacellsfilter":                  "DataCellsFilter",
	"datalakeadmins":                   "DataLakeAdmins",
	"datalakeprincipalidentifier":      "DataLakePrincipalIdentifier",
	"datalakesettings":                 "DataLakeSettings",
	"datalocation":                     "DataLocation",
	"description":                      "Description",
	"entries":                          "Entries",
	"excludedcolumnnames":              "ExcludedColumnNames",
	"expression":                       "Expression",
	"externaldatafilteringallowlist":   "ExternalDataFilteringAllowList",
	"filterexpression":                 "FilterExpression",
	"id":                               "Id",
	"indexname":                        "IndexName",
	"inputformat":                      "InputFormat",
	"keys":                             "Keys",
	"lastaccesstime":                   "LastAccessTime",
	"lastanalyzedtime":                 "LastAnalyzedTime",
	"lftag":                            "LFTag",
	"lftagpolicy":                      "LFTagPolicy",
	"lftags":                           "LFTags",
	"location":                         "Location",
	"locationuri":                      "LocationUri",
	"name":                             "Name",
	"numberofbuckets":                  "NumberOfBuckets",
	"outputformat":                     "OutputFormat",
	"owner":                            "Owner",
	"parameters":                       "Parameters",
	"partitionindexes":                 "PartitionIndexes",
	"partitioninput":                   "PartitionInput",
	"partitioninputlist":               "PartitionInputList",
	"partitionkeys":                    "PartitionKeys",
	"permissions":                      "Permissions",
	"permissionswithgrantoption":       "PermissionsWithGrantOption",
	"principal":                        "Principal",
	"registryname":                     "RegistryName",
	"resource":                         "Resource",
	"resourcearn":                      "ResourceArn",
	"resourcetype":                     "ResourceType",
	"retention":                        "Retention",
	"rowfilter":                        "RowFilter",
	"schemaarn":                        "SchemaArn",
	"schemaid":                         "SchemaId",
	"schemaname":                       "SchemaName",
	"schemareference":                  "SchemaReference",
	"schemaversionid":                  "SchemaVersionId",
	"schemaversionnumber":              "SchemaVersionNumber",
	"serdeinfo":                        "SerdeInfo",
	"serializationlibrary":             "SerializationLibrary",
	"skewedcolumnnames":                "SkewedColumnNames",
	"skewedcolumnvaluelocationmaps":    "SkewedColumnValueLocationMaps",
	"skewedcolumnvalues":               "SkewedColumnValues",
	"skewedinfo":                       "SkewedInfo",
	"sortcolumns":                      "SortColumns",
	"sortorder":                        "SortOrder",
	"storagedescriptor":                "StorageDescriptor",
	"storedassubdirectories":           "StoredAsSubDirectories",
	"string":                           "string",
	"table":                            "Table",
	"tablecatalogid":                   "TableCatalogId",
	"tabledata":                        "TableData",
	"tableinput":                       "TableInput",
	"tablename":                        "TableName",
	"tabletype":                        "TableType",
	"tablewildcard":                    "TableWildcard",
	"tablewithcolumns":                 "TableWithColumns",
	"tagkey":                           "TagKey",
	"tagvalues":                        "TagValues",
	"tagvaluestoadd":                   "TagValuesToAdd",
	"tagvaluestodelete":                "TagValuesToDelete",
	"targetdatabase":                   "TargetDatabase",
	"targettable":                      "TargetTable",
	"trustedresourceowners":            "TrustedResourceOwners",
	"type":                             "Type",
	"useservicelinkedrole":             "UseServiceLinkedRole",
	"values":                           "Values",
	"viewexpandedtext":                 "ViewExpandedText",
	"vieworiginaltext":                 "ViewOriginalText",
}

// Canonical returns the canonical spelling of key, or key itself when it is
// not in the dictionary.
func Canonical(key string) string {
	if c, ok := canonicalKeys[strings.ToLower(key)]; ok {
		return c
	}
	return key
}

// Known reports whether key has a canonical spelling.
func Known(key string) bool {
	_, ok := canonicalKeys[strings.ToLower(key)]
	return ok
}
