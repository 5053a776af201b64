package catalog

// DataLakePrincipal identifies a user, role or group.
type DataLakePrincipal struct {
	DataLakePrincipalIdentifier string `json:"DataLakePrincipalIdentifier"`
}

// Wildcard is the empty marker object used by TableWildcard and friends.
type Wildcard struct{}

// ColumnWildcard selects all columns except the excluded ones.
type ColumnWildcard struct {
	ExcludedColumnNames []string `json:"ExcludedColumnNames,omitempty"`
}

type DatabaseResource struct {
	CatalogId string `json:"CatalogId,omitempty"`
	Name      string `json:"Name"`
}

type TableResource struct {
	CatalogId     string    `json:"CatalogId,omitempty"`
	DatabaseName  string    `json:"DatabaseName"`
	Name          string    `json:"Name,omitempty"`
	TableWildcard *Wildcard `json:"TableWildcard,omitempty"`
}

type TableWithColumnsResource struct {
	CatalogId      string          `json:"CatalogId,omitempty"`
	DatabaseName   string          `json:"DatabaseName"`
	Name           string          `json:"Name"`
	ColumnNames    []string        `json:"ColumnNames,omitempty"`
	ColumnWildcard *ColumnWildcard `json:"ColumnWildcard,omitempty"`
}

type DataLocationResource struct {
	CatalogId   string `json:"CatalogId,omitempty"`
	ResourceArn string `json:"ResourceArn"`
}

type DataCellsFilterResource struct {
	TableCatalogId string `json:"TableCatalogId,omitempty"`
	DatabaseName   string `json:"DatabaseName,omitempty"`
	TableName      string `json:"TableName,omitempty"`
	Name           string `json:"Name,omitempty"`
}

type LFTagKeyResource struct {
	CatalogId string   `json:"CatalogId,omitempty"`
	TagKey    string   `json:"TagKey"`
	TagValues []string `json:"TagValues"`
}

// LFTag is a tag key with its values, used in tag policy expressions.
type LFTag struct {
	TagKey    string   `json:"TagKey"`
	TagValues []string `json:"TagValues"`
}

type LFTagPolicyResource struct {
	CatalogId    string  `json:"CatalogId,omitempty"`
	ResourceType string  `json:"ResourceType"`
	Expression   []LFTag `json:"Expression"`
}

// Resource is the union of securable resources. Exactly one member is set.
type Resource struct {
	Catalog          *Wildcard                 `json:"Catalog,omitempty"`
	Database         *DatabaseResource         `json:"Database,omitempty"`
	Table            *TableResource            `json:"Table,omitempty"`
	TableWithColumns *TableWithColumnsResource `json:"TableWithColumns,omitempty"`
	DataLocation     *DataLocationResource     `json:"DataLocation,omitempty"`
	DataCellsFilter  *DataCellsFilterResource  `json:"DataCellsFilter,omitempty"`
	LFTag            *LFTagKeyResource         `json:"LFTag,omitempty"`
	LFTagPolicy      *LFTagPolicyResource      `json:"LFTagPolicy,omitempty"`
}

// DatabaseName returns the database the resource belongs to, or "" for
// resources that are not scoped to a database.
func (r *Resource) DatabaseName() string {
	switch {
	case r == nil:
		return ""
	case r.Database != nil:
		return r.Database.Name
	case r.Table != nil:
		return r.Table.DatabaseName
	case r.TableWithColumns != nil:
		return r.TableWithColumns.DatabaseName
	}
	return ""
}

// LFTagPair attaches tag values to a resource.
type LFTagPair struct {
	CatalogId string   `json:"CatalogId,omitempty"`
	TagKey    string   `json:"TagKey"`
	TagValues []string `json:"TagValues"`
}

// PermissionsEntry is one entry of a batch grant or revoke.
type PermissionsEntry struct {
	Id                         string             `json:"Id"`
	Principal                  *DataLakePrincipal `json:"Principal,omitempty"`
	Resource                   *Resource          `json:"Resource,omitempty"`
	Permissions                []string           `json:"Permissions,omitempty"`
	PermissionsWithGrantOption []string           `json:"PermissionsWithGrantOption,omitempty"`
}

// DataLakeSettings are the account-level permissions settings.
type DataLakeSettings struct {
	DataLakeAdmins                   []DataLakePrincipal    `json:"DataLakeAdmins,omitempty"`
	ReadOnlyAdmins                   []DataLakePrincipal    `json:"ReadOnlyAdmins,omitempty"`
	CreateDatabaseDefaultPermissions []PrincipalPermissions `json:"CreateDatabaseDefaultPermissions,omitempty"`
	CreateTableDefaultPermissions    []PrincipalPermissions `json:"CreateTableDefaultPermissions,omitempty"`
	TrustedResourceOwners            []string               `json:"TrustedResourceOwners,omitempty"`
	AllowExternalDataFiltering       *bool                  `json:"AllowExternalDataFiltering,omitempty"`
	ExternalDataFilteringAllowList   []DataLakePrincipal    `json:"ExternalDataFilteringAllowList,omitempty"`
	AuthorizedSessionTagValueList    []string               `json:"AuthorizedSessionTagValueList,omitempty"`
	Parameters                       map[string]string      `json:"Parameters,omitempty"`
}
