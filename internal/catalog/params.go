package catalog

import (
	"context"
	"fmt"
)

// Call is a typed, fully-formed request to one target operation. Each
// parameter struct below is one variant.
type Call interface {
	Operation() Operation
	// Apply invokes the operation on t. Batch operations return the items the
	// service rejected.
	Apply(ctx context.Context, t Target) ([]Failure, error)
}

type CreateDatabaseParams struct {
	CatalogId     string         `json:"CatalogId,omitempty"`
	DatabaseInput *DatabaseInput `json:"DatabaseInput"`
}

type UpdateDatabaseParams struct {
	CatalogId     string         `json:"CatalogId,omitempty"`
	Name          string         `json:"Name"`
	DatabaseInput *DatabaseInput `json:"DatabaseInput"`
}

type DeleteDatabaseParams struct {
	CatalogId string `json:"CatalogId,omitempty"`
	Name      string `json:"Name"`
}

type CreateTableParams struct {
	CatalogId        string           `json:"CatalogId,omitempty"`
	DatabaseName     string           `json:"DatabaseName"`
	TableInput       *TableInput      `json:"TableInput"`
	PartitionIndexes []PartitionIndex `json:"PartitionIndexes,omitempty"`
}

type UpdateTableParams struct {
	CatalogId    string      `json:"CatalogId,omitempty"`
	DatabaseName string      `json:"DatabaseName"`
	TableInput   *TableInput `json:"TableInput"`
	SkipArchive  *bool       `json:"SkipArchive,omitempty"`
}

type DeleteTableParams struct {
	CatalogId    string `json:"CatalogId,omitempty"`
	DatabaseName string `json:"DatabaseName"`
	Name         string `json:"Name"`
}

type CreatePartitionParams struct {
	CatalogId      string          `json:"CatalogId,omitempty"`
	DatabaseName   string          `json:"DatabaseName"`
	TableName      string          `json:"TableName"`
	PartitionInput *PartitionInput `json:"PartitionInput"`
}

type UpdatePartitionParams struct {
	CatalogId          string          `json:"CatalogId,omitempty"`
	DatabaseName       string          `json:"DatabaseName"`
	TableName          string          `json:"TableName"`
	PartitionValueList []string        `json:"PartitionValueList"`
	PartitionInput     *PartitionInput `json:"PartitionInput"`
}

type BatchCreatePartitionParams struct {
	CatalogId          string           `json:"CatalogId,omitempty"`
	DatabaseName       string           `json:"DatabaseName"`
	TableName          string           `json:"TableName"`
	PartitionInputList []PartitionInput `json:"PartitionInputList"`
}

type RegisterResourceParams struct {
	ResourceArn          string `json:"ResourceArn"`
	UseServiceLinkedRole bool   `json:"UseServiceLinkedRole"`
	RoleArn              string `json:"RoleArn,omitempty"`
	WithFederation       *bool  `json:"WithFederation,omitempty"`
}

type DeregisterResourceParams struct {
	ResourceArn string `json:"ResourceArn"`
}

type PutDataLakeSettingsParams struct {
	CatalogId        string            `json:"CatalogId,omitempty"`
	DataLakeSettings *DataLakeSettings `json:"DataLakeSettings"`
}

type CreateLFTagParams struct {
	CatalogId string   `json:"CatalogId,omitempty"`
	TagKey    string   `json:"TagKey"`
	TagValues []string `json:"TagValues"`
}

type DeleteLFTagParams struct {
	CatalogId string `json:"CatalogId,omitempty"`
	TagKey    string `json:"TagKey"`
}

type UpdateLFTagParams struct {
	CatalogId         string   `json:"CatalogId,omitempty"`
	TagKey            string   `json:"TagKey"`
	TagValuesToAdd    []string `json:"TagValuesToAdd,omitempty"`
	TagValuesToDelete []string `json:"TagValuesToDelete,omitempty"`
}

type AddLFTagsToResourceParams struct {
	CatalogId string      `json:"CatalogId,omitempty"`
	Resource  *Resource   `json:"Resource"`
	LFTags    []LFTagPair `json:"LFTags"`
}

type GrantPermissionsParams struct {
	CatalogId                  string             `json:"CatalogId,omitempty"`
	Principal                  *DataLakePrincipal `json:"Principal"`
	Resource                   *Resource          `json:"Resource"`
	Permissions                []string           `json:"Permissions"`
	PermissionsWithGrantOption []string           `json:"PermissionsWithGrantOption,omitempty"`
}

// RevokePermissionsParams has the same shape as a grant.
type RevokePermissionsParams GrantPermissionsParams

// BatchPermissionsParams is shared by batch grant and batch revoke.
type BatchPermissionsParams struct {
	CatalogId string             `json:"CatalogId,omitempty"`
	Entries   []PermissionsEntry `json:"Entries"`
}

// BatchGrantPermissionsParams and BatchRevokePermissionsParams tag the shared
// batch shape with the operation to run.
type (
	BatchGrantPermissionsParams  struct{ BatchPermissionsParams }
	BatchRevokePermissionsParams struct{ BatchPermissionsParams }
)

func (*CreateDatabaseParams) Operation() Operation         { return OpCreateDatabase }
func (*UpdateDatabaseParams) Operation() Operation         { return OpUpdateDatabase }
func (*DeleteDatabaseParams) Operation() Operation         { return OpDeleteDatabase }
func (*CreateTableParams) Operation() Operation            { return OpCreateTable }
func (*UpdateTableParams) Operation() Operation            { return OpUpdateTable }
func (*DeleteTableParams) Operation() Operation            { return OpDeleteTable }
func (*CreatePartitionParams) Operation() Operation        { return OpCreatePartition }
func (*UpdatePartitionParams) Operation() Operation        { return OpUpdatePartition }
func (*BatchCreatePartitionParams) Operation() Operation   { return OpBatchCreatePartition }
func (*RegisterResourceParams) Operation() Operation       { return OpRegisterResource }
func (*DeregisterResourceParams) Operation() Operation     { return OpDeregisterResource }
func (*PutDataLakeSettingsParams) Operation() Operation    { return OpPutDataLakeSettings }
func (*CreateLFTagParams) Operation() Operation            { return OpCreateLFTag }
func (*DeleteLFTagParams) Operation() Operation            { return OpDeleteLFTag }
func (*UpdateLFTagParams) Operation() Operation            { return OpUpdateLFTag }
func (*AddLFTagsToResourceParams) Operation() Operation    { return OpAddLFTagsToResource }
func (*GrantPermissionsParams) Operation() Operation       { return OpGrantPermissions }
func (*RevokePermissionsParams) Operation() Operation      { return OpRevokePermissions }
func (*BatchGrantPermissionsParams) Operation() Operation  { return OpBatchGrantPermissions }
func (*BatchRevokePermissionsParams) Operation() Operation { return OpBatchRevokePermissions }

func (p *CreateDatabaseParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.CreateDatabase(ctx, p)
}

func (p *UpdateDatabaseParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.UpdateDatabase(ctx, p)
}

func (p *DeleteDatabaseParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.DeleteDatabase(ctx, p)
}

func (p *CreateTableParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.CreateTable(ctx, p)
}

func (p *UpdateTableParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.UpdateTable(ctx, p)
}

func (p *DeleteTableParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.DeleteTable(ctx, p)
}

func (p *CreatePartitionParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.CreatePartition(ctx, p)
}

func (p *UpdatePartitionParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.UpdatePartition(ctx, p)
}

func (p *BatchCreatePartitionParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return t.BatchCreatePartition(ctx, p)
}

func (p *RegisterResourceParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.RegisterResource(ctx, p)
}

func (p *DeregisterResourceParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.DeregisterResource(ctx, p)
}

func (p *PutDataLakeSettingsParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.PutDataLakeSettings(ctx, p)
}

func (p *CreateLFTagParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.CreateLFTag(ctx, p)
}

func (p *DeleteLFTagParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.DeleteLFTag(ctx, p)
}

func (p *UpdateLFTagParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.UpdateLFTag(ctx, p)
}

func (p *AddLFTagsToResourceParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return t.AddLFTagsToResource(ctx, p)
}

func (p *GrantPermissionsParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.GrantPermissions(ctx, p)
}

func (p *RevokePermissionsParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return nil, t.RevokePermissions(ctx, p)
}

func (p *BatchGrantPermissionsParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return t.BatchGrantPermissions(ctx, &p.BatchPermissionsParams)
}

func (p *BatchRevokePermissionsParams) Apply(ctx context.Context, t Target) ([]Failure, error) {
	return t.BatchRevokePermissions(ctx, &p.BatchPermissionsParams)
}

var newCall = map[Operation]func() Call{
	OpCreateDatabase:         func() Call { return &CreateDatabaseParams{} },
	OpUpdateDatabase:         func() Call { return &UpdateDatabaseParams{} },
	OpDeleteDatabase:         func() Call { return &DeleteDatabaseParams{} },
	OpCreateTable:            func() Call { return &CreateTableParams{} },
	OpUpdateTable:            func() Call { return &UpdateTableParams{} },
	OpDeleteTable:            func() Call { return &DeleteTableParams{} },
	OpCreatePartition:        func() Call { return &CreatePartitionParams{} },
	OpUpdatePartition:        func() Call { return &UpdatePartitionParams{} },
	OpBatchCreatePartition:   func() Call { return &BatchCreatePartitionParams{} },
	OpRegisterResource:       func() Call { return &RegisterResourceParams{} },
	OpDeregisterResource:     func() Call { return &DeregisterResourceParams{} },
	OpPutDataLakeSettings:    func() Call { return &PutDataLakeSettingsParams{} },
	OpCreateLFTag:            func() Call { return &CreateLFTagParams{} },
	OpDeleteLFTag:            func() Call { return &DeleteLFTagParams{} },
	OpUpdateLFTag:            func() Call { return &UpdateLFTagParams{} },
	OpAddLFTagsToResource:    func() Call { return &AddLFTagsToResourceParams{} },
	OpGrantPermissions:       func() Call { return &GrantPermissionsParams{} },
	OpRevokePermissions:      func() Call { return &RevokePermissionsParams{} },
	OpBatchGrantPermissions:  func() Call { return &BatchGrantPermissionsParams{} },
	OpBatchRevokePermissions: func() Call { return &BatchRevokePermissionsParams{} },
}

// Decode builds the typed call for op from a normalized parameter tree.
// Members the operation does not know are ignored; members of the wrong type
// are an error.
func Decode(op Operation, params map[string]any) (Call, error) {
	mk, ok := newCall[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	c := mk()
	if err := Convert(params, c); err != nil {
		return nil, fmt.Errorf("decode %s parameters: %w", op, err)
	}
	return c, nil
}
