// Package awscatalog implements the catalog Target, Source and TableLister
// over the Glue and Lake Formation APIs.
package awscatalog

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/lakeformation"
)

// GlueAPI is the subset of the Glue client used here.
type GlueAPI interface {
	CreateDatabase(ctx context.Context, in *glue.CreateDatabaseInput, opts ...func(*glue.Options)) (*glue.CreateDatabaseOutput, error)
	UpdateDatabase(ctx context.Context, in *glue.UpdateDatabaseInput, opts ...func(*glue.Options)) (*glue.UpdateDatabaseOutput, error)
	DeleteDatabase(ctx context.Context, in *glue.DeleteDatabaseInput, opts ...func(*glue.Options)) (*glue.DeleteDatabaseOutput, error)
	CreateTable(ctx context.Context, in *glue.CreateTableInput, opts ...func(*glue.Options)) (*glue.CreateTableOutput, error)
	UpdateTable(ctx context.Context, in *glue.UpdateTableInput, opts ...func(*glue.Options)) (*glue.UpdateTableOutput, error)
	DeleteTable(ctx context.Context, in *glue.DeleteTableInput, opts ...func(*glue.Options)) (*glue.DeleteTableOutput, error)
	CreatePartition(ctx context.Context, in *glue.CreatePartitionInput, opts ...func(*glue.Options)) (*glue.CreatePartitionOutput, error)
	UpdatePartition(ctx context.Context, in *glue.UpdatePartitionInput, opts ...func(*glue.Options)) (*glue.UpdatePartitionOutput, error)
	BatchCreatePartition(ctx context.Context, in *glue.BatchCreatePartitionInput, opts ...func(*glue.Options)) (*glue.BatchCreatePartitionOutput, error)
	GetDatabases(ctx context.Context, in *glue.GetDatabasesInput, opts ...func(*glue.Options)) (*glue.GetDatabasesOutput, error)
	GetTables(ctx context.Context, in *glue.GetTablesInput, opts ...func(*glue.Options)) (*glue.GetTablesOutput, error)
	GetPartitions(ctx context.Context, in *glue.GetPartitionsInput, opts ...func(*glue.Options)) (*glue.GetPartitionsOutput, error)
}

// LakeFormationAPI is the subset of the Lake Formation client used here.
type LakeFormationAPI interface {
	RegisterResource(ctx context.Context, in *lakeformation.RegisterResourceInput, opts ...func(*lakeformation.Options)) (*lakeformation.RegisterResourceOutput, error)
	DeregisterResource(ctx context.Context, in *lakeformation.DeregisterResourceInput, opts ...func(*lakeformation.Options)) (*lakeformation.DeregisterResourceOutput, error)
	PutDataLakeSettings(ctx context.Context, in *lakeformation.PutDataLakeSettingsInput, opts ...func(*lakeformation.Options)) (*lakeformation.PutDataLakeSettingsOutput, error)
	CreateLFTag(ctx context.Context, in *lakeformation.CreateLFTagInput, opts ...func(*lakeformation.Options)) (*lakeformation.CreateLFTagOutput, error)
	DeleteLFTag(ctx context.Context, in *lakeformation.DeleteLFTagInput, opts ...func(*lakeformation.Options)) (*lakeformation.DeleteLFTagOutput, error)
	UpdateLFTag(ctx context.Context, in *lakeformation.UpdateLFTagInput, opts ...func(*lakeformation.Options)) (*lakeformation.UpdateLFTagOutput, error)
	AddLFTagsToResource(ctx context.Context, in *lakeformation.AddLFTagsToResourceInput, opts ...func(*lakeformation.Options)) (*lakeformation.AddLFTagsToResourceOutput, error)
	GrantPermissions(ctx context.Context, in *lakeformation.GrantPermissionsInput, opts ...func(*lakeformation.Options)) (*lakeformation.GrantPermissionsOutput, error)
	RevokePermissions(ctx context.Context, in *lakeformation.RevokePermissionsInput, opts ...func(*lakeformation.Options)) (*lakeformation.RevokePermissionsOutput, error)
	BatchGrantPermissions(ctx context.Context, in *lakeformation.BatchGrantPermissionsInput, opts ...func(*lakeformation.Options)) (*lakeformation.BatchGrantPermissionsOutput, error)
	BatchRevokePermissions(ctx context.Context, in *lakeformation.BatchRevokePermissionsInput, opts ...func(*lakeformation.Options)) (*lakeformation.BatchRevokePermissionsOutput, error)
	ListPermissions(ctx context.Context, in *lakeformation.ListPermissionsInput, opts ...func(*lakeformation.Options)) (*lakeformation.ListPermissionsOutput, error)
}

// Client talks to one region's catalog and permissions services.
type Client struct {
	glue GlueAPI
	lf   LakeFormationAPI
}

// New loads the default AWS configuration for region and builds a client.
func New(ctx context.Context, region string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewWithAPIs(glue.NewFromConfig(cfg), lakeformation.NewFromConfig(cfg)), nil
}

// NewWithAPIs builds a client over already-constructed service clients.
func NewWithAPIs(g GlueAPI, lf LakeFormationAPI) *Client {
	return &Client{glue: g, lf: lf}
}
