package awscatalog

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/glue"
	gluetypes "github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/aws-sdk-go-v2/service/lakeformation"
	lftypes "github.com/aws/aws-sdk-go-v2/service/lakeformation/types"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

var _ catalog.Target = (*Client)(nil)

func (c *Client) CreateDatabase(ctx context.Context, p *catalog.CreateDatabaseParams) error {
	var in glue.CreateDatabaseInput
	if err := toInput(catalog.OpCreateDatabase, p, &in); err != nil {
		return err
	}
	_, err := c.glue.CreateDatabase(ctx, &in)
	return classify(catalog.OpCreateDatabase, err)
}

func (c *Client) UpdateDatabase(ctx context.Context, p *catalog.UpdateDatabaseParams) error {
	var in glue.UpdateDatabaseInput
	if err := toInput(catalog.OpUpdateDatabase, p, &in); err != nil {
		return err
	}
	_, err := c.glue.UpdateDatabase(ctx, &in)
	return classify(catalog.OpUpdateDatabase, err)
}

func (c *Client) DeleteDatabase(ctx context.Context, p *catalog.DeleteDatabaseParams) error {
	var in glue.DeleteDatabaseInput
	if err := toInput(catalog.OpDeleteDatabase, p, &in); err != nil {
		return err
	}
	_, err := c.glue.DeleteDatabase(ctx, &in)
	return classify(catalog.OpDeleteDatabase, err)
}

func (c *Client) CreateTable(ctx context.Context, p *catalog.CreateTableParams) error {
	var in glue.CreateTableInput
	if err := toInput(catalog.OpCreateTable, p, &in); err != nil {
		return err
	}
	_, err := c.glue.CreateTable(ctx, &in)
	return classify(catalog.OpCreateTable, err)
}

func (c *Client) UpdateTable(ctx context.Context, p *catalog.UpdateTableParams) error {
	var in glue.UpdateTableInput
	if err := toInput(catalog.OpUpdateTable, p, &in); err != nil {
		return err
	}
	_, err := c.glue.UpdateTable(ctx, &in)
	return classify(catalog.OpUpdateTable, err)
}

func (c *Client) DeleteTable(ctx context.Context, p *catalog.DeleteTableParams) error {
	var in glue.DeleteTableInput
	if err := toInput(catalog.OpDeleteTable, p, &in); err != nil {
		return err
	}
	_, err := c.glue.DeleteTable(ctx, &in)
	return classify(catalog.OpDeleteTable, err)
}

func (c *Client) CreatePartition(ctx context.Context, p *catalog.CreatePartitionParams) error {
	var in glue.CreatePartitionInput
	if err := toInput(catalog.OpCreatePartition, p, &in); err != nil {
		return err
	}
	_, err := c.glue.CreatePartition(ctx, &in)
	return classify(catalog.OpCreatePartition, err)
}

func (c *Client) UpdatePartition(ctx context.Context, p *catalog.UpdatePartitionParams) error {
	var in glue.UpdatePartitionInput
	if err := toInput(catalog.OpUpdatePartition, p, &in); err != nil {
		return err
	}
	_, err := c.glue.UpdatePartition(ctx, &in)
	return classify(catalog.OpUpdatePartition, err)
}

func (c *Client) BatchCreatePartition(ctx context.Context, p *catalog.BatchCreatePartitionParams) ([]catalog.Failure, error) {
	var in glue.BatchCreatePartitionInput
	if err := toInput(catalog.OpBatchCreatePartition, p, &in); err != nil {
		return nil, err
	}
	out, err := c.glue.BatchCreatePartition(ctx, &in)
	if err != nil {
		return nil, classify(catalog.OpBatchCreatePartition, err)
	}
	return partitionFailures(out.Errors), nil
}

func partitionFailures(errs []gluetypes.PartitionError) []catalog.Failure {
	var failures []catalog.Failure
	for _, e := range errs {
		f := catalog.Failure{ID: strings.Join(e.PartitionValues, "/")}
		if e.ErrorDetail != nil {
			f.Code = deref(e.ErrorDetail.ErrorCode)
			f.Message = deref(e.ErrorDetail.ErrorMessage)
		}
		failures = append(failures, f)
	}
	return failures
}

func (c *Client) RegisterResource(ctx context.Context, p *catalog.RegisterResourceParams) error {
	var in lakeformation.RegisterResourceInput
	if err := toInput(catalog.OpRegisterResource, p, &in); err != nil {
		return err
	}
	_, err := c.lf.RegisterResource(ctx, &in)
	return classify(catalog.OpRegisterResource, err)
}

func (c *Client) DeregisterResource(ctx context.Context, p *catalog.DeregisterResourceParams) error {
	var in lakeformation.DeregisterResourceInput
	if err := toInput(catalog.OpDeregisterResource, p, &in); err != nil {
		return err
	}
	_, err := c.lf.DeregisterResource(ctx, &in)
	return classify(catalog.OpDeregisterResource, err)
}

func (c *Client) PutDataLakeSettings(ctx context.Context, p *catalog.PutDataLakeSettingsParams) error {
	var in lakeformation.PutDataLakeSettingsInput
	if err := toInput(catalog.OpPutDataLakeSettings, p, &in); err != nil {
		return err
	}
	_, err := c.lf.PutDataLakeSettings(ctx, &in)
	return classify(catalog.OpPutDataLakeSettings, err)
}

func (c *Client) CreateLFTag(ctx context.Context, p *catalog.CreateLFTagParams) error {
	var in lakeformation.CreateLFTagInput
	if err := toInput(catalog.OpCreateLFTag, p, &in); err != nil {
		return err
	}
	_, err := c.lf.CreateLFTag(ctx, &in)
	return classify(catalog.OpCreateLFTag, err)
}

func (c *Client) DeleteLFTag(ctx context.Context, p *catalog.DeleteLFTagParams) error {
	var in lakeformation.DeleteLFTagInput
	if err := toInput(catalog.OpDeleteLFTag, p, &in); err != nil {
		return err
	}
	_, err := c.lf.DeleteLFTag(ctx, &in)
	return classify(catalog.OpDeleteLFTag, err)
}

func (c *Client) UpdateLFTag(ctx context.Context, p *catalog.UpdateLFTagParams) error {
	var in lakeformation.UpdateLFTagInput
	if err := toInput(catalog.OpUpdateLFTag, p, &in); err != nil {
		return err
	}
	_, err := c.lf.UpdateLFTag(ctx, &in)
	return classify(catalog.OpUpdateLFTag, err)
}

func (c *Client) AddLFTagsToResource(ctx context.Context, p *catalog.AddLFTagsToResourceParams) ([]catalog.Failure, error) {
	var in lakeformation.AddLFTagsToResourceInput
	if err := toInput(catalog.OpAddLFTagsToResource, p, &in); err != nil {
		return nil, err
	}
	out, err := c.lf.AddLFTagsToResource(ctx, &in)
	if err != nil {
		return nil, classify(catalog.OpAddLFTagsToResource, err)
	}
	var failures []catalog.Failure
	for _, e := range out.Failures {
		f := catalog.Failure{}
		if e.LFTag != nil {
			f.ID = deref(e.LFTag.TagKey)
		}
		if e.Error != nil {
			f.Code = deref(e.Error.ErrorCode)
			f.Message = deref(e.Error.ErrorMessage)
		}
		failures = append(failures, f)
	}
	return failures, nil
}

func (c *Client) GrantPermissions(ctx context.Context, p *catalog.GrantPermissionsParams) error {
	var in lakeformation.GrantPermissionsInput
	if err := toInput(catalog.OpGrantPermissions, p, &in); err != nil {
		return err
	}
	_, err := c.lf.GrantPermissions(ctx, &in)
	return classify(catalog.OpGrantPermissions, err)
}

func (c *Client) RevokePermissions(ctx context.Context, p *catalog.RevokePermissionsParams) error {
	var in lakeformation.RevokePermissionsInput
	if err := toInput(catalog.OpRevokePermissions, p, &in); err != nil {
		return err
	}
	_, err := c.lf.RevokePermissions(ctx, &in)
	return classify(catalog.OpRevokePermissions, err)
}

func (c *Client) BatchGrantPermissions(ctx context.Context, p *catalog.BatchPermissionsParams) ([]catalog.Failure, error) {
	var in lakeformation.BatchGrantPermissionsInput
	if err := toInput(catalog.OpBatchGrantPermissions, p, &in); err != nil {
		return nil, err
	}
	out, err := c.lf.BatchGrantPermissions(ctx, &in)
	if err != nil {
		return nil, classify(catalog.OpBatchGrantPermissions, err)
	}
	return permissionFailures(out.Failures), nil
}

func (c *Client) BatchRevokePermissions(ctx context.Context, p *catalog.BatchPermissionsParams) ([]catalog.Failure, error) {
	var in lakeformation.BatchRevokePermissionsInput
	if err := toInput(catalog.OpBatchRevokePermissions, p, &in); err != nil {
		return nil, err
	}
	out, err := c.lf.BatchRevokePermissions(ctx, &in)
	if err != nil {
		return nil, classify(catalog.OpBatchRevokePermissions, err)
	}
	return permissionFailures(out.Failures), nil
}

func permissionFailures(entries []lftypes.BatchPermissionsFailureEntry) []catalog.Failure {
	var failures []catalog.Failure
	for _, e := range entries {
		f := catalog.Failure{}
		if e.RequestEntry != nil {
			f.ID = deref(e.RequestEntry.Id)
		}
		if e.Error != nil {
			f.Code = deref(e.Error.ErrorCode)
			f.Message = deref(e.Error.ErrorMessage)
		}
		failures = append(failures, f)
	}
	return failures
}
