package catalog

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled is a Target that waits on a token bucket before every call.
type Throttled struct {
	target  Target
	limiter *rate.Limiter
}

var _ Target = (*Throttled)(nil)

// Throttle limits calls against t to perSecond, with bursts of one call.
// A non-positive rate returns t unchanged.
func Throttle(t Target, perSecond float64) Target {
	if perSecond <= 0 {
		return t
	}
	return &Throttled{target: t, limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

func (t *Throttled) CreateDatabase(ctx context.Context, p *CreateDatabaseParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.CreateDatabase(ctx, p)
}

func (t *Throttled) UpdateDatabase(ctx context.Context, p *UpdateDatabaseParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.UpdateDatabase(ctx, p)
}

func (t *Throttled) DeleteDatabase(ctx context.Context, p *DeleteDatabaseParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.DeleteDatabase(ctx, p)
}

func (t *Throttled) CreateTable(ctx context.Context, p *CreateTableParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.CreateTable(ctx, p)
}

func (t *Throttled) UpdateTable(ctx context.Context, p *UpdateTableParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.UpdateTable(ctx, p)
}

func (t *Throttled) DeleteTable(ctx context.Context, p *DeleteTableParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.DeleteTable(ctx, p)
}

func (t *Throttled) CreatePartition(ctx context.Context, p *CreatePartitionParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.CreatePartition(ctx, p)
}

func (t *Throttled) UpdatePartition(ctx context.Context, p *UpdatePartitionParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.UpdatePartition(ctx, p)
}

func (t *Throttled) BatchCreatePartition(ctx context.Context, p *BatchCreatePartitionParams) ([]Failure, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.target.BatchCreatePartition(ctx, p)
}

func (t *Throttled) RegisterResource(ctx context.Context, p *RegisterResourceParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.RegisterResource(ctx, p)
}

func (t *Throttled) DeregisterResource(ctx context.Context, p *DeregisterResourceParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.DeregisterResource(ctx, p)
}

func (t *Throttled) PutDataLakeSettings(ctx context.Context, p *PutDataLakeSettingsParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.PutDataLakeSettings(ctx, p)
}

func (t *Throttled) CreateLFTag(ctx context.Context, p *CreateLFTagParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.CreateLFTag(ctx, p)
}

func (t *Throttled) DeleteLFTag(ctx context.Context, p *DeleteLFTagParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.DeleteLFTag(ctx, p)
}

func (t *Throttled) UpdateLFTag(ctx context.Context, p *UpdateLFTagParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.UpdateLFTag(ctx, p)
}

func (t *Throttled) AddLFTagsToResource(ctx context.Context, p *AddLFTagsToResourceParams) ([]Failure, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.target.AddLFTagsToResource(ctx, p)
}

func (t *Throttled) GrantPermissions(ctx context.Context, p *GrantPermissionsParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.GrantPermissions(ctx, p)
}

func (t *Throttled) RevokePermissions(ctx context.Context, p *RevokePermissionsParams) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.target.RevokePermissions(ctx, p)
}

func (t *Throttled) BatchGrantPermissions(ctx context.Context, p *BatchPermissionsParams) ([]Failure, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.target.BatchGrantPermissions(ctx, p)
}

func (t *Throttled) BatchRevokePermissions(ctx context.Context, p *BatchPermissionsParams) ([]Failure, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.target.BatchRevokePermissions(ctx, p)
}
