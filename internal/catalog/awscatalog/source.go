package awscatalog

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/lakeformation"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

var (
	_ catalog.Source      = (*Client)(nil)
	_ catalog.TableLister = (*Client)(nil)
)

// Databases calls fn for every database in the catalog.
func (c *Client) Databases(ctx context.Context, fn func(catalog.Object) error) error {
	p := glue.NewGetDatabasesPaginator(c.glue, &glue.GetDatabasesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("get databases: %w", classify("GetDatabases", err))
		}
		for _, db := range page.DatabaseList {
			if err := emit(db, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tables calls fn for every table of database.
func (c *Client) Tables(ctx context.Context, database string, fn func(catalog.Object) error) error {
	p := glue.NewGetTablesPaginator(c.glue, &glue.GetTablesInput{DatabaseName: aws.String(database)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("get tables of %s: %w", database, classify("GetTables", err))
		}
		for _, t := range page.TableList {
			if err := emit(t, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Partitions calls fn for every partition of database.table.
func (c *Client) Partitions(ctx context.Context, database, table string, fn func(catalog.Object) error) error {
	p := glue.NewGetPartitionsPaginator(c.glue, &glue.GetPartitionsInput{
		DatabaseName: aws.String(database),
		TableName:    aws.String(table),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("get partitions of %s.%s: %w", database, table, classify("GetPartitions", err))
		}
		for _, part := range page.Partitions {
			if err := emit(part, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Permissions calls fn for every principal/resource permission entry.
func (c *Client) Permissions(ctx context.Context, fn func(catalog.Object) error) error {
	p := lakeformation.NewListPermissionsPaginator(c.lf, &lakeformation.ListPermissionsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list permissions: %w", classify("ListPermissions", err))
		}
		for _, perm := range page.PrincipalResourcePermissions {
			if err := emit(perm, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListTables returns the tables of the given databases, in listing order.
// With catalog.AllDatabases every database of the catalog is listed.
func (c *Client) ListTables(ctx context.Context, databases []string) ([]catalog.TableRef, error) {
	if catalog.SelectsAll(databases) {
		all, err := c.databaseNames(ctx)
		if err != nil {
			return nil, err
		}
		databases = all
	}
	var refs []catalog.TableRef
	for _, db := range databases {
		p := glue.NewGetTablesPaginator(c.glue, &glue.GetTablesInput{DatabaseName: aws.String(db)})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("get tables of %s: %w", db, classify("GetTables", err))
			}
			for _, t := range page.TableList {
				refs = append(refs, catalog.TableRef{Schema: db, Table: aws.ToString(t.Name)})
			}
		}
	}
	return refs, nil
}

func (c *Client) databaseNames(ctx context.Context) ([]string, error) {
	var names []string
	p := glue.NewGetDatabasesPaginator(c.glue, &glue.GetDatabasesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("get databases: %w", classify("GetDatabases", err))
		}
		for _, db := range page.DatabaseList {
			names = append(names, aws.ToString(db.Name))
		}
	}
	return names, nil
}

func emit(v any, fn func(catalog.Object) error) error {
	obj, err := toObject(v)
	if err != nil {
		return fmt.Errorf("encode catalog object: %w", err)
	}
	return fn(obj)
}
