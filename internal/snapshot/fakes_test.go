package snapshot

import (
	"context"
	"io"
	"log/slog"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memSource serves a fixed catalog.
type memSource struct {
	databases   []catalog.Object
	tables      map[string][]catalog.Object
	partitions  map[string][]catalog.Object // keyed by db.table
	permissions []catalog.Object
}

func (s *memSource) Databases(_ context.Context, fn func(catalog.Object) error) error {
	for _, d := range s.databases {
		if err := fn(clone(d)); err != nil {
			return err
		}
	}
	return nil
}

func (s *memSource) Tables(_ context.Context, db string, fn func(catalog.Object) error) error {
	for _, t := range s.tables[db] {
		if err := fn(clone(t)); err != nil {
			return err
		}
	}
	return nil
}

func (s *memSource) Partitions(_ context.Context, db, table string, fn func(catalog.Object) error) error {
	for _, p := range s.partitions[db+"."+table] {
		if err := fn(clone(p)); err != nil {
			return err
		}
	}
	return nil
}

func (s *memSource) Permissions(_ context.Context, fn func(catalog.Object) error) error {
	for _, p := range s.permissions {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func clone(o catalog.Object) catalog.Object {
	out := make(catalog.Object, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// memTarget is an in-memory catalog with create-or-fail semantics.
type memTarget struct {
	catalog.Target

	databases  map[string]*catalog.DatabaseInput
	tables     map[string]*catalog.TableInput
	partitions map[string]*catalog.PartitionInput
	grants     []*catalog.GrantPermissionsParams

	updates   int
	tableErr  map[string]error
	partErr   error
	grantErrs []error
}

func newMemTarget() *memTarget {
	return &memTarget{
		databases:  make(map[string]*catalog.DatabaseInput),
		tables:     make(map[string]*catalog.TableInput),
		partitions: make(map[string]*catalog.PartitionInput),
		tableErr:   make(map[string]error),
	}
}

func exists(op catalog.Operation) error {
	return &catalog.Error{Op: op, Kind: catalog.KindAlreadyExists, Code: "AlreadyExistsException"}
}

func (m *memTarget) CreateDatabase(_ context.Context, p *catalog.CreateDatabaseParams) error {
	if _, ok := m.databases[p.DatabaseInput.Name]; ok {
		return exists(catalog.OpCreateDatabase)
	}
	m.databases[p.DatabaseInput.Name] = p.DatabaseInput
	return nil
}

func (m *memTarget) UpdateDatabase(_ context.Context, p *catalog.UpdateDatabaseParams) error {
	m.updates++
	m.databases[p.Name] = p.DatabaseInput
	return nil
}

func (m *memTarget) CreateTable(_ context.Context, p *catalog.CreateTableParams) error {
	key := p.DatabaseName + "." + p.TableInput.Name
	if err := m.tableErr[key]; err != nil {
		return err
	}
	if _, ok := m.tables[key]; ok {
		return exists(catalog.OpCreateTable)
	}
	m.tables[key] = p.TableInput
	return nil
}

func (m *memTarget) UpdateTable(_ context.Context, p *catalog.UpdateTableParams) error {
	m.updates++
	m.tables[p.DatabaseName+"."+p.TableInput.Name] = p.TableInput
	return nil
}

func partKey(db, table string, values []string) string {
	k := db + "." + table
	for _, v := range values {
		k += "/" + v
	}
	return k
}

func (m *memTarget) CreatePartition(_ context.Context, p *catalog.CreatePartitionParams) error {
	if m.partErr != nil {
		return m.partErr
	}
	key := partKey(p.DatabaseName, p.TableName, p.PartitionInput.Values)
	if _, ok := m.partitions[key]; ok {
		return exists(catalog.OpCreatePartition)
	}
	m.partitions[key] = p.PartitionInput
	return nil
}

func (m *memTarget) UpdatePartition(_ context.Context, p *catalog.UpdatePartitionParams) error {
	m.updates++
	m.partitions[partKey(p.DatabaseName, p.TableName, p.PartitionValueList)] = p.PartitionInput
	return nil
}

func (m *memTarget) GrantPermissions(_ context.Context, p *catalog.GrantPermissionsParams) error {
	if len(m.grantErrs) > 0 {
		err := m.grantErrs[0]
		m.grantErrs = m.grantErrs[1:]
		if err != nil {
			return err
		}
	}
	m.grants = append(m.grants, p)
	return nil
}

// staticLister returns a fixed table list.
type staticLister []catalog.TableRef

func (l staticLister) ListTables(_ context.Context, _ []string) ([]catalog.TableRef, error) {
	return l, nil
}

// failingLister fails every listing.
type failingLister struct{ err error }

func (l failingLister) ListTables(context.Context, []string) ([]catalog.TableRef, error) {
	return nil, l.err
}
