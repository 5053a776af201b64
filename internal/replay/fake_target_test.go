package replay

import (
	"context"
	"sync"

	"github.com/alfredjeanlab/lfsync/internal/catalog"
)

// memTarget is an in-memory catalog. Methods a test does not exercise fall
// through to the embedded nil interface and panic.
type memTarget struct {
	catalog.Target

	databases map[string]*catalog.DatabaseInput
	tables    map[string]*catalog.TableInput

	// errs forces an error for the next call of an operation.
	errs     map[catalog.Operation]error
	failures map[catalog.Operation][]catalog.Failure

	calls    []catalog.Operation
	settings *catalog.DataLakeSettings
	parts    *catalog.BatchCreatePartitionParams
	grants   []*catalog.BatchPermissionsParams
}

func newMemTarget() *memTarget {
	return &memTarget{
		databases: make(map[string]*catalog.DatabaseInput),
		tables:    make(map[string]*catalog.TableInput),
		errs:      make(map[catalog.Operation]error),
		failures:  make(map[catalog.Operation][]catalog.Failure),
	}
}

func (m *memTarget) called(op catalog.Operation) error {
	m.calls = append(m.calls, op)
	if err, ok := m.errs[op]; ok {
		delete(m.errs, op)
		return err
	}
	return nil
}

func serviceError(op catalog.Operation, code string) *catalog.Error {
	return &catalog.Error{Op: op, Kind: catalog.KindFromCode(code), Code: code}
}

func (m *memTarget) CreateDatabase(_ context.Context, p *catalog.CreateDatabaseParams) error {
	if err := m.called(catalog.OpCreateDatabase); err != nil {
		return err
	}
	if _, ok := m.databases[p.DatabaseInput.Name]; ok {
		return serviceError(catalog.OpCreateDatabase, "AlreadyExistsException")
	}
	m.databases[p.DatabaseInput.Name] = p.DatabaseInput
	return nil
}

func (m *memTarget) DeleteDatabase(_ context.Context, p *catalog.DeleteDatabaseParams) error {
	if err := m.called(catalog.OpDeleteDatabase); err != nil {
		return err
	}
	if _, ok := m.databases[p.Name]; !ok {
		return serviceError(catalog.OpDeleteDatabase, "EntityNotFoundException")
	}
	delete(m.databases, p.Name)
	return nil
}

func (m *memTarget) CreateTable(_ context.Context, p *catalog.CreateTableParams) error {
	if err := m.called(catalog.OpCreateTable); err != nil {
		return err
	}
	key := p.DatabaseName + "." + p.TableInput.Name
	if _, ok := m.tables[key]; ok {
		return serviceError(catalog.OpCreateTable, "AlreadyExistsException")
	}
	m.tables[key] = p.TableInput
	return nil
}

func (m *memTarget) UpdateTable(_ context.Context, p *catalog.UpdateTableParams) error {
	if err := m.called(catalog.OpUpdateTable); err != nil {
		return err
	}
	key := p.DatabaseName + "." + p.TableInput.Name
	if _, ok := m.tables[key]; !ok {
		return serviceError(catalog.OpUpdateTable, "EntityNotFoundException")
	}
	m.tables[key] = p.TableInput
	return nil
}

func (m *memTarget) BatchCreatePartition(_ context.Context, p *catalog.BatchCreatePartitionParams) ([]catalog.Failure, error) {
	if err := m.called(catalog.OpBatchCreatePartition); err != nil {
		return nil, err
	}
	m.parts = p
	return m.failures[catalog.OpBatchCreatePartition], nil
}

func (m *memTarget) PutDataLakeSettings(_ context.Context, p *catalog.PutDataLakeSettingsParams) error {
	if err := m.called(catalog.OpPutDataLakeSettings); err != nil {
		return err
	}
	m.settings = p.DataLakeSettings
	return nil
}

func (m *memTarget) GrantPermissions(_ context.Context, _ *catalog.GrantPermissionsParams) error {
	return m.called(catalog.OpGrantPermissions)
}

func (m *memTarget) BatchGrantPermissions(_ context.Context, p *catalog.BatchPermissionsParams) ([]catalog.Failure, error) {
	if err := m.called(catalog.OpBatchGrantPermissions); err != nil {
		return nil, err
	}
	m.grants = append(m.grants, p)
	return m.failures[catalog.OpBatchGrantPermissions], nil
}

// recordingPublisher captures published events by topic.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
