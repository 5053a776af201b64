package ingest

import (
	"context"
	"errors"
	"sort"

	"github.com/alfredjeanlab/lfsync/internal/model"
	"github.com/alfredjeanlab/lfsync/internal/store"
)

// mockStore is a minimal in-memory store for ingest tests.
type mockStore struct {
	events    map[string]*model.Event
	insertErr map[string]error
}

func newMockStore() *mockStore {
	return &mockStore{
		events:    make(map[string]*model.Event),
		insertErr: make(map[string]error),
	}
}

func (m *mockStore) Insert(_ context.Context, e *model.Event) (store.InsertResult, error) {
	if err := m.insertErr[e.ID]; err != nil {
		return 0, err
	}
	if _, ok := m.events[e.ID]; ok {
		return store.AlreadyExists, nil
	}
	cp := *e
	cp.Status = model.StatusUnprocessed
	m.events[e.ID] = &cp
	return store.Inserted, nil
}

func (m *mockStore) ListUnprocessed(_ context.Context) ([]*model.Event, error) {
	var out []*model.Event
	for _, e := range m.events {
		if !e.IsProcessed() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (m *mockStore) MarkProcessed(_ context.Context, id string) error {
	if e, ok := m.events[id]; ok {
		e.Status = model.StatusProcessed
	}
	return nil
}

func (m *mockStore) Get(_ context.Context, id string) (*model.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return e, nil
}

func (m *mockStore) List(_ context.Context, _ model.EventFilter) ([]*model.Event, error) {
	return nil, errors.New("not implemented")
}

func (m *mockStore) Close() error { return nil }
