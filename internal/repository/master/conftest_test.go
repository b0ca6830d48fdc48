package master

import (
	"context"

	"github.com/kailas-cloud/chapterdex/internal/db"
)

// mockStore is an in-memory implementation of the consumer interface.
type mockStore struct {
	data      map[string][]byte
	getErr    error
	setErr    error
	renameErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string][]byte{}}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockStore) Rename(_ context.Context, src, dst string) error {
	if m.renameErr != nil {
		return m.renameErr
	}
	v, ok := m.data[src]
	if !ok {
		return db.ErrKeyNotFound
	}
	m.data[dst] = v
	delete(m.data, src)
	return nil
}
