/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides the default in-process datastore backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/kindstore/datastore"
	"github.com/suparena/kindstore/errors"
	"github.com/suparena/kindstore/registry"
)

// BackendName is the configuration name of this backend.
const BackendName = "memory"

// Backend opens map-backed datastores. It holds no shared state.
type Backend struct{}

var _ datastore.Backend = (*Backend)(nil)

// New creates a memory Backend.
func New() *Backend {
	return &Backend{}
}

// Name implements datastore.Backend.
func (b *Backend) Name() string {
	return BackendName
}

// Open implements datastore.Backend.
func (b *Backend) Open(kind *registry.Kind) (datastore.DataStore, error) {
	return NewDataStore(kind), nil
}

// Close implements datastore.Backend.
func (b *Backend) Close() error {
	return nil
}

// DataStore stores the records of one kind in a map guarded by its own lock.
// Records are copied on the way in and out; callers never share memory with the map.
type DataStore struct {
	mu   sync.RWMutex
	kind *registry.Kind
	data map[string]registry.Entity
}

var _ datastore.DataStore = (*DataStore)(nil)

// NewDataStore creates an empty DataStore for kind.
func NewDataStore(kind *registry.Kind) *DataStore {
	return &DataStore{
		kind: kind,
		data: make(map[string]registry.Entity),
	}
}

// Kind implements datastore.DataStore.
func (m *DataStore) Kind() *registry.Kind {
	return m.kind
}

// GetOne retrieves a record by id
func (m *DataStore) GetOne(ctx context.Context, id string) (registry.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entity, exists := m.data[id]
	if !exists {
		return nil, errors.NewNotFoundError(m.kind.Name(), id)
	}
	return m.kind.Clone(entity)
}

// Put stores a copy of a record, overwriting any record with the same id
func (m *DataStore) Put(ctx context.Context, entity registry.Entity) error {
	if !m.kind.Owns(entity) {
		return errors.NewValidationError("", fmt.Sprintf("%T is not a %s record", entity, m.kind.Name()))
	}
	stored, err := m.kind.Clone(entity)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[entity.GetID()] = stored
	return nil
}

// List returns copies of all records
func (m *DataStore) List(ctx context.Context) ([]registry.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]registry.Entity, 0, len(m.data))
	for _, v := range m.data {
		c, err := m.kind.Clone(v)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, nil
}

// Clear removes all records
func (m *DataStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]registry.Entity)
	return nil
}

// Count returns the number of stored records
func (m *DataStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data), nil
}
