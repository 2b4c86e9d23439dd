/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a datastore backend with error injection for testing callers
package mock

import (
	"context"
	"sync"

	"github.com/suparena/kindstore/datastore"
	"github.com/suparena/kindstore/datastore/memory"
	"github.com/suparena/kindstore/registry"
)

// BackendName is the configuration name of this backend.
const BackendName = "mock"

// Backend is a mock implementation of datastore.Backend. Records live in memory;
// configured errors are returned instead of touching them.
type Backend struct {
	mu         sync.RWMutex
	stores     map[string]*DataStore
	openError  error
	closeError error
	closed     bool
}

var (
	_ datastore.Backend   = (*Backend)(nil)
	_ datastore.DataStore = (*DataStore)(nil)
)

// New creates a new mock Backend
func New() *Backend {
	return &Backend{
		stores: make(map[string]*DataStore),
	}
}

// WithOpenError makes Open return an error
func (b *Backend) WithOpenError(err error) *Backend {
	b.openError = err
	return b
}

// WithCloseError makes Close return an error
func (b *Backend) WithCloseError(err error) *Backend {
	b.closeError = err
	return b
}

// Name implements datastore.Backend.
func (b *Backend) Name() string {
	return BackendName
}

// Open returns the mock DataStore for kind, creating it on first use
func (b *Backend) Open(kind *registry.Kind) (datastore.DataStore, error) {
	if b.openError != nil {
		return nil, b.openError
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if ds, ok := b.stores[kind.Name()]; ok {
		return ds, nil
	}
	ds := &DataStore{DataStore: memory.NewDataStore(kind)}
	b.stores[kind.Name()] = ds
	return ds, nil
}

// Close marks the backend closed
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return b.closeError
}

// Closed reports whether Close was called
func (b *Backend) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// DataStore returns the mock DataStore opened for kind, if any
func (b *Backend) DataStore(kind string) (*DataStore, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ds, ok := b.stores[kind]
	return ds, ok
}

// DataStore is a memory DataStore whose operations can be made to fail
type DataStore struct {
	*memory.DataStore

	mu         sync.RWMutex
	getError   error
	putError   error
	listError  error
	clearError error
}

// WithGetError makes GetOne operations return an error
func (m *DataStore) WithGetError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore) WithPutError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putError = err
	return m
}

// WithListError makes List operations return an error
func (m *DataStore) WithListError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listError = err
	return m
}

// WithClearError makes Clear operations return an error
func (m *DataStore) WithClearError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearError = err
	return m
}

// GetOne retrieves a record by id
func (m *DataStore) GetOne(ctx context.Context, id string) (registry.Entity, error) {
	if err := m.injected(&m.getError); err != nil {
		return nil, err
	}
	return m.DataStore.GetOne(ctx, id)
}

// Put stores a record
func (m *DataStore) Put(ctx context.Context, entity registry.Entity) error {
	if err := m.injected(&m.putError); err != nil {
		return err
	}
	return m.DataStore.Put(ctx, entity)
}

// List returns all records
func (m *DataStore) List(ctx context.Context) ([]registry.Entity, error) {
	if err := m.injected(&m.listError); err != nil {
		return nil, err
	}
	return m.DataStore.List(ctx)
}

// Clear removes all records
func (m *DataStore) Clear(ctx context.Context) error {
	if err := m.injected(&m.clearError); err != nil {
		return err
	}
	return m.DataStore.Clear(ctx)
}

func (m *DataStore) injected(field *error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *field
}
