/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/kindstore/registry"
)

// DataStore holds the records of a single kind, keyed by id.
type DataStore interface {
	// Kind returns the kind this datastore was opened for.
	Kind() *registry.Kind

	// GetOne returns the record stored under id, or a NotFoundError naming the kind and id.
	GetOne(ctx context.Context, id string) (registry.Entity, error)

	// Put stores entity under its id, replacing any record already stored there.
	Put(ctx context.Context, entity registry.Entity) error

	// List returns every stored record in no particular order. It never returns nil on success.
	List(ctx context.Context) ([]registry.Entity, error)

	// Clear removes every record. Clearing an empty datastore is a no-op.
	Clear(ctx context.Context) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

// Backend opens one DataStore per kind.
type Backend interface {
	// Name identifies the backend in configuration and logs.
	Name() string

	// Open returns the DataStore for kind. Each kind gets its own namespace.
	Open(kind *registry.Kind) (DataStore, error)

	// Close releases resources held by the backend and every DataStore it opened.
	Close() error
}
