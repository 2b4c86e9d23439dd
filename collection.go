/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package kindstore

import (
	"context"
	"fmt"
	"reflect"

	"github.com/suparena/kindstore/datastore"
	"github.com/suparena/kindstore/errors"
	"github.com/suparena/kindstore/registry"
)

// Collection provides type-safe operations on the records of one kind
type Collection[T Entity] struct {
	store *Store
	kind  *registry.Kind
	ds    datastore.DataStore
}

// For returns the Collection for record type T, creating it if necessary
func For[T Entity](s *Store) (*Collection[T], error) {
	var zero T
	typ := reflect.TypeOf(zero)

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, exists := s.collections[typ]; exists {
		return c.(*Collection[T]), nil
	}

	kind, ok := registry.KindOf[T](s.kinds)
	if !ok {
		return nil, errors.NewUnknownKindError(fmt.Sprintf("%v", typ))
	}
	ds, ok := s.stores[kind.Name()]
	if !ok {
		return nil, errors.NewUnknownKindError(kind.Name())
	}

	c := &Collection[T]{store: s, kind: kind, ds: ds}
	s.collections[typ] = c
	return c, nil
}

// MustFor is like For but panics if T is not a kind of the store
func MustFor[T Entity](s *Store) *Collection[T] {
	c, err := For[T](s)
	if err != nil {
		panic(err)
	}
	return c
}

// Kind returns the kind of the collection
func (c *Collection[T]) Kind() *registry.Kind {
	return c.kind
}

// Add stores entity under its id, replacing any record already stored there
func (c *Collection[T]) Add(ctx context.Context, entity T) error {
	return c.store.put(ctx, c.ds, entity)
}

// Get returns the record stored under id.
// It fails with an errors.NotFoundError carrying the kind and id if there is none.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	e, err := c.ds.GetOne(ctx, id)
	if err != nil {
		return zero, err
	}
	return c.cast(e)
}

// GetAll returns every stored record in no particular order; empty, not nil, when there are none
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	all, err := c.ds.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", c.kind.Plural(), err)
	}

	out := make([]T, 0, len(all))
	for _, e := range all {
		t, err := c.cast(e)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Clear removes every record of the kind. Clearing an empty collection does nothing.
func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.store.clear(ctx, c.ds)
}

// Len returns the number of stored records
func (c *Collection[T]) Len(ctx context.Context) (int, error) {
	return c.ds.Count(ctx)
}

func (c *Collection[T]) cast(e Entity) (T, error) {
	t, ok := e.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s datastore returned %T", c.kind.Name(), e)
	}
	return t, nil
}
