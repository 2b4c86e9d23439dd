/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package kindstore

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/suparena/kindstore/datastore"
	"github.com/suparena/kindstore/datastore/memory"
	"github.com/suparena/kindstore/errors"
	"github.com/suparena/kindstore/internal/logging"
	"github.com/suparena/kindstore/registry"
)

// Entity is the common shape of all records.
type Entity = registry.Entity

// Store holds one datastore per kind of a KindMap. The set of kinds is fixed when the
// store is created; kinds defined later are unknown to it.
type Store struct {
	kinds   *registry.KindMap
	backend datastore.Backend
	stores  map[string]datastore.DataStore
	log     *logrus.Entry

	mu          sync.Mutex
	collections map[reflect.Type]any
}

type options struct {
	backend datastore.Backend
	log     *logrus.Entry
}

// Option configures a Store.
type Option func(*options)

// WithBackend selects the datastore backend. The default is the memory backend.
// The store takes ownership of the backend and closes it in Close, or in New
// when New fails.
func WithBackend(backend datastore.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithLogger sets the logger used for store events.
func WithLogger(log *logrus.Entry) Option {
	return func(o *options) {
		o.log = log
	}
}

// New opens a datastore for every kind in kinds.
func New(kinds *registry.KindMap, opts ...Option) (*Store, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if kinds == nil || kinds.Len() == 0 {
		if o.backend != nil {
			_ = o.backend.Close()
		}
		return nil, errors.NewValidationError("kinds", "at least one kind must be defined")
	}

	if o.backend == nil {
		o.backend = memory.New()
	}
	if o.log == nil {
		o.log = logging.GetLogger("kindstore")
	}

	s := &Store{
		kinds:       kinds,
		backend:     o.backend,
		stores:      make(map[string]datastore.DataStore, kinds.Len()),
		log:         o.log,
		collections: make(map[reflect.Type]any),
	}
	for _, kind := range kinds.Kinds() {
		ds, err := o.backend.Open(kind)
		if err != nil {
			_ = o.backend.Close()
			return nil, fmt.Errorf("open %s datastore: %w", kind.Name(), err)
		}
		s.stores[kind.Name()] = ds
		s.log.WithFields(logrus.Fields{
			"kind":    kind.Name(),
			"backend": o.backend.Name(),
		}).Debug("Opened datastore")
	}
	return s, nil
}

// Kinds returns the kind map the store was built from.
func (s *Store) Kinds() *registry.KindMap {
	return s.kinds
}

// Backend returns the name of the backend holding the records.
func (s *Store) Backend() string {
	return s.backend.Name()
}

// Close releases the backend.
func (s *Store) Close() error {
	if err := s.backend.Close(); err != nil {
		return fmt.Errorf("close %s backend: %w", s.backend.Name(), err)
	}
	return nil
}

func (s *Store) dataStore(kind string) (datastore.DataStore, error) {
	ds, ok := s.stores[kind]
	if !ok {
		return nil, errors.NewUnknownKindError(kind)
	}
	return ds, nil
}

// Add stores entity as a record of kind, replacing any record with the same id.
func (s *Store) Add(ctx context.Context, kind string, entity Entity) error {
	ds, err := s.dataStore(kind)
	if err != nil {
		return err
	}
	return s.put(ctx, ds, entity)
}

// AddFields decodes fields into a record of kind and stores it.
func (s *Store) AddFields(ctx context.Context, kind string, fields map[string]any) (Entity, error) {
	ds, err := s.dataStore(kind)
	if err != nil {
		return nil, err
	}
	entity, err := ds.Kind().Decode(fields)
	if err != nil {
		return nil, err
	}
	if err := s.put(ctx, ds, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Get returns the record of kind stored under id.
func (s *Store) Get(ctx context.Context, kind, id string) (Entity, error) {
	ds, err := s.dataStore(kind)
	if err != nil {
		return nil, err
	}
	return ds.GetOne(ctx, id)
}

// GetAll returns every record of kind, in no particular order.
func (s *Store) GetAll(ctx context.Context, kind string) ([]Entity, error) {
	ds, err := s.dataStore(kind)
	if err != nil {
		return nil, err
	}
	return ds.List(ctx)
}

// Clear removes every record of kind.
func (s *Store) Clear(ctx context.Context, kind string) error {
	ds, err := s.dataStore(kind)
	if err != nil {
		return err
	}
	return s.clear(ctx, ds)
}

// ClearAll clears every kind.
func (s *Store) ClearAll(ctx context.Context) error {
	for _, kind := range s.kinds.Kinds() {
		ds, ok := s.stores[kind.Name()]
		if !ok {
			continue
		}
		if err := s.clear(ctx, ds); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) put(ctx context.Context, ds datastore.DataStore, entity Entity) error {
	kind := ds.Kind()
	if !kind.Owns(entity) {
		return errors.NewValidationError("", fmt.Sprintf("%T is not a %s record", entity, kind.Name()))
	}
	if err := ds.Put(ctx, entity); err != nil {
		return fmt.Errorf("add %s %q: %w", kind.Name(), entity.GetID(), err)
	}
	s.log.WithFields(logrus.Fields{"kind": kind.Name(), "id": entity.GetID()}).Debug("Added record")
	return nil
}

func (s *Store) clear(ctx context.Context, ds datastore.DataStore) error {
	kind := ds.Kind()
	if err := ds.Clear(ctx); err != nil {
		return fmt.Errorf("clear %s: %w", kind.Plural(), err)
	}
	s.log.WithField("kind", kind.Name()).Debug("Cleared records")
	return nil
}
