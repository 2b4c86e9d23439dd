/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package badgerdb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/kindstore/datastore"
	"github.com/suparena/kindstore/errors"
	"github.com/suparena/kindstore/registry"
	"github.com/suparena/kindstore/storagemodels"
)

// BackendName is the configuration name of this backend.
const BackendName = "badger"

// Options configures the BadgerDB backend.
type Options struct {
	// Logger for BadgerDB. If nil, logging is disabled.
	Logger badger.Logger
	// Now stamps StoredAt on every write. Defaults to time.Now.
	Now func() time.Time
}

// Backend keeps every kind in one in-memory BadgerDB, separated by key prefix.
type Backend struct {
	db  *badger.DB
	now func() time.Time
}

var _ datastore.Backend = (*Backend)(nil)

// New opens an in-memory BadgerDB. Nothing is written to disk.
func New(opts Options) (*Backend, error) {
	badgerOpts := badger.DefaultOptions("").WithInMemory(true)
	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(opts.Logger)
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Backend{db: db, now: now}, nil
}

// Name implements datastore.Backend.
func (b *Backend) Name() string {
	return BackendName
}

// Open implements datastore.Backend.
func (b *Backend) Open(kind *registry.Kind) (datastore.DataStore, error) {
	return &DataStore{
		db:     b.db,
		kind:   kind,
		prefix: []byte(kind.KeyPrefix()),
		now:    b.now,
	}, nil
}

// Close closes the BadgerDB database, dropping all records.
func (b *Backend) Close() error {
	return b.db.Close()
}

// DataStore stores one kind under its key prefix.
type DataStore struct {
	db     *badger.DB
	kind   *registry.Kind
	prefix []byte
	now    func() time.Time
}

var _ datastore.DataStore = (*DataStore)(nil)

// Kind implements datastore.DataStore.
func (d *DataStore) Kind() *registry.Kind {
	return d.kind
}

// Put marshals entity into a StoredRecord and writes it under the kind's key for its id.
func (d *DataStore) Put(ctx context.Context, entity registry.Entity) error {
	if !d.kind.Owns(entity) {
		return errors.NewValidationError("", fmt.Sprintf("%T is not a %s record", entity, d.kind.Name()))
	}

	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", d.kind.Name(), err)
	}

	data, err := encodeRecord(storagemodels.StoredRecord{
		Kind:     d.kind.Name(),
		ID:       entity.GetID(),
		StoredAt: strfmt.DateTime(d.now()),
		Item:     item,
	})
	if err != nil {
		return err
	}

	key := []byte(d.kind.Key(entity.GetID()))
	if err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	}); err != nil {
		return fmt.Errorf("put %s %q: %w", d.kind.Name(), entity.GetID(), err)
	}
	return nil
}

// GetOne reads the record stored under id.
func (d *DataStore) GetOne(ctx context.Context, id string) (registry.Entity, error) {
	record, err := d.getRecord(id)
	if err != nil {
		return nil, err
	}
	return d.decodeEntity(record)
}

// StoredAt returns when the record under id was last written.
func (d *DataStore) StoredAt(ctx context.Context, id string) (time.Time, error) {
	record, err := d.getRecord(id)
	if err != nil {
		return time.Time{}, err
	}
	return time.Time(record.StoredAt), nil
}

func (d *DataStore) getRecord(id string) (storagemodels.StoredRecord, error) {
	var record storagemodels.StoredRecord
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(d.kind.Key(id)))
		if err == badger.ErrKeyNotFound {
			return errors.NewNotFoundError(d.kind.Name(), id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = decodeRecord(val)
			return err
		})
	})
	if err != nil {
		if errors.IsNotFound(err) {
			return record, err
		}
		return record, fmt.Errorf("get %s %q: %w", d.kind.Name(), id, err)
	}
	return record, nil
}

// List returns every record under the kind's prefix.
func (d *DataStore) List(ctx context.Context) ([]registry.Entity, error) {
	results := make([]registry.Entity, 0)
	err := d.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(d.prefix); it.ValidForPrefix(d.prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record storagemodels.StoredRecord
			if err := it.Item().Value(func(val []byte) error {
				var err error
				record, err = decodeRecord(val)
				return err
			}); err != nil {
				return err
			}
			if id, ok := d.kind.IDFromKey(string(it.Item().Key())); !ok || id != record.ID {
				return fmt.Errorf("record under key %q has id %q", it.Item().Key(), record.ID)
			}
			entity, err := d.decodeEntity(record)
			if err != nil {
				return err
			}
			results = append(results, entity)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.kind.Plural(), err)
	}
	return results, nil
}

// Clear drops every key under the kind's prefix in one step. Writes to other
// kinds wait until the drop has finished.
func (d *DataStore) Clear(ctx context.Context) error {
	if err := d.db.DropPrefix(d.prefix); err != nil {
		return fmt.Errorf("clear %s: %w", d.kind.Plural(), err)
	}
	return nil
}

// Count returns the number of keys under the kind's prefix.
func (d *DataStore) Count(ctx context.Context) (int, error) {
	keys, err := d.keys()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (d *DataStore) keys() ([][]byte, error) {
	var keys [][]byte
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(d.prefix); it.ValidForPrefix(d.prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s keys: %w", d.kind.Name(), err)
	}
	return keys, nil
}

func (d *DataStore) decodeEntity(record storagemodels.StoredRecord) (registry.Entity, error) {
	if record.Kind != d.kind.Name() {
		return nil, fmt.Errorf("record %q belongs to kind %q, not %q", record.ID, record.Kind, d.kind.Name())
	}
	ptr := d.kind.New()
	if err := attributevalue.UnmarshalMap(record.Item, ptr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s %q: %w", d.kind.Name(), record.ID, err)
	}
	return d.kind.FromPointer(ptr)
}
