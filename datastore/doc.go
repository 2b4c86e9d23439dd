/*
Package datastore defines the storage contract behind a kindstore.

A Backend opens one DataStore per registered kind. A DataStore owns the
id → record mapping of exactly one kind:

	type DataStore interface {
	    Kind() *registry.Kind
	    GetOne(ctx context.Context, id string) (registry.Entity, error)
	    Put(ctx context.Context, entity registry.Entity) error
	    List(ctx context.Context) ([]registry.Entity, error)
	    Clear(ctx context.Context) error
	    Count(ctx context.Context) (int, error)
	}

Implementations:
  - memory: one Go map and lock per kind (the default)
  - badgerdb: a shared in-memory BadgerDB, one key prefix per kind
  - mock: memory plus error injection, for testing callers

Every implementation must keep kinds isolated, overwrite on a repeated id, and
return errors.NotFoundError from GetOne for an unknown id.
*/
package datastore
