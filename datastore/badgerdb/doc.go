/*
Package badgerdb provides a datastore backend on an in-memory BadgerDB.

All kinds share one database. Each record lives under its kind's key
(registry.Kind.Key, e.g. "SONG#song-123"), so kinds are separated by key
prefix and clearing a kind only touches its own prefix.

Records are marshalled with the DynamoDB attribute-value codec and wrapped in
a storagemodels.StoredRecord before being written:

	backend, err := badgerdb.New(badgerdb.Options{})
	songs, err := backend.Open(songKind)
	err = songs.Put(ctx, Song{ID: "song-123", Singer: "The Flaming Lips"})

The database runs with WithInMemory(true); closing the backend drops every
record.
*/
package badgerdb
