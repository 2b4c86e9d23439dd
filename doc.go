/*
Package kindstore provides a typed, in-process registry of entity kinds.

A store is built from a registry.KindMap. Every kind in the map gets the same
operation surface, whatever its record shape:

  - Add: store a record under its id, replacing any previous record
  - Get: read one record, or fail with errors.NotFoundError
  - GetAll: read every record of the kind, in no particular order
  - Clear: drop every record of the kind

Kinds never share ids: a song and a movie can both be stored under "42" and
neither operation on one kind can observe the other.

Basic Usage:

	kinds := registry.NewKindMap()
	registry.MustDefine[Song](kinds, "song")
	registry.MustDefine[Movie](kinds, "movie")

	store, _ := kindstore.New(kinds)
	songs := kindstore.MustFor[Song](store)

	_ = songs.Add(ctx, Song{ID: "song-123", Singer: "The Flaming Lips"})
	song, err := songs.Get(ctx, "song-123")
	all, _ := songs.GetAll(ctx)
	_ = songs.Clear(ctx)

Records can also be addressed by kind name (Store.Add, Store.Get, ...), which
is what tooling such as the seed loader of cmd/kindstore uses.

For a facade with one method per kind and operation (AddSong, GetAllMovies,
...) declare the kinds in YAML and generate it with cmd/kindgen; package media
is an example.

Backends:
Records live in process memory. The memory backend (default) keeps a map per
kind; the badgerdb backend keeps all kinds in one in-memory BadgerDB. Both are
safe for concurrent use.
*/
package kindstore
