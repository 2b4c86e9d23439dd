/*
Package registry declares the kinds of entity a kindstore can hold.

A KindMap is the single source of truth for a store: every kind defined in it
gets the same four operations (add, get, get-all, clear), and the names of
those operations are derived from the kind:

	kinds := registry.NewKindMap()
	registry.MustDefine[Song](kinds, "song")
	registry.MustDefine[Movie](kinds, "movie")

	k, _ := kinds.Lookup("song")
	k.Operations() // {AddSong GetSong GetAllSongs ClearSongs}

Record types are structs with an exported `ID string` field and a value
receiver GetID method. Malformed definitions (bad names, pointer or non-struct
types, duplicates, overlapping key prefixes) fail in Define, before any store
is built.

Key Patterns:
Every kind owns a key namespace described by a pattern ending in {ID}:

	registry.MustDefine[Song](kinds, "song")                                   // SONG#{ID}
	registry.MustDefine[Movie](kinds, "movie", registry.WithKeyPattern("M#{ID}"))

Backends that keep all kinds in one keyspace use Kind.Key and Kind.KeyPrefix so
that equal ids in different kinds never collide.

The registry is thread-safe and is normally populated during initialization,
typically through generated code.
*/
package registry
