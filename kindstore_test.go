/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package kindstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/kindstore/config"
	"github.com/suparena/kindstore/datastore"
	"github.com/suparena/kindstore/datastore/badgerdb"
	"github.com/suparena/kindstore/datastore/memory"
	"github.com/suparena/kindstore/datastore/mock"
	"github.com/suparena/kindstore/errors"
	"github.com/suparena/kindstore/registry"
)

// Test types
type TestSong struct {
	ID     string `yaml:"id"`
	Singer string `yaml:"singer"`
}

func (s TestSong) GetID() string { return s.ID }

type TestMovie struct {
	ID       string `yaml:"id"`
	Director string `yaml:"director"`
}

func (m TestMovie) GetID() string { return m.ID }

type TestAlbum struct {
	ID string
}

func (a TestAlbum) GetID() string { return a.ID }

func testKinds() *registry.KindMap {
	kinds := registry.NewKindMap()
	registry.MustDefine[TestSong](kinds, "song")
	registry.MustDefine[TestMovie](kinds, "movie")
	return kinds
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

var backends = map[string]func(t *testing.T) datastore.Backend{
	memory.BackendName: func(t *testing.T) datastore.Backend {
		return memory.New()
	},
	badgerdb.BackendName: func(t *testing.T) datastore.Backend {
		b, err := badgerdb.New(badgerdb.Options{})
		require.NoError(t, err)
		return b
	},
}

func newTestStore(t *testing.T, backend datastore.Backend) *Store {
	store, err := New(testKinds(), WithBackend(backend), WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func forEachBackend(t *testing.T, fn func(t *testing.T, store *Store)) {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			fn(t, newTestStore(t, backends[name](t)))
		})
	}
}

func TestCollectionProperties(t *testing.T) {
	ctx := context.Background()

	forEachBackend(t, func(t *testing.T, store *Store) {
		songs := MustFor[TestSong](store)
		movies := MustFor[TestMovie](store)

		t.Run("RoundTrip", func(t *testing.T) {
			song := TestSong{ID: "song-123", Singer: "The Flaming Lips"}
			require.NoError(t, songs.Add(ctx, song))

			got, err := songs.Get(ctx, "song-123")
			require.NoError(t, err)
			assert.Equal(t, song, got)
		})

		t.Run("Isolation", func(t *testing.T) {
			require.NoError(t, songs.Add(ctx, TestSong{ID: "same-id", Singer: "Nina Simone"}))

			_, err := movies.Get(ctx, "same-id")
			assert.True(t, errors.IsNotFound(err))

			require.NoError(t, movies.Add(ctx, TestMovie{ID: "same-id", Director: "Céline Sciamma"}))
			song, err := songs.Get(ctx, "same-id")
			require.NoError(t, err)
			assert.Equal(t, "Nina Simone", song.Singer)
		})

		t.Run("EnumerationCompleteness", func(t *testing.T) {
			require.NoError(t, songs.Clear(ctx))
			ids := []string{"a", "b", "c", "d"}
			for _, id := range ids {
				require.NoError(t, songs.Add(ctx, TestSong{ID: id}))
			}

			all, err := songs.GetAll(ctx)
			require.NoError(t, err)
			got := make([]string, 0, len(all))
			for _, s := range all {
				got = append(got, s.ID)
			}
			assert.ElementsMatch(t, ids, got)

			n, err := songs.Len(ctx)
			require.NoError(t, err)
			assert.Equal(t, len(ids), n)
		})

		t.Run("OverwriteOnDuplicateID", func(t *testing.T) {
			require.NoError(t, songs.Add(ctx, TestSong{ID: "dup", Singer: "before"}))
			require.NoError(t, songs.Add(ctx, TestSong{ID: "dup", Singer: "after"}))

			got, err := songs.Get(ctx, "dup")
			require.NoError(t, err)
			assert.Equal(t, "after", got.Singer)
		})

		t.Run("ClearEmptiesAndIsIdempotent", func(t *testing.T) {
			require.NoError(t, songs.Add(ctx, TestSong{ID: "x"}))
			require.NoError(t, songs.Clear(ctx))

			all, err := songs.GetAll(ctx)
			require.NoError(t, err)
			assert.NotNil(t, all)
			assert.Empty(t, all)

			require.NoError(t, songs.Clear(ctx))
			all, err = songs.GetAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)

			// movies are untouched by clearing songs
			_, err = movies.Get(ctx, "same-id")
			assert.NoError(t, err)
		})

		t.Run("MissingID", func(t *testing.T) {
			_, err := songs.Get(ctx, "does-not-exist")
			nf, ok := errors.AsNotFound(err)
			require.True(t, ok, "unexpected error: %v", err)
			assert.Equal(t, "song", nf.Kind)
			assert.Equal(t, "does-not-exist", nf.ID)
		})
	})
}

func TestForCachesCollections(t *testing.T) {
	store := newTestStore(t, memory.New())

	first, err := For[TestSong](store)
	require.NoError(t, err)
	second, err := For[TestSong](store)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "song", first.Kind().Name())

	_, err = For[TestAlbum](store)
	assert.True(t, errors.IsUnknownKind(err))
	assert.Panics(t, func() { MustFor[TestAlbum](store) })
}

func TestKindsDefinedAfterNewAreUnknown(t *testing.T) {
	kinds := testKinds()
	store, err := New(kinds, WithLogger(quietLogger()))
	require.NoError(t, err)
	defer store.Close()

	registry.MustDefine[TestAlbum](kinds, "album")

	_, err = For[TestAlbum](store)
	assert.True(t, errors.IsUnknownKind(err))
	_, err = store.GetAll(context.Background(), "album")
	assert.True(t, errors.IsUnknownKind(err))
}

func TestNewRequiresKinds(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.IsValidationError(err))

	_, err = New(registry.NewKindMap())
	assert.True(t, errors.IsValidationError(err))
}

func TestNewClosesBackendWithoutKinds(t *testing.T) {
	backend := mock.New()

	_, err := New(registry.NewKindMap(), WithBackend(backend), WithLogger(quietLogger()))
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, backend.Closed())
}

func TestNewClosesBackendWhenOpenFails(t *testing.T) {
	openErr := stderrors.New("no capacity")
	backend := mock.New().WithOpenError(openErr)

	_, err := New(testKinds(), WithBackend(backend), WithLogger(quietLogger()))
	assert.ErrorIs(t, err, openErr)
	assert.True(t, backend.Closed())
}

func TestDispatchByName(t *testing.T) {
	ctx := context.Background()

	forEachBackend(t, func(t *testing.T, store *Store) {
		require.NoError(t, store.Add(ctx, "song", TestSong{ID: "song-123", Singer: "The Flaming Lips"}))

		e, err := store.AddFields(ctx, "movie", map[string]any{"id": "movie-456", "director": "Stephen Spielberg"})
		require.NoError(t, err)
		assert.Equal(t, TestMovie{ID: "movie-456", Director: "Stephen Spielberg"}, e)

		got, err := store.Get(ctx, "movie", "movie-456")
		require.NoError(t, err)
		assert.Equal(t, e, got)

		_, err = store.Get(ctx, "movie", "song-123")
		assert.True(t, errors.IsNotFound(err))

		err = store.Add(ctx, "song", TestMovie{ID: "movie-789"})
		assert.True(t, errors.IsValidationError(err))

		_, err = store.AddFields(ctx, "song", map[string]any{"singer": "no id"})
		assert.True(t, errors.IsValidationError(err))

		for _, call := range []func() error{
			func() error { return store.Add(ctx, "album", TestAlbum{ID: "a"}) },
			func() error { _, err := store.AddFields(ctx, "album", map[string]any{"id": "a"}); return err },
			func() error { _, err := store.Get(ctx, "album", "a"); return err },
			func() error { _, err := store.GetAll(ctx, "album"); return err },
			func() error { return store.Clear(ctx, "album") },
		} {
			assert.True(t, errors.IsUnknownKind(call()))
		}

		all, err := store.GetAll(ctx, "song")
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, store.ClearAll(ctx))
		for _, kind := range []string{"song", "movie"} {
			all, err := store.GetAll(ctx, kind)
			require.NoError(t, err)
			assert.Empty(t, all)
		}
	})
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()

	forEachBackend(t, func(t *testing.T, store *Store) {
		songs := MustFor[TestSong](store)
		require.NoError(t, songs.Add(ctx, TestSong{ID: "b", Singer: "Beck"}))
		require.NoError(t, songs.Add(ctx, TestSong{ID: "a", Singer: "ABBA"}))

		snap, err := store.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, snap.Kinds, 2)
		assert.Equal(t, "song", snap.Kinds[0].Kind)
		assert.Equal(t, []any{TestSong{ID: "a", Singer: "ABBA"}, TestSong{ID: "b", Singer: "Beck"}}, snap.Kinds[0].Records)
		assert.Equal(t, "movie", snap.Kinds[1].Kind)
		assert.Empty(t, snap.Kinds[1].Records)
		assert.Equal(t, 2, snap.Count("song"))
	})
}

func TestBackendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	backend := mock.New()
	store := newTestStore(t, backend)
	songs := MustFor[TestSong](store)

	ds, ok := backend.DataStore("song")
	require.True(t, ok)

	putErr := stderrors.New("put failed")
	ds.WithPutError(putErr)
	err := songs.Add(ctx, TestSong{ID: "1"})
	assert.ErrorIs(t, err, putErr)
	ds.WithPutError(nil)

	listErr := stderrors.New("list failed")
	ds.WithListError(listErr)
	_, err = songs.GetAll(ctx)
	assert.ErrorIs(t, err, listErr)
	_, err = store.Snapshot(ctx)
	assert.ErrorIs(t, err, listErr)
	ds.WithListError(nil)

	clearErr := stderrors.New("clear failed")
	ds.WithClearError(clearErr)
	assert.ErrorIs(t, songs.Clear(ctx), clearErr)
	assert.ErrorIs(t, store.ClearAll(ctx), clearErr)
}

func TestCloseReportsBackendError(t *testing.T) {
	closeErr := stderrors.New("close failed")
	backend := mock.New().WithCloseError(closeErr)
	store, err := New(testKinds(), WithBackend(backend), WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.ErrorIs(t, store.Close(), closeErr)
	assert.Equal(t, mock.BackendName, store.Backend())
}

func TestThreadSafety(t *testing.T) {
	ctx := context.Background()

	forEachBackend(t, func(t *testing.T, store *Store) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func(id int) {
				defer wg.Done()
				songs := MustFor[TestSong](store)
				assert.NoError(t, songs.Add(ctx, TestSong{ID: fmt.Sprintf("song%d", id)}))
			}(i)
			go func(id int) {
				defer wg.Done()
				movies := MustFor[TestMovie](store)
				assert.NoError(t, movies.Add(ctx, TestMovie{ID: fmt.Sprintf("movie%d", id)}))
				_, err := movies.GetAll(ctx)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		n, err := MustFor[TestSong](store).Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, n)
		n, err = MustFor[TestMovie](store).Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, n)
	})
}

func TestNewFromConfig(t *testing.T) {
	for _, name := range []string{memory.BackendName, badgerdb.BackendName} {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Backend = name

			store, err := NewFromConfig(testKinds(), &cfg)
			require.NoError(t, err)
			defer store.Close()
			assert.Equal(t, name, store.Backend())
		})
	}

	_, err := NewBackend("dynamodb", nil)
	assert.Error(t, err)
}
