/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package datastoretest checks that a datastore.Backend honours the kindstore contract.
package datastoretest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/kindstore/datastore"
	"github.com/suparena/kindstore/errors"
	"github.com/suparena/kindstore/registry"
)

// Song is a record type used by the suite.
type Song struct {
	ID     string `dynamodbav:"id" json:"id"`
	Singer string `dynamodbav:"singer" json:"singer"`
}

func (s Song) GetID() string { return s.ID }

// Movie is a record type used by the suite.
type Movie struct {
	ID       string `dynamodbav:"id" json:"id"`
	Director string `dynamodbav:"director" json:"director"`
	Year     int    `dynamodbav:"year" json:"year"`
}

func (m Movie) GetID() string { return m.ID }

// Album is a record type with reference fields used by the suite.
type Album struct {
	ID      string         `dynamodbav:"id" json:"id"`
	Tracks  []string       `dynamodbav:"tracks" json:"tracks"`
	Ratings map[string]int `dynamodbav:"ratings" json:"ratings"`
}

func (a Album) GetID() string { return a.ID }

// Kinds returns a fresh kind map with the suite's song and movie kinds.
func Kinds() (*registry.KindMap, *registry.Kind, *registry.Kind) {
	kinds := registry.NewKindMap()
	song := registry.MustDefine[Song](kinds, "song")
	movie := registry.MustDefine[Movie](kinds, "movie")
	return kinds, song, movie
}

// Run executes the contract suite. newBackend must return a fresh, empty backend.
func Run(t *testing.T, newBackend func(t *testing.T) datastore.Backend) {
	ctx := context.Background()

	open := func(t *testing.T) (datastore.DataStore, datastore.DataStore) {
		backend := newBackend(t)
		t.Cleanup(func() {
			assert.NoError(t, backend.Close())
		})
		_, song, movie := Kinds()
		songs, err := backend.Open(song)
		require.NoError(t, err)
		movies, err := backend.Open(movie)
		require.NoError(t, err)
		return songs, movies
	}

	t.Run("RoundTrip", func(t *testing.T) {
		songs, movies := open(t)

		require.NoError(t, songs.Put(ctx, Song{ID: "song-123", Singer: "The Flaming Lips"}))
		require.NoError(t, movies.Put(ctx, Movie{ID: "movie-456", Director: "Stephen Spielberg", Year: 1993}))

		got, err := songs.GetOne(ctx, "song-123")
		require.NoError(t, err)
		assert.Equal(t, Song{ID: "song-123", Singer: "The Flaming Lips"}, got)

		got, err = movies.GetOne(ctx, "movie-456")
		require.NoError(t, err)
		assert.Equal(t, Movie{ID: "movie-456", Director: "Stephen Spielberg", Year: 1993}, got)
	})

	t.Run("Isolation", func(t *testing.T) {
		songs, movies := open(t)

		require.NoError(t, songs.Put(ctx, Song{ID: "shared", Singer: "Björk"}))

		_, err := movies.GetOne(ctx, "shared")
		require.True(t, errors.IsNotFound(err), "unexpected error: %v", err)

		require.NoError(t, movies.Put(ctx, Movie{ID: "shared", Director: "Agnès Varda"}))
		got, err := songs.GetOne(ctx, "shared")
		require.NoError(t, err)
		assert.Equal(t, Song{ID: "shared", Singer: "Björk"}, got)

		require.NoError(t, songs.Clear(ctx))
		n, err := movies.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("MissingID", func(t *testing.T) {
		songs, _ := open(t)

		_, err := songs.GetOne(ctx, "does-not-exist")
		require.Error(t, err)
		nf, ok := errors.AsNotFound(err)
		require.True(t, ok, "unexpected error: %v", err)
		assert.Equal(t, "song", nf.Kind)
		assert.Equal(t, "does-not-exist", nf.ID)
	})

	t.Run("Overwrite", func(t *testing.T) {
		songs, _ := open(t)

		require.NoError(t, songs.Put(ctx, Song{ID: "s1", Singer: "first"}))
		require.NoError(t, songs.Put(ctx, Song{ID: "s1", Singer: "second"}))

		got, err := songs.GetOne(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, Song{ID: "s1", Singer: "second"}, got)

		n, err := songs.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("ListCompleteness", func(t *testing.T) {
		songs, _ := open(t)

		empty, err := songs.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		want := make([]string, 0, 25)
		for i := 0; i < 25; i++ {
			id := fmt.Sprintf("song-%02d", i)
			want = append(want, id)
			require.NoError(t, songs.Put(ctx, Song{ID: id, Singer: "singer " + id}))
		}

		all, err := songs.List(ctx)
		require.NoError(t, err)
		got := make([]string, 0, len(all))
		for _, e := range all {
			got = append(got, e.GetID())
		}
		sort.Strings(got)
		assert.Equal(t, want, got)
	})

	t.Run("ClearIsIdempotent", func(t *testing.T) {
		songs, _ := open(t)

		require.NoError(t, songs.Clear(ctx))
		require.NoError(t, songs.Put(ctx, Song{ID: "a"}))
		require.NoError(t, songs.Put(ctx, Song{ID: "b"}))

		require.NoError(t, songs.Clear(ctx))
		all, err := songs.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		require.NoError(t, songs.Clear(ctx))
		all, err = songs.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		_, err = songs.GetOne(ctx, "a")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("NoAliasing", func(t *testing.T) {
		backend := newBackend(t)
		t.Cleanup(func() {
			assert.NoError(t, backend.Close())
		})
		kind := registry.MustDefine[Album](registry.NewKindMap(), "album")
		albums, err := backend.Open(kind)
		require.NoError(t, err)

		in := Album{ID: "a1", Tracks: []string{"intro"}, Ratings: map[string]int{"alice": 5}}
		require.NoError(t, albums.Put(ctx, in))
		in.Tracks[0] = "changed"
		in.Ratings["alice"] = 1

		got, err := albums.GetOne(ctx, "a1")
		require.NoError(t, err)
		album := got.(Album)
		assert.Equal(t, []string{"intro"}, album.Tracks)
		assert.Equal(t, map[string]int{"alice": 5}, album.Ratings)

		album.Tracks[0] = "changed"
		album.Ratings["bob"] = 2
		all, err := albums.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, Album{ID: "a1", Tracks: []string{"intro"}, Ratings: map[string]int{"alice": 5}}, all[0])

		all[0].(Album).Tracks[0] = "changed"
		got, err = albums.GetOne(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, []string{"intro"}, got.(Album).Tracks)
	})

	t.Run("WrongKind", func(t *testing.T) {
		songs, _ := open(t)

		err := songs.Put(ctx, Movie{ID: "movie-456"})
		assert.True(t, errors.IsValidationError(err), "unexpected error: %v", err)
	})

	t.Run("Concurrent", func(t *testing.T) {
		songs, _ := open(t)

		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					id := fmt.Sprintf("w%d-%d", w, i)
					assert.NoError(t, songs.Put(ctx, Song{ID: id}))
					_, err := songs.GetOne(ctx, id)
					assert.NoError(t, err)
				}
			}(w)
		}
		wg.Wait()

		n, err := songs.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 160, n)
	})
}
