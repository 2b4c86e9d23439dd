/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/suparena/kindstore"
	"github.com/suparena/kindstore/errors"
	"github.com/suparena/kindstore/media"
)

// seedFile maps kind names to lists of records:
//
//	movie:
//	  - id: movie-456
//	    director: Stephen Spielberg
//	song:
//	  - singer: Nina Simone
//
// Records without an id get a random UUID. Other scalar ids, such as 42, are kept as strings.
type seedFile map[string][]map[string]any

func loadSeed(path string) (seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return seed, nil
}

func seedFromFile(ctx context.Context, store *kindstore.Store, path string) (int, error) {
	seed, err := loadSeed(path)
	if err != nil {
		return 0, err
	}
	return seedStore(ctx, store, seed)
}

// seedStore adds the records of seed in kind definition order and returns how many were added.
func seedStore(ctx context.Context, store *kindstore.Store, seed seedFile) (int, error) {
	for name := range seed {
		if _, ok := store.Kinds().Lookup(name); !ok {
			return 0, errors.NewUnknownKindError(name)
		}
	}

	added := 0
	for _, kind := range store.Kinds().Kinds() {
		for _, fields := range seed[kind.Name()] {
			if v, ok := fields["id"]; !ok || v == nil {
				fields["id"] = uuid.NewString()
			}
			entity, err := store.AddFields(ctx, kind.Name(), fields)
			if err != nil {
				return added, fmt.Errorf("seed %s: %w", kind.Name(), err)
			}
			log.WithField("kind", kind.Name()).WithField("id", entity.GetID()).Debug("Seeded record")
			added++
		}
	}
	return added, nil
}

// demo stores one song and one movie and shows that ids do not cross kinds.
func demo(ctx context.Context, ds *media.DataStore) error {
	if err := ds.AddSong(ctx, media.Song{ID: "song-123", Singer: "The Flaming Lips"}); err != nil {
		return err
	}
	if err := ds.AddMovie(ctx, media.Movie{ID: "movie-456", Director: "Stephen Spielberg"}); err != nil {
		return err
	}

	song, err := ds.GetSong(ctx, "song-123")
	if err != nil {
		return err
	}
	log.WithField("singer", song.Singer).Info("Found song-123")

	if _, err := ds.GetMovie(ctx, "song-123"); errors.IsNotFound(err) {
		log.WithError(err).Info("song-123 is not a movie")
	} else if err != nil {
		return err
	} else {
		return fmt.Errorf("song-123 unexpectedly found among movies")
	}
	return nil
}
