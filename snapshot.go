/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package kindstore

import (
	"context"
	"sort"

	"github.com/suparena/kindstore/storagemodels"
)

// Snapshot copies every record of every kind. Kinds appear in definition order and
// records are sorted by id.
func (s *Store) Snapshot(ctx context.Context) (storagemodels.Snapshot, error) {
	snap := storagemodels.Snapshot{
		Kinds: make([]storagemodels.KindSnapshot, 0, len(s.stores)),
	}
	for _, kind := range s.kinds.Kinds() {
		if _, ok := s.stores[kind.Name()]; !ok {
			continue
		}
		all, err := s.GetAll(ctx, kind.Name())
		if err != nil {
			return storagemodels.Snapshot{}, err
		}
		sort.Slice(all, func(i, j int) bool {
			return all[i].GetID() < all[j].GetID()
		})

		records := make([]any, 0, len(all))
		for _, e := range all {
			records = append(records, e)
		}
		snap.Kinds = append(snap.Kinds, storagemodels.KindSnapshot{
			Kind:    kind.Name(),
			Records: records,
		})
	}
	return snap, nil
}
