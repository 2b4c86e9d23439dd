/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"

	"github.com/mitchellh/copystructure"
)

// Clone returns a deep copy of a record of the kind, so that slices and maps
// in the copy share no memory with e. Unexported fields are not copied.
func (k *Kind) Clone(e Entity) (Entity, error) {
	if !k.Owns(e) {
		return nil, fmt.Errorf("%T is not a %s record", e, k.name)
	}
	c, err := copystructure.Copy(e)
	if err != nil {
		return nil, fmt.Errorf("copy %s %q: %w", k.name, e.GetID(), err)
	}
	entity, ok := c.(Entity)
	if !ok {
		return nil, fmt.Errorf("copy of %s %q is a %T", k.name, e.GetID(), c)
	}
	return entity, nil
}
