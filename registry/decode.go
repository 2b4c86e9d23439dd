/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/suparena/kindstore/errors"
)

// Decode builds a record of the kind from loosely typed fields, such as a YAML seed entry.
// Unknown fields and a missing id are validation errors.
func (k *Kind) Decode(fields map[string]any) (Entity, error) {
	ptr := reflect.New(k.typ)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           ptr.Interface(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder for kind %s: %w", k.name, err)
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, errors.NewValidationError("", fmt.Sprintf("decode %s: %v", k.name, err))
	}

	entity, ok := ptr.Elem().Interface().(Entity)
	if !ok {
		return nil, errors.NewDefinitionError(k.name, "record type does not implement GetID on its value receiver")
	}
	if entity.GetID() == "" {
		return nil, errors.NewValidationError("id", "must not be empty")
	}
	return entity, nil
}

// FromPointer converts the result of New back into a record value.
func (k *Kind) FromPointer(ptr any) (Entity, error) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.Elem().Type() != k.typ {
		return nil, fmt.Errorf("expected *%s, got %T", k.typ, ptr)
	}
	entity, ok := v.Elem().Interface().(Entity)
	if !ok {
		return nil, errors.NewDefinitionError(k.name, "record type does not implement GetID on its value receiver")
	}
	return entity, nil
}
