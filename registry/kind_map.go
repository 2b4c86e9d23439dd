/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/suparena/kindstore/errors"
)

// KindMap is the closed catalog of entity kinds a store is built from.
type KindMap struct {
	mu     sync.RWMutex
	kinds  []*Kind
	byName map[string]*Kind
	byType map[reflect.Type]*Kind
}

// NewKindMap creates an empty KindMap.
func NewKindMap() *KindMap {
	return &KindMap{
		byName: make(map[string]*Kind),
		byType: make(map[reflect.Type]*Kind),
	}
}

// Define registers record type T under name.
// All problems with the definition are reported here, never by later store operations.
func Define[T Entity](m *KindMap, name string, opts ...KindOption) (*Kind, error) {
	var zero T
	k, err := newKind(name, reflect.TypeOf(zero), opts...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byName[name]; exists {
		return nil, errors.NewAlreadyExistsError("kind", name)
	}
	if other, exists := m.byType[k.typ]; exists {
		return nil, errors.NewDefinitionError(name, fmt.Sprintf("type %s is already registered as kind %q", k.typ, other.name))
	}
	for _, other := range m.kinds {
		if strings.HasPrefix(other.KeyPrefix(), k.KeyPrefix()) || strings.HasPrefix(k.KeyPrefix(), other.KeyPrefix()) {
			return nil, errors.NewDefinitionError(name, fmt.Sprintf("key prefix %q overlaps kind %q", k.KeyPrefix(), other.name))
		}
	}

	m.kinds = append(m.kinds, k)
	m.byName[name] = k
	m.byType[k.typ] = k
	return k, nil
}

// MustDefine is like Define but panics on error. It is meant for package-level declarations.
func MustDefine[T Entity](m *KindMap, name string, opts ...KindOption) *Kind {
	k, err := Define[T](m, name, opts...)
	if err != nil {
		panic(fmt.Sprintf("kind registry: %v", err))
	}
	return k
}

// KindOf returns the kind registered for record type T.
func KindOf[T Entity](m *KindMap) (*Kind, bool) {
	var zero T
	return m.lookupType(reflect.TypeOf(zero))
}

// KindOfEntity returns the kind the dynamic type of e is registered as.
func (m *KindMap) KindOfEntity(e Entity) (*Kind, bool) {
	if e == nil {
		return nil, false
	}
	return m.lookupType(reflect.TypeOf(e))
}

func (m *KindMap) lookupType(t reflect.Type) (*Kind, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	k, ok := m.byType[t]
	return k, ok
}

// Lookup returns the kind registered under name.
func (m *KindMap) Lookup(name string) (*Kind, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	k, ok := m.byName[name]
	return k, ok
}

// Kinds returns the registered kinds in definition order.
func (m *KindMap) Kinds() []*Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Kind, len(m.kinds))
	copy(out, m.kinds)
	return out
}

// Names returns the registered kind names in definition order.
func (m *KindMap) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.kinds))
	for _, k := range m.kinds {
		names = append(names, k.name)
	}
	return names
}

// Len returns the number of registered kinds.
func (m *KindMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.kinds)
}
