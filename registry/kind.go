/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/suparena/kindstore/errors"
)

// Entity is the shape every record shares: a string identifier unique within its kind.
type Entity interface {
	GetID() string
}

var kindNamePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

// Kind describes one category of stored record.
type Kind struct {
	name       string
	plural     string
	keyPattern string
	typ        reflect.Type
}

// Operations holds the method names derived from a kind.
type Operations struct {
	Add    string
	Get    string
	GetAll string
	Clear  string
}

// KindOption customizes a kind at definition time.
type KindOption func(*Kind)

// WithPlural overrides the default plural (name + "s") used in GetAll/Clear names.
func WithPlural(plural string) KindOption {
	return func(k *Kind) {
		k.plural = plural
	}
}

// WithKeyPattern overrides the default key pattern ("MOVIE#{ID}" for kind "movie").
func WithKeyPattern(pattern string) KindOption {
	return func(k *Kind) {
		k.keyPattern = pattern
	}
}

func newKind(name string, typ reflect.Type, opts ...KindOption) (*Kind, error) {
	if name == "" {
		return nil, errors.NewDefinitionError(name, "name must not be empty")
	}
	if !kindNamePattern.MatchString(name) {
		return nil, errors.NewDefinitionError(name, "name must start with a lower-case letter and contain only letters and digits")
	}

	k := &Kind{
		name:       name,
		plural:     name + "s",
		keyPattern: strings.ToUpper(name) + "#" + idMacro,
		typ:        typ,
	}
	for _, opt := range opts {
		opt(k)
	}

	if !kindNamePattern.MatchString(k.plural) {
		return nil, errors.NewDefinitionError(name, fmt.Sprintf("plural %q is not a valid kind name", k.plural))
	}
	if err := validateShape(typ); err != nil {
		return nil, errors.NewDefinitionError(name, err.Error())
	}
	if err := validateKeyPattern(k.keyPattern); err != nil {
		return nil, errors.NewDefinitionError(name, err.Error())
	}
	return k, nil
}

// validateShape checks that typ is a struct carrying an exported `ID string` field.
func validateShape(typ reflect.Type) error {
	if typ == nil || typ.Kind() != reflect.Struct {
		return fmt.Errorf("record type %v must be a struct", typ)
	}
	field, ok := typ.FieldByName("ID")
	if !ok || !field.IsExported() {
		return fmt.Errorf("record type %s has no exported ID field", typ.Name())
	}
	if field.Type.Kind() != reflect.String {
		return fmt.Errorf("ID field of %s must be a string", typ.Name())
	}
	return nil
}

// Name returns the kind name, e.g. "song".
func (k *Kind) Name() string {
	return k.name
}

// Plural returns the plural form used by GetAll and Clear.
func (k *Kind) Plural() string {
	return k.plural
}

// Type returns the Go record type of the kind.
func (k *Kind) Type() reflect.Type {
	return k.typ
}

// KeyPattern returns the storage key template of the kind.
func (k *Kind) KeyPattern() string {
	return k.keyPattern
}

// Operations returns the names of the four operations generated for the kind.
func (k *Kind) Operations() Operations {
	single := capitalize(k.name)
	plural := capitalize(k.plural)
	return Operations{
		Add:    "Add" + single,
		Get:    "Get" + single,
		GetAll: "GetAll" + plural,
		Clear:  "Clear" + plural,
	}
}

// New returns a pointer to a zero record of the kind.
func (k *Kind) New() any {
	return reflect.New(k.typ).Interface()
}

// Owns reports whether e is a record of this kind.
func (k *Kind) Owns(e Entity) bool {
	return e != nil && reflect.TypeOf(e) == k.typ
}

func (k *Kind) String() string {
	return k.name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
