/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"fmt"
	"go/token"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/suparena/kindstore/errors"
)

// KindMapFile is the YAML declaration of a closed set of kinds.
//
//	kinds:
//	  - name: movie
//	    fields:
//	      - name: director
//	        type: string
type KindMapFile struct {
	Kinds []KindSpec `yaml:"kinds"`
}

// KindSpec declares one kind. Every kind gets an implicit string id field.
type KindSpec struct {
	Name       string      `yaml:"name"`
	Plural     string      `yaml:"plural,omitempty"`
	KeyPattern string      `yaml:"keyPattern,omitempty"`
	Fields     []FieldSpec `yaml:"fields"`
}

// FieldSpec declares one record field.
type FieldSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// goTypes maps declared field types to Go types
var goTypes = map[string]string{
	"string": "string",
	"int":    "int",
	"bool":   "bool",
	"float":  "float64",
}

var identPattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

// ParseKindMap reads and validates a kind map declaration.
func ParseKindMap(r io.Reader) (*KindMapFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read kind map: %w", err)
	}

	var km KindMapFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&km); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse kind map: %w", err)
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return &km, nil
}

// LoadKindMap parses the kind map file at path.
func LoadKindMap(path string) (*KindMapFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open kind map: %w", err)
	}
	defer f.Close()
	return ParseKindMap(f)
}

// Validate checks names, field types and collisions between generated identifiers.
func (km *KindMapFile) Validate() error {
	if len(km.Kinds) == 0 {
		return errors.NewValidationError("kinds", "at least one kind must be declared")
	}

	idents := map[string]string{
		"Kinds":        "kind map",
		"DataStore":    "data store",
		"NewDataStore": "data store constructor",
		"WrapStore":    "data store wrapper",
	}
	claim := func(ident, owner string) error {
		if prev, ok := idents[ident]; ok {
			return errors.NewValidationError("kinds", fmt.Sprintf("%s collides with %s on identifier %s", owner, prev, ident))
		}
		idents[ident] = owner
		return nil
	}
	fieldsOfStore := map[string]string{"store": "store"}
	names := make(map[string]bool, len(km.Kinds))

	for i, k := range km.Kinds {
		field := fmt.Sprintf("kinds[%d]", i)
		if k.Name == "" {
			return errors.NewValidationError(field+".name", "must not be empty")
		}
		if !identPattern.MatchString(k.Name) {
			return errors.NewValidationError(field+".name", fmt.Sprintf("%q must start with a lower-case letter and contain only letters and digits", k.Name))
		}
		if names[k.Name] {
			return errors.NewValidationError(field+".name", fmt.Sprintf("duplicate kind %q", k.Name))
		}
		names[k.Name] = true
		plural := k.plural()
		if !identPattern.MatchString(plural) || token.IsKeyword(plural) {
			return errors.NewValidationError(field+".plural", fmt.Sprintf("%q is not a usable plural", plural))
		}
		if owner, ok := fieldsOfStore[plural]; ok {
			return errors.NewValidationError(field+".plural", fmt.Sprintf("%q is already used by %s", plural, owner))
		}
		fieldsOfStore[plural] = k.Name

		if p := k.KeyPattern; p != "" {
			if strings.Count(p, "{") != 1 || strings.Count(p, "}") != 1 || !strings.HasSuffix(p, "{ID}") || p == "{ID}" {
				return errors.NewValidationError(field+".keyPattern", fmt.Sprintf("%q must be a prefix followed by {ID}", p))
			}
		}

		owner := "kind " + k.Name
		for _, ident := range []string{k.goName(), k.goName() + "Kind"} {
			if err := claim(ident, owner); err != nil {
				return err
			}
		}

		seen := map[string]bool{"id": true}
		for j, f := range k.Fields {
			ff := fmt.Sprintf("%s.fields[%d]", field, j)
			if !identPattern.MatchString(f.Name) {
				return errors.NewValidationError(ff+".name", fmt.Sprintf("%q must start with a lower-case letter and contain only letters and digits", f.Name))
			}
			if exported(f.Name) == "GetID" {
				return errors.NewValidationError(ff+".name", "getID collides with the generated GetID method")
			}
			if strings.EqualFold(f.Name, "id") {
				return errors.NewValidationError(ff+".name", "id is implicit and must not be declared")
			}
			if seen[strings.ToLower(f.Name)] {
				return errors.NewValidationError(ff+".name", fmt.Sprintf("duplicate field %q", f.Name))
			}
			seen[strings.ToLower(f.Name)] = true
			if _, ok := goTypes[f.Type]; !ok {
				return errors.NewValidationError(ff+".type", fmt.Sprintf("unsupported type %q", f.Type))
			}
		}
	}
	return nil
}

func (k KindSpec) plural() string {
	if k.Plural != "" {
		return k.Plural
	}
	return k.Name + "s"
}

func (k KindSpec) goName() string {
	return exported(k.Name)
}

func exported(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
