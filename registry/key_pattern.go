/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"regexp"
	"strings"
)

const idMacro = "{ID}"

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// validateKeyPattern requires exactly one {ID} macro, at the end, after a non-empty prefix.
func validateKeyPattern(pattern string) error {
	macros := macroPattern.FindAllString(pattern, -1)
	if len(macros) != 1 || macros[0] != idMacro {
		return fmt.Errorf("key pattern %q must contain exactly one %s macro", pattern, idMacro)
	}
	if !strings.HasSuffix(pattern, idMacro) {
		return fmt.Errorf("key pattern %q must end with %s", pattern, idMacro)
	}
	if pattern == idMacro {
		return fmt.Errorf("key pattern %q needs a prefix before %s", pattern, idMacro)
	}
	return nil
}

// Key expands the kind's key pattern with id.
func (k *Kind) Key(id string) string {
	return macroPattern.ReplaceAllLiteralString(k.keyPattern, id)
}

// KeyPrefix returns the constant part of the key pattern shared by every record of the kind.
func (k *Kind) KeyPrefix() string {
	return strings.TrimSuffix(k.keyPattern, idMacro)
}

// IDFromKey reverses Key. ok is false when key does not belong to the kind.
func (k *Kind) IDFromKey(key string) (id string, ok bool) {
	prefix := k.KeyPrefix()
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	return key[len(prefix):], true
}
