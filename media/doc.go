/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package media is the movie and song registry. Record types and the DataStore
// methods are generated from kinds.yaml.
package media

//go:generate go run ../cmd/kindgen -in kinds.yaml -out zz_generated_kinds.go -package media
