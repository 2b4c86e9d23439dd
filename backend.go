/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package kindstore

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/suparena/kindstore/config"
	"github.com/suparena/kindstore/datastore"
	"github.com/suparena/kindstore/datastore/badgerdb"
	"github.com/suparena/kindstore/datastore/memory"
	"github.com/suparena/kindstore/internal/logging"
	"github.com/suparena/kindstore/registry"
)

// NewBackend creates the backend registered under name.
func NewBackend(name string, log *logrus.Entry) (datastore.Backend, error) {
	switch name {
	case memory.BackendName:
		return memory.New(), nil
	case badgerdb.BackendName:
		opts := badgerdb.Options{}
		if log != nil {
			opts.Logger = log
		}
		return badgerdb.New(opts)
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// NewFromConfig creates a Store for kinds on the backend selected by cfg.
func NewFromConfig(kinds *registry.KindMap, cfg *config.Config) (*Store, error) {
	log := logging.GetLogger("kindstore")
	backend, err := NewBackend(cfg.Backend, logging.GetLogger(cfg.Backend))
	if err != nil {
		return nil, err
	}
	return New(kinds, WithBackend(backend), WithLogger(log))
}
