// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package cache provides name-based caching of collection handles.
// The cache wraps some other collection store.  Record operations
// pass straight through to the underlying collection; only the
// by-schema lookup in Store.Collection is cached, which matters for
// backends where opening a collection costs real work, such as the
// REST client or a database-backed store.
//
// Handles use name identity: two schemas with the same name resolve
// to the same cached handle, and the first opener's schema wins.  The
// daemon opens every collection from one configuration file, so the
// schemas for a given name never disagree there.
package cache

import (
	"github.com/vinod-kayartaya/go-collection/collection"
)

type cache struct {
	backend     collection.Store
	collections *lru
}

// New creates a new caching store, wrapping some other store.
func New(backend collection.Store) collection.Store {
	return &cache{
		backend:     backend,
		collections: newLRU(32),
	}
}

func (c *cache) Collection(schema collection.Schema) (collection.Collection, error) {
	obj, err := c.collections.Get(schema.Name, func(string) (named, error) {
		opened, err := c.backend.Collection(schema)
		if err != nil {
			return nil, err
		}
		return &cachedCollection{Collection: opened, name: schema.Name}, nil
	})
	if err != nil {
		return nil, err
	}
	return obj.(collection.Collection), nil
}

func (c *cache) Summarize() (collection.Summary, error) {
	return c.backend.Summarize()
}

func (c *cache) Close() error {
	return c.backend.Close()
}

// cachedCollection gives a collection handle the name the cache
// indexes it under.
type cachedCollection struct {
	collection.Collection
	name string
}

func (c *cachedCollection) Name() string {
	return c.name
}
