// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// the collection Store.  Nothing is persisted; when the process
// exits, the records are gone.  The entire store is behind a single
// global semaphore to protect against concurrent updates, so the
// read-modify-write cycle of each operation is atomic with respect
// to other operations on the same store.
//
// This is mostly intended as a simple reference implementation that
// can be used for testing, including in-process testing of
// higher-level components.  It is tuned for correctness, not
// performance: record lookups and uniqueness checks are linear
// scans.
package memory

import (
	"sync"

	"github.com/vinod-kayartaya/go-collection/collection"
)

// New creates a new Store that operates purely in memory.
func New() collection.Store {
	return &memStore{
		collections: make(map[string]*memCollection),
	}
}

// lockable is a common interface for objects that need to take the
// global lock on the store state.
type lockable interface {
	// Store returns a pointer to the store object at the root of
	// this object tree.
	Store() *memStore
}

// globalLock locks the store at the root of the object tree.  Pair
// this with globalUnlock, as
//
//     globalLock(self)
//     defer globalUnlock(self)
func globalLock(l lockable) {
	l.Store().sem.Lock()
}

// globalUnlock unlocks the store at the root of the object tree.
func globalUnlock(l lockable) {
	l.Store().sem.Unlock()
}

type memStore struct {
	collections map[string]*memCollection
	names       []string
	sem         sync.Mutex
}

func (s *memStore) Store() *memStore {
	return s
}

func (s *memStore) Collection(schema collection.Schema) (collection.Collection, error) {
	if schema.Name == "" {
		return nil, collection.ErrNoCollectionName
	}

	globalLock(s)
	defer globalUnlock(s)

	col := s.collections[schema.Name]
	if col == nil {
		col = &memCollection{store: s, schema: schema, nextSerial: 1}
		s.collections[schema.Name] = col
		s.names = append(s.names, schema.Name)
	}
	return col, nil
}

func (s *memStore) Summarize() (collection.Summary, error) {
	globalLock(s)
	defer globalUnlock(s)

	summary := make(collection.Summary, 0, len(s.names))
	for _, name := range s.names {
		summary = append(summary, collection.SummaryRecord{
			Collection: name,
			Count:      len(s.collections[name].records),
		})
	}
	return summary, nil
}

func (s *memStore) Close() error {
	return nil
}
