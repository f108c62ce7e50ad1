// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/memory"
)

// countingStore counts how many collection opens reach the backend.
type countingStore struct {
	collection.Store
	opens int
}

func (s *countingStore) Collection(schema collection.Schema) (collection.Collection, error) {
	s.opens++
	return s.Store.Collection(schema)
}

func booksSchema() collection.Schema {
	return collection.Schema{
		Name: "books",
		Fields: []collection.Field{
			{Name: "title", Required: true},
		},
	}
}

func TestCachedOpen(t *testing.T) {
	backend := &countingStore{Store: memory.New()}
	store := New(backend)

	first, err := store.Collection(booksSchema())
	require.NoError(t, err)
	second, err := store.Collection(booksSchema())
	require.NoError(t, err)

	assert.Equal(t, 1, backend.opens)
	assert.Same(t, first, second)

	// Both handles are the same collection.
	created, err := first.Create(map[string]interface{}{"title": "The Go Programming Language"})
	require.NoError(t, err)
	got, err := second.Get(created.ID())
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", got["title"])
}

func TestErrorsAreNotCached(t *testing.T) {
	backend := &countingStore{Store: memory.New()}
	store := New(backend)

	_, err := store.Collection(collection.Schema{})
	assert.Equal(t, collection.ErrNoCollectionName, err)

	_, err = store.Collection(collection.Schema{})
	assert.Equal(t, collection.ErrNoCollectionName, err)
	assert.Equal(t, 2, backend.opens)
}

func TestPassThrough(t *testing.T) {
	backend := &countingStore{Store: memory.New()}
	store := New(backend)

	c, err := store.Collection(booksSchema())
	require.NoError(t, err)
	_, err = c.Create(map[string]interface{}{"title": "The Practice of Programming"})
	require.NoError(t, err)

	summary, err := store.Summarize()
	require.NoError(t, err)
	assert.Equal(t, collection.Summary{
		{Collection: "books", Count: 1},
	}, summary)

	assert.NoError(t, store.Close())
}
