// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vinod-kayartaya/go-collection/collection/storetest"
)

// Suite is the per-backend generic test suite, run against an
// in-memory SQLite database.
type Suite struct {
	storetest.Suite
}

// SetupSuite does global setup for the test suite.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	store, err := NewWithClock(":memory:", s.Clock)
	s.Require().NoError(err)
	s.Store = store
}

// TestStore runs the generic store tests against the sqlite backend.
func TestStore(t *testing.T) {
	suite.Run(t, &Suite{})
}

// TestReopen checks that records survive closing and reopening a
// file-backed database.
func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.sqlite")
	schema := storetest.CustomerSchema("customers")

	store, err := New(path)
	require.NoError(t, err)
	col, err := store.Collection(schema)
	require.NoError(t, err)
	rec, err := col.Create(map[string]interface{}{
		"name":  "Vinod",
		"email": "vinod@vinod.co",
		"phone": "9731424784",
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = New(path)
	require.NoError(t, err)
	defer store.Close()
	col, err = store.Collection(schema)
	require.NoError(t, err)
	got, err := col.Get(rec.ID())
	if assert.NoError(t, err) {
		assert.Equal(t, "Vinod", got["name"])
	}
}
