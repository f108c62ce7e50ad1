// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/collection/storetest"
)

// Suite is the per-backend generic test suite.
type Suite struct {
	storetest.Suite
}

// SetupSuite does global setup for the test suite.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	store, err := NewWithClock(filepath.Join(s.T().TempDir(), "store.json"), s.Clock)
	s.Require().NoError(err)
	s.Store = store
}

// TestStore runs the generic store tests against the jsonfile
// backend.
func TestStore(t *testing.T) {
	suite.Run(t, &Suite{})
}

func openCustomers(t *testing.T, path string) collection.Collection {
	store, err := New(path)
	require.NoError(t, err)
	col, err := store.Collection(storetest.CustomerSchema("customers"))
	require.NoError(t, err)
	return col
}

// TestReopen checks that records survive closing and reopening the
// store.
func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.json")

	col := openCustomers(t, path)
	rec, err := col.Create(map[string]interface{}{
		"name":  "Vinod",
		"email": "vinod@vinod.co",
		"phone": "9731424784",
	})
	require.NoError(t, err)

	col = openCustomers(t, path)
	got, err := col.Get(rec.ID())
	if assert.NoError(t, err) {
		assert.Equal(t, "Vinod", got["name"])
		assert.Equal(t, "vinod@vinod.co", got["email"])
	}
}

// TestSerialNotReusedAcrossReopen checks that the serial counter is
// persisted, so deleting the newest record and restarting does not
// hand its identity out again.
func TestSerialNotReusedAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.json")
	schema := storetest.EmployeeSchema("employees")

	store, err := New(path)
	require.NoError(t, err)
	col, err := store.Collection(schema)
	require.NoError(t, err)

	for _, name := range []string{"a", "b"} {
		_, err = col.Create(map[string]interface{}{"name": name, "salary": 1})
		require.NoError(t, err)
	}
	require.NoError(t, col.Delete("2"))

	store, err = New(path)
	require.NoError(t, err)
	col, err = store.Collection(schema)
	require.NoError(t, err)
	rec, err := col.Create(map[string]interface{}{"name": "c", "salary": 1})
	require.NoError(t, err)
	assert.Equal(t, "3", rec.ID())
}

// TestFileAlwaysParses checks the atomic-rewrite property: after any
// mutation the backing file is a complete, parseable snapshot and no
// temporary file is left behind.
func TestFileAlwaysParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.json")
	col := openCustomers(t, path)

	_, err := col.Create(map[string]interface{}{
		"name":  "Vinod",
		"email": "vinod@vinod.co",
		"phone": "9731424784",
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &snap))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

// TestCorruptFile checks that an unparseable store file is reported
// at open time instead of being silently replaced.
func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := New(path)
	assert.Error(t, err)
}

// TestMissingFileIsEmptyStore checks that opening a path that does
// not exist yet yields an empty store.
func TestMissingFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")
	col := openCustomers(t, path)

	records, err := col.List(collection.DefaultPage)
	require.NoError(t, err)
	assert.Empty(t, records)
}
