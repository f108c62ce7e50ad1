// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restclient_test

// These tests set up an object stack where the REST client code talks
// to the REST server code, which points at an in-memory backend.  The
// generic storetest suite cannot run over this stack because the
// server only serves collections it was configured with, so these
// tests exercise the client operations against a fixed schema pair.

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/memory"
	"github.com/vinod-kayartaya/go-collection/restclient"
	"github.com/vinod-kayartaya/go-collection/restserver"
)

func customersSchema() collection.Schema {
	return collection.Schema{
		Name:     "customers",
		Identity: collection.TokenIdentity,
		Fields: []collection.Field{
			{Name: "name", Required: true},
			{Name: "city"},
			{Name: "email", Required: true, Unique: true, Format: collection.FormatEmail},
			{Name: "phone", Required: true, Unique: true},
		},
	}
}

func employeesSchema() collection.Schema {
	return collection.Schema{
		Name:     "employees",
		Identity: collection.SerialIdentity,
		Fields: []collection.Field{
			{Name: "name", Required: true},
			{Name: "salary", Kind: collection.NumberField, Required: true},
		},
	}
}

func newStore(t *testing.T) collection.Store {
	router, err := restserver.NewRouter(restserver.Config{
		Store:   memory.New(),
		Schemas: []collection.Schema{customersSchema(), employeesSchema()},
	})
	require.NoError(t, err)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	store, err := restclient.New(server.URL)
	require.NoError(t, err)
	return store
}

func vinod() map[string]interface{} {
	return map[string]interface{}{
		"name":  "Vinod",
		"city":  "Bangalore",
		"email": "vinod@vinod.co",
		"phone": "9731424784",
	}
}

func TestEmptyURL(t *testing.T) {
	_, err := restclient.New("")
	if err == nil {
		t.Fatal("Expected error when given empty URL.")
	}
}

func TestRelativeURL(t *testing.T) {
	// A base URL without a scheme or host cannot be fetched, but
	// it must come back as an error, not a crash.
	_, err := restclient.New("/just/a/path")
	if err == nil {
		t.Fatal("Expected error when given relative URL.")
	}
}

func TestUnknownCollection(t *testing.T) {
	store := newStore(t)
	_, err := store.Collection(collection.Schema{Name: "products"})
	assert.Equal(t, collection.ErrNoSuchCollection{Name: "products"}, err)
}

func TestUnnamedCollection(t *testing.T) {
	store := newStore(t)
	_, err := store.Collection(collection.Schema{})
	assert.Equal(t, collection.ErrNoCollectionName, err)
}

func TestSchemaFromServer(t *testing.T) {
	store := newStore(t)
	// Only the name matters here; the declared fields come back
	// from the server's own configuration.
	c, err := store.Collection(collection.Schema{Name: "customers"})
	require.NoError(t, err)
	assert.Equal(t, customersSchema(), c.Schema())

	c, err = store.Collection(collection.Schema{Name: "employees"})
	require.NoError(t, err)
	assert.Equal(t, collection.SerialIdentity, c.Schema().Identity)
}

func TestCreateAndGet(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(customersSchema())
	require.NoError(t, err)

	created, err := c.Create(vinod())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID())
	assert.Equal(t, "Vinod", created["name"])

	got, err := c.Get(created.ID())
	require.NoError(t, err)
	assert.Equal(t, created.ID(), got.ID())
	assert.Equal(t, "vinod@vinod.co", got["email"])
}

func TestCreateMissingFields(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(customersSchema())
	require.NoError(t, err)

	_, err = c.Create(map[string]interface{}{"city": "Bangalore"})
	assert.Equal(t, collection.ErrMissingFields{
		Fields: []string{"name", "email", "phone"},
	}, err)
}

func TestCreateDuplicateEmail(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(customersSchema())
	require.NoError(t, err)

	_, err = c.Create(vinod())
	require.NoError(t, err)

	dup := vinod()
	dup["phone"] = "9000000000"
	_, err = c.Create(dup)
	assert.Equal(t, collection.ErrDuplicateValue{
		Field: "email",
		Value: "vinod@vinod.co",
	}, err)
}

func TestGetAbsent(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(customersSchema())
	require.NoError(t, err)

	// The identity round-trips through the URL, so the server
	// reports exactly the id we asked about.
	_, err = c.Get("b9cfbc9f-6bc6-4b51-ba12-8e45f79b341c")
	assert.Equal(t, collection.ErrNoSuchRecord{
		ID: "b9cfbc9f-6bc6-4b51-ba12-8e45f79b341c",
	}, err)
}

func TestUpdateClearsOmittedFields(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(customersSchema())
	require.NoError(t, err)

	created, err := c.Create(vinod())
	require.NoError(t, err)

	replacement := vinod()
	delete(replacement, "city")
	updated, err := c.Update(created.ID(), replacement)
	require.NoError(t, err)
	city, present := updated["city"]
	assert.True(t, present)
	assert.Nil(t, city)
}

func TestPatchKeepsOtherFields(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(customersSchema())
	require.NoError(t, err)

	created, err := c.Create(vinod())
	require.NoError(t, err)

	patched, err := c.Patch(created.ID(), map[string]interface{}{
		"city": "Mysore",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mysore", patched["city"])
	assert.Equal(t, "Vinod", patched["name"])
}

func TestDelete(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(customersSchema())
	require.NoError(t, err)

	created, err := c.Create(vinod())
	require.NoError(t, err)

	err = c.Delete(created.ID())
	require.NoError(t, err)

	err = c.Delete(created.ID())
	assert.Equal(t, collection.ErrNoSuchRecord{ID: created.ID()}, err)
}

func TestListPagination(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(employeesSchema())
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, err = c.Create(map[string]interface{}{
			"name":   "Employee",
			"salary": 1000 * (i + 1),
		})
		require.NoError(t, err)
	}

	page, err := c.List(collection.Page{Number: 1, Size: 5})
	require.NoError(t, err)
	assert.Len(t, page, 5)
	assert.Equal(t, "1", page[0].ID())

	page, err = c.List(collection.Page{Number: 2, Size: 5})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, "6", page[0].ID())

	page, err = c.List(collection.Page{Number: 3, Size: 5})
	require.NoError(t, err)
	assert.Len(t, page, 0)

	_, err = c.List(collection.Page{Number: 0, Size: 5})
	assert.Equal(t, collection.ErrBadPage{
		Reason: "page/size must be more than 0",
	}, err)
}

func TestCount(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(employeesSchema())
	require.NoError(t, err)

	n, err := c.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = c.Create(map[string]interface{}{"name": "A", "salary": 100})
	require.NoError(t, err)

	n, err = c.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSummarize(t *testing.T) {
	store := newStore(t)
	c, err := store.Collection(customersSchema())
	require.NoError(t, err)
	_, err = c.Create(vinod())
	require.NoError(t, err)

	summary, err := store.Summarize()
	require.NoError(t, err)
	assert.Equal(t, collection.Summary{
		{Collection: "customers", Count: 1},
		{Collection: "employees", Count: 0},
	}, summary)
}
