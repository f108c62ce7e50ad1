// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	var b Backend

	if assert.NoError(t, b.Set("memory")) {
		assert.Equal(t, "memory", b.Implementation)
		assert.Equal(t, "", b.Address)
	}

	if assert.NoError(t, b.Set("file:/tmp/customers.json")) {
		assert.Equal(t, "file", b.Implementation)
		assert.Equal(t, "/tmp/customers.json", b.Address)
	}

	if assert.NoError(t, b.Set("postgres://user@host/db")) {
		assert.Equal(t, "postgres", b.Implementation)
		assert.Equal(t, "//user@host/db", b.Address)
	}

	assert.Error(t, b.Set("cassandra:whatever"))
}

func TestString(t *testing.T) {
	b := Backend{Implementation: "memory"}
	assert.Equal(t, "memory", b.String())

	b = Backend{Implementation: "sqlite", Address: "/tmp/db.sqlite"}
	assert.Equal(t, "sqlite:/tmp/db.sqlite", b.String())
}

func TestMemoryStore(t *testing.T) {
	b := Backend{Implementation: "memory"}
	store, err := b.Store()
	if assert.NoError(t, err) {
		assert.NotNil(t, store)
	}
}

func TestFileRequiresPath(t *testing.T) {
	b := Backend{Implementation: "file"}
	_, err := b.Store()
	assert.Error(t, err)
}
