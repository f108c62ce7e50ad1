// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedString string

func (s namedString) Name() string {
	return string(s)
}

func fetchString(name string) (named, error) {
	return namedString(name), nil
}

func failFetch(name string) (named, error) {
	return nil, errors.New("fetch failed")
}

func TestGetFetchesOnce(t *testing.T) {
	cache := newLRU(4)
	fetches := 0
	fetch := func(name string) (named, error) {
		fetches++
		return namedString(name), nil
	}

	item, err := cache.Get("a", fetch)
	require.NoError(t, err)
	assert.Equal(t, namedString("a"), item)

	item, err = cache.Get("a", fetch)
	require.NoError(t, err)
	assert.Equal(t, namedString("a"), item)
	assert.Equal(t, 1, fetches)
}

func TestFetchError(t *testing.T) {
	cache := newLRU(4)
	_, err := cache.Get("a", failFetch)
	assert.Error(t, err)

	// The failure is not cached.
	item, err := cache.Get("a", fetchString)
	require.NoError(t, err)
	assert.Equal(t, namedString("a"), item)
}

func TestRemove(t *testing.T) {
	cache := newLRU(4)
	fetches := 0
	fetch := func(name string) (named, error) {
		fetches++
		return namedString(name), nil
	}

	_, err := cache.Get("a", fetch)
	require.NoError(t, err)
	cache.Remove("a")
	cache.Remove("absent")
	_, err = cache.Get("a", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestEviction(t *testing.T) {
	cache := newLRU(2)
	fetches := 0
	fetch := func(name string) (named, error) {
		fetches++
		return namedString(name), nil
	}

	for _, name := range []string{"a", "b", "c"} {
		_, err := cache.Get(name, fetch)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, fetches)

	// "a" was least recently used and got evicted; "c" is still
	// cached.
	_, err := cache.Get("c", fetch)
	require.NoError(t, err)
	assert.Equal(t, 3, fetches)

	_, err = cache.Get("a", fetch)
	require.NoError(t, err)
	assert.Equal(t, 4, fetches)
}
