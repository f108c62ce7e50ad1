// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package backend provides a standard way to construct a collection
// store based on command-line flags.
package backend

import (
	"errors"
	"strings"

	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/jsonfile"
	"github.com/vinod-kayartaya/go-collection/memory"
	"github.com/vinod-kayartaya/go-collection/postgres"
	"github.com/vinod-kayartaya/go-collection/sqlite"
)

// Backend describes user-visible parameters to store collection
// data.  This implements the flag.Value interface, and so a typical
// use is
//
//     func main() {
//         backend := backend.Backend{Implementation: "memory"}
//         flag.Var(&backend, "backend", "impl[:address] of record storage")
//         flag.Parse()
//         store, err := backend.Store()
//     }
type Backend struct {
	// Implementation holds the name of the implementation: one of
	// "memory", "file", "postgres", or "sqlite".
	Implementation string

	// Address holds some backend-specific address: a file path
	// for "file" and "sqlite", a connection string for
	// "postgres", nothing for "memory".
	Address string
}

// Store creates a new collection store.  This generally should only
// be called once: if the backend has in-process state, such as a
// database connection pool or an in-memory store, calling this
// multiple times will create multiple copies of that state.  In
// particular, if b.Implementation is "memory", multiple calls to
// this will create multiple independent record "worlds".
func (b *Backend) Store() (collection.Store, error) {
	switch b.Implementation {
	case "memory":
		return memory.New(), nil
	case "file":
		if b.Address == "" {
			return nil, errors.New("file backend requires a path")
		}
		return jsonfile.New(b.Address)
	case "postgres":
		return postgres.New(b.Address)
	case "sqlite":
		if b.Address == "" {
			return nil, errors.New("sqlite backend requires a path")
		}
		return sqlite.New(b.Address)
	default:
		return nil, errors.New("unknown storage backend " + b.Implementation)
	}
}

// String renders a backend description as a string.
func (b *Backend) String() string {
	if b.Address == "" {
		return b.Implementation
	}
	return b.Implementation + ":" + b.Address
}

// Set parses a string into an existing backend description.  The
// string should be of the form "implementation:address", where
// address can be any string.  Set checks to see if the provided
// implementation is any of the known implementations, and returns an
// appropriate error if not.
//
// This is part of the flag.Value interface.  Note that Set does not
// attempt to validate the address part of the string or actually
// make a connection; Store() does that.
func (b *Backend) Set(param string) error {
	parts := strings.SplitN(param, ":", 2)
	impl := parts[0]
	switch impl {
	case "memory", "file", "postgres", "sqlite":
		// Fine
	default:
		return errors.New("unknown storage backend " + impl)
	}
	b.Implementation = impl
	if len(parts) == 2 {
		b.Address = parts[1]
	} else {
		b.Address = ""
	}
	return nil
}
