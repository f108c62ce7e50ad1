// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package collection defines an abstract interface to a resource
// collection store: a set of named, homogeneous record collections
// with list, get, create, update, patch, and delete operations.
//
// A Store owns zero or more Collections.  Each Collection is bound to
// a Schema that statically declares its fields, which of them are
// required, which must be unique across the collection, and how
// record identities are assigned.  All input validation runs against
// the schema before anything reaches the backing store, so every
// backend enforces the same contract; the generic conformance tests
// in the storetest subpackage verify this per backend.
//
// Backends live in their own packages (memory, jsonfile, postgres,
// sqlite) and the backend package can construct any of them from a
// command-line flag.
package collection

// Store is the top-level interface to a record store.  Typical
// applications create exactly one Store at startup and share it.
type Store interface {
	// Collection returns the collection described by schema,
	// creating it in the backing store if it does not exist yet.
	// Calling this twice with the same schema name returns
	// handles onto the same underlying collection.
	Collection(schema Schema) (Collection, error)

	// Summarize returns the number of records in every collection
	// this store knows about.  It is intended for monitoring.
	Summarize() (Summary, error)

	// Close releases any resources held by the store, such as a
	// database connection pool or an open file handle.
	Close() error
}

// Collection is one ordered set of records sharing a schema.
type Collection interface {
	// Schema returns the schema this collection was opened with.
	Schema() Schema

	// List returns one page of records in insertion order.  Pages
	// beyond the end of the collection yield an empty slice, not
	// an error.  Invalid page parameters yield ErrBadPage.
	List(page Page) ([]Record, error)

	// Get returns the record with the given identity, or
	// ErrNoSuchRecord if there is none.  Identity spaces are not
	// dense, so absence is an ordinary outcome.
	Get(id string) (Record, error)

	// Create validates fields against the schema (presence, then
	// format, then uniqueness, in that order and stopping at the
	// first failure), projects them onto the declared field set,
	// assigns a fresh identity, and appends the record.  The
	// stored record, including its identity, is returned.
	Create(fields map[string]interface{}) (Record, error)

	// Update replaces every declared field of an existing record
	// with the corresponding value from fields; declared fields
	// absent from the input are cleared to null.  Uniqueness is
	// re-checked against every other record before committing.
	Update(id string, fields map[string]interface{}) (Record, error)

	// Patch overwrites only those declared fields that are
	// present and non-null in the input, leaving the rest
	// untouched.  Uniqueness is re-checked against every other
	// record before committing.
	Patch(id string, fields map[string]interface{}) (Record, error)

	// Delete removes a record permanently.  Its identity is never
	// reassigned.  Returns ErrNoSuchRecord if the record does not
	// exist, including on a repeated delete.
	Delete(id string) error

	// Count returns the number of records currently stored.
	Count() (int, error)
}

// Summary describes the record counts of all collections in a store.
type Summary []SummaryRecord

// SummaryRecord is one entry in a Summary.
type SummaryRecord struct {
	// Collection is the schema name of the collection.
	Collection string

	// Count is the number of records it currently holds.
	Count int
}
