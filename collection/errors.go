// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package collection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCollectionName is returned from Store.Collection() if the
// provided schema has an empty name.
var ErrNoCollectionName = errors.New("collection schema has no name")

// ErrNoSuchCollection is returned by functions that look up a
// collection by name but cannot find it.
type ErrNoSuchCollection struct {
	Name string
}

func (err ErrNoSuchCollection) Error() string {
	return fmt.Sprintf("no such collection %v", err.Name)
}

// ErrNoSuchRecord is returned by Collection operations that resolve a
// record identity but find nothing there.
type ErrNoSuchRecord struct {
	ID string
}

func (err ErrNoSuchRecord) Error() string {
	return fmt.Sprintf("no record found for id %v", err.ID)
}

// ErrMissingFields is returned from the create pipeline if any
// required field is absent or null.  It names every missing field,
// not just the first one found.
type ErrMissingFields struct {
	Fields []string
}

func (err ErrMissingFields) Error() string {
	return fmt.Sprintf("missing fields: [%v]", strings.Join(err.Fields, " "))
}

// ErrBadValue is returned when a field is present but its value
// cannot be accepted: wrong scalar kind, or a failing format check.
type ErrBadValue struct {
	Field  string
	Reason string
}

func (err ErrBadValue) Error() string {
	return fmt.Sprintf("invalid value for %v: %v", err.Field, err.Reason)
}

// ErrDuplicateValue is returned when a value in a unique field is
// already held by another record in the collection.
type ErrDuplicateValue struct {
	Field string
	Value interface{}
}

func (err ErrDuplicateValue) Error() string {
	return fmt.Sprintf("%v already exists - %v", err.Field, err.Value)
}

// ErrBadPage is returned from List if page parameters are not
// positive integers.
type ErrBadPage struct {
	Reason string
}

func (err ErrBadPage) Error() string {
	return "bad page parameters: " + err.Reason
}

// ErrStoreUnavailable wraps a failure of the backing store itself,
// such as a full disk or an unreachable database engine.  It is
// distinct from validation failures: callers should surface it as a
// server-side fault, not blame the request.
type ErrStoreUnavailable struct {
	Err error
}

func (err ErrStoreUnavailable) Error() string {
	return "store unavailable: " + err.Err.Error()
}

// Unwrap returns the underlying store error.
func (err ErrStoreUnavailable) Unwrap() error {
	return err.Err
}
