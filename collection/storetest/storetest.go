// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package storetest provides generic functional tests for the
// collection.Store interface.  A typical backend test module wraps
// Suite to create its backend:
//
//     package mybackend
//
//     import (
//             "testing"
//             "github.com/stretchr/testify/suite"
//             "github.com/vinod-kayartaya/go-collection/collection/storetest"
//     )
//
//     // Suite is the per-backend generic test suite.
//     type Suite struct {
//             storetest.Suite
//     }
//
//     // SetupSuite does global setup for the test suite.
//     func (s *Suite) SetupSuite() {
//             s.Suite.SetupSuite()
//             s.Store = NewWithClock(s.Clock)
//     }
//
//     // TestStore runs the generic store tests.
//     func TestStore(t *testing.T) {
//             suite.Run(t, &Suite{})
//     }
package storetest

import (
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
	"github.com/vinod-kayartaya/go-collection/collection"
)

// Suite is the generic store backend test suite.
type Suite struct {
	suite.Suite

	// Clock contains the alternate time source to be used in
	// tests.  It is pre-initialized to a mock clock.
	Clock *clock.Mock

	// Store contains the top-level interface to the backend under
	// test.  It is set by importing packages.
	Store collection.Store
}

// SetupSuite does one-time initialization for the test suite.
func (s *Suite) SetupSuite() {
	s.Clock = clock.NewMock()
}

// CustomerSchema builds the customer schema used throughout the
// generic tests, bound to a caller-chosen collection name so each
// test works on its own collection.
func CustomerSchema(name string) collection.Schema {
	return collection.Schema{
		Name:     name,
		Identity: collection.TokenIdentity,
		Fields: []collection.Field{
			{Name: "name", Kind: collection.StringField, Required: true},
			{Name: "email", Kind: collection.StringField, Required: true, Unique: true, Format: collection.FormatEmail},
			{Name: "phone", Kind: collection.StringField, Required: true, Unique: true},
			{Name: "city", Kind: collection.StringField},
		},
	}
}

// EmployeeSchema builds a serial-identity schema in the shape of the
// employee examples.
func EmployeeSchema(name string) collection.Schema {
	return collection.Schema{
		Name:     name,
		Identity: collection.SerialIdentity,
		Fields: []collection.Field{
			{Name: "name", Kind: collection.StringField, Required: true},
			{Name: "salary", Kind: collection.NumberField, Required: true},
			{Name: "department", Kind: collection.StringField},
			{Name: "job_title", Kind: collection.StringField},
		},
	}
}

// open fetches a collection for schema, failing the test on error.
func (s *Suite) open(schema collection.Schema) collection.Collection {
	col, err := s.Store.Collection(schema)
	s.Require().NoError(err)
	return col
}

// createCustomer creates one customer record, failing the test on
// error.
func (s *Suite) createCustomer(col collection.Collection, name, email, phone string) collection.Record {
	rec, err := col.Create(map[string]interface{}{
		"name":  name,
		"email": email,
		"phone": phone,
	})
	s.Require().NoError(err)
	return rec
}
