// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package storetest

import (
	"github.com/vinod-kayartaya/go-collection/collection"
)

// TestSerialIdentity validates the integer identity counter: ids
// increase monotonically and a deleted id is never handed out again.
func (s *Suite) TestSerialIdentity() {
	col := s.open(EmployeeSchema("id_serial"))

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		rec, err := col.Create(map[string]interface{}{
			"name":   name,
			"salary": 1,
		})
		s.Require().NoError(err)
		ids = append(ids, rec.ID())
	}
	s.Equal([]string{"1", "2", "3"}, ids)

	s.Require().NoError(col.Delete("3"))

	rec, err := col.Create(map[string]interface{}{
		"name":   "d",
		"salary": 1,
	})
	if s.NoError(err) {
		s.Equal("4", rec.ID())
	}
}

// TestTokenIdentity validates that token identities are assigned,
// distinct, and stable across gets.
func (s *Suite) TestTokenIdentity() {
	col := s.open(CustomerSchema("id_token"))

	a := s.createCustomer(col, "Vinod", "token1@example.com", "9300000001")
	b := s.createCustomer(col, "John", "token2@example.com", "9300000002")

	s.NotEmpty(a.ID())
	s.NotEmpty(b.ID())
	s.NotEqual(a.ID(), b.ID())

	got, err := col.Get(a.ID())
	if s.NoError(err) {
		s.Equal(a.ID(), got.ID())
	}
}

// TestSameCollectionHandle validates that opening the same schema
// twice yields views onto the same data.
func (s *Suite) TestSameCollectionHandle() {
	schema := CustomerSchema("id_handle")
	col1 := s.open(schema)
	col2 := s.open(schema)

	s.createCustomer(col1, "Vinod", "handle@example.com", "9400000001")

	count, err := col2.Count()
	if s.NoError(err) {
		s.Equal(1, count)
	}

	records, err := col2.List(collection.DefaultPage)
	if s.NoError(err) && s.Len(records, 1) {
		s.Equal("Vinod", records[0]["name"])
	}
}
