// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package storetest

import (
	"github.com/vinod-kayartaya/go-collection/collection"
)

// TestCreateAndGet validates that a created record is returned with
// an identity and that a subsequent get sees the same record.
func (s *Suite) TestCreateAndGet() {
	col := s.open(CustomerSchema("crud_create"))

	rec, err := col.Create(map[string]interface{}{
		"name":    "Vinod",
		"email":   "vinod@vinod.co",
		"phone":   "9731424784",
		"city":    "Bangalore",
		"id":      "client-chosen",
		"unknown": "dropped",
	})
	if !s.NoError(err) {
		return
	}
	s.NotEmpty(rec.ID())
	s.NotEqual("client-chosen", rec.ID())
	s.Equal("Vinod", rec["name"])
	s.Equal("Bangalore", rec["city"])
	_, present := rec["unknown"]
	s.False(present)

	got, err := col.Get(rec.ID())
	if s.NoError(err) {
		s.Equal(rec.ID(), got.ID())
		s.Equal("Vinod", got["name"])
		s.Equal("vinod@vinod.co", got["email"])
		s.Equal("9731424784", got["phone"])
		s.Equal("Bangalore", got["city"])
		_, present = got["unknown"]
		s.False(present)
	}
}

// TestGetAbsent validates the not-found contract.
func (s *Suite) TestGetAbsent() {
	col := s.open(CustomerSchema("crud_absent"))
	_, err := col.Get("definitely-not-there")
	s.IsType(collection.ErrNoSuchRecord{}, err)
}

// TestMissingFields validates that a create without required fields
// names all of them and stores nothing.
func (s *Suite) TestMissingFields() {
	col := s.open(CustomerSchema("crud_missing"))

	_, err := col.Create(map[string]interface{}{"city": "Delhi"})
	if s.IsType(collection.ErrMissingFields{}, err) {
		s.Equal([]string{"name", "email", "phone"}, err.(collection.ErrMissingFields).Fields)
	}

	count, err := col.Count()
	if s.NoError(err) {
		s.Equal(0, count)
	}
}

// TestDuplicateEmail validates the uniqueness stage of the create
// pipeline: the second create fails with a conflict and the
// collection grows by exactly one.
func (s *Suite) TestDuplicateEmail() {
	col := s.open(CustomerSchema("crud_dup_email"))

	s.createCustomer(col, "Vinod", "vinod@vinod.co", "9731424784")
	_, err := col.Create(map[string]interface{}{
		"name":  "Somebody Else",
		"email": "vinod@vinod.co",
		"phone": "9000000000",
	})
	if s.IsType(collection.ErrDuplicateValue{}, err) {
		s.Equal("email already exists - vinod@vinod.co", err.Error())
	}

	count, err := col.Count()
	if s.NoError(err) {
		s.Equal(1, count)
	}
}

// TestDuplicatePhone validates uniqueness on a second unique field.
func (s *Suite) TestDuplicatePhone() {
	col := s.open(CustomerSchema("crud_dup_phone"))

	s.createCustomer(col, "Vinod", "vinod@vinod.co", "9731424784")
	_, err := col.Create(map[string]interface{}{
		"name":  "Somebody Else",
		"email": "other@example.com",
		"phone": "9731424784",
	})
	if s.IsType(collection.ErrDuplicateValue{}, err) {
		s.Equal("phone", err.(collection.ErrDuplicateValue).Field)
	}
}

// TestUpdateReplacesEverything validates full-replacement semantics:
// declared fields absent from the update are cleared.
func (s *Suite) TestUpdateReplacesEverything() {
	col := s.open(CustomerSchema("crud_update"))

	rec, err := col.Create(map[string]interface{}{
		"name":  "Vinod",
		"email": "vinod@vinod.co",
		"phone": "9731424784",
		"city":  "Bangalore",
	})
	s.Require().NoError(err)

	updated, err := col.Update(rec.ID(), map[string]interface{}{
		"name":  "Vinod Kumar",
		"email": "vinod@vinod.co",
		"phone": "9731424784",
	})
	if s.NoError(err) {
		s.Equal("Vinod Kumar", updated["name"])
		s.Nil(updated["city"])
		s.Equal(rec.ID(), updated.ID())
	}

	got, err := col.Get(rec.ID())
	if s.NoError(err) {
		s.Nil(got["city"])
	}
}

// TestUpdateUniqueness validates that updates re-check uniqueness
// against other records but allow a record to keep its own values.
func (s *Suite) TestUpdateUniqueness() {
	col := s.open(CustomerSchema("crud_update_unique"))

	a := s.createCustomer(col, "Vinod", "vinod@vinod.co", "9731424784")
	b := s.createCustomer(col, "John", "john@example.com", "9812345678")

	// Taking another record's email is a conflict.
	_, err := col.Update(b.ID(), map[string]interface{}{
		"name":  "John",
		"email": "vinod@vinod.co",
		"phone": "9812345678",
	})
	s.IsType(collection.ErrDuplicateValue{}, err)

	// Keeping your own values is fine.
	_, err = col.Update(a.ID(), map[string]interface{}{
		"name":  "Vinod",
		"email": "vinod@vinod.co",
		"phone": "9731424784",
	})
	s.NoError(err)
}

// TestUpdateAbsent validates updating a nonexistent record.
func (s *Suite) TestUpdateAbsent() {
	col := s.open(CustomerSchema("crud_update_absent"))
	_, err := col.Update("nope", map[string]interface{}{
		"name":  "X",
		"email": "x@example.com",
		"phone": "1",
	})
	s.IsType(collection.ErrNoSuchRecord{}, err)
}

// TestPatch validates partial-update semantics: present non-null
// fields are overwritten, null and absent fields stay untouched.
func (s *Suite) TestPatch() {
	col := s.open(CustomerSchema("crud_patch"))

	rec, err := col.Create(map[string]interface{}{
		"name":  "Vinod",
		"email": "vinod@vinod.co",
		"phone": "9731424784",
		"city":  "Bangalore",
	})
	s.Require().NoError(err)

	patched, err := col.Patch(rec.ID(), map[string]interface{}{
		"city": "Mysore",
		"name": nil,
	})
	if s.NoError(err) {
		s.Equal("Mysore", patched["city"])
		s.Equal("Vinod", patched["name"])
		s.Equal("vinod@vinod.co", patched["email"])
	}
}

// TestPatchUniqueness validates that a patch cannot take another
// record's unique value.
func (s *Suite) TestPatchUniqueness() {
	col := s.open(CustomerSchema("crud_patch_unique"))

	s.createCustomer(col, "Vinod", "vinod@vinod.co", "9731424784")
	b := s.createCustomer(col, "John", "john@example.com", "9812345678")

	_, err := col.Patch(b.ID(), map[string]interface{}{
		"email": "vinod@vinod.co",
	})
	s.IsType(collection.ErrDuplicateValue{}, err)

	// Patching your own unique field to its current value is fine.
	_, err = col.Patch(b.ID(), map[string]interface{}{
		"email": "john@example.com",
	})
	s.NoError(err)
}

// TestDelete validates that deletion is terminal and that a repeated
// delete reports not-found.
func (s *Suite) TestDelete() {
	col := s.open(CustomerSchema("crud_delete"))

	rec := s.createCustomer(col, "Vinod", "vinod@vinod.co", "9731424784")

	s.NoError(col.Delete(rec.ID()))

	_, err := col.Get(rec.ID())
	s.IsType(collection.ErrNoSuchRecord{}, err)

	err = col.Delete(rec.ID())
	s.IsType(collection.ErrNoSuchRecord{}, err)
}

// TestSummarize validates the store-wide record counts.
func (s *Suite) TestSummarize() {
	col := s.open(CustomerSchema("crud_summary"))
	s.createCustomer(col, "Vinod", "summary1@example.com", "9100000001")
	s.createCustomer(col, "John", "summary2@example.com", "9100000002")

	summary, err := s.Store.Summarize()
	if !s.NoError(err) {
		return
	}
	found := false
	for _, record := range summary {
		if record.Collection == "crud_summary" {
			found = true
			s.Equal(2, record.Count)
		}
	}
	s.True(found, "crud_summary missing from summary")
}
