// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package storetest

import (
	"fmt"

	"github.com/vinod-kayartaya/go-collection/collection"
)

// TestPagination validates the paging contract on a 15-record
// collection: page 2 of size 10 holds records 11-15, page 3 is empty.
func (s *Suite) TestPagination() {
	col := s.open(EmployeeSchema("page_slices"))

	for i := 1; i <= 15; i++ {
		_, err := col.Create(map[string]interface{}{
			"name":   fmt.Sprintf("employee %v", i),
			"salary": 1000 * i,
		})
		s.Require().NoError(err)
	}

	page, err := col.List(collection.Page{Number: 2, Size: 10})
	if s.NoError(err) && s.Len(page, 5) {
		s.Equal("employee 11", page[0]["name"])
		s.Equal("employee 15", page[4]["name"])
	}

	page, err = col.List(collection.Page{Number: 3, Size: 10})
	if s.NoError(err) {
		s.Empty(page)
	}

	_, err = col.List(collection.Page{Number: 0, Size: 10})
	s.IsType(collection.ErrBadPage{}, err)
	_, err = col.List(collection.Page{Number: 1, Size: 0})
	s.IsType(collection.ErrBadPage{}, err)
}

// TestListInsertionOrder validates that listing preserves the order
// records were created in.
func (s *Suite) TestListInsertionOrder() {
	col := s.open(CustomerSchema("page_order"))

	names := []string{"first", "second", "third"}
	for i, name := range names {
		_, err := col.Create(map[string]interface{}{
			"name":  name,
			"email": fmt.Sprintf("order%v@example.com", i),
			"phone": fmt.Sprintf("92000000%02d", i),
		})
		s.Require().NoError(err)
	}

	records, err := col.List(collection.Page{Number: 1, Size: 10})
	if s.NoError(err) && s.Len(records, 3) {
		for i, name := range names {
			s.Equal(name, records[i]["name"])
		}
	}
}
