// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func customerSchema() Schema {
	return Schema{
		Name:     "customers",
		Identity: TokenIdentity,
		Fields: []Field{
			{Name: "name", Kind: StringField, Required: true},
			{Name: "email", Kind: StringField, Required: true, Unique: true, Format: FormatEmail},
			{Name: "phone", Kind: StringField, Required: true, Unique: true},
			{Name: "city", Kind: StringField},
		},
	}
}

func TestCheckPresenceNamesAllMissing(t *testing.T) {
	s := customerSchema()
	err := s.CheckPresence(map[string]interface{}{
		"city": "Bangalore",
	})
	if assert.IsType(t, ErrMissingFields{}, err) {
		assert.Equal(t, []string{"name", "email", "phone"}, err.(ErrMissingFields).Fields)
	}
	assert.Equal(t, "missing fields: [name email phone]", err.Error())
}

func TestCheckPresenceNullCountsAsMissing(t *testing.T) {
	s := customerSchema()
	err := s.CheckPresence(map[string]interface{}{
		"name":  "Vinod",
		"email": nil,
		"phone": "9731424784",
	})
	if assert.IsType(t, ErrMissingFields{}, err) {
		assert.Equal(t, []string{"email"}, err.(ErrMissingFields).Fields)
	}
}

func TestCheckValuesKinds(t *testing.T) {
	s := Schema{
		Name: "employees",
		Fields: []Field{
			{Name: "name", Kind: StringField, Required: true},
			{Name: "salary", Kind: NumberField, Required: true},
		},
	}
	assert.NoError(t, s.CheckValues(map[string]interface{}{
		"name":   "Vinod",
		"salary": 50000,
	}))
	assert.NoError(t, s.CheckValues(map[string]interface{}{
		"salary": 50000.5,
	}))
	err := s.CheckValues(map[string]interface{}{"salary": "lots"})
	if assert.IsType(t, ErrBadValue{}, err) {
		assert.Equal(t, "salary", err.(ErrBadValue).Field)
	}
	err = s.CheckValues(map[string]interface{}{"name": 42})
	assert.IsType(t, ErrBadValue{}, err)
}

func TestCheckValuesEmailFormat(t *testing.T) {
	s := customerSchema()
	assert.NoError(t, s.CheckValues(map[string]interface{}{
		"email": "vinod@vinod.co",
	}))
	err := s.CheckValues(map[string]interface{}{"email": "not-an-email"})
	if assert.IsType(t, ErrBadValue{}, err) {
		assert.Equal(t, "email", err.(ErrBadValue).Field)
	}
}

func TestProjectWhitelist(t *testing.T) {
	s := customerSchema()
	rec := s.Project(map[string]interface{}{
		"name":    "Vinod",
		"email":   "vinod@vinod.co",
		"phone":   "9731424784",
		"id":      "client-chosen",
		"salary":  100,
		"unknown": true,
	})
	assert.Equal(t, Record{
		"name":  "Vinod",
		"email": "vinod@vinod.co",
		"phone": "9731424784",
		"city":  nil,
	}, rec)
	_, hasID := rec[IDField]
	assert.False(t, hasID)
}

func TestPreparePatchSkipsNull(t *testing.T) {
	s := customerSchema()
	changes, err := s.PreparePatch(map[string]interface{}{
		"name": "Vinod Kumar",
		"city": nil,
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Vinod Kumar"}, changes)
}

func TestCheckUnique(t *testing.T) {
	s := customerSchema()
	existing := []Record{
		{"id": "a", "name": "Vinod", "email": "vinod@vinod.co", "phone": "9731424784", "city": nil},
		{"id": "b", "name": "John", "email": "john@example.com", "phone": "9812345678", "city": nil},
	}

	err := s.CheckUnique(existing, map[string]interface{}{"email": "vinod@vinod.co"}, "")
	if assert.IsType(t, ErrDuplicateValue{}, err) {
		assert.Equal(t, "email already exists - vinod@vinod.co", err.Error())
	}

	// A record may keep its own unique values.
	assert.NoError(t, s.CheckUnique(existing, map[string]interface{}{
		"email": "vinod@vinod.co",
	}, "a"))

	assert.NoError(t, s.CheckUnique(existing, map[string]interface{}{
		"email": "jane@example.com",
		"phone": "9000000000",
	}, ""))
}

func TestPageBounds(t *testing.T) {
	lo, hi := Page{Number: 2, Size: 10}.Bounds(15)
	assert.Equal(t, 10, lo)
	assert.Equal(t, 15, hi)

	lo, hi = Page{Number: 3, Size: 10}.Bounds(15)
	assert.Equal(t, 15, lo)
	assert.Equal(t, 15, hi)

	lo, hi = DefaultPage.Bounds(3)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 3, hi)
}

func TestPageValidate(t *testing.T) {
	assert.NoError(t, Page{Number: 1, Size: 1}.Validate())
	assert.Error(t, Page{Number: 0, Size: 10}.Validate())
	assert.Error(t, Page{Number: 1, Size: -1}.Validate())
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, "42", Record{"id": 42}.ID())
	assert.Equal(t, "42", Record{"id": int64(42)}.ID())
	assert.Equal(t, "42", Record{"id": float64(42)}.ID())
	assert.Equal(t, "abc", Record{"id": "abc"}.ID())
	assert.Equal(t, "", Record{}.ID())
}
