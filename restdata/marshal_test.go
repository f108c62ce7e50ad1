// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vinod-kayartaya/go-collection/collection"
)

func TestDecodeRecord(t *testing.T) {
	body := `{"name": "Vinod", "city": "Bangalore"}`
	var out RecordData
	err := Decode("application/json", strings.NewReader(body), &out)
	if assert.NoError(t, err) {
		assert.Equal(t, RecordData{
			"name": "Vinod",
			"city": "Bangalore",
		}, out)
	}
}

func TestDecodeMediaTypes(t *testing.T) {
	for _, contentType := range []string{
		"application/json",
		"text/json",
		"application/json; charset=utf-8",
		JSONMediaType,
		V1JSONMediaType,
	} {
		var out RecordData
		err := Decode(contentType, strings.NewReader("{}"), &out)
		assert.NoError(t, err, "contentType=%v", contentType)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	var out RecordData
	err := Decode("application/xml", strings.NewReader("<x/>"), &out)
	assert.Equal(t, ErrUnsupportedMediaType{Type: "application/xml"}, err)
	if errS, ok := err.(ErrorStatus); assert.True(t, ok) {
		assert.Equal(t, http.StatusUnsupportedMediaType, errS.HTTPStatus())
	}

	err = Decode("", strings.NewReader("{}"), &out)
	assert.Equal(t, ErrUnsupportedMediaType{Type: "application/octet-stream"}, err)
}

func TestErrorRoundTrip(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{collection.ErrNoSuchCollection{Name: "products"}, http.StatusNotFound},
		{collection.ErrNoSuchRecord{ID: "17"}, http.StatusNotFound},
		{collection.ErrMissingFields{Fields: []string{"name", "email"}}, http.StatusBadRequest},
		{collection.ErrBadValue{Field: "email", Reason: "not a valid address"}, http.StatusBadRequest},
		{collection.ErrDuplicateValue{Field: "email", Value: "vinod@vinod.co"}, http.StatusConflict},
		{collection.ErrBadPage{Reason: "page/size must be more than 0"}, http.StatusBadRequest},
		{ErrUnauthorized{}, http.StatusUnauthorized},
		{ErrTooManyRequests{}, http.StatusTooManyRequests},
	}
	for _, test := range tests {
		assert.Equal(t, test.status, StatusFor(test.err), "err=%v", test.err)

		resp := ErrorResponse{Message: test.err.Error()}
		resp.FromError(test.err)
		back := resp.ToError()
		assert.Equal(t, test.err, back, "err=%v", test.err)
		assert.Equal(t, test.err.Error(), back.Error())
	}
}

func TestErrorWrappersUnwrap(t *testing.T) {
	inner := collection.ErrNoSuchRecord{ID: "99"}
	resp := ErrorResponse{Message: inner.Error()}
	resp.FromError(ErrNotFound{Err: inner})
	assert.Equal(t, "ErrNoSuchRecord", resp.Error)
	assert.Equal(t, inner, resp.ToError())
}

func TestUnknownErrorBecomesPlain(t *testing.T) {
	resp := ErrorResponse{Error: "error", Message: "something odd"}
	err := resp.ToError()
	assert.EqualError(t, err, "something odd")
	assert.Equal(t, http.StatusInternalServerError, StatusFor(err))
}

func TestFieldsOf(t *testing.T) {
	schema := collection.Schema{
		Name: "customers",
		Fields: []collection.Field{
			{Name: "name", Required: true},
			{Name: "email", Required: true, Unique: true, Format: collection.FormatEmail},
			{Name: "rating", Kind: collection.NumberField},
		},
	}
	fields := FieldsOf(schema)
	assert.Equal(t, []FieldData{
		{Name: "name", Required: true},
		{Name: "email", Required: true, Unique: true, Format: collection.FormatEmail},
		{Name: "rating", Kind: collection.NumberField},
	}, fields)
}
