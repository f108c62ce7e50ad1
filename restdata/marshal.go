// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"io"
	"mime"

	"github.com/ugorji/go/codec"
	"github.com/vinod-kayartaya/go-collection/collection"
)

// Decode tries to decode a restdata object from a reader, such as an
// HTTP request or response.  out must be a pointer type.
func Decode(contentType string, r io.Reader, out interface{}) error {
	if contentType == "" {
		// RFC 7231 section 3.1.1.5
		// We could also consider http.DetectContentType()
		contentType = "application/octet-stream"
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return err
	}

	// Promote to more specific types
	switch mediaType {
	case "text/json", "application/json", JSONMediaType, V1JSONMediaType:
		mediaType = V1JSONMediaType

	default:
		return ErrUnsupportedMediaType{Type: mediaType}
	}

	// Actually decode the object based on the selected type.
	switch mediaType {
	case V1JSONMediaType:
		json := &codec.JsonHandle{}
		decoder := codec.NewDecoder(r, json)
		err = decoder.Decode(out)
	default:
		err = ErrUnsupportedMediaType{Type: mediaType}
	}
	return err
}

// FieldsOf converts a schema's declared fields to their wire form, in
// declaration order.
func FieldsOf(schema collection.Schema) []FieldData {
	fields := make([]FieldData, len(schema.Fields))
	for i, f := range schema.Fields {
		fields[i] = FieldData{
			Name:     f.Name,
			Kind:     f.Kind,
			Required: f.Required,
			Unique:   f.Unique,
			Format:   f.Format,
		}
	}
	return fields
}
