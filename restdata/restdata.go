// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// restserver and restclient packages.  Generally JSON encodings of
// these are passed across the wire as the
// application/vnd.collection.v1+json MIME type.
//
// API Usage
//
// HTTP GET the root document at its specified URL.  This will return
// a JSON serialization of the RootData object.  That serialization
// has links to other resources; follow these links, possibly filling
// in template values, to get to other resources.
//
// Many of the URL fields are actually RFC 6570 URI templates.
// This is a fancy way of saying that they are URL strings with a
// {parameter} in curly braces.  For instance, if the system is rooted
// at /, a JSON serialization of RootData will look like
//
//     {
//         "collections_url": "/api",
//         "collection_url": "/api/{collection}"
//     }
//
// While the URL structure is predictable and formulaic, it is not
// actually part of the API contract.  The only specific guarantee is
// that retrieving the root resource will return a serialization of
// RootData.
//
// Encoding Considerations
//
// A name that appears in a URL string must be made of ASCII
// characters that can be represented unescaped.  Other names are
// escaped by encoding their byte representations using the base64
// URL-safe encoding with no padding, and prepending a hyphen to the
// name.  Names that would be otherwise safe and begin with hyphens
// are also encoded.
//
// Records are conveyed as plain JSON objects whose keys are exactly
// the fields the collection schema declares, plus the
// server-assigned "id" key.  Timestamps, when they appear, are
// represented in JSON as RFC 3339 strings, "2012-03-04T05:06:07.890Z".
//
// HTTP Considerations
//
// Each URL reference notes the applicable HTTP verbs.  Record
// resources support GET, PUT, PATCH, and DELETE; record lists support
// GET and POST.  Any resource that supports GET also supports HEAD.
//
// A PUT replaces the record completely: declared fields absent from
// the uploaded data are cleared to null.  A PATCH updates only the
// fields that are present and non-null, leaving the rest unchanged.
//
// Responses are negotiated against the Accept: header.  All resources
// have a JSON representation; record and record-list resources also
// have a text/plain rendering.  Requests whose Accept: header names
// nothing the server can produce fail with 406 Not Acceptable.
//
// Errors
//
// Most errors should be returned as encodings of the ErrorResponse
// type, accompanied by the matching failing HTTP status.  This can
// round-trip all of the collection package's errors but may return
// most other errors as plain strings that are not the same objects
// as other standard errors.
//
// If Go server code panics, this should be captured and returned as
// an ErrorResponse with error code "panic".
package restdata

import (
	"github.com/vinod-kayartaya/go-collection/collection"
)

// V1JSONMediaType is the preferred, most specific MIME type for the
// JSON representation of this content.
const V1JSONMediaType = "application/vnd.collection.v1+json"

// JSONMediaType requests the most recent version of the JSON
// representation of this content.
const JSONMediaType = "application/vnd.collection+json"

// TextMediaType is the plain-text rendering of records and record
// lists.  It is produced on request but never accepted as input.
const TextMediaType = "text/plain"

// RecordData is the wire form of a single record: a JSON object
// holding the declared fields of its collection plus the
// server-assigned "id" key.
type RecordData map[string]interface{}

// Resource is a base type for all resources in this module.
type Resource struct {
	// URL points at this resource.  This field does not need to be
	// provided when posting data.
	URL string `json:"url,omitempty"`
}

// NamedResource is a resource with a name.
type NamedResource struct {
	Resource

	// Name holds the name of this resource.  This is generally
	// immutable.
	Name string `json:"name"`
}

// RootData is returned by the root path.
type RootData struct {
	Resource

	// CollectionsURL points at the collection list.  This endpoint
	// supports HTTP GET and returns a CollectionList.
	CollectionsURL string `json:"collections_url"`

	// CollectionURL points at the records of a single collection.
	// This endpoint supports HTTP GET, returning a RecordList, and
	// HTTP POST, creating a record.  This field is a URI template
	// with a single parameter, "collection", which should be
	// substituted for the (possibly escaped) name of the
	// collection.  The collection's full description, including
	// its declared fields, is linked from the CollectionList.
	CollectionURL string `json:"collection_url"`
}

// CollectionShort provides minimal data to identify a collection.
type CollectionShort struct {
	NamedResource
}

// CollectionList is a list of CollectionShort.
type CollectionList struct {
	// Collections lists the collections the server was configured
	// with, in configuration order.
	Collections []CollectionShort `json:"collections"`
}

// FieldData describes one declared field of a collection.
type FieldData struct {
	// Name is the field's key in record objects.
	Name string `json:"name"`

	// Kind is the field's scalar type, "string" or "number".
	Kind collection.FieldKind `json:"kind"`

	// Required marks fields that must be present and non-null when
	// a record is created.
	Required bool `json:"required,omitempty"`

	// Unique marks fields whose value may appear in at most one
	// record of the collection.
	Unique bool `json:"unique,omitempty"`

	// Format names an extra syntactic constraint, currently only
	// "email".
	Format collection.Format `json:"format,omitempty"`
}

// Collection contains all of the details for a single collection.
type Collection struct {
	CollectionShort

	// Identity tells how record identities are assigned, "serial"
	// or "token".  Identities are assigned by the server and
	// cannot be chosen by clients.
	Identity collection.IdentityKind `json:"identity"`

	// Fields lists the declared fields in declaration order.  Keys
	// outside this list are silently dropped from submitted
	// records.
	Fields []FieldData `json:"fields"`

	// RecordsURL points at the record list.  This endpoint
	// supports HTTP GET, returning a RecordList, and HTTP POST,
	// submitting a RecordData and returning the stored record with
	// 201 Created and a Location: header.  GET accepts "page" and
	// "size" query parameters; both default sensibly and both must
	// be positive.
	RecordsURL string `json:"records_url"`

	// RecordURL points at a single record by identity.  This
	// endpoint supports HTTP GET, PUT, PATCH, and DELETE, and its
	// representation is a RecordData.  This is a URI template with
	// a single parameter, "id".
	RecordURL string `json:"record_url"`

	// CountURL points at the record count.  This endpoint only
	// supports HTTP GET and returns a RecordCount.
	CountURL string `json:"count_url"`

	// PhotoURL points at the photo attached to a single record.
	// This endpoint supports HTTP GET, POST (as a multipart form
	// with a "photo" file part), and DELETE.  This is a URI
	// template with a single parameter, "id".  Absent if the
	// server was started without an upload directory.
	PhotoURL string `json:"photo_url,omitempty"`
}

// RecordList is one page of records.
type RecordList struct {
	// Records holds the page contents in insertion order.  A page
	// past the end of the collection is an empty list, not an
	// error.
	Records []RecordData `json:"records"`

	// Page is the 1-based page number this list represents.
	Page int `json:"page"`

	// Size is the page size that was applied.
	Size int `json:"size"`
}

// RecordCount is the response to a collection count request.
type RecordCount struct {
	// Count has the number of records currently stored.
	Count int `json:"count"`
}

// PhotoInfo is the response to a successful photo upload.
type PhotoInfo struct {
	// Filename is the server-assigned name of the stored file.
	// The original client filename is discarded; only its
	// extension survives.
	Filename string `json:"filename"`
}

// ErrorResponse can be a response to any method, generally accompanied
// by a failing HTTP status code.
type ErrorResponse struct {
	// Error is a short description of the failure.  This may be
	// the name or type of a collection API error, the string
	// "panic", or the string "error" for some other kind of error.
	Error string `json:"error"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Timestamp records when the server produced this error, in
	// RFC 3339 format.
	Timestamp string `json:"timestamp,omitempty"`

	// Code repeats the HTTP status code of the response.
	Code int `json:"code,omitempty"`

	// Value is an extra parameter to the error if applicable.
	Value string `json:"value,omitempty"`

	// Field names the record field the error applies to, if
	// applicable.
	Field string `json:"field,omitempty"`

	// Fields lists all field names the error applies to, if there
	// is more than one.
	Fields []string `json:"fields,omitempty"`

	// Stack holds a formatted backtrace, if the method failed due
	// to a panic.
	Stack string `json:"stack,omitempty"`
}
