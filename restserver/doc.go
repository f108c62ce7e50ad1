// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a collection store as a REST service.
// The restclient package is a matching client.
//
// The complete REST API is defined in the restdata package.  In
// particular, note that the URLs described here are not actually part
// of the API.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//     application/vnd.collection.v1+json
//
// JSON representation of version 1 of this interface.
//
//     application/vnd.collection+json
//     application/json
//     text/json
//
// JSON representation of latest version of this interface.
//
//     text/plain
//
// Plain-text rendering of records and record lists; output only.
// Requests whose Accept: header matches none of these fail with 406
// Not Acceptable.
//
// URL Scheme
//
// Collections are addressed by name and records by identity.  For
// instance, record 17 of the "customers" collection has a resource
// URL of /api/customers/17.  If a name is not URL-safe printable
// ASCII, it must be base64 encoded using the URL-safe alphabet (RFC
// 4648 section 5), with no padding, and adding an additional - at the
// front of the name.  Serial and token identities are always URL-safe.
//
// The following URLs are defined:
//
//     /
//     /api
//     /api/{collection}
//     /api/{collection}/schema
//     /api/{collection}/count
//     /api/{collection}/{id}
//     /api/{collection}/{id}/photo
package restserver
