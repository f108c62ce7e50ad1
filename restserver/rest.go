// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// The bulk of this is dealing with HTTP content type negotiation, and
// providing a standard way to deal with input and output values.
// This could probably be made more generic: the major variables are
// the type canonicalization map, the context builder, and specific
// codecs.

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ugorji/go/codec"
	"github.com/vinod-kayartaya/go-collection/restdata"
)

var typeMap = map[string]string{
	"text/json":              restdata.V1JSONMediaType,
	"application/json":       restdata.V1JSONMediaType,
	restdata.JSONMediaType:   restdata.V1JSONMediaType,
	restdata.V1JSONMediaType: restdata.V1JSONMediaType,
	restdata.TextMediaType:   restdata.TextMediaType,
}

// errBadAccept is returned from negotiateResponse() if the Accept:
// header is malformed (and no more specific error applies).
var errBadAccept = errors.New("Invalid Accept: header")

// errNotAcceptable is returned from negotiateResponse() if the Accept:
// header does not mention any media types we can actually return.
type errNotAcceptable struct{}

func (e errNotAcceptable) Error() string {
	return "No acceptable representation for response"
}

func (e errNotAcceptable) HTTPStatus() int {
	return http.StatusNotAcceptable
}

// errMethodNotAllowed is used within the resourceHandler implementation
// to flag an error if a particular HTTP method is not allowed.  This
// corresponds exactly to the 405 Method Not Allowed HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

// responseCreated is returned as a value response from handler
// functions that want to indicate that a new resource was created.
type responseCreated struct {
	// Location holds the canonical URL to the newly created resource.
	Location string

	// Body contains the object sent in the body of the response.
	Body interface{}
}

type resourceHandler struct {
	// Representation is an object representing this resource.
	// A new object of its type is decoded from the request body
	// and passed to the Put, Post, and Patch functions.
	Representation interface{}

	// Context reads an HTTP request and produces a context object.
	Context func(req *http.Request) (*context, error)

	// Now tells the current time, for stamping error responses.
	// If nil, the wall clock applies.
	Now func() time.Time

	// Get, if non-nil, returns a representation of the object.
	Get func(*context) (interface{}, error)

	// Put, if non-nil, replaces the representation of the object.
	// The interface parameter is guaranteed to be the same type
	// as Representation.
	Put func(*context, interface{}) (interface{}, error)

	// Post, if non-nil, creates a new object or takes some other
	// action.  The return can be any useful return value,
	// including responseCreated.
	Post func(*context, interface{}) (interface{}, error)

	// Patch, if non-nil, partially updates the object.
	Patch func(*context, interface{}) (interface{}, error)

	// Delete, if non-nil, deletes the object.
	Delete func(*context) (interface{}, error)
}

func (h *resourceHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx          *context
		in, out      interface{}
		err          error
		status       int
		responseType string
	)

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			response := restdata.ErrorResponse{}
			response.FromPanic(recovered)
			response.Timestamp = h.now().UTC().Format(time.RFC3339)
			response.Code = http.StatusInternalServerError
			resp.Header().Set("Content-Type", restdata.V1JSONMediaType)
			resp.WriteHeader(http.StatusInternalServerError)
			json := &codec.JsonHandle{}
			encoder := codec.NewEncoder(resp, json)
			// The connection may be the thing that failed, so
			// a write error here has nowhere better to go.
			_ = encoder.Encode(response)
		}
	}()

	// Start by trying to come up with a response type, even before
	// trying to parse the input.  This determines what format an
	// error message could be sent back as.
	if err == nil {
		// Errors here by default are in the header setup
		status = http.StatusBadRequest
		responseType, err = negotiateResponse(req)
		if err != nil {
			// Gotta pick something
			responseType = restdata.V1JSONMediaType
		}
	}

	// Get bits from URL parameters
	if err == nil {
		ctx, err = h.Context(req)
	}

	// Read the JSON body, if it's there
	if err == nil && (req.Method == "PUT" || req.Method == "POST" || req.Method == "PATCH") {
		// Make a new object of the same type as h.Representation
		ptr := reflect.New(reflect.TypeOf(h.Representation))

		// Then decode the message body into that object
		contentType := req.Header.Get("Content-Type")
		err = restdata.Decode(contentType, req.Body, ptr.Interface())
		in = ptr.Elem().Interface()
	}

	// Actually call the handler method
	if err == nil {
		// We will return this if the method is unexpected or
		// we don't have a handler for it
		err = errMethodNotAllowed{Method: req.Method}
		// If anything else goes wrong here, it's an error in
		// client code
		status = http.StatusInternalServerError
		switch req.Method {
		case "GET", "HEAD":
			if h.Get != nil {
				out, err = h.Get(ctx)
			}
		case "PUT":
			if h.Put != nil {
				out, err = h.Put(ctx, in)
			}
		case "POST":
			if h.Post != nil {
				out, err = h.Post(ctx, in)
			}
		case "PATCH":
			if h.Patch != nil {
				out, err = h.Patch(ctx, in)
			}
		case "DELETE":
			if h.Delete != nil {
				out, err = h.Delete(ctx)
			}
		}
	}

	// Fix up the final result based on what we know.
	if err != nil {
		// Pick a better status code if we know of one
		if errS, hasStatus := err.(restdata.ErrorStatus); hasStatus {
			status = errS.HTTPStatus()
		} else if s := restdata.StatusFor(err); s != http.StatusInternalServerError {
			status = s
		}
		if status == http.StatusNotAcceptable {
			// There is no representation to send the error in.
			out = nil
		} else {
			out = errorBody(err, status, h.now())
		}
	} else if out == nil {
		status = http.StatusNoContent
	} else if created, isCreated := out.(responseCreated); isCreated {
		status = http.StatusCreated
		if created.Location != "" {
			resp.Header().Set("Location", created.Location)
		}
		if req.Method == "HEAD" {
			out = nil
		} else {
			out = created.Body
		}
	} else {
		status = http.StatusOK
		if req.Method == "HEAD" {
			out = nil
		}
	}

	writeResponse(resp, responseType, status, out)
}

// errorBody builds the wire form of an error, stamped with the
// response status and the current time.
func errorBody(err error, status int, now time.Time) restdata.ErrorResponse {
	resp := restdata.ErrorResponse{Error: "error", Message: err.Error()}
	// Remap well-known collection errors
	resp.FromError(err)
	resp.Timestamp = now.UTC().Format(time.RFC3339)
	resp.Code = status
	return resp
}

// writeResponse serializes out in the negotiated representation.  If
// the response type is somehow not one we can produce, fall back to
// JSON with a 500 status.
func writeResponse(resp http.ResponseWriter, responseType string, status int, out interface{}) {
	responseWriters := map[string]func(){
		restdata.V1JSONMediaType: func() {
			json := &codec.JsonHandle{}
			encoder := codec.NewEncoder(resp, json)
			// A failing writer means the client is gone;
			// there is nobody left to tell.
			_ = encoder.Encode(out)
		},
		restdata.TextMediaType: func() {
			io.WriteString(resp, renderText(out))
		},
	}
	responseWriter, understood := responseWriters[typeMap[responseType]]
	if !understood {
		// We shouldn't get here, because it implies response
		// type negotiation failed...but here we are
		responseWriter = responseWriters[restdata.V1JSONMediaType]
		status = http.StatusInternalServerError
		out = restdata.ErrorResponse{Error: "error", Message: "Invalid response type " + responseType}
		responseType = restdata.V1JSONMediaType
	}

	if out != nil {
		resp.Header().Set("Content-Type", responseType)
	}
	resp.WriteHeader(status)
	if out != nil {
		responseWriter()
	}
}

// renderText produces the plain-text rendering of a response object.
func renderText(out interface{}) string {
	switch v := out.(type) {
	case restdata.ErrorResponse:
		return v.Message + "\n"
	case restdata.RecordData:
		return renderRecordText(v)
	case restdata.RecordList:
		var b strings.Builder
		for i, rec := range v.Records {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderRecordText(rec))
		}
		return b.String()
	case restdata.RecordCount:
		return fmt.Sprintf("count: %d\n", v.Count)
	case restdata.CollectionList:
		var b strings.Builder
		for _, c := range v.Collections {
			b.WriteString(c.Name + "\n")
		}
		return b.String()
	default:
		return fmt.Sprintf("%+v\n", out)
	}
}

// renderRecordText renders one record as "key: value" lines, identity
// first, remaining keys in sorted order.  Null values render empty.
func renderRecordText(rec restdata.RecordData) string {
	keys := make([]string, 0, len(rec))
	for key := range rec {
		if key != "id" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if _, hasID := rec["id"]; hasID {
		keys = append([]string{"id"}, keys...)
	}

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		if rec[key] != nil {
			fmt.Fprintf(&b, "%v", rec[key])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// negotiateResponse returns a supported MIME type for the response
// body, following the path laid out in RFC 7231 section 5.3.
func negotiateResponse(req *http.Request) (string, error) {
	accept := req.Header.Get("Accept")
	if accept == "" {
		accept = "*/*"
	}
	bestType := ""
	bestQ := 0.0
	mediaRanges := strings.Split(accept, ",")
	for _, mediaRange := range mediaRanges {
		mediaRange = strings.TrimSpace(mediaRange)
		mediaType, params, err := mime.ParseMediaType(mediaRange)
		if err != nil {
			return "", err
		}

		// What is the "q" ("quality") parameter for this type?
		// If it is less than the best known so far, skip it
		q := 1.0
		if qStr, haveQ := params["q"]; haveQ {
			q, err = strconv.ParseFloat(qStr, 64)
			if err != nil {
				return "", err
			}
			if q < 0.0 || q > 1.0 {
				return "", errBadAccept
			}
		}
		if q < bestQ {
			continue
		}

		// This is acceptable if it's listed in the type
		// map; or it's one of a couple of specific wildcards.
		// Also need to handle wildcard precedence.  So:
		if mediaType == "*/*" {
			// Doesn't override anything.
			if q > bestQ {
				bestType = mediaType
				bestQ = q
			}
		} else if mediaType == "text/*" || mediaType == "application/*" {
			// Only overrides "*/*".
			if q > bestQ || bestType == "*/*" {
				bestType = mediaType
				bestQ = q
			}
		} else if _, knownType := typeMap[mediaType]; knownType {
			// Overrides any wildcard.  We want the first one
			// at a given q to win.
			if q > bestQ || bestType == "*/*" || bestType == "text/*" || bestType == "application/*" {
				bestType = mediaType
				bestQ = q
			}
		}
		// Otherwise we don't recognize this type at all, so
		// just drop it.
		//
		// The RFC endorses honoring type parameters as being
		// "more specific" but we don't really deal with that.
	}
	// If this failed to win, return an error
	if bestQ == 0.0 {
		return "", errNotAcceptable{}
	}
	switch bestType {
	case "*/*":
		return restdata.V1JSONMediaType, nil
	case "application/*":
		return restdata.V1JSONMediaType, nil
	case "text/*":
		return restdata.TextMediaType, nil
	default:
		return bestType, nil
	}
}
