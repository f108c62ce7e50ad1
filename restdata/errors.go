// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/vinod-kayartaya/go-collection/collection"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound is a wrapper error that indicates that, due to the
// embedded error, a REST service should return a 404 Not Found error.
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// ErrUnauthorized is returned when a request is missing or carries an
// unrecognized bearer token, on servers configured to require one.
type ErrUnauthorized struct{}

func (e ErrUnauthorized) Error() string {
	return "missing or invalid bearer token"
}

// HTTPStatus returns a fixed 401 Unauthorized HTTP status code.
func (e ErrUnauthorized) HTTPStatus() int {
	return http.StatusUnauthorized
}

// ErrTooManyRequests is returned when a client exceeds the server's
// configured request rate.
type ErrTooManyRequests struct{}

func (e ErrTooManyRequests) Error() string {
	return "rate limit exceeded"
}

// HTTPStatus returns a fixed 429 Too Many Requests HTTP status code.
func (e ErrTooManyRequests) HTTPStatus() int {
	return http.StatusTooManyRequests
}

// StatusFor maps an error to the HTTP status code a REST service
// should return for it.  Errors implementing ErrorStatus answer for
// themselves; the well-known collection errors get their conventional
// codes; everything else is a 500 Internal Server Error.
func StatusFor(err error) int {
	if errS, hasStatus := err.(ErrorStatus); hasStatus {
		return errS.HTTPStatus()
	}
	switch err.(type) {
	case collection.ErrNoSuchCollection, collection.ErrNoSuchRecord:
		return http.StatusNotFound
	case collection.ErrMissingFields, collection.ErrBadValue, collection.ErrBadPage:
		return http.StatusBadRequest
	case collection.ErrDuplicateValue:
		return http.StatusConflict
	}
	if err == collection.ErrNoCollectionName {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// FromError populates an ErrorResponse to fill in its fields based
// on an error value.  This remaps the well-known collection errors
// to specific e.Error codes.
func (e *ErrorResponse) FromError(err error) {
	if err == collection.ErrNoCollectionName {
		e.Error = "ErrNoCollectionName"
	}
	switch et := err.(type) {
	case collection.ErrNoSuchCollection:
		e.Error = "ErrNoSuchCollection"
		e.Value = et.Name
	case collection.ErrNoSuchRecord:
		e.Error = "ErrNoSuchRecord"
		e.Value = et.ID
	case collection.ErrMissingFields:
		e.Error = "ErrMissingFields"
		e.Fields = et.Fields
	case collection.ErrBadValue:
		e.Error = "ErrBadValue"
		e.Field = et.Field
		e.Value = et.Reason
	case collection.ErrDuplicateValue:
		e.Error = "ErrDuplicateValue"
		e.Field = et.Field
		e.Value = fmt.Sprintf("%v", et.Value)
	case collection.ErrBadPage:
		e.Error = "ErrBadPage"
		e.Value = et.Reason
	case collection.ErrStoreUnavailable:
		e.Error = "ErrStoreUnavailable"
	case ErrUnauthorized:
		e.Error = "ErrUnauthorized"
	case ErrTooManyRequests:
		e.Error = "ErrTooManyRequests"
	case ErrNotFound:
		// Discard this wrapper and report the embedded error
		e.FromError(et.Err)
	case ErrBadRequest:
		e.FromError(et.Err)
	}
}

// ToError converts e back to a collection error, if that is possible.
// If not, returns a plain error with e.Message text.
func (e *ErrorResponse) ToError() error {
	switch e.Error {
	case "ErrNoCollectionName":
		return collection.ErrNoCollectionName
	case "ErrNoSuchCollection":
		return collection.ErrNoSuchCollection{Name: e.Value}
	case "ErrNoSuchRecord":
		return collection.ErrNoSuchRecord{ID: e.Value}
	case "ErrMissingFields":
		fields := e.Fields
		if len(fields) == 0 && e.Value != "" {
			fields = strings.Fields(e.Value)
		}
		return collection.ErrMissingFields{Fields: fields}
	case "ErrBadValue":
		return collection.ErrBadValue{Field: e.Field, Reason: e.Value}
	case "ErrDuplicateValue":
		return collection.ErrDuplicateValue{Field: e.Field, Value: e.Value}
	case "ErrBadPage":
		return collection.ErrBadPage{Reason: e.Value}
	case "ErrUnauthorized":
		return ErrUnauthorized{}
	case "ErrTooManyRequests":
		return ErrTooManyRequests{}
	default:
		return errors.New(e.Message)
	}
}

// FromPanic populates an error response based on a panic.  Typical use
// is:
//
//     defer func() {
//         if obj := recover(); obj != nil {
//             resp := restdata.ErrorResponse{}
//             resp.FromPanic(obj)
//             // write resp out as makes sense
//         }
//    }
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Error = "panic"
	if recoveredError, isError := obj.(error); isError {
		e.Message = recoveredError.Error()
	} else {
		e.Message = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Stack = string(stack[:len])
}
