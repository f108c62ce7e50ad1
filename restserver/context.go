// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/restdata"
)

// errUnmarshal is returned if the put/post contract is violated and
// a handler function is passed the wrong type.
var errUnmarshal = restdata.ErrBadRequest{
	Err: errors.New("Invalid input format"),
}

// context holds all of the information and objects that can be
// extracted from URL parameters.
type context struct {
	// Collection is the collection named in the URL, if any.
	Collection collection.Collection

	// RecordID is the decoded record identity from the URL, if
	// any.  Existence is not checked here; each operation resolves
	// it against the collection itself.
	RecordID string

	QueryParams url.Values
}

func (api *restAPI) Context(req *http.Request) (ctx *context, err error) {
	ctx = &context{}
	ctx.QueryParams = req.URL.Query()
	vars := mux.Vars(req)

	var present bool
	var name, id string

	if name, present = vars["collection"]; present && err == nil {
		name, err = restdata.MaybeDecodeName(name)
		if err == nil {
			var known bool
			ctx.Collection, known = api.collections[name]
			if !known {
				err = collection.ErrNoSuchCollection{Name: name}
			}
		}
	}

	if id, present = vars["id"]; present && err == nil {
		ctx.RecordID, err = restdata.MaybeDecodeName(id)
	}

	return
}

// Page builds page parameters from the "page" and "size" query
// parameters.  Absent parameters take the defaults; non-numeric or
// non-positive values are rejected.
func (ctx *context) Page() (collection.Page, error) {
	page := collection.DefaultPage
	var err error
	if v := ctx.QueryParams.Get("page"); v != "" {
		page.Number, err = strconv.Atoi(v)
		if err != nil {
			return page, collection.ErrBadPage{Reason: "page/size must be integers"}
		}
	}
	if v := ctx.QueryParams.Get("size"); v != "" {
		page.Size, err = strconv.Atoi(v)
		if err != nil {
			return page, collection.ErrBadPage{Reason: "page/size must be integers"}
		}
	}
	return page, page.Validate()
}
