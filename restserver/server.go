// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/mux"
	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/restdata"
	"github.com/vinod-kayartaya/go-collection/uploads"
)

// Config carries everything needed to serve a collection store.
type Config struct {
	// Store is the backing store.  Required.
	Store collection.Store

	// Schemas declares the collections to serve, in presentation
	// order.  Each is opened (and created if needed) against the
	// store when the router is built.
	Schemas []collection.Schema

	// Uploads, if non-nil, enables the photo attachment routes.
	Uploads *uploads.Store

	// Clock stamps error responses.  If nil, the wall clock
	// applies; tests inject a mock.
	Clock clock.Clock
}

// NewRouter creates a new HTTP handler that processes all collection
// requests.  All resources are under the URL path root, e.g.
// /api/customers/17.  For more control over this setup, create a
// mux.Router and call PopulateRouter instead.
func NewRouter(cfg Config) (http.Handler, error) {
	r := mux.NewRouter()
	err := PopulateRouter(r, cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// PopulateRouter adds collection routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the API under a subpath:
//
//     import "github.com/vinod-kayartaya/go-collection/memory"
//     import "github.com/gorilla/mux"
//     r := mux.NewRouter()
//     s := r.PathPrefix("/collection").Subrouter()
//     err := PopulateRouter(s, restserver.Config{
//         Store:   memory.New(),
//         Schemas: schemas,
//     })
func PopulateRouter(r *mux.Router, cfg Config) error {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	api := &restAPI{
		Store:       cfg.Store,
		Schemas:     cfg.Schemas,
		Uploads:     cfg.Uploads,
		Clock:       cfg.Clock,
		Router:      r,
		collections: make(map[string]collection.Collection, len(cfg.Schemas)),
	}
	for _, schema := range cfg.Schemas {
		coll, err := cfg.Store.Collection(schema)
		if err != nil {
			return err
		}
		api.collections[schema.Name] = coll
	}
	api.PopulateRouter(r)
	return nil
}

// restAPI holds the persistent state for the collection REST API.
type restAPI struct {
	Store   collection.Store
	Schemas []collection.Schema
	Uploads *uploads.Store
	Clock   clock.Clock
	Router  *mux.Router

	collections map[string]collection.Collection
}

// handler builds a resourceHandler bound to this API's context
// resolver and clock.
func (api *restAPI) handler(h resourceHandler) *resourceHandler {
	h.Context = api.Context
	h.Now = api.Clock.Now
	return &h
}

// PopulateRouter adds all collection URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	api.PopulateCollection(r)
	r.Path("/").Name("root").Handler(api.handler(resourceHandler{
		Representation: restdata.RootData{},
		Get:            api.RootDocument,
	}))
}

func (api *restAPI) RootDocument(ctx *context) (interface{}, error) {
	resp := restdata.RootData{}
	err := buildURLs(api.Router).
		URL(&resp.CollectionsURL, "collections").
		Template(&resp.CollectionURL, "collection", "collection").
		Error
	return resp, err
}
