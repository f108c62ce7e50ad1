// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/gorilla/mux"
	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/restdata"
)

func (api *restAPI) fillCollectionShort(schema collection.Schema, summary *restdata.CollectionShort) error {
	summary.Name = schema.Name
	return buildURLs(api.Router, "collection", summary.Name).
		URL(&summary.URL, "collectionSchema").
		Error
}

func (api *restAPI) fillCollection(schema collection.Schema, result *restdata.Collection) error {
	err := api.fillCollectionShort(schema, &result.CollectionShort)
	if err == nil {
		result.Identity = schema.Identity
		result.Fields = restdata.FieldsOf(schema)
		b := buildURLs(api.Router, "collection", result.Name).
			URL(&result.RecordsURL, "collection").
			Template(&result.RecordURL, "record", "id").
			URL(&result.CountURL, "recordCount")
		if api.Uploads != nil {
			b = b.Template(&result.PhotoURL, "photo", "id")
		}
		err = b.Error
	}
	return err
}

// CollectionList lists the collections this server was configured
// with.
func (api *restAPI) CollectionList(ctx *context) (interface{}, error) {
	result := restdata.CollectionList{
		Collections: make([]restdata.CollectionShort, 0, len(api.Schemas)),
	}
	for _, schema := range api.Schemas {
		summary := restdata.CollectionShort{}
		err := api.fillCollectionShort(schema, &summary)
		if err != nil {
			return nil, err
		}
		result.Collections = append(result.Collections, summary)
	}
	return result, nil
}

// CollectionSchemaGet returns the full description of one collection:
// its declared fields, identity kind, and resource URLs.
func (api *restAPI) CollectionSchemaGet(ctx *context) (interface{}, error) {
	result := restdata.Collection{}
	err := api.fillCollection(ctx.Collection.Schema(), &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordCountGet returns the number of records in one collection.
func (api *restAPI) RecordCountGet(ctx *context) (interface{}, error) {
	n, err := ctx.Collection.Count()
	if err != nil {
		return nil, err
	}
	return restdata.RecordCount{Count: n}, nil
}

// PopulateCollection adds collection-specific routes to a router.
// r should be rooted at the root of the URL tree, e.g. "/".
func (api *restAPI) PopulateCollection(r *mux.Router) {
	r.Path("/api").Name("collections").Handler(api.handler(resourceHandler{
		Representation: restdata.CollectionShort{},
		Get:            api.CollectionList,
	}))
	r.Path("/api/{collection}").Name("collection").Handler(api.handler(resourceHandler{
		Representation: restdata.RecordData{},
		Get:            api.RecordList,
		Post:           api.RecordPost,
	}))
	// Fixed path segments must register ahead of the {id} match.
	r.Path("/api/{collection}/schema").Name("collectionSchema").Handler(api.handler(resourceHandler{
		Representation: restdata.Collection{},
		Get:            api.CollectionSchemaGet,
	}))
	r.Path("/api/{collection}/count").Name("recordCount").Handler(api.handler(resourceHandler{
		Representation: restdata.RecordCount{},
		Get:            api.RecordCountGet,
	}))
	r.Path("/api/{collection}/{id}").Name("record").Handler(api.handler(resourceHandler{
		Representation: restdata.RecordData{},
		Get:            api.RecordGet,
		Put:            api.RecordPut,
		Patch:          api.RecordPatch,
		Delete:         api.RecordDelete,
	}))
	if api.Uploads != nil {
		r.Path("/api/{collection}/{id}/photo").Name("photo").
			Handler(api.photoHandler())
	}
}
