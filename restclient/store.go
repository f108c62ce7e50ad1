// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package restclient provides a collection.Store-compatible HTTP REST
// client that talks to the matching server in the "restserver"
// package.
//
// The server in github.com/vinod-kayartaya/go-collection/cmd/collectiond
// can run a compatible REST server.  Call New() with the base URL of
// that service; for instance,
//
//     s, err := restclient.New("http://localhost:5980/")
//
// The remote server declares its collections in its own
// configuration, so Collection() can only open collections the server
// already knows; the schema's field list comes from the server, not
// the caller.
package restclient

import (
	"net/url"

	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/restdata"
)

// New creates a new collection.Store interface that speaks to an
// external REST server.
func New(baseURL string) (collection.Store, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	s := &restStore{
		resource: resource{URL: parsed},
	}
	if err = s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

type restStore struct {
	resource
	Representation restdata.RootData
}

func (s *restStore) Refresh() error {
	s.Representation = restdata.RootData{}
	return s.Get(&s.Representation)
}

// Collection opens a collection the remote server was configured
// with.  The schema parameter only contributes its name; the declared
// fields are fetched from the server.  Returns ErrNoSuchCollection if
// the server does not serve a collection by that name.
func (s *restStore) Collection(schema collection.Schema) (collection.Collection, error) {
	if schema.Name == "" {
		return nil, collection.ErrNoCollectionName
	}
	short, err := s.find(schema.Name)
	if err != nil {
		return nil, err
	}
	c := &restCollection{store: s}
	c.URL, err = s.URL.Parse(short.URL)
	if err == nil {
		err = c.Refresh()
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Summarize fetches the record count of every collection the server
// serves.
func (s *restStore) Summarize() (collection.Summary, error) {
	list, err := s.list()
	if err != nil {
		return nil, err
	}
	var summary collection.Summary
	for _, short := range list.Collections {
		var full restdata.Collection
		err = s.GetFrom(short.URL, map[string]interface{}{}, &full)
		if err != nil {
			return nil, err
		}
		var count restdata.RecordCount
		err = s.GetFrom(full.CountURL, map[string]interface{}{}, &count)
		if err != nil {
			return nil, err
		}
		summary = append(summary, collection.SummaryRecord{
			Collection: short.Name,
			Count:      count.Count,
		})
	}
	return summary, nil
}

// Close releases nothing; the client is stateless between calls.
func (s *restStore) Close() error {
	return nil
}

func (s *restStore) list() (restdata.CollectionList, error) {
	resp := restdata.CollectionList{}
	err := s.GetFrom(s.Representation.CollectionsURL, map[string]interface{}{}, &resp)
	return resp, err
}

func (s *restStore) find(name string) (restdata.CollectionShort, error) {
	list, err := s.list()
	if err != nil {
		return restdata.CollectionShort{}, err
	}
	for _, short := range list.Collections {
		if short.Name == name {
			return short, nil
		}
	}
	return restdata.CollectionShort{}, collection.ErrNoSuchCollection{Name: name}
}
