// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"strconv"

	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/restdata"
)

type restCollection struct {
	resource
	store          *restStore
	Representation restdata.Collection
}

func (c *restCollection) Refresh() error {
	c.Representation = restdata.Collection{}
	return c.resource.Get(&c.Representation)
}

// Schema reconstructs the collection's schema from the server's
// representation.  Server-only settings, such as email
// deliverability checks, do not travel over the wire and always read
// as their zero values here.
func (c *restCollection) Schema() collection.Schema {
	schema := collection.Schema{
		Name:     c.Representation.Name,
		Identity: c.Representation.Identity,
	}
	for _, fd := range c.Representation.Fields {
		schema.Fields = append(schema.Fields, collection.Field{
			Name:     fd.Name,
			Kind:     fd.Kind,
			Required: fd.Required,
			Unique:   fd.Unique,
			Format:   fd.Format,
		})
	}
	return schema
}

func (c *restCollection) List(page collection.Page) ([]collection.Record, error) {
	var resp restdata.RecordList
	err := c.GetFrom(c.Representation.RecordsURL+"{?page,size}", map[string]interface{}{
		"page": strconv.Itoa(page.Number),
		"size": strconv.Itoa(page.Size),
	}, &resp)
	if err != nil {
		return nil, err
	}
	records := make([]collection.Record, 0, len(resp.Records))
	for _, rd := range resp.Records {
		records = append(records, collection.Record(rd))
	}
	return records, nil
}

func (c *restCollection) record(id string) map[string]interface{} {
	return map[string]interface{}{"id": id}
}

// Get retrieves one record by identity.  It shadows the embedded
// resource's own Get; use Refresh to re-fetch the collection
// representation itself.
func (c *restCollection) Get(id string) (collection.Record, error) {
	var resp restdata.RecordData
	err := c.GetFrom(c.Representation.RecordURL, c.record(id), &resp)
	if err != nil {
		return nil, err
	}
	return collection.Record(resp), nil
}

func (c *restCollection) Create(fields map[string]interface{}) (collection.Record, error) {
	var resp restdata.RecordData
	err := c.PostTo(c.Representation.RecordsURL, map[string]interface{}{},
		restdata.RecordData(fields), &resp)
	if err != nil {
		return nil, err
	}
	return collection.Record(resp), nil
}

func (c *restCollection) Update(id string, fields map[string]interface{}) (collection.Record, error) {
	var resp restdata.RecordData
	err := c.PutTo(c.Representation.RecordURL, c.record(id),
		restdata.RecordData(fields), &resp)
	if err != nil {
		return nil, err
	}
	return collection.Record(resp), nil
}

func (c *restCollection) Patch(id string, fields map[string]interface{}) (collection.Record, error) {
	var resp restdata.RecordData
	err := c.PatchTo(c.Representation.RecordURL, c.record(id),
		restdata.RecordData(fields), &resp)
	if err != nil {
		return nil, err
	}
	return collection.Record(resp), nil
}

func (c *restCollection) Delete(id string) error {
	return c.DeleteAt(c.Representation.RecordURL, c.record(id), nil)
}

func (c *restCollection) Count() (int, error) {
	var resp restdata.RecordCount
	err := c.GetFrom(c.Representation.CountURL, map[string]interface{}{}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}
