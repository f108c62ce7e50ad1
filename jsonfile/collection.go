// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package jsonfile

import (
	"github.com/satori/go.uuid"
	"github.com/vinod-kayartaya/go-collection/collection"
)

// fileCollection is one collection within the JSON store.  All state
// lives in the store's snapshot; the handle only binds a schema to
// it.
type fileCollection struct {
	store  *fileStore
	schema collection.Schema
	data   *colData
}

func (c *fileCollection) Schema() collection.Schema {
	return c.schema
}

func (c *fileCollection) List(page collection.Page) ([]collection.Record, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	lo, hi := page.Bounds(len(c.data.Records))
	out := make([]collection.Record, 0, hi-lo)
	for _, rec := range c.data.Records[lo:hi] {
		out = append(out, rec.Clone())
	}
	return out, nil
}

func (c *fileCollection) Get(id string) (collection.Record, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	if i := c.find(id); i >= 0 {
		return c.data.Records[i].Clone(), nil
	}
	return nil, collection.ErrNoSuchRecord{ID: id}
}

func (c *fileCollection) Create(fields map[string]interface{}) (collection.Record, error) {
	rec, err := c.schema.PrepareCreate(fields)
	if err != nil {
		return nil, err
	}

	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	if err := c.schema.CheckUnique(c.data.Records, rec, ""); err != nil {
		return nil, err
	}

	// Stage the mutation, flush, and only then let it be seen, so
	// a failed flush leaves memory matching the file.
	if c.schema.Identity == collection.SerialIdentity {
		rec[collection.IDField] = c.data.NextSerial
	} else {
		rec[collection.IDField] = uuid.NewV4().String()
	}
	saved := *c.data
	c.data.Records = append(c.data.Records, rec)
	if c.schema.Identity == collection.SerialIdentity {
		c.data.NextSerial++
	}
	if err := c.store.flush(); err != nil {
		*c.data = saved
		return nil, err
	}
	return rec.Clone(), nil
}

func (c *fileCollection) Update(id string, fields map[string]interface{}) (collection.Record, error) {
	rec, err := c.schema.PrepareUpdate(fields)
	if err != nil {
		return nil, err
	}

	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	i := c.find(id)
	if i < 0 {
		return nil, collection.ErrNoSuchRecord{ID: id}
	}
	if err := c.schema.CheckUnique(c.data.Records, rec, id); err != nil {
		return nil, err
	}
	old := c.data.Records[i]
	rec[collection.IDField] = old[collection.IDField]
	c.data.Records[i] = rec
	if err := c.store.flush(); err != nil {
		c.data.Records[i] = old
		return nil, err
	}
	return rec.Clone(), nil
}

func (c *fileCollection) Patch(id string, fields map[string]interface{}) (collection.Record, error) {
	changes, err := c.schema.PreparePatch(fields)
	if err != nil {
		return nil, err
	}

	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	i := c.find(id)
	if i < 0 {
		return nil, collection.ErrNoSuchRecord{ID: id}
	}
	if err := c.schema.CheckUnique(c.data.Records, changes, id); err != nil {
		return nil, err
	}
	old := c.data.Records[i]
	rec := old.Clone()
	for k, v := range changes {
		rec[k] = v
	}
	c.data.Records[i] = rec
	if err := c.store.flush(); err != nil {
		c.data.Records[i] = old
		return nil, err
	}
	return rec.Clone(), nil
}

func (c *fileCollection) Delete(id string) error {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	i := c.find(id)
	if i < 0 {
		return collection.ErrNoSuchRecord{ID: id}
	}
	old := c.data.Records
	c.data.Records = append(append([]collection.Record{}, old[:i]...), old[i+1:]...)
	if err := c.store.flush(); err != nil {
		c.data.Records = old
		return err
	}
	return nil
}

func (c *fileCollection) Count() (int, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	return len(c.data.Records), nil
}

// find returns the index of the record with the given identity, or
// -1.  It expects to run within the store lock.
func (c *fileCollection) find(id string) int {
	for i, rec := range c.data.Records {
		if rec.ID() == id {
			return i
		}
	}
	return -1
}
