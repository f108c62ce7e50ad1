// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"github.com/satori/go.uuid"
	"github.com/vinod-kayartaya/go-collection/collection"
)

// memCollection is one record collection held entirely in memory.
type memCollection struct {
	store      *memStore
	schema     collection.Schema
	records    []collection.Record
	nextSerial int64
}

func (c *memCollection) Store() *memStore {
	return c.store
}

func (c *memCollection) Schema() collection.Schema {
	return c.schema
}

func (c *memCollection) List(page collection.Page) ([]collection.Record, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	globalLock(c)
	defer globalUnlock(c)

	lo, hi := page.Bounds(len(c.records))
	out := make([]collection.Record, 0, hi-lo)
	for _, rec := range c.records[lo:hi] {
		out = append(out, rec.Clone())
	}
	return out, nil
}

func (c *memCollection) Get(id string) (collection.Record, error) {
	globalLock(c)
	defer globalUnlock(c)

	if i := c.find(id); i >= 0 {
		return c.records[i].Clone(), nil
	}
	return nil, collection.ErrNoSuchRecord{ID: id}
}

func (c *memCollection) Create(fields map[string]interface{}) (collection.Record, error) {
	rec, err := c.schema.PrepareCreate(fields)
	if err != nil {
		return nil, err
	}

	globalLock(c)
	defer globalUnlock(c)

	// Uniqueness and the append happen under the same lock, so two
	// concurrent creates cannot both pass the check.
	if err := c.schema.CheckUnique(c.records, rec, ""); err != nil {
		return nil, err
	}
	rec[collection.IDField] = c.assignID()
	c.records = append(c.records, rec)
	return rec.Clone(), nil
}

func (c *memCollection) Update(id string, fields map[string]interface{}) (collection.Record, error) {
	rec, err := c.schema.PrepareUpdate(fields)
	if err != nil {
		return nil, err
	}

	globalLock(c)
	defer globalUnlock(c)

	i := c.find(id)
	if i < 0 {
		return nil, collection.ErrNoSuchRecord{ID: id}
	}
	if err := c.schema.CheckUnique(c.records, rec, id); err != nil {
		return nil, err
	}
	rec[collection.IDField] = c.records[i][collection.IDField]
	c.records[i] = rec
	return rec.Clone(), nil
}

func (c *memCollection) Patch(id string, fields map[string]interface{}) (collection.Record, error) {
	changes, err := c.schema.PreparePatch(fields)
	if err != nil {
		return nil, err
	}

	globalLock(c)
	defer globalUnlock(c)

	i := c.find(id)
	if i < 0 {
		return nil, collection.ErrNoSuchRecord{ID: id}
	}
	if err := c.schema.CheckUnique(c.records, changes, id); err != nil {
		return nil, err
	}
	rec := c.records[i].Clone()
	for k, v := range changes {
		rec[k] = v
	}
	c.records[i] = rec
	return rec.Clone(), nil
}

func (c *memCollection) Delete(id string) error {
	globalLock(c)
	defer globalUnlock(c)

	i := c.find(id)
	if i < 0 {
		return collection.ErrNoSuchRecord{ID: id}
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	return nil
}

func (c *memCollection) Count() (int, error) {
	globalLock(c)
	defer globalUnlock(c)

	return len(c.records), nil
}

// find returns the index of the record with the given identity, or
// -1.  It expects to run within the global lock.
func (c *memCollection) find(id string) int {
	for i, rec := range c.records {
		if rec.ID() == id {
			return i
		}
	}
	return -1
}

// assignID produces a fresh identity.  The serial counter only ever
// moves forward, so a deleted record's identity is never handed out
// again.  It expects to run within the global lock.
func (c *memCollection) assignID() interface{} {
	if c.schema.Identity == collection.SerialIdentity {
		id := c.nextSerial
		c.nextSerial++
		return id
	}
	return uuid.NewV4().String()
}
