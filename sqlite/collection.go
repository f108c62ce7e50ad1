// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package sqlite

import (
	"database/sql"
	"strconv"

	"github.com/satori/go.uuid"
	"github.com/vinod-kayartaya/go-collection/collection"
)

// liteCollection is a handle onto one collection's rows.
type liteCollection struct {
	store  *liteStore
	schema collection.Schema
	id     int64
}

func (c *liteCollection) Schema() collection.Schema {
	return c.schema
}

func (c *liteCollection) List(page collection.Page) ([]collection.Record, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	rows, err := c.store.db.Query(
		"SELECT record_id, fields FROM records "+
			"WHERE collection_id=? ORDER BY position LIMIT ? OFFSET ?",
		c.id, page.Size, (page.Number-1)*page.Size)
	if err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	defer rows.Close()

	records := []collection.Record{}
	for rows.Next() {
		var recordID, fields string
		if err := rows.Scan(&recordID, &fields); err != nil {
			return nil, collection.ErrStoreUnavailable{Err: err}
		}
		rec, err := decodeRecord(c.schema, recordID, fields)
		if err != nil {
			return nil, collection.ErrStoreUnavailable{Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	return records, nil
}

func (c *liteCollection) Get(id string) (collection.Record, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	return c.get(id)
}

// get expects to run within the store lock.
func (c *liteCollection) get(id string) (collection.Record, error) {
	row := c.store.db.QueryRow(
		"SELECT fields FROM records WHERE collection_id=? AND record_id=?",
		c.id, id)
	var fields string
	err := row.Scan(&fields)
	if err == sql.ErrNoRows {
		return nil, collection.ErrNoSuchRecord{ID: id}
	}
	if err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	rec, err := decodeRecord(c.schema, id, fields)
	if err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	return rec, nil
}

func (c *liteCollection) Create(fields map[string]interface{}) (collection.Record, error) {
	rec, err := c.schema.PrepareCreate(fields)
	if err != nil {
		return nil, err
	}

	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	existing, err := c.loadAll()
	if err != nil {
		return nil, err
	}
	if err := c.schema.CheckUnique(existing, rec, ""); err != nil {
		return nil, err
	}

	var recordID string
	if c.schema.Identity == collection.SerialIdentity {
		var next int64
		row := c.store.db.QueryRow("SELECT next_serial FROM collections WHERE id=?", c.id)
		if err := row.Scan(&next); err != nil {
			return nil, collection.ErrStoreUnavailable{Err: err}
		}
		if _, err := c.store.db.Exec(
			"UPDATE collections SET next_serial=? WHERE id=?", next+1, c.id); err != nil {
			return nil, collection.ErrStoreUnavailable{Err: err}
		}
		rec[collection.IDField] = next
		recordID = strconv.FormatInt(next, 10)
	} else {
		recordID = uuid.NewV4().String()
		rec[collection.IDField] = recordID
	}

	encoded, err := encodeFields(rec)
	if err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	now := c.store.clock.Now()
	_, err = c.store.db.Exec(
		"INSERT INTO records(collection_id, record_id, fields, created_at, updated_at) "+
			"VALUES (?, ?, ?, ?, ?)",
		c.id, recordID, encoded, now, now)
	if err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	return rec, nil
}

func (c *liteCollection) Update(id string, fields map[string]interface{}) (collection.Record, error) {
	rec, err := c.schema.PrepareUpdate(fields)
	if err != nil {
		return nil, err
	}

	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	if _, err := c.get(id); err != nil {
		return nil, err
	}
	if err := c.writeExisting(id, rec); err != nil {
		return nil, err
	}
	rec[collection.IDField] = idValue(c.schema, id)
	return rec, nil
}

func (c *liteCollection) Patch(id string, fields map[string]interface{}) (collection.Record, error) {
	changes, err := c.schema.PreparePatch(fields)
	if err != nil {
		return nil, err
	}

	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	current, err := c.get(id)
	if err != nil {
		return nil, err
	}
	rec := current.Clone()
	for k, v := range changes {
		rec[k] = v
	}
	if err := c.writeExisting(id, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// writeExisting re-checks uniqueness and rewrites the single
// affected row.  It expects to run within the store lock.
func (c *liteCollection) writeExisting(id string, rec collection.Record) error {
	existing, err := c.loadAll()
	if err != nil {
		return err
	}
	if err := c.schema.CheckUnique(existing, rec, id); err != nil {
		return err
	}
	encoded, err := encodeFields(rec)
	if err != nil {
		return collection.ErrStoreUnavailable{Err: err}
	}
	_, err = c.store.db.Exec(
		"UPDATE records SET fields=?, updated_at=? WHERE collection_id=? AND record_id=?",
		encoded, c.store.clock.Now(), c.id, id)
	if err != nil {
		return collection.ErrStoreUnavailable{Err: err}
	}
	return nil
}

func (c *liteCollection) Delete(id string) error {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	result, err := c.store.db.Exec(
		"DELETE FROM records WHERE collection_id=? AND record_id=?",
		c.id, id)
	if err != nil {
		return collection.ErrStoreUnavailable{Err: err}
	}
	count, err := result.RowsAffected()
	if err != nil {
		return collection.ErrStoreUnavailable{Err: err}
	}
	if count == 0 {
		return collection.ErrNoSuchRecord{ID: id}
	}
	return nil
}

func (c *liteCollection) Count() (int, error) {
	c.store.sem.Lock()
	defer c.store.sem.Unlock()

	var count int
	row := c.store.db.QueryRow("SELECT COUNT(*) FROM records WHERE collection_id=?", c.id)
	if err := row.Scan(&count); err != nil {
		return 0, collection.ErrStoreUnavailable{Err: err}
	}
	return count, nil
}

// loadAll fetches every record in the collection for the in-process
// uniqueness scan.  It expects to run within the store lock.
func (c *liteCollection) loadAll() ([]collection.Record, error) {
	rows, err := c.store.db.Query(
		"SELECT record_id, fields FROM records WHERE collection_id=? ORDER BY position",
		c.id)
	if err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	defer rows.Close()

	var records []collection.Record
	for rows.Next() {
		var recordID, fields string
		if err := rows.Scan(&recordID, &fields); err != nil {
			return nil, collection.ErrStoreUnavailable{Err: err}
		}
		rec, err := decodeRecord(c.schema, recordID, fields)
		if err != nil {
			return nil, collection.ErrStoreUnavailable{Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	return records, nil
}
