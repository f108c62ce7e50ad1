// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/satori/go.uuid"
	"github.com/vinod-kayartaya/go-collection/collection"
)

// pgCollection is a handle onto one collection's rows.
type pgCollection struct {
	store  *pgStore
	schema collection.Schema
	id     int
}

func (c *pgCollection) Store() *pgStore {
	return c.store
}

func (c *pgCollection) Schema() collection.Schema {
	return c.schema
}

func (c *pgCollection) List(page collection.Page) ([]collection.Record, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	var records []collection.Record
	query := "SELECT record_id, fields FROM records " +
		"WHERE collection_id=$1 ORDER BY position LIMIT $2 OFFSET $3"
	params := queryParams{c.id, page.Size, (page.Number - 1) * page.Size}
	err := queryAndScan(c.store, query, params, func(rows *sql.Rows) error {
		var recordID, fields string
		if err := rows.Scan(&recordID, &fields); err != nil {
			return err
		}
		rec, err := c.decode(recordID, fields)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, asStoreError(err)
	}
	if records == nil {
		records = []collection.Record{}
	}
	return records, nil
}

func (c *pgCollection) Get(id string) (collection.Record, error) {
	var rec collection.Record
	err := withTx(c.store, true, func(tx *sql.Tx) error {
		row := tx.QueryRow(
			"SELECT fields FROM records WHERE collection_id=$1 AND record_id=$2",
			c.id, id)
		var fields string
		err := row.Scan(&fields)
		if err == sql.ErrNoRows {
			return collection.ErrNoSuchRecord{ID: id}
		}
		if err != nil {
			return err
		}
		rec, err = c.decode(id, fields)
		return err
	})
	if err != nil {
		return nil, asStoreError(err)
	}
	return rec, nil
}

func (c *pgCollection) Create(fields map[string]interface{}) (collection.Record, error) {
	rec, err := c.schema.PrepareCreate(fields)
	if err != nil {
		return nil, err
	}

	err = withTx(c.store, false, func(tx *sql.Tx) error {
		existing, err := c.loadAll(tx)
		if err != nil {
			return err
		}
		if err := c.schema.CheckUnique(existing, rec, ""); err != nil {
			return err
		}

		var recordID string
		if c.schema.Identity == collection.SerialIdentity {
			// Bump the per-collection counter; the row lock this
			// takes also serializes concurrent creates.
			row := tx.QueryRow(
				"UPDATE collections SET next_serial=next_serial+1 "+
					"WHERE id=$1 RETURNING next_serial",
				c.id)
			var next int64
			if err := row.Scan(&next); err != nil {
				return err
			}
			serial := next - 1
			rec[collection.IDField] = serial
			recordID = strconv.FormatInt(serial, 10)
		} else {
			recordID = uuid.NewV4().String()
			rec[collection.IDField] = recordID
		}

		encoded, err := c.encode(rec)
		if err != nil {
			return err
		}
		now := c.store.clock.Now()
		_, err = tx.Exec(
			"INSERT INTO records(collection_id, record_id, fields, created_at, updated_at) "+
				"VALUES ($1, $2, $3, $4, $5)",
			c.id, recordID, encoded, now, now)
		return err
	})
	if err != nil {
		return nil, asStoreError(err)
	}
	return rec, nil
}

func (c *pgCollection) Update(id string, fields map[string]interface{}) (collection.Record, error) {
	rec, err := c.schema.PrepareUpdate(fields)
	if err != nil {
		return nil, err
	}
	err = c.writeExisting(id, func(collection.Record) (collection.Record, error) {
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	rec[collection.IDField] = idValue(c.schema, id)
	return rec, nil
}

func (c *pgCollection) Patch(id string, fields map[string]interface{}) (collection.Record, error) {
	changes, err := c.schema.PreparePatch(fields)
	if err != nil {
		return nil, err
	}
	var result collection.Record
	err = c.writeExisting(id, func(current collection.Record) (collection.Record, error) {
		rec := current.Clone()
		for k, v := range changes {
			rec[k] = v
		}
		result = rec
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	result[collection.IDField] = idValue(c.schema, id)
	return result, nil
}

// writeExisting locks the record with the given identity, derives
// its replacement via change, re-checks uniqueness against all other
// rows, and writes the single affected row back.
func (c *pgCollection) writeExisting(id string, change func(collection.Record) (collection.Record, error)) error {
	err := withTx(c.store, false, func(tx *sql.Tx) error {
		row := tx.QueryRow(
			"SELECT fields FROM records WHERE collection_id=$1 AND record_id=$2 FOR UPDATE",
			c.id, id)
		var fields string
		err := row.Scan(&fields)
		if err == sql.ErrNoRows {
			return collection.ErrNoSuchRecord{ID: id}
		}
		if err != nil {
			return err
		}
		current, err := c.decode(id, fields)
		if err != nil {
			return err
		}
		rec, err := change(current)
		if err != nil {
			return err
		}
		existing, err := c.loadAll(tx)
		if err != nil {
			return err
		}
		if err := c.schema.CheckUnique(existing, rec, id); err != nil {
			return err
		}
		encoded, err := c.encode(rec)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"UPDATE records SET fields=$1, updated_at=$2 WHERE collection_id=$3 AND record_id=$4",
			encoded, c.store.clock.Now(), c.id, id)
		return err
	})
	return asStoreError(err)
}

func (c *pgCollection) Delete(id string) error {
	err := withTx(c.store, false, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"DELETE FROM records WHERE collection_id=$1 AND record_id=$2",
			c.id, id)
		if err != nil {
			return err
		}
		count, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if count == 0 {
			return collection.ErrNoSuchRecord{ID: id}
		}
		return nil
	})
	return asStoreError(err)
}

func (c *pgCollection) Count() (int, error) {
	var count int
	err := withTx(c.store, true, func(tx *sql.Tx) error {
		row := tx.QueryRow("SELECT COUNT(*) FROM records WHERE collection_id=$1", c.id)
		return row.Scan(&count)
	})
	if err != nil {
		return 0, asStoreError(err)
	}
	return count, nil
}

// loadAll fetches every record in the collection, in insertion
// order, within an existing transaction.  The uniqueness check runs
// over this; collections in this system are small by construction.
func (c *pgCollection) loadAll(tx *sql.Tx) ([]collection.Record, error) {
	rows, err := tx.Query(
		"SELECT record_id, fields FROM records WHERE collection_id=$1 ORDER BY position",
		c.id)
	if err != nil {
		return nil, err
	}
	var records []collection.Record
	err = scanRows(rows, func() error {
		var recordID, fields string
		if err := rows.Scan(&recordID, &fields); err != nil {
			return err
		}
		rec, err := c.decode(recordID, fields)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

// encode serializes a record's declared fields (not its identity,
// which lives in its own column) as JSON.
func (c *pgCollection) encode(rec collection.Record) (string, error) {
	fields := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		if k != collection.IDField {
			fields[k] = v
		}
	}
	out, err := json.Marshal(fields)
	return string(out), err
}

// decode rebuilds a record from its row, filling never-set declared
// fields with nil so every record has the same key set.
func (c *pgCollection) decode(recordID, fields string) (collection.Record, error) {
	var loaded map[string]interface{}
	if err := json.Unmarshal([]byte(fields), &loaded); err != nil {
		return nil, err
	}
	rec := c.schema.Project(loaded)
	rec[collection.IDField] = idValue(c.schema, recordID)
	return rec, nil
}

// idValue converts the stored identity column back to its in-record
// form: an integer for serial collections, the string itself for
// token collections.
func idValue(schema collection.Schema, recordID string) interface{} {
	if schema.Identity == collection.SerialIdentity {
		if n, err := strconv.ParseInt(recordID, 10, 64); err == nil {
			return n
		}
	}
	return recordID
}
