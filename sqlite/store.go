// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package sqlite provides a collection Store backed by an embedded
// SQLite database.  It uses the same two-table layout as the
// postgres backend: one row per collection, one row per record, with
// record fields JSON-encoded in a text column.  SQLite only ever has
// a single writer, so mutations additionally serialize on a
// process-level mutex rather than relying on transaction retries.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/vinod-kayartaya/go-collection/collection"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// New opens (or creates) the SQLite store at path.  The path may be
// ":memory:" for a throwaway in-memory database.
func New(path string) (collection.Store, error) {
	return NewWithClock(path, clock.New())
}

// NewWithClock opens the SQLite store at path with an explicit time
// source.  Most application code should call New(); this entry point
// is intended for tests that need to inject a mock time source.
func NewWithClock(path string, clk clock.Clock) (collection.Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := Upgrade(db); err != nil {
		db.Close()
		return nil, err
	}
	return &liteStore{db: db, clock: clk}, nil
}

type liteStore struct {
	db    *sql.DB
	clock clock.Clock
	sem   sync.Mutex
}

func (s *liteStore) Collection(schema collection.Schema) (collection.Collection, error) {
	if schema.Name == "" {
		return nil, collection.ErrNoCollectionName
	}

	s.sem.Lock()
	defer s.sem.Unlock()

	var id int64
	row := s.db.QueryRow("SELECT id FROM collections WHERE name=?", schema.Name)
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		var result sql.Result
		result, err = s.db.Exec("INSERT INTO collections(name, next_serial) VALUES (?, 1)", schema.Name)
		if err == nil {
			id, err = result.LastInsertId()
		}
	}
	if err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	return &liteCollection{store: s, schema: schema, id: id}, nil
}

func (s *liteStore) Summarize() (collection.Summary, error) {
	s.sem.Lock()
	defer s.sem.Unlock()

	rows, err := s.db.Query(
		"SELECT c.name, COUNT(r.record_id) " +
			"FROM collections c LEFT OUTER JOIN records r ON c.id=r.collection_id " +
			"GROUP BY c.name ORDER BY c.name")
	if err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	defer rows.Close()

	var summary collection.Summary
	for rows.Next() {
		var record collection.SummaryRecord
		if err := rows.Scan(&record.Collection, &record.Count); err != nil {
			return nil, collection.ErrStoreUnavailable{Err: err}
		}
		summary = append(summary, record)
	}
	if err := rows.Err(); err != nil {
		return nil, collection.ErrStoreUnavailable{Err: err}
	}
	return summary, nil
}

func (s *liteStore) Close() error {
	return s.db.Close()
}

// encodeFields serializes a record's declared fields, leaving out
// the identity which lives in its own column.
func encodeFields(rec collection.Record) (string, error) {
	fields := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		if k != collection.IDField {
			fields[k] = v
		}
	}
	out, err := json.Marshal(fields)
	return string(out), err
}

// decodeRecord rebuilds a record from its row.
func decodeRecord(schema collection.Schema, recordID, fields string) (collection.Record, error) {
	var loaded map[string]interface{}
	if err := json.Unmarshal([]byte(fields), &loaded); err != nil {
		return nil, err
	}
	rec := schema.Project(loaded)
	rec[collection.IDField] = idValue(schema, recordID)
	return rec, nil
}

func idValue(schema collection.Schema, recordID string) interface{} {
	if schema.Identity == collection.SerialIdentity {
		if n, err := strconv.ParseInt(recordID, 10, 64); err == nil {
			return n
		}
	}
	return recordID
}
