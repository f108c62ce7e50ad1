// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package postgres

// This file contains extremely generic support code for PostgreSQL
// applications: withTx() to do work in a transaction that can be
// retried, scanRows() to loop over the results of a multi-row
// SELECT, and small helpers combining the two.

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/vinod-kayartaya/go-collection/collection"
)

// withTx calls some function with a database/sql transaction object.
// If f panics or returns a non-nil error, rolls the transaction
// back; otherwise commits it before returning.  Serialization
// failures rerun f in a fresh transaction.  Returns the error value
// from f, or some other error related to transaction management.
func withTx(s storable, readOnly bool, f func(*sql.Tx) error) (err error) {
	var (
		tx   *sql.Tx
		done bool
	)

	defer func() {
		if tx != nil && !done {
			err2 := tx.Rollback()
			if err == nil {
				err = err2
			}
		}
	}()

	for {
		tx, err = s.Store().db.Begin()
		if err != nil {
			return
		}

		level := "REPEATABLE READ"
		if readOnly {
			level += " READ ONLY"
		}
		_, err = tx.Exec("SET TRANSACTION ISOLATION LEVEL " + level)
		if err != nil {
			return
		}

		err = f(tx)

		if err == nil {
			err = tx.Commit()
			done = true
		}

		// Retry on a serialization error.
		if pqerr, ok := err.(*pq.Error); ok {
			if pqerr.Code == "40001" {
				err = tx.Rollback()
				if err == sql.ErrTxDone {
					err = nil
				} else if err != nil {
					return
				}
				tx = nil
				continue
			}
		}

		break
	}

	return
}

// scanRows runs an SQL query and calls a function for each row in
// the result.  The callback function should only call the Scan()
// method on the provided Rows object; this function will take care
// of advancing through the list of rows and closing the iterator as
// required.
func scanRows(rows *sql.Rows, f func() error) (err error) {
	var done bool
	defer func() {
		if !done {
			err2 := rows.Close()
			if err == nil {
				err = err2
			}
		}
	}()

	for rows.Next() {
		err = f()
		if err != nil {
			return
		}
	}
	done = true
	err = rows.Err()
	return
}

// queryParams is a query parameter list.
type queryParams []interface{}

// queryAndScan establishes a read-only transaction, runs query on it
// with params, and calls f for each row in it.  It is the common
// case of combining withTx() and scanRows().
func queryAndScan(s storable, query string, params queryParams, f func(*sql.Rows) error) error {
	return withTx(s, true, func(tx *sql.Tx) error {
		rows, err := tx.Query(query, params...)
		if err != nil {
			return err
		}
		return scanRows(rows, func() error {
			return f(rows)
		})
	})
}

// asStoreError wraps database-level failures as ErrStoreUnavailable,
// leaving the collection package's own errors untouched so callers
// can still tell a conflict from an outage.
func asStoreError(err error) error {
	switch err.(type) {
	case nil:
		return nil
	case collection.ErrNoSuchRecord, collection.ErrNoSuchCollection,
		collection.ErrMissingFields, collection.ErrBadValue,
		collection.ErrDuplicateValue, collection.ErrBadPage,
		collection.ErrStoreUnavailable:
		return err
	default:
		return collection.ErrStoreUnavailable{Err: err}
	}
}
