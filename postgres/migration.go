// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

// This file maintains the database migration code.  See
// https://github.com/rubenv/sql-migrate for details of what goes in
// here.  This runs "outside" the normal collection flow, either at
// initial startup or from an external tool.

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1-initial",
			Up: []string{
				`CREATE TABLE collections (
					id SERIAL PRIMARY KEY,
					name VARCHAR NOT NULL UNIQUE,
					next_serial BIGINT NOT NULL DEFAULT 1
				)`,
				`CREATE TABLE records (
					collection_id INTEGER NOT NULL
						REFERENCES collections(id) ON DELETE CASCADE,
					record_id VARCHAR NOT NULL,
					position BIGSERIAL,
					fields TEXT NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE,
					updated_at TIMESTAMP WITH TIME ZONE,
					PRIMARY KEY (collection_id, record_id)
				)`,
				`CREATE INDEX records_position ON records(collection_id, position)`,
			},
			Down: []string{
				`DROP TABLE records`,
				`DROP TABLE collections`,
			},
		},
	},
}

// Upgrade upgrades a database to the latest database schema version.
func Upgrade(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Up)
	return err
}

// Drop clears a database by running all of the migrations in
// reverse, ultimately resulting in dropping all of the tables.
func Drop(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Down)
	return err
}
