// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package sqlite

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1-initial",
			Up: []string{
				`CREATE TABLE collections (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL UNIQUE,
					next_serial INTEGER NOT NULL DEFAULT 1
				)`,
				`CREATE TABLE records (
					collection_id INTEGER NOT NULL
						REFERENCES collections(id) ON DELETE CASCADE,
					record_id TEXT NOT NULL,
					position INTEGER PRIMARY KEY AUTOINCREMENT,
					fields TEXT NOT NULL,
					created_at TIMESTAMP,
					updated_at TIMESTAMP,
					UNIQUE (collection_id, record_id)
				)`,
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
	_, err := migrate.Exec(db, "sqlite3", migrationSource, migrate.Up)
	return err
}

// Drop clears a database by running all of the migrations in
// reverse, ultimately resulting in dropping all of the tables.
func Drop(db *sql.DB) error {
	_, err := migrate.Exec(db, "sqlite3", migrationSource, migrate.Down)
	return err
}
