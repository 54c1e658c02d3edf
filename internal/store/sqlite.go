// Package store provides SQLite-backed persistence for habits and dailies.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS habits (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	notes           TEXT NOT NULL DEFAULT '',
	positive        INTEGER NOT NULL DEFAULT 0,
	negative        INTEGER NOT NULL DEFAULT 0,
	difficulty      TEXT NOT NULL DEFAULT 'medium',
	counter         INTEGER NOT NULL DEFAULT 0,
	streak          INTEGER NOT NULL DEFAULT 0,
	dates_completed TEXT NOT NULL DEFAULT '[]',
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_habits_created_at ON habits(created_at);
CREATE INDEX IF NOT EXISTS idx_habits_difficulty ON habits(difficulty);

CREATE TABLE IF NOT EXISTS dailies (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	notes        TEXT NOT NULL DEFAULT '',
	difficulty   TEXT NOT NULL DEFAULT 'medium',
	days         TEXT NOT NULL DEFAULT '{}',
	completed_on TEXT NOT NULL DEFAULT '',
	streak       INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_dailies_created_at ON dailies(created_at);
`

// DB wraps a sql.DB with store-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Ping verifies the underlying connection is still usable.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
