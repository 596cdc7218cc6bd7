// Package store mirrors the working set of plays into SQLite so that
// rankings and paging can be answered with SQL.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// InMemory is the dbPath for a store that lives only as long as the process.
const InMemory = ":memory:"

const createTables = `
CREATE TABLE IF NOT EXISTS Artist (
  name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS Track (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  artist TEXT,
  name TEXT,
  uri TEXT,
  FOREIGN KEY (artist) REFERENCES Artist(name),
  UNIQUE (artist, name)
);

CREATE TABLE IF NOT EXISTS Play (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  track INTEGER,
  ms_played INTEGER,
  ts INTEGER,
  FOREIGN KEY (track) REFERENCES Track(id)
);

CREATE INDEX IF NOT EXISTS PlayTs ON Play (ts);
`

type Store struct {
	db  *sql.DB
	loc *time.Location
}

// New opens the database at dbPath. Timestamps read back from the store are
// expressed in loc.
func New(dbPath string, loc *time.Location) (*Store, error) {
	if dbPath == "" {
		dbPath = InMemory
	}
	if loc == nil {
		loc = time.Local
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every pooled connection to :memory: would get its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTables); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db, loc: loc}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
