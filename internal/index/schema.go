// Package index provides SQLite-backed corpus indexing with optional FTS5 full-text search.
package index

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS archives (
	path       TEXT PRIMARY KEY,
	checksum   TEXT NOT NULL DEFAULT '',
	documents  INTEGER NOT NULL DEFAULT 0,
	indexed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS documents (
	guid             INTEGER PRIMARY KEY,
	archive          TEXT NOT NULL,
	entry            TEXT NOT NULL DEFAULT '',
	headline         TEXT NOT NULL DEFAULT '',
	publication_date DATETIME,
	body             TEXT NOT NULL DEFAULT '',
	source           BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS document_sections (
	guid    INTEGER NOT NULL,
	section TEXT NOT NULL,
	UNIQUE(guid, section)
);

CREATE INDEX IF NOT EXISTS idx_documents_archive ON documents(archive);
CREATE INDEX IF NOT EXISTS idx_documents_pubdate ON documents(publication_date);
CREATE INDEX IF NOT EXISTS idx_sections_section ON document_sections(section);
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
	// wmu serialises write transactions so concurrent archive indexing does
	// not contend on the SQLite write lock.
	wmu sync.Mutex
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
