//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			guid UNINDEXED,
			headline,
			body,
			sections,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsInsert(tx *sql.Tx, d DocumentRow) error {
	_, err := tx.Exec(`INSERT INTO documents_fts (guid, headline, body, sections) VALUES (?, ?, ?, ?)`,
		d.GUID, d.Headline, d.Body, strings.Join(d.Sections, " "))
	if err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, guid int) error {
	if _, err := tx.Exec(`DELETE FROM documents_fts WHERE guid = ?`, guid); err != nil {
		return fmt.Errorf("index: delete fts: %w", err)
	}
	return nil
}

func ftsDeleteArchive(tx *sql.Tx, archive string) error {
	_, err := tx.Exec(`
		DELETE FROM documents_fts
		WHERE guid IN (SELECT guid FROM documents WHERE archive = ?)
	`, archive)
	if err != nil {
		return fmt.Errorf("index: delete archive fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 full-text search and returns matching results with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	rows, err := db.conn.Query(`
		SELECT guid,
		       headline,
		       snippet(documents_fts, 2, '<b>', '</b>', '...', 64)
		FROM documents_fts
		WHERE documents_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.GUID, &r.Headline, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
