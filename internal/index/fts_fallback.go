//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; full-text search uses LIKE fallback on the documents table.
	return nil
}

func ftsInsert(_ *sql.Tx, _ DocumentRow) error {
	// Headline and body are already stored in the documents table.
	return nil
}

func ftsDelete(_ *sql.Tx, _ int) error { return nil }

func ftsDeleteArchive(_ *sql.Tx, _ string) error { return nil }

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT guid, headline, substr(body, 1, 200)
		FROM documents
		WHERE headline LIKE ? OR body LIKE ?
		ORDER BY guid
		LIMIT ?
	`, like, like, limit)
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
