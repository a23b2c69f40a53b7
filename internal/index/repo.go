package index

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/anyt/internal/apperr"
	"github.com/starford/anyt/internal/models"
)

// DocumentRow represents a row in the documents table together with its
// online sections.
type DocumentRow struct {
	GUID            int
	Archive         string
	Entry           string
	Headline        string
	PublicationDate *time.Time
	Body            string
	Sections        []string
	Source          []byte
}

// SearchResult represents one search hit.
type SearchResult struct {
	GUID     int
	Headline string
	Snippet  string
}

// Sort orders accepted by ListDocuments.
const (
	SortGUID     = "guid"
	SortDate     = "date"
	SortHeadline = "headline"
)

var sortClauses = map[string]string{
	"":           "d.guid",
	SortGUID:     "d.guid",
	SortDate:     "d.publication_date DESC, d.guid",
	SortHeadline: "d.headline, d.guid",
}

// ValidSort reports whether sort is accepted by ListDocuments.
func ValidSort(sort string) bool {
	_, ok := sortClauses[sort]
	return ok
}

// ReplaceArchive replaces every document previously indexed from a.Path
// with docs and records the archive checksum, all within one transaction.
func (db *DB) ReplaceArchive(a models.Archive, docs []DocumentRow) error {
	db.wmu.Lock()
	defer db.wmu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := deleteArchiveDocs(tx, a.Path); err != nil {
		return err
	}

	docStmt, err := tx.Prepare(`
		INSERT INTO documents (guid, archive, entry, headline, publication_date, body, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(guid) DO UPDATE SET
			archive          = excluded.archive,
			entry            = excluded.entry,
			headline         = excluded.headline,
			publication_date = excluded.publication_date,
			body             = excluded.body,
			source           = excluded.source
	`)
	if err != nil {
		return fmt.Errorf("index: prepare document insert: %w", err)
	}
	defer docStmt.Close()

	secStmt, err := tx.Prepare(`INSERT OR IGNORE INTO document_sections (guid, section) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare section insert: %w", err)
	}
	defer secStmt.Close()

	for _, d := range docs {
		// A GUID seen in another archive moves here; drop its old rows.
		if _, err := tx.Exec(`DELETE FROM document_sections WHERE guid = ?`, d.GUID); err != nil {
			return fmt.Errorf("index: clear sections: %w", err)
		}
		if err := ftsDelete(tx, d.GUID); err != nil {
			return err
		}
		if _, err := docStmt.Exec(d.GUID, a.Path, d.Entry, d.Headline, nullTime(d.PublicationDate), d.Body, d.Source); err != nil {
			return fmt.Errorf("index: insert document %d: %w", d.GUID, err)
		}
		for _, s := range d.Sections {
			if s == "" {
				continue
			}
			if _, err := secStmt.Exec(d.GUID, s); err != nil {
				return fmt.Errorf("index: insert section: %w", err)
			}
		}
		if err := ftsInsert(tx, d); err != nil {
			return err
		}
	}

	indexedAt := a.IndexedAt
	if indexedAt.IsZero() {
		indexedAt = time.Now().UTC()
	}
	_, err = tx.Exec(`
		INSERT INTO archives (path, checksum, documents, indexed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum   = excluded.checksum,
			documents  = excluded.documents,
			indexed_at = excluded.indexed_at
	`, a.Path, a.Checksum, len(docs), indexedAt)
	if err != nil {
		return fmt.Errorf("index: upsert archive: %w", err)
	}

	return tx.Commit()
}

// DeleteArchive removes an archive and every document indexed from it.
func (db *DB) DeleteArchive(path string) error {
	db.wmu.Lock()
	defer db.wmu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := deleteArchiveDocs(tx, path); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM archives WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete archive: %w", err)
	}
	return tx.Commit()
}

func deleteArchiveDocs(tx *sql.Tx, archive string) error {
	if err := ftsDeleteArchive(tx, archive); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		DELETE FROM document_sections
		WHERE guid IN (SELECT guid FROM documents WHERE archive = ?)
	`, archive); err != nil {
		return fmt.Errorf("index: delete sections: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM documents WHERE archive = ?`, archive); err != nil {
		return fmt.Errorf("index: delete documents: %w", err)
	}
	return nil
}

// ArchiveChecksum returns the stored checksum for an archive, or empty string if not indexed.
func (db *DB) ArchiveChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM archives WHERE path = ?`, path).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: archive checksum: %w", err)
	}
	return cs, nil
}

// ArchiveChecksums returns path → checksum for every indexed archive.
func (db *DB) ArchiveChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM archives`)
	if err != nil {
		return nil, fmt.Errorf("index: archive checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Archives returns every indexed archive ordered by path.
func (db *DB) Archives() ([]models.Archive, error) {
	rows, err := db.conn.Query(`SELECT path, checksum, documents, indexed_at FROM archives ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("index: archives: %w", err)
	}
	defer rows.Close()

	var out []models.Archive
	for rows.Next() {
		var a models.Archive
		if err := rows.Scan(&a.Path, &a.Checksum, &a.Documents, &a.IndexedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetDocument returns the full row for guid, including its raw source.
func (db *DB) GetDocument(guid int) (*DocumentRow, error) {
	var (
		d   DocumentRow
		pub sql.NullTime
	)
	err := db.conn.QueryRow(`
		SELECT guid, archive, entry, headline, publication_date, body, source
		FROM documents WHERE guid = ?
	`, guid).Scan(&d.GUID, &d.Archive, &d.Entry, &d.Headline, &pub, &d.Body, &d.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index: document %d: %w", guid, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("index: get document: %w", err)
	}
	d.PublicationDate = timePtr(pub)

	sections, err := db.sectionsOf(guid)
	if err != nil {
		return nil, err
	}
	d.Sections = sections
	return &d, nil
}

func (db *DB) sectionsOf(guid int) ([]string, error) {
	rows, err := db.conn.Query(`SELECT section FROM document_sections WHERE guid = ? ORDER BY rowid`, guid)
	if err != nil {
		return nil, fmt.Errorf("index: sections of %d: %w", guid, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListDocuments returns a page of document summaries (no body or source)
// and the total number of matching documents. section, when non-empty,
// restricts results to documents filed under that online section.
func (db *DB) ListDocuments(limit, offset int, section, sort string) ([]DocumentRow, int, error) {
	order, ok := sortClauses[sort]
	if !ok {
		return nil, 0, fmt.Errorf("index: sort %q: %w", sort, apperr.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	from := `FROM documents d`
	var args []any
	if section != "" {
		from += ` JOIN document_sections s ON s.guid = d.guid AND s.section = ?`
		args = append(args, section)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count documents: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT d.guid, d.archive, d.entry, d.headline, d.publication_date `+from+`
		ORDER BY `+order+`
		LIMIT ? OFFSET ?
	`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var (
			d   DocumentRow
			pub sql.NullTime
		)
		if err := rows.Scan(&d.GUID, &d.Archive, &d.Entry, &d.Headline, &pub); err != nil {
			return nil, 0, err
		}
		d.PublicationDate = timePtr(pub)
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// Sections returns the online section facet counts, most populated first.
func (db *DB) Sections() ([]models.SectionCount, error) {
	rows, err := db.conn.Query(`
		SELECT section, count(*) AS n
		FROM document_sections
		GROUP BY section
		ORDER BY n DESC, section
	`)
	if err != nil {
		return nil, fmt.Errorf("index: sections: %w", err)
	}
	defer rows.Close()

	var out []models.SectionCount
	for rows.Next() {
		var s models.SectionCount
		if err := rows.Scan(&s.Section, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
