package index

import "github.com/starford/anyt/internal/models"

// DocumentIndex defines the interface for corpus indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type DocumentIndex interface {
	ReplaceArchive(a models.Archive, docs []DocumentRow) error
	DeleteArchive(path string) error
	ArchiveChecksum(path string) (string, error)
	ArchiveChecksums() (map[string]string, error)
	GetDocument(guid int) (*DocumentRow, error)
	ListDocuments(limit, offset int, section, sort string) ([]DocumentRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Sections() ([]models.SectionCount, error)
	Archives() ([]models.Archive, error)
	Close() error
}

// Verify *DB satisfies DocumentIndex at compile time.
var _ DocumentIndex = (*DB)(nil)
