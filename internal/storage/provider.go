// Package storage defines read access to the corpus directory.
package storage

import (
	"io"

	"github.com/starford/anyt/internal/models"
)

// ArchiveExt is the suffix of corpus archive files.
const ArchiveExt = ".tgz"

// Provider is the interface for corpus file access. The corpus is never
// written to.
type Provider interface {
	// List returns metadata for every archive under dir (relative to the
	// corpus root), sorted by path.
	List(dir string) ([]models.ArchiveMetadata, error)
	// Stat returns metadata for the archive at path.
	Stat(path string) (models.ArchiveMetadata, error)
	// Open opens the archive at path for reading.
	Open(path string) (io.ReadCloser, error)
}
