package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/starford/anyt/internal/checksum"
	"github.com/starford/anyt/internal/models"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to the corpus directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute corpus directory.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the corpus root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	abs, err := filepath.Abs(filepath.Join(f.root, cleaned))
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("storage: path escapes corpus root: %s", rel)
	}
	return abs, nil
}

// List walks dir (relative to root) and returns metadata for every archive.
// Checksums are computed by streaming each file.
func (f *FS) List(dir string) ([]models.ArchiveMetadata, error) {
	base, err := f.safePath(dir)
	if err != nil {
		return nil, err
	}
	var out []models.ArchiveMetadata
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ArchiveExt) {
			return nil
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}
		meta, err := f.stat(p, rel)
		if err != nil {
			return err
		}
		out = append(out, meta)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Stat returns metadata for a single archive.
func (f *FS) Stat(path string) (models.ArchiveMetadata, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return models.ArchiveMetadata{}, err
	}
	meta, err := f.stat(abs, filepath.Clean(path))
	if err != nil {
		return models.ArchiveMetadata{}, fmt.Errorf("storage: stat %s: %w", path, err)
	}
	return meta, nil
}

func (f *FS) stat(abs, rel string) (models.ArchiveMetadata, error) {
	file, err := os.Open(abs)
	if err != nil {
		return models.ArchiveMetadata{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return models.ArchiveMetadata{}, err
	}
	sum, _, err := checksum.SumReader(file)
	if err != nil {
		return models.ArchiveMetadata{}, err
	}
	return models.ArchiveMetadata{
		Path:     filepath.ToSlash(rel),
		Checksum: sum,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}, nil
}

// Open returns a reader over the archive at path.
func (f *FS) Open(path string) (io.ReadCloser, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return file, nil
}
