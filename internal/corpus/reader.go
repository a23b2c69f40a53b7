package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/starford/anyt/internal/models"
	"github.com/starford/anyt/internal/nitf"
	"github.com/starford/anyt/internal/nyt"
)

// Store is the subset of storage.Provider the reader needs.
type Store interface {
	List(dir string) ([]models.ArchiveMetadata, error)
	Open(path string) (io.ReadCloser, error)
}

// Document is one parsed corpus document.
type Document struct {
	Archive string // archive path relative to the corpus root
	Entry   string // member name inside the archive
	Source  []byte // raw NITF XML
	View    nyt.View
}

// SourcePath is the location recorded in the document's record.
func SourcePath(archive, entry string) string {
	return archive + "/" + entry
}

// Reader walks the archives of a corpus store.
type Reader struct {
	store   Store
	logger  *slog.Logger
	workers int
}

// NewReader returns a Reader that processes up to workers archives at once.
// workers < 1 means one.
func NewReader(store Store, logger *slog.Logger, workers int) *Reader {
	if workers < 1 {
		workers = 1
	}
	return &Reader{store: store, logger: logger, workers: workers}
}

// Walk calls fn for every document of every archive in the store. Archives
// are read concurrently; calls to fn are serialised. The first error from
// fn or from reading an archive cancels the walk.
func (r *Reader) Walk(ctx context.Context, fn func(Document) error) error {
	archives, err := r.store.List("")
	if err != nil {
		return fmt.Errorf("corpus: list archives: %w", err)
	}

	var mu sync.Mutex
	serial := func(d Document) error {
		mu.Lock()
		defer mu.Unlock()
		return fn(d)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, a := range archives {
		g.Go(func() error {
			_, err := r.ReadArchive(ctx, a.Path, serial)
			return err
		})
	}
	return g.Wait()
}

// ReadArchive calls fn for every parseable document in the archive at path
// and returns how many documents were visited. Entries that fail to parse
// are logged and skipped.
func (r *Reader) ReadArchive(ctx context.Context, path string, fn func(Document) error) (int, error) {
	rc, err := r.store.Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n := 0
	err = Entries(ctx, rc, func(e Entry) error {
		rec, err := nitf.Parse(e.Data, SourcePath(path, e.Name))
		if err != nil {
			r.logger.Warn("corpus: skip entry",
				slog.String("archive", path),
				slog.String("entry", e.Name),
				slog.String("error", err.Error()))
			return nil
		}
		n++
		return fn(Document{
			Archive: path,
			Entry:   e.Name,
			Source:  e.Data,
			View:    nyt.NewView(rec),
		})
	})
	if err != nil {
		return n, fmt.Errorf("corpus: read %s: %w", path, err)
	}
	return n, nil
}
