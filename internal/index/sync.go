package index

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/starford/anyt/internal/corpus"
	"github.com/starford/anyt/internal/models"
	"github.com/starford/anyt/internal/storage"
)

// SyncResult summarises one Sync run.
type SyncResult struct {
	RunID     string
	Indexed   []string
	Removed   []string
	Unchanged int
	Failed    int
	Documents int
}

// Sync walks the corpus and brings the index up to date:
//   - new/changed archives are read and their documents replaced
//   - archives removed from disk are deleted from the index
//
// Up to workers archives are read concurrently. A failing archive is logged
// and skipped; only cancellation aborts the run.
func Sync(ctx context.Context, db *DB, store storage.Provider, logger *slog.Logger, workers int) (*SyncResult, error) {
	res := &SyncResult{RunID: uuid.NewString()}
	logger = logger.With(slog.String("run_id", res.RunID))

	metas, err := store.List("")
	if err != nil {
		return nil, err
	}
	checksums, err := db.ArchiveChecksums()
	if err != nil {
		return nil, err
	}

	reader := corpus.NewReader(store, logger, workers)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			res.Unchanged++
			continue
		}

		g.Go(func() error {
			n, err := indexArchive(gctx, db, reader, m)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				res.Failed++
				logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
				return nil
			}
			res.Indexed = append(res.Indexed, m.Path)
			res.Documents += n
			logger.Debug("sync: indexed", slog.String("path", m.Path), slog.Int("documents", n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	slices.Sort(res.Indexed)

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; ok {
			continue
		}
		if err := db.DeleteArchive(p); err != nil {
			logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		res.Removed = append(res.Removed, p)
		logger.Debug("sync: removed stale", slog.String("path", p))
	}

	logger.Info("sync: done",
		slog.Int("indexed", len(res.Indexed)),
		slog.Int("removed", len(res.Removed)),
		slog.Int("unchanged", res.Unchanged),
		slog.Int("failed", res.Failed),
		slog.Int("documents", res.Documents))
	return res, nil
}

// indexArchive reads every document of one archive and replaces the
// archive's rows in the index. It returns the number of documents stored.
func indexArchive(ctx context.Context, db *DB, reader *corpus.Reader, meta models.ArchiveMetadata) (int, error) {
	var rows []DocumentRow
	_, err := reader.ReadArchive(ctx, meta.Path, func(d corpus.Document) error {
		rows = append(rows, documentRow(d))
		return nil
	})
	if err != nil {
		return 0, err
	}
	err = db.ReplaceArchive(models.Archive{
		Path:      meta.Path,
		Checksum:  meta.Checksum,
		IndexedAt: time.Now().UTC(),
	}, rows)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func documentRow(d corpus.Document) DocumentRow {
	v := d.View
	row := DocumentRow{
		GUID:     v.GUID(),
		Archive:  d.Archive,
		Entry:    d.Entry,
		Headline: v.Headline().OrElse(""),
		Body:     strings.Join(v.BodyLines(), "\n"),
		Sections: v.OnlineSections(),
		Source:   d.Source,
	}
	if t, ok := v.PublicationDate().Get(); ok {
		row.PublicationDate = &t
	}
	return row
}
