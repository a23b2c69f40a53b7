package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/anyt/internal/corpus"
	"github.com/starford/anyt/internal/storage"
)

// Event kinds passed to EventCallback.
const (
	EventIndexed = "indexed"
	EventRemoved = "removed"
)

// settleDelay is how long an archive must go without write events before it
// is read. Archives are large and arrive in many writes.
const settleDelay = 200 * time.Millisecond

// EventCallback is called after a watcher-driven index change.
// kind is EventIndexed or EventRemoved.
type EventCallback func(kind string, path string)

// Watch starts an fsnotify watcher on the corpus root and processes archive
// change events until ctx is cancelled. It calls cb (if non-nil) after
// each successful index mutation.
//
// New directories created at runtime are automatically added to the watch
// list. Rename events trigger a reconciliation pass that removes stale
// index entries whose archives no longer exist on disk.
func Watch(ctx context.Context, db *DB, store storage.Provider, root string, logger *slog.Logger, workers int, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	reader := corpus.NewReader(store, logger, workers)
	notify := func(kind, path string) {
		if cb != nil {
			cb(kind, path)
		}
	}

	// Pending archives are read once writes to them have settled.
	pending := make(map[string]struct{})
	var settleTimer *time.Timer
	var settleCh <-chan time.Time

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	schedule := func(t **time.Timer, ch *<-chan time.Time) {
		if *t == nil {
			*t = time.NewTimer(settleDelay)
			*ch = (*t).C
		} else {
			(*t).Reset(settleDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			for _, t := range []*time.Timer{settleTimer, reconcileTimer} {
				if t != nil {
					t.Stop()
				}
			}
			logger.Info("watcher: stopped")
			return nil

		case <-settleCh:
			for rel := range pending {
				delete(pending, rel)
				reindex(ctx, db, store, reader, rel, logger, notify)
			}

		case <-reconcileCh:
			reconcile(ctx, db, store, reader, logger, notify)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					// Archives may already be in the new directory.
					queueDir(root, absPath, pending)
					schedule(&settleTimer, &settleCh)
					continue
				}
			}

			if !strings.HasSuffix(absPath, storage.ArchiveExt) {
				continue
			}

			rel, relErr := filepath.Rel(root, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				pending[rel] = struct{}{}
				schedule(&settleTimer, &settleCh)

			case ev.Op&fsnotify.Remove != 0:
				delete(pending, rel)
				remove(db, rel, logger, notify)

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify fires Rename on the OLD path only. The new path
				// arrives as a separate Create event when it stays inside
				// a watched dir; the reconcile pass catches the rest.
				delete(pending, rel)
				remove(db, rel, logger, notify)
				schedule(&reconcileTimer, &reconcileCh)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reindex re-reads one archive unless its checksum is already indexed.
func reindex(ctx context.Context, db *DB, store storage.Provider, reader *corpus.Reader, rel string, logger *slog.Logger, notify EventCallback) {
	meta, err := store.Stat(rel)
	if err != nil {
		logger.Warn("watcher: stat failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	if cs, _ := db.ArchiveChecksum(rel); cs == meta.Checksum {
		return
	}
	n, err := indexArchive(ctx, db, reader, meta)
	if err != nil {
		logger.Warn("watcher: index failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	logger.Debug("watcher: indexed", slog.String("path", rel), slog.Int("documents", n))
	notify(EventIndexed, rel)
}

func remove(db *DB, rel string, logger *slog.Logger, notify EventCallback) {
	if cs, _ := db.ArchiveChecksum(rel); cs == "" {
		return
	}
	if err := db.DeleteArchive(rel); err != nil {
		logger.Warn("watcher: delete failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	logger.Debug("watcher: removed", slog.String("path", rel))
	notify(EventRemoved, rel)
}

// reconcile does a lightweight sync using batch lookups: index entries
// without an archive on disk are removed and unindexed or changed archives
// are indexed.
func reconcile(ctx context.Context, db *DB, store storage.Provider, reader *corpus.Reader, logger *slog.Logger, notify EventCallback) {
	checksums, err := db.ArchiveChecksums()
	if err != nil {
		logger.Warn("reconcile: archive checksums failed", slog.String("error", err.Error()))
		return
	}
	metas, err := store.List("")
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}
		if checksums[m.Path] == m.Checksum {
			continue
		}
		if _, err := indexArchive(ctx, db, reader, m); err == nil {
			logger.Debug("reconcile: indexed", slog.String("path", m.Path))
			notify(EventIndexed, m.Path)
		}
	}
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			remove(db, p, logger, notify)
		}
	}
}

// queueDir marks every archive under dir as pending.
func queueDir(root, dir string, pending map[string]struct{}) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, storage.ArchiveExt) {
			return nil
		}
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			pending[filepath.ToSlash(rel)] = struct{}{}
		}
		return nil
	})
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
