package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/anyt/internal/corpus/corpustest"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func watchLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func indexed(db *DB, path string) bool {
	cs, _ := db.ArchiveChecksum(path)
	return cs != ""
}

func TestWatcher_NewArchiveIndexed(t *testing.T) {
	root, store, db := corpusEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	go Watch(ctx, db, store, root, watchLogger(), 1, func(kind, path string) {
		mu.Lock()
		events = append(events, kind+":"+path)
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	corpustest.WriteArchive(t, root, "new.tgz", corpustest.Doc{GUID: 11, Headline: "Fresh"})

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return indexed(db, "new.tgz")
	}, "new archive not indexed by watcher")

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == EventIndexed+":new.tgz" {
				return true
			}
		}
		return false
	}, "expected indexed:new.tgz callback")

	d, err := db.GetDocument(11)
	if err != nil || d.Headline != "Fresh" {
		t.Errorf("document = %+v, err = %v", d, err)
	}
}

func TestWatcher_NewDirWatched(t *testing.T) {
	root, store, db := corpusEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, root, watchLogger(), 1, nil)

	time.Sleep(100 * time.Millisecond)

	_ = os.MkdirAll(filepath.Join(root, "data", "1990"), 0o755)
	time.Sleep(100 * time.Millisecond)

	corpustest.WriteArchive(t, root, "data/1990/03.tgz", corpustest.Doc{GUID: 12})

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return indexed(db, "data/1990/03.tgz")
	}, "archive in new subdir not indexed by watcher")
}

func TestWatcher_DeleteRemovesFromIndex(t *testing.T) {
	root, store, db := corpusEnv(t)
	path := corpustest.WriteArchive(t, root, "del.tgz", corpustest.Doc{GUID: 13})
	_, _ = Sync(context.Background(), db, store, watchLogger(), 1)

	if !indexed(db, "del.tgz") {
		t.Fatal("precondition: archive should be indexed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, root, watchLogger(), 1, nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Remove(path)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return !indexed(db, "del.tgz")
	}, "deleted archive still in index")
}

func TestWatcher_RenameReconciles(t *testing.T) {
	root, store, db := corpusEnv(t)
	corpustest.WriteArchive(t, root, "old.tgz", corpustest.Doc{GUID: 14})
	_, _ = Sync(context.Background(), db, store, watchLogger(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, root, watchLogger(), 1, nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Rename(filepath.Join(root, "old.tgz"), filepath.Join(root, "renamed.tgz"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return !indexed(db, "old.tgz") && indexed(db, "renamed.tgz")
	}, "rename reconciliation failed: old path should be removed and new path indexed")
}
