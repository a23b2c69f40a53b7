// Package testutil provides shared test helpers for setting up corpora and databases.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/starford/anyt/internal/corpus/corpustest"
	"github.com/starford/anyt/internal/index"
	"github.com/starford/anyt/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "anyt-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestCorpus creates a temporary corpus directory with a storage.Provider.
func TestCorpus(t *testing.T) (string, storage.Provider) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// IndexedCorpus writes docs into a single archive, syncs it into a fresh
// database and returns the database.
func IndexedCorpus(t *testing.T, archive string, docs ...corpustest.Doc) *index.DB {
	t.Helper()
	root, store := TestCorpus(t)
	corpustest.WriteArchive(t, root, archive, docs...)
	db := TestDB(t)
	if _, err := index.Sync(context.Background(), db, store, Logger(), 1); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	return db
}
