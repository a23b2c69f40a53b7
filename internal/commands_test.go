package internal

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/starford/anyt/internal/corpus/corpustest"
	"github.com/starford/anyt/internal/docservice"
	"github.com/starford/anyt/internal/testutil"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	root := t.TempDir()
	corpustest.WriteArchive(t, root, "1987/01.tgz",
		corpustest.Doc{GUID: 1, Headline: "First", PublicationDate: time.Date(1987, 1, 1, 0, 0, 0, 0, time.UTC)},
		corpustest.Doc{GUID: 2, Headline: "Second", PublicationDate: time.Date(1987, 1, 2, 0, 0, 0, 0, time.UTC)},
	)
	corpustest.WriteArchive(t, root, "1987/02.tgz",
		corpustest.Doc{GUID: 3, Headline: "Third"},
	)

	cfg := NewDefaultConfig()
	cfg.Corpus.Path = root
	cfg.Corpus.Workers = 2
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "anyt.db")
	return cfg
}

func TestRunIndex(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	err := RunIndex(context.Background(), WithConfig(cfg), WithOutput(&out), WithLogOutput(io.Discard))
	if err != nil {
		t.Fatalf("RunIndex: %v", err)
	}
	if !strings.Contains(out.String(), "indexed 2 archives (3 documents)") {
		t.Errorf("summary = %q", out.String())
	}

	// A second run finds nothing to do.
	out.Reset()
	if err := RunIndex(context.Background(), WithConfig(cfg), WithOutput(&out), WithLogOutput(io.Discard)); err != nil {
		t.Fatalf("RunIndex: %v", err)
	}
	if !strings.Contains(out.String(), "unchanged 2") {
		t.Errorf("second summary = %q", out.String())
	}
}

func TestRunDump(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	err := RunDump(context.Background(), WithConfig(cfg), WithOutput(&out), WithLogOutput(io.Discard))
	if err != nil {
		t.Fatalf("RunDump: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3: %q", len(lines), out.String())
	}
	for _, line := range lines {
		guid, view, ok := strings.Cut(line, "\t")
		if !ok || !strings.HasPrefix(view, "View[guid="+guid+", ") {
			t.Errorf("malformed dump line %q", line)
		}
	}
}

func TestRunDump_ArchiveAndWidth(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	err := RunDump(context.Background(),
		WithConfig(cfg), WithOutput(&out), WithLogOutput(io.Discard),
		WithDumpArchive("1987/02.tgz"), WithDumpWidth(40))
	if err != nil {
		t.Fatalf("RunDump: %v", err)
	}
	line := strings.TrimSuffix(out.String(), "\n")
	if strings.Contains(line, "\n") {
		t.Fatalf("want one line, got %q", out.String())
	}
	if !strings.HasPrefix(line, "3\tView[guid=3") {
		t.Errorf("line = %q", line)
	}
	if w := runewidth.StringWidth(line); w > 40 {
		t.Errorf("width = %d, want <= 40", w)
	}
	if !strings.HasSuffix(line, "…") {
		t.Errorf("truncated line should end with ellipsis: %q", line)
	}
}

func TestRunDump_MissingArchive(t *testing.T) {
	cfg := testConfig(t)
	err := RunDump(context.Background(),
		WithConfig(cfg), WithOutput(io.Discard), WithLogOutput(io.Discard),
		WithDumpArchive("1999/01.tgz"))
	if err == nil {
		t.Fatal("expected error for missing archive")
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := RunIndex(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestRootRouter(t *testing.T) {
	db := testutil.IndexedCorpus(t, "1987/01.tgz", corpustest.Doc{GUID: 5, Headline: "Hello"})
	cfg := NewDefaultConfig()
	cfg.Auth = AuthConfig{Mode: AuthModeToken, Token: "tok"}
	router := newRootRouter(docservice.NewService(db), cfg, nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s = %d, want 200", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/documents/5", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated api = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents/5", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("authenticated api = %d, want 200", w.Code)
	}
}
