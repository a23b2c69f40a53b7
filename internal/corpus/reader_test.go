package corpus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/anyt/internal/corpus/corpustest"
	"github.com/starford/anyt/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCorpus(t *testing.T) *storage.FS {
	t.Helper()
	root := t.TempDir()
	day := time.Date(1987, 1, 1, 0, 0, 0, 0, time.UTC)
	corpustest.WriteArchive(t, root, "data/1987/01.tgz",
		corpustest.Doc{GUID: 1, Headline: "One", PublicationDate: day, Body: []string{"a", "b"}},
		corpustest.Doc{GUID: 2, Headline: "Two", PublicationDate: day.AddDate(0, 0, 1)},
	)
	corpustest.WriteArchive(t, root, "data/1987/02.tgz",
		corpustest.Doc{GUID: 3, Headline: "Three", OnlineSections: "Arts; Books"},
	)
	store, err := storage.NewFS(root)
	require.NoError(t, err)
	return store
}

func TestReader_WalkVisitsEveryDocument(t *testing.T) {
	r := NewReader(testCorpus(t), testLogger(), 4)

	var guids []int
	err := r.Walk(context.Background(), func(d Document) error {
		guids = append(guids, d.View.GUID())
		assert.NotEmpty(t, d.Source)
		assert.Equal(t, SourcePath(d.Archive, d.Entry), d.View.SourcePath().OrElse(""))
		return nil
	})
	require.NoError(t, err)
	sort.Ints(guids)
	assert.Equal(t, []int{1, 2, 3}, guids)
}

func TestReader_ReadArchive(t *testing.T) {
	r := NewReader(testCorpus(t), testLogger(), 1)

	var docs []Document
	n, err := r.ReadArchive(context.Background(), "data/1987/01.tgz", func(d Document) error {
		docs = append(docs, d)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, docs, 2)
	assert.Equal(t, "data/1987/01.tgz", docs[0].Archive)
	assert.Equal(t, "01/01/1.xml", docs[0].Entry)
	assert.Equal(t, []string{"a", "b"}, docs[0].View.BodyLines())
	assert.Equal(t, "Two", docs[1].View.Headline().OrElse(""))
}

func TestReader_SkipsUnparseableEntries(t *testing.T) {
	root := t.TempDir()
	corpustest.WriteEntries(t, root, "bad.tgz",
		corpustest.Entry{Name: "broken.xml", Data: []byte("<nitf><head>")},
		corpustest.Entry{Name: "noguid.xml", Data: []byte("<nitf><head/></nitf>")},
		corpustest.Entries(corpustest.Doc{GUID: 9})[0],
	)
	store, err := storage.NewFS(root)
	require.NoError(t, err)

	var guids []int
	n, err := NewReader(store, testLogger(), 1).ReadArchive(context.Background(), "bad.tgz", func(d Document) error {
		guids = append(guids, d.View.GUID())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int{9}, guids)
}

func TestReader_WalkStopsOnError(t *testing.T) {
	r := NewReader(testCorpus(t), testLogger(), 2)
	boom := errors.New("boom")

	err := r.Walk(context.Background(), func(Document) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestReader_MissingArchive(t *testing.T) {
	r := NewReader(testCorpus(t), testLogger(), 1)
	_, err := r.ReadArchive(context.Background(), "data/2000/01.tgz", func(Document) error { return nil })
	require.Error(t, err)
}
