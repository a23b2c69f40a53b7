// Package corpustest builds NITF documents and .tgz archives for tests.
package corpustest

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Doc describes a synthetic corpus document. Zero fields are omitted from
// the generated XML.
type Doc struct {
	GUID            int
	Headline        string
	OnlineSections  string
	Descriptors     []string
	People          []string
	LeadParagraph   []string
	Body            []string
	PublicationDate time.Time
	WordCount       int
}

// XML renders d as a NITF document.
func (d Doc) XML() []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<nitf>\n<head>\n")
	if d.OnlineSections != "" {
		fmt.Fprintf(&b, "<meta name=\"online_sections\" content=\"%s\"/>\n", escape(d.OnlineSections))
	}
	if !d.PublicationDate.IsZero() {
		fmt.Fprintf(&b, "<meta name=\"publication_year\" content=\"%d\"/>\n", d.PublicationDate.Year())
	}
	b.WriteString("<docdata>\n")
	fmt.Fprintf(&b, "<doc-id id-string=\"%d\"/>\n", d.GUID)
	b.WriteString("<identified-content>\n")
	for _, desc := range d.Descriptors {
		fmt.Fprintf(&b, "<classifier class=\"indexing_service\" type=\"descriptor\">%s</classifier>\n", escape(desc))
	}
	for _, p := range d.People {
		fmt.Fprintf(&b, "<person class=\"indexing_service\">%s</person>\n", escape(p))
	}
	b.WriteString("</identified-content>\n</docdata>\n<pubdata")
	if !d.PublicationDate.IsZero() {
		fmt.Fprintf(&b, " date.publication=\"%s\"", d.PublicationDate.Format("20060102T150405"))
	}
	if d.WordCount > 0 {
		fmt.Fprintf(&b, " item-length=\"%d\"", d.WordCount)
	}
	b.WriteString("/>\n</head>\n<body>\n<body.head>\n")
	if d.Headline != "" {
		fmt.Fprintf(&b, "<hedline><hl1>%s</hl1></hedline>\n", escape(d.Headline))
	}
	b.WriteString("</body.head>\n<body.content>\n")
	writeBlock(&b, "lead_paragraph", d.LeadParagraph)
	writeBlock(&b, "full_text", d.Body)
	b.WriteString("</body.content>\n</body>\n</nitf>\n")
	return b.Bytes()
}

// EntryName returns the conventional archive member name for d.
func (d Doc) EntryName() string {
	if d.PublicationDate.IsZero() {
		return fmt.Sprintf("%d.xml", d.GUID)
	}
	return fmt.Sprintf("%s/%d.xml", d.PublicationDate.Format("01/02"), d.GUID)
}

func writeBlock(b *bytes.Buffer, class string, paragraphs []string) {
	if len(paragraphs) == 0 {
		return
	}
	fmt.Fprintf(b, "<block class=\"%s\">\n", class)
	for _, p := range paragraphs {
		fmt.Fprintf(b, "<p>%s</p>\n", escape(p))
	}
	b.WriteString("</block>\n")
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Entry is a raw archive member.
type Entry struct {
	Name string
	Data []byte
}

// Entries converts docs into archive members.
func Entries(docs ...Doc) []Entry {
	out := make([]Entry, 0, len(docs))
	for _, d := range docs {
		out = append(out, Entry{Name: d.EntryName(), Data: d.XML()})
	}
	return out
}

// TGZ returns a gzip'd tar stream holding entries, with a directory header
// for each parent directory.
func TGZ(t testing.TB, entries ...Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	dirs := make(map[string]bool)
	for _, e := range entries {
		if dir := filepath.ToSlash(filepath.Dir(e.Name)); dir != "." && !dirs[dir] {
			dirs[dir] = true
			if err := tw.WriteHeader(&tar.Header{Name: dir + "/", Typeflag: tar.TypeDir, Mode: 0o755}); err != nil {
				t.Fatalf("corpustest: dir header: %v", err)
			}
		}
		hdr := &tar.Header{Name: e.Name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(e.Data))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("corpustest: header: %v", err)
		}
		if _, err := tw.Write(e.Data); err != nil {
			t.Fatalf("corpustest: write entry: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("corpustest: close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("corpustest: close gzip: %v", err)
	}
	return buf.Bytes()
}

// WriteArchive writes a .tgz of docs to root/rel and returns its absolute
// path. Parent directories are created.
func WriteArchive(t testing.TB, root, rel string, docs ...Doc) string {
	t.Helper()
	return WriteEntries(t, root, rel, Entries(docs...)...)
}

// WriteEntries writes a .tgz of raw entries to root/rel.
func WriteEntries(t testing.TB, root, rel string, entries ...Entry) string {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("corpustest: mkdir: %v", err)
	}
	if err := os.WriteFile(abs, TGZ(t, entries...), 0o644); err != nil {
		t.Fatalf("corpustest: write archive: %v", err)
	}
	return abs
}
