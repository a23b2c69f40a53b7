// Package corpus reads NYT Annotated Corpus archives: gzip'd tar files of
// NITF documents laid out as data/<year>/<month>.tgz.
package corpus

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxEntrySize bounds a single archive member. Corpus documents are a few
// kilobytes each.
const maxEntrySize = 16 << 20

// Entry is one member of a corpus archive.
type Entry struct {
	Name string
	Data []byte
}

// Entries iterates the regular .xml members of the gzip'd tar stream r in
// archive order and calls fn for each. Iteration stops at the first error
// returned by fn, or when ctx is cancelled.
func Entries(ctx context.Context, r io.Reader, fn func(Entry) error) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("corpus: gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("corpus: tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(hdr.Name, ".xml") {
			continue
		}
		if hdr.Size > maxEntrySize {
			return fmt.Errorf("corpus: entry %s too large (%d bytes)", hdr.Name, hdr.Size)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return fmt.Errorf("corpus: read %s: %w", hdr.Name, err)
		}
		if err := fn(Entry{Name: hdr.Name, Data: data}); err != nil {
			return err
		}
	}
}
