package internal

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/starford/anyt/internal/corpus"
	"github.com/starford/anyt/internal/docservice"
	"github.com/starford/anyt/internal/index"
	"github.com/starford/anyt/internal/mcpserver"
)

// RunIndex syncs the index with the corpus once and prints a summary.
func RunIndex(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	rt, err := app.setup()
	if err != nil {
		return err
	}
	defer rt.db.Close()

	res, err := index.Sync(ctx, rt.db, rt.store, rt.logger, rt.cfg.Corpus.Workers)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	fmt.Fprintf(app.out, "run %s: indexed %d archives (%d documents), removed %d, unchanged %d, failed %d\n",
		res.RunID, len(res.Indexed), res.Documents, len(res.Removed), res.Unchanged, res.Failed)
	if res.Failed > 0 {
		return fmt.Errorf("sync: %d archives failed", res.Failed)
	}
	return nil
}

// RunDump reads the corpus directly, without the index, and writes one line
// per document: the GUID followed by the diagnostic rendering of its view.
func RunDump(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	rt, err := app.setup()
	if err != nil {
		return err
	}
	defer rt.db.Close()

	reader := corpus.NewReader(rt.store, rt.logger, rt.cfg.Corpus.Workers)
	count := 0
	emit := func(d corpus.Document) error {
		count++
		_, err := fmt.Fprintln(app.out, dumpLine(d, app.dumpWidth))
		return err
	}

	if app.dumpArchive != "" {
		_, err = reader.ReadArchive(ctx, app.dumpArchive, emit)
	} else {
		err = reader.Walk(ctx, emit)
	}
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	rt.logger.Info("dump: done", slog.Int("documents", count))
	return nil
}

func dumpLine(d corpus.Document, width int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(d.View.GUID()))
	b.WriteByte('\t')
	b.WriteString(d.View.String())
	line := b.String()
	if width > 0 {
		line = runewidth.Truncate(line, width, "…")
	}
	return line
}

// RunMCP serves the MCP tools on stdin/stdout over the existing index.
// Logs must not go to stdout; pass WithLogOutput(os.Stderr).
func RunMCP(_ context.Context, opts ...Option) error {
	app := newApplication(opts)
	rt, err := app.setup()
	if err != nil {
		return err
	}
	defer rt.db.Close()

	srv := mcpserver.New(docservice.NewService(rt.db), app.version)
	rt.logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
