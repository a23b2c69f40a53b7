// Package docservice serves indexed corpus documents as views.
package docservice

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/anyt/internal/apperr"
	"github.com/starford/anyt/internal/corpus"
	"github.com/starford/anyt/internal/index"
	"github.com/starford/anyt/internal/models"
	"github.com/starford/anyt/internal/nitf"
	"github.com/starford/anyt/internal/nyt"
)

// DocumentListItem is a lightweight item in a list response.
type DocumentListItem struct {
	GUID            int        `json:"guid"`
	Headline        string     `json:"headline"`
	PublicationDate *time.Time `json:"publication_date"`
	Archive         string     `json:"archive"`
	Entry           string     `json:"entry"`
}

// SearchHit is one search result.
type SearchHit struct {
	GUID     int    `json:"guid"`
	Headline string `json:"headline"`
	Snippet  string `json:"snippet"`
}

// Service reads documents back out of the index.
type Service struct {
	db index.DocumentIndex
}

// NewService creates a new document service.
func NewService(db index.DocumentIndex) *Service {
	return &Service{db: db}
}

// View re-parses the stored source of guid and wraps it.
func (s *Service) View(_ context.Context, guid int) (nyt.View, *index.DocumentRow, error) {
	row, err := s.db.GetDocument(guid)
	if err != nil {
		return nyt.View{}, nil, err
	}
	rec, err := nitf.Parse(row.Source, corpus.SourcePath(row.Archive, row.Entry))
	if err != nil {
		return nyt.View{}, nil, fmt.Errorf("docservice: document %d: %w", guid, err)
	}
	return nyt.NewView(rec), row, nil
}

// GetDocument returns the full projection of guid.
func (s *Service) GetDocument(ctx context.Context, guid int) (*DocumentDetail, error) {
	v, row, err := s.View(ctx, guid)
	if err != nil {
		return nil, err
	}
	return NewDocumentDetail(row.Archive, row.Entry, v), nil
}

// Describe returns the diagnostic rendering of guid.
func (s *Service) Describe(ctx context.Context, guid int) (string, error) {
	v, _, err := s.View(ctx, guid)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// ListDocuments returns paginated documents with optional section filter.
func (s *Service) ListDocuments(_ context.Context, limit, offset int, section, sort string) ([]DocumentListItem, int, error) {
	if !index.ValidSort(sort) {
		return nil, 0, fmt.Errorf("docservice: sort %q: %w", sort, apperr.ErrInvalidInput)
	}
	rows, total, err := s.db.ListDocuments(limit, offset, section, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]DocumentListItem, len(rows))
	for i, r := range rows {
		items[i] = DocumentListItem{
			GUID:            r.GUID,
			Headline:        r.Headline,
			PublicationDate: r.PublicationDate,
			Archive:         r.Archive,
			Entry:           r.Entry,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]SearchHit, error) {
	results, err := s.db.Search(query, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]SearchHit, len(results))
	for i, r := range results {
		hits[i] = SearchHit{GUID: r.GUID, Headline: r.Headline, Snippet: r.Snippet}
	}
	return hits, nil
}

// Sections returns the online section facet counts.
func (s *Service) Sections(_ context.Context) ([]models.SectionCount, error) {
	out, err := s.db.Sections()
	return nonNilSlice(out), err
}

// Archives returns every indexed archive.
func (s *Service) Archives(_ context.Context) ([]models.Archive, error) {
	out, err := s.db.Archives()
	return nonNilSlice(out), err
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
