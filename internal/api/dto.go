package api

import (
	"github.com/starford/anyt/internal/docservice"
	"github.com/starford/anyt/internal/models"
)

// DocumentDetail is the full document response type (aliased from the domain layer).
type DocumentDetail = docservice.DocumentDetail

// DocumentListItem is a lightweight item in a list response (aliased from the domain layer).
type DocumentListItem = docservice.DocumentListItem

// DocumentListResponse wraps paginated document listings.
type DocumentListResponse struct {
	Documents []DocumentListItem `json:"documents" validate:"required"`
	Total     int                `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []docservice.SearchHit `json:"results" validate:"required"`
}

// SectionsResponse wraps the online section facets.
type SectionsResponse struct {
	Sections []models.SectionCount `json:"sections" validate:"required"`
}

// ArchivesResponse wraps the indexed archive list.
type ArchivesResponse struct {
	Archives []models.Archive `json:"archives" validate:"required"`
}
