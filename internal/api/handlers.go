package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/anyt/internal/apperr"
	"github.com/starford/anyt/internal/docservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *docservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *docservice.Service) *Handler {
	return &Handler{svc: svc}
}

// guidParam parses the {guid} URL parameter.
func guidParam(r *http.Request) (int, bool) {
	guid, err := strconv.Atoi(chi.URLParam(r, "guid"))
	if err != nil || guid < 0 {
		return 0, false
	}
	return guid, true
}

// writeLookupError maps a document lookup failure to a response.
func writeLookupError(w http.ResponseWriter, op string, guid int, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeInternal(w, op, err, slog.Int("guid", guid))
}

// ListDocuments handles GET /api/documents.
//
//	@Summary		List documents with optional pagination and section filter
//	@Tags			documents
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Param			section	query		string	false	"Filter by online section"
//	@Param			sort	query		string	false	"Sort field"	Enums(guid, date, headline)
//	@Success		200		{object}	DocumentListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	section := q.Get("section")
	sort := q.Get("sort")

	items, total, err := h.svc.ListDocuments(r.Context(), limit, offset, section, sort)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid sort"))
			return
		}
		writeInternal(w, "list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: items, Total: total})
}

// GetDocument handles GET /api/documents/{guid}.
//
//	@Summary		Get a single document view by GUID
//	@Tags			documents
//	@Produce		json
//	@Param			guid	path		int	true	"Document GUID"
//	@Success		200		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{guid} [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	guid, ok := guidParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("guid must be a non-negative integer"))
		return
	}
	doc, err := h.svc.GetDocument(r.Context(), guid)
	if err != nil {
		writeLookupError(w, "get document", guid, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Diagnostic handles GET /api/documents/{guid}/diagnostic.
//
//	@Summary		Get the diagnostic rendering of a document view
//	@Tags			documents
//	@Produce		plain
//	@Param			guid	path		int	true	"Document GUID"
//	@Success		200		{string}	string
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{guid}/diagnostic [get]
func (h *Handler) Diagnostic(w http.ResponseWriter, r *http.Request) {
	guid, ok := guidParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("guid must be a non-negative integer"))
		return
	}
	s, err := h.svc.Describe(r.Context(), guid)
	if err != nil {
		writeLookupError(w, "describe document", guid, err)
		return
	}
	writeText(w, http.StatusOK, s)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across headlines and bodies
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeInternal(w, "search", err, slog.String("query", q))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Sections handles GET /api/sections.
//
//	@Summary		Online section facet counts
//	@Tags			facets
//	@Produce		json
//	@Success		200	{object}	SectionsResponse
//	@Security		BearerAuth
//	@Router			/sections [get]
func (h *Handler) Sections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.svc.Sections(r.Context())
	if err != nil {
		writeInternal(w, "sections", err)
		return
	}
	writeJSON(w, http.StatusOK, SectionsResponse{Sections: sections})
}

// Archives handles GET /api/archives.
//
//	@Summary		Indexed corpus archives
//	@Tags			facets
//	@Produce		json
//	@Success		200	{object}	ArchivesResponse
//	@Security		BearerAuth
//	@Router			/archives [get]
func (h *Handler) Archives(w http.ResponseWriter, r *http.Request) {
	archives, err := h.svc.Archives(r.Context())
	if err != nil {
		writeInternal(w, "archives", err)
		return
	}
	writeJSON(w, http.StatusOK, ArchivesResponse{Archives: archives})
}
