package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/anyt/internal/docservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Documents (read-only).
	r.Get("/documents", h.ListDocuments)
	r.Get("/documents/{guid}", h.GetDocument)
	r.Get("/documents/{guid}/diagnostic", h.Diagnostic)

	// Search.
	r.Get("/search", h.Search)

	// Facets and provenance.
	r.Get("/sections", h.Sections)
	r.Get("/archives", h.Archives)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
