package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(withGZipRequests, middleware.Compress(5, "application/json", "text/plain"))

	router.Get("/api/version/", h.getServerVersion)

	router.Route("/api/collections/{collection}", func(r chi.Router) {
		r.Get("/documents", h.getDocuments)
		r.Get("/documents/{id}", h.getDocument)
		r.With(h.documentsHashing).Put("/documents", h.setDocuments)
		r.Post("/changes", h.getChangedDocuments)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
