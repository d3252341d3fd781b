package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/api/version", h.getVersion)

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withAuth)

		r.Get("/api/entries", h.listEntries)
		r.Get("/api/entries/{name}", h.getEntry)
		r.Delete("/api/entries/{name}", h.deleteEntry)
		r.Post("/api/entries/{name}/rename", h.renameEntry)
		r.Get("/api/entries/{name}/otp", h.getOTP)
		r.Get("/api/entries/{name}/fields/{field}", h.getField)
		r.Put("/api/entries/{name}/fields/{field}", h.setField)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
