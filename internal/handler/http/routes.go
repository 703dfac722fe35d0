package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the relay router. Object routes follow the Supabase storage
// layout so the client's HTTP backend can talk to either.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Get("/version", h.getServerVersion)

	router.Route("/storage/v1/object", func(r chi.Router) {
		r.Use(h.auth, withGZip)

		r.With(h.requireDownload).Get("/public/{bucket}/{name}", h.downloadObject)
		r.With(h.requireDownload).Get("/authenticated/{bucket}/{name}", h.downloadObject)
		r.With(h.requireDownload).Get("/{bucket}/{name}", h.downloadObject)

		r.With(h.requireUpload).Post("/{bucket}/{name}", h.uploadObject)
		r.With(h.requireUpload).Put("/{bucket}/{name}", h.updateObject)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, ErrRouteNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
