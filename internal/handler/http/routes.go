package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

const defaultListPath = "/notes/filter/All"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, defaultListPath, http.StatusFound)
	})

	// html pages
	router.Group(func(r chi.Router) {
		r.Use(h.withSession)
		r.Use(withETag)

		r.Get("/notes/filter", h.notesList)
		r.Get("/notes/filter/*", h.notesList)
		r.Get("/notes/action/create", h.createForm)
		r.Post("/notes/action/create", h.createNote)
		r.Get("/notes/{id}", h.noteDetail)
	})

	// json api; cors runs for every /api request, preflights included
	router.Route("/api", func(r chi.Router) {
		r.Use(h.corsHandler())

		r.Get("/version", h.getAppVersion)
		r.Group(func(r chi.Router) {
			r.Use(h.withSession)
			r.Get("/notes", h.apiListNotes)
			r.Post("/notes", h.apiCreateNote)
			r.Get("/notes/{id}", h.apiGetNote)
		})
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) corsHandler() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   h.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
	}).Handler
}
