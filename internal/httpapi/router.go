// Package httpapi exposes email composition and dispatch over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailkit/pkg/health"
	"github.com/dmitrymomot/mailkit/pkg/logger"
)

// Deps are the collaborators of the API.
type Deps struct {
	Mailer   Mailer
	Contents ContentLister
	Checks   health.Checks
	Logger   *slog.Logger
}

// NewRouter builds the API router:
//
//	POST /v1/compose               render without sending
//	POST /v1/send                  render and deliver
//	GET  /v1/contents/{name}/keys  list content keys of a document
//	GET  /healthz, /readyz         probes
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logger.NewNope()
	}

	h := &handler{mailer: deps.Mailer, contents: deps.Contents}

	r := chi.NewRouter()
	r.Get("/healthz", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(deps.Checks, health.WithLogger(log)))

	r.Route("/v1", func(r chi.Router) {
		r.Use(requestID, recoverer(log), logRequests(log))
		r.Post("/compose", h.compose)
		r.Post("/send", h.send)
		r.Get("/contents/{name}/keys", h.contentKeys)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, &HTTPError{Message: "route not found", ErrorCode: "not_found"})
	})
	return r
}
