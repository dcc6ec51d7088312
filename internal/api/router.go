package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with the report routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(reports *ReportStore, authEnabled bool, token string) chi.Router {
	h := NewHandler(reports)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/report", h.GetReport)

	// HEAD probes from dashboards are cheap to support.
	r.Head("/report", func(w http.ResponseWriter, _ *http.Request) {
		if _, ok := reports.Get(); !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	return r
}
