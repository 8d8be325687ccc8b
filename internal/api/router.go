package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ad-matrix-engine/internal/observability"
)

func Router(h *PreviewHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(observability.Measure)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Second))

	r.Post("/v1/matrix/generate", h.Generate)
	r.Post("/v1/matrix/stats", h.Stats)
	r.Post("/v1/naming/preview", h.NamingPreview)
	r.Post("/v1/naming/validate", h.NamingValidate)
	r.Get("/v1/naming/conventions", h.ListConventions)
	r.Post("/v1/params/preview", h.ParamsPreview)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", observability.MetricsHandler())
	return r
}
