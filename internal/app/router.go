package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/tempizhere/compresseverything/internal/metrics"
	"github.com/tempizhere/compresseverything/internal/middleware"
	"go.uber.org/zap"
)

// NewRouter собирает маршрутизатор со всеми middleware и маршрутами сервиса.
// m может быть nil, тогда /metrics не регистрируется.
func NewRouter(a *App, logger *zap.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(chimw.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(middleware.GzipMiddleware)

	r.Get("/", a.HandleHome)
	r.Post("/", a.HandlePostURL)
	r.Get("/ping", a.HandlePing)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}
	r.Get("/{id}", a.HandleGetURL)

	return r
}
