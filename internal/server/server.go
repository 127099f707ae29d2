// Package server exposes the solvers over HTTP as JSON endpoints.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edp1096/toy-numeric/pkg/analysis"
)

// maxBodyBytes bounds request bodies; the largest valid request is a 5×6 matrix.
const maxBodyBytes = 64 << 10

type Server struct {
	logger   *slog.Logger
	settings analysis.Settings
	registry *prometheus.Registry
	metrics  *Metrics
}

func New(logger *slog.Logger, settings analysis.Settings) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reg := prometheus.NewRegistry()
	return &Server{
		logger:   logger,
		settings: settings,
		registry: reg,
		metrics:  NewMetrics(reg),
	}
}

// Register mounts the solver endpoints on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.HandleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/roots/{method}", s.HandleRoot)
		r.Post("/linear", s.HandleLinear)
	})
}

// Router returns the full handler with middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	s.Register(r)
	return r
}

// HTTPServer builds an *http.Server for addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
