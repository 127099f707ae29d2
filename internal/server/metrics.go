package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for solve requests.
type Metrics struct {
	// Solves by method and outcome ("converged" or an error kind)
	Solves *prometheus.CounterVec

	// Iterations used per solve
	Iterations *prometheus.HistogramVec

	// Wall time per solve
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the solver metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Solves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "toynum_solves_total",
			Help: "Total solves by method and outcome",
		}, []string{"method", "outcome"}),

		Iterations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "toynum_solve_iterations",
			Help:    "Iterations performed per solve",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 101},
		}, []string{"method"}),

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "toynum_solve_duration_seconds",
			Help:    "Duration of a solve including setup",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"method"}),
	}
}

// ObserveSolve records one finished solve.
func (m *Metrics) ObserveSolve(method, outcome string, iterations int, d time.Duration) {
	if m == nil {
		return
	}
	m.Solves.WithLabelValues(method, outcome).Inc()
	if iterations > 0 {
		m.Iterations.WithLabelValues(method).Observe(float64(iterations))
	}
	m.Duration.WithLabelValues(method).Observe(d.Seconds())
}
