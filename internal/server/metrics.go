package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes server observability in Prometheus format: in-flight and
// total requests, completed comparisons and their latency distribution.
type Metrics struct {
	handler http.Handler
}

// Registered once at package level to avoid duplicate registration when
// multiple servers are constructed (tests do this).
var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matrixbench_active_requests",
		Help: "Current number of active requests",
	})
	totalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matrixbench_requests_total",
		Help: "Total number of requests received",
	})
	comparisonsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matrixbench_comparisons_total",
		Help: "Total number of completed comparison runs",
	})
	comparisonPairs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matrixbench_comparison_pairs_total",
		Help: "Total number of matrix pairs benchmarked",
	})
	comparisonDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matrixbench_comparison_duration_seconds",
		Help:    "Wall-clock duration of comparison runs",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)

// NewMetrics creates a Metrics instance backed by the default registry.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// ObserveComparison records one completed comparison run.
func (m *Metrics) ObserveComparison(d time.Duration, pairCount int) {
	comparisonsTotal.Inc()
	comparisonPairs.Add(float64(pairCount))
	comparisonDuration.Observe(d.Seconds())
}

// handleMetrics serves the Prometheus scrape endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.metrics.handler.ServeHTTP(w, r)
}

// metricsMiddleware tracks in-flight requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeRequests.Inc()
		totalRequests.Inc()
		defer activeRequests.Dec()
		next(w, r)
	}
}
