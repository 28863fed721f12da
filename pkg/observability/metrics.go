package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/playback"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	Runs         *prometheus.CounterVec
	RunSteps     *prometheus.HistogramVec
	Prunes       *prometheus.CounterVec
	Restores     prometheus.Counter
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of step sequences generated",
			},
			[]string{"algorithm"},
		),
		RunSteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_run_steps",
				Help:    "Number of steps per generated sequence",
				Buckets: prometheus.ExponentialBuckets(4, 2, 10),
			},
			[]string{"algorithm"},
		),
		Prunes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_prunes_total",
				Help: "Total number of prune operations",
			},
			[]string{"algorithm"},
		),
		Restores: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "automata_restores_total",
				Help: "Total number of restore operations",
			},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "automata_http_request_duration_seconds",
				Help: "Duration of HTTP requests",
			},
			[]string{"route", "method", "code"},
		),
	}
	m.registry.MustRegister(m.Runs, m.RunSteps, m.Prunes, m.Restores, m.HTTPDuration)
	return m
}

// Registry returns the registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records one generated step sequence.
func (m *Metrics) ObserveRun(alg domain.Algorithm, steps int) {
	m.Runs.WithLabelValues(string(alg)).Inc()
	m.RunSteps.WithLabelValues(string(alg)).Observe(float64(steps))
}

// Hooks returns visualizer hooks that feed these metrics.
func (m *Metrics) Hooks() playback.Hooks {
	return playback.Hooks{
		OnRebuild: m.ObserveRun,
		OnPrune: func(alg domain.Algorithm, _, _ int) {
			m.Prunes.WithLabelValues(string(alg)).Inc()
		},
		OnRestore: func() {
			m.Restores.Inc()
		},
	}
}

// Middleware times requests, labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
