// Package metrics expõe métricas Prometheus dos serviços: requisições HTTP,
// buscas no upstream e decisões do rate limit.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"gym-listings/listing/domain"
	"gym-listings/middleware/ratelimit"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores de um serviço num registry próprio.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge

	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram

	decisions *prometheus.CounterVec
}

func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by method, route and status code.",
			ConstLabels: labels,
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "HTTP requests being served.",
			ConstLabels: labels,
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_fetch_total",
			Help:        "Upstream listing fetches by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "upstream_fetch_duration_seconds",
			Help:        "Upstream listing fetch latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ratelimit_decisions_total",
			Help:        "Rate limit decisions.",
			ConstLabels: labels,
		}, []string{"allowed"}),
	}

	m.registry.MustRegister(
		m.requests, m.duration, m.inflight,
		m.fetches, m.fetchDuration, m.decisions,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serve GET /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware mede cada requisição. route deve ter cardinalidade baixa:
// usa o pattern do ServeMux quando existir, senão "other".
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inflight.Inc()
		defer m.inflight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "other"
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObserveFetch implementa domain.FetchObserver.
func (m *Metrics) ObserveFetch(outcome string, elapsed time.Duration) {
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(elapsed.Seconds())
}

// Record implementa ratelimit.StatsStore.
func (m *Metrics) Record(_ context.Context, ev ratelimit.StatsEvent) error {
	m.decisions.WithLabelValues(strconv.FormatBool(ev.Allowed)).Inc()
	return nil
}

var (
	_ domain.FetchObserver  = (*Metrics)(nil)
	_ ratelimit.StatsStore = (*Metrics)(nil)
)

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
