// Package metrics owns the prometheus registry for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "curriculo"

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	pagesRendered  prometheus.Histogram
	pdfBytes       prometheus.Histogram
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.rendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renders_total",
		Help:      "Generate requests by engine and outcome.",
	}, []string{"engine", "outcome"})

	m.renderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "Time spent producing a document.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"engine"})

	m.pagesRendered = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "document_pages",
		Help:      "Pages per generated PDF.",
		Buckets:   []float64{1, 2, 3, 4, 5, 8, 13},
	})

	m.pdfBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "document_bytes",
		Help:      "Size of generated documents.",
		Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
	})

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	m.registry.MustRegister(
		m.rendersTotal, m.renderDuration, m.pagesRendered, m.pdfBytes,
		m.httpRequests, m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRender records one generate call. pages and size are only observed
// for successful renders.
func (m *Metrics) ObserveRender(engine, outcome string, d time.Duration, pages, size int) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(engine, outcome).Inc()
	m.renderDuration.WithLabelValues(engine).Observe(d.Seconds())
	if outcome == "ok" {
		if pages > 0 {
			m.pagesRendered.Observe(float64(pages))
		}
		m.pdfBytes.Observe(float64(size))
	}
}

func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
