// Package metrics exposes Prometheus counters for the catalog server.
package metrics

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	assetRequestsTotal  *prometheus.CounterVec
	qrCodesTotal        prometheus.Counter
	winesSavedTotal     *prometheus.CounterVec
	scanRunsTotal       *prometheus.CounterVec
}

func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "winelink_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "winelink_http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	m.assetRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "winelink_asset_requests_total",
			Help: "Asset requests by kind (description, bottle) and result (served, not_found)",
		},
		[]string{"kind", "result"},
	)
	m.qrCodesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "winelink_qr_codes_generated_total",
			Help: "Total number of QR codes rendered",
		},
	)
	m.winesSavedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "winelink_wines_saved_total",
			Help: "Management form submissions by outcome (created, updated, rejected)",
		},
		[]string{"outcome"},
	)
	m.scanRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "winelink_scan_runs_total",
			Help: "Reconciliation runs by result (ok, store_error)",
		},
		[]string{"result"},
	)

	for _, c := range m.collectors() {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.assetRequestsTotal,
		m.qrCodesTotal,
		m.winesSavedTotal,
		m.scanRunsTotal,
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:      log.New(os.Stderr, "metrics handler: ", log.LstdFlags),
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

// A nil *Metrics records nothing, so callers never need to check.

func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, seconds float64) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) RecordAsset(kind string, served bool) {
	if m == nil {
		return
	}
	result := "served"
	if !served {
		result = "not_found"
	}
	m.assetRequestsTotal.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) RecordQRCode() {
	if m == nil {
		return
	}
	m.qrCodesTotal.Inc()
}

func (m *Metrics) RecordWineSaved(outcome string) {
	if m == nil {
		return
	}
	m.winesSavedTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordScan(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "store_error"
	}
	m.scanRunsTotal.WithLabelValues(result).Inc()
}
