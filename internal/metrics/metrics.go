// Package metrics exposes Prometheus collectors for the HTTP layer and the
// commission lifecycle. All record methods are safe on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	TransitionsTotal      *prometheus.CounterVec
	StockDeductionsTotal  *prometheus.CounterVec
	LabelsPrintedTotal    *prometheus.CounterVec
	AuditScansTotal       prometheus.Counter
	ChangePublishFailures *prometheus.CounterVec
	CommissionsPurged     prometheus.Counter
}

// New creates and registers all collectors under namespace.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		TransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commission_transitions_total",
			Help:      "Committed commission status transitions",
		}, []string{"from", "to"}),
		StockDeductionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_deductions_total",
			Help:      "Stock ledger deductions by outcome",
		}, []string{"result"}),
		LabelsPrintedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "labels_printed_total",
			Help:      "Labels marked as printed by outcome",
		}, []string{"result"}),
		AuditScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_scans_total",
			Help:      "Commissions verified by audit scan",
		}),
		ChangePublishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_publish_failures_total",
			Help:      "Change notifications that could not be published",
		}, []string{"notifier"}),
		CommissionsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commissions_purged_total",
			Help:      "Commissions permanently removed from the trash",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal, m.HTTPRequestDuration,
		m.TransitionsTotal, m.StockDeductionsTotal, m.LabelsPrintedTotal,
		m.AuditScansTotal, m.ChangePublishFailures, m.CommissionsPurged,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *Metrics) RecordDeduction(result string) {
	if m == nil {
		return
	}
	m.StockDeductionsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordLabelPrinted(ok bool) {
	if m == nil {
		return
	}
	result := "printed"
	if !ok {
		result = "failed"
	}
	m.LabelsPrintedTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordAuditScan() {
	if m == nil {
		return
	}
	m.AuditScansTotal.Inc()
}

func (m *Metrics) RecordPublishFailure(notifier string) {
	if m == nil {
		return
	}
	m.ChangePublishFailures.WithLabelValues(notifier).Inc()
}

func (m *Metrics) RecordPurged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.CommissionsPurged.Add(float64(n))
}
