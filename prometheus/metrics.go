package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors, registered on their own registry
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Resource metrics
	CompanyOperationsCounter  *prometheus.CounterVec
	InvoiceOperationsCounter  *prometheus.CounterVec
	IndustryOperationsCounter *prometheus.CounterVec

	// Payment state changes applied by invoice updates
	InvoicePaymentsCounter *prometheus.CounterVec
}

// NewMetrics creates the service metrics with the given name prefix
func NewMetrics(prefix string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		DbOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		CompanyOperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_company_operations_total",
				Help: "Total number of company operations",
			},
			[]string{"operation"},
		),

		InvoiceOperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_invoice_operations_total",
				Help: "Total number of invoice operations",
			},
			[]string{"operation"},
		),

		IndustryOperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_industry_operations_total",
				Help: "Total number of industry operations",
			},
			[]string{"operation"},
		),

		InvoicePaymentsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_invoice_payments_total",
				Help: "Invoice updates by payment transition (paid, unpaid, unchanged)",
			},
			[]string{"transition"},
		),
	}
}

// Handler exposes the registry for scraping
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// TrackDBOperation returns a function that records the duration of a database operation
func (m *Metrics) TrackDBOperation(operation string) func(startTime time.Time) {
	return func(startTime time.Time) {
		m.DbOperationDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
	}
}

// RecordCompanyOperation counts a company endpoint call
func (m *Metrics) RecordCompanyOperation(operation string) {
	m.CompanyOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordInvoiceOperation counts an invoice endpoint call
func (m *Metrics) RecordInvoiceOperation(operation string) {
	m.InvoiceOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordIndustryOperation counts an industry endpoint call
func (m *Metrics) RecordIndustryOperation(operation string) {
	m.IndustryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordInvoicePayment counts a paid, unpaid or unchanged transition
func (m *Metrics) RecordInvoicePayment(transition string) {
	m.InvoicePaymentsCounter.WithLabelValues(transition).Inc()
}
