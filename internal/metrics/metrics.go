package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	TopUpsCreated        prometheus.Counter
	TransactionsCreated  prometheus.Counter
	CallbacksTotal       *prometheus.CounterVec
	StatusOverridesTotal *prometheus.CounterVec
	LedgerDeltasApplied  *prometheus.CounterVec

	// Gateway Metrics
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestDuration *prometheus.HistogramVec

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers every collector against the given registerer.
// Tests pass a fresh registry so repeated construction does not collide.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storepay_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storepay_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "storepay_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		TopUpsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "storepay_topups_created_total",
				Help: "Total number of top up requests created",
			},
		),
		TransactionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "storepay_transactions_created_total",
				Help: "Total number of purchase transactions created",
			},
		),
		CallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storepay_callbacks_total",
				Help: "Total number of gateway callbacks by processing result",
			},
			[]string{"result"},
		),
		StatusOverridesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storepay_status_overrides_total",
				Help: "Total number of transaction status updates by target status",
			},
			[]string{"status"},
		),
		LedgerDeltasApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storepay_ledger_deltas_applied_total",
				Help: "Total number of balance deltas applied by direction",
			},
			[]string{"direction"},
		),

		GatewayRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storepay_gateway_requests_total",
				Help: "Total number of outbound payment gateway requests",
			},
			[]string{"endpoint", "outcome"},
		),
		GatewayRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storepay_gateway_request_duration_seconds",
				Help:    "Duration of outbound payment gateway requests in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"endpoint"},
		),

		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storepay_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storepay_db_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "table"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordTopUpCreated() {
	m.TopUpsCreated.Inc()
}

func (m *Metrics) RecordTransactionCreated() {
	m.TransactionsCreated.Inc()
}

func (m *Metrics) RecordCallback(result string) {
	m.CallbacksTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordStatusOverride(status string) {
	m.StatusOverridesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordLedgerDelta(direction string) {
	m.LedgerDeltasApplied.WithLabelValues(direction).Inc()
}

func (m *Metrics) RecordGatewayRequest(endpoint, outcome string, duration time.Duration) {
	m.GatewayRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.GatewayRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordDBQuery(operation, table, status string, duration time.Duration) {
	m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
