package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Admiralty
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	ShipsCreatedTotal prometheus.Counter
	ShipsUpdatedTotal prometheus.Counter
	ShipsDeletedTotal prometheus.Counter
	FleetSize         prometheus.Gauge
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admiralty_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "admiralty_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "admiralty_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admiralty_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "admiralty_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Cache Metrics
		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admiralty_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admiralty_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		ShipsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "admiralty_ships_created_total",
				Help: "Total ship records created",
			},
		),
		ShipsUpdatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "admiralty_ships_updated_total",
				Help: "Total ship records updated",
			},
		),
		ShipsDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "admiralty_ships_deleted_total",
				Help: "Total ship records deleted",
			},
		),
		FleetSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "admiralty_fleet_size",
				Help: "Ship records currently registered",
			},
		),
	}
}

// ShipCreated records a successful create. Safe on a nil registry so
// services built without metrics stay quiet.
func (r *MetricsRegistry) ShipCreated() {
	if r == nil {
		return
	}
	r.ShipsCreatedTotal.Inc()
	r.FleetSize.Inc()
}

// ShipUpdated records a successful update.
func (r *MetricsRegistry) ShipUpdated() {
	if r == nil {
		return
	}
	r.ShipsUpdatedTotal.Inc()
}

// ShipDeleted records a successful delete.
func (r *MetricsRegistry) ShipDeleted() {
	if r == nil {
		return
	}
	r.ShipsDeletedTotal.Inc()
	r.FleetSize.Dec()
}

// SetFleetSize pins the fleet gauge to an authoritative count.
func (r *MetricsRegistry) SetFleetSize(n int64) {
	if r == nil {
		return
	}
	r.FleetSize.Set(float64(n))
}

// CacheHit records a cache hit for the given key pattern.
func (r *MetricsRegistry) CacheHit(pattern string) {
	if r == nil {
		return
	}
	r.CacheHitsTotal.WithLabelValues(pattern).Inc()
}

// CacheMiss records a cache miss for the given key pattern.
func (r *MetricsRegistry) CacheMiss(pattern string) {
	if r == nil {
		return
	}
	r.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

// ObserveDBQuery records one query execution of the given type.
func (r *MetricsRegistry) ObserveDBQuery(queryType string, seconds float64) {
	if r == nil {
		return
	}
	r.DBQueriesTotal.WithLabelValues(queryType).Inc()
	r.DBQueryDuration.WithLabelValues(queryType).Observe(seconds)
}
