package providers

import (
	"gatewatch/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncMessagesProcessed(group string)
	IncDuplicatesSkipped(group string)
	IncAlertsEmitted(alertType string)
	IncVehicleEvents()
	SetActiveVehicles(count int)
	IncFileLoadFailures()
	IncSinkWriteFailures(sink string)
	IncTimestampFallbacks()
	IncCacheHits()
	IncCacheMisses()
	ObserveSweepDuration(duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	messagesProcessed   *prometheus.CounterVec
	duplicatesSkipped   *prometheus.CounterVec
	alertsEmitted       *prometheus.CounterVec
	vehicleEvents       prometheus.Counter
	activeVehicles      prometheus.Gauge
	fileLoadFailures    prometheus.Counter
	sinkWriteFailures   *prometheus.CounterVec
	timestampFallbacks  prometheus.Counter
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	sweepDuration       prometheus.Histogram
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncMessagesProcessed(group string) {
	m.messagesProcessed.WithLabelValues(group).Inc()
}

func (m *MetricsProvider) IncDuplicatesSkipped(group string) {
	m.duplicatesSkipped.WithLabelValues(group).Inc()
}

func (m *MetricsProvider) IncAlertsEmitted(alertType string) {
	m.alertsEmitted.WithLabelValues(alertType).Inc()
}

func (m *MetricsProvider) IncVehicleEvents() {
	m.vehicleEvents.Inc()
}

func (m *MetricsProvider) SetActiveVehicles(count int) {
	m.activeVehicles.Set(float64(count))
}

func (m *MetricsProvider) IncFileLoadFailures() {
	m.fileLoadFailures.Inc()
}

func (m *MetricsProvider) IncSinkWriteFailures(sink string) {
	m.sinkWriteFailures.WithLabelValues(sink).Inc()
}

func (m *MetricsProvider) IncTimestampFallbacks() {
	m.timestampFallbacks.Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveSweepDuration(duration time.Duration) {
	m.sweepDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatewatch_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gatewatch_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		messagesProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatewatch_messages_processed_total",
			Help: "Total number of chat messages processed per group",
		}, []string{"group"}),

		duplicatesSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatewatch_duplicates_skipped_total",
			Help: "Total number of messages skipped by the dedup ledger",
		}, []string{"group"}),

		alertsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatewatch_alerts_total",
			Help: "Total number of alerts appended to the alerts sink",
		}, []string{"type"}),

		vehicleEvents: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatewatch_vehicle_events_total",
			Help: "Total number of completed entry/exit vehicle events",
		}),

		activeVehicles: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gatewatch_active_vehicles",
			Help: "Number of vehicles currently inside (entry without exit)",
		}),

		fileLoadFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatewatch_file_load_failures_total",
			Help: "Total number of chat log files skipped because they failed to load",
		}),

		sinkWriteFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatewatch_sink_write_failures_total",
			Help: "Total number of dropped JSONL records per sink",
		}, []string{"sink"}),

		timestampFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatewatch_timestamp_fallbacks_total",
			Help: "Total number of unparseable timestamps replaced with wall-clock now",
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatewatch_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatewatch_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		sweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatewatch_sweep_duration_seconds",
			Help:    "Duration of staleness sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatewatch_persistence_duration_seconds",
			Help:    "Duration of state snapshot operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncMessagesProcessed(_ string)                    {}
func (n *noopMetrics) IncDuplicatesSkipped(_ string)                    {}
func (n *noopMetrics) IncAlertsEmitted(_ string)                        {}
func (n *noopMetrics) IncVehicleEvents()                                {}
func (n *noopMetrics) SetActiveVehicles(_ int)                          {}
func (n *noopMetrics) IncFileLoadFailures()                             {}
func (n *noopMetrics) IncSinkWriteFailures(_ string)                    {}
func (n *noopMetrics) IncTimestampFallbacks()                           {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveSweepDuration(_ time.Duration)             {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
