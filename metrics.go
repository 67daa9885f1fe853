package hatchclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle,
// the offline queue and hybrid fallbacks. A nil collector records nothing.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	retriesTotal *prometheus.CounterVec

	circuitBreakerState *prometheus.GaugeVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheSize   prometheus.Gauge

	queueLength  prometheus.Gauge
	queuedTotal  *prometheus.CounterVec
	replaysTotal *prometheus.CounterVec

	fallbacksTotal *prometheus.CounterVec

	errorsTotal *prometheus.CounterVec

	registerer prometheus.Registerer
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(registry)
	return &MetricsCollector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatchclient_requests_total",
				Help: "Total number of API requests made",
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hatchclient_request_duration_seconds",
				Help:    "Duration of API requests in seconds, retries included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		requestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hatchclient_requests_in_flight",
				Help: "Number of API requests currently in flight",
			},
			[]string{"method", "endpoint"},
		),
		retriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatchclient_retries_total",
				Help: "Total number of retry attempts",
			},
			[]string{"method", "endpoint", "reason"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hatchclient_circuit_breaker_state",
				Help: "Current state of circuit breaker (0=closed, 1=open, 2=half-open)",
			},
			[]string{"name"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatchclient_cache_hits_total",
				Help: "Total number of response cache hits",
			},
			[]string{"method", "endpoint"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatchclient_cache_misses_total",
				Help: "Total number of response cache misses",
			},
			[]string{"method", "endpoint"},
		),
		cacheSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hatchclient_cache_size",
				Help: "Current number of entries in the response cache",
			},
		),
		queueLength: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hatchclient_offline_queue_length",
				Help: "Requests waiting in the offline queue",
			},
		),
		queuedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatchclient_offline_queued_total",
				Help: "Total number of requests placed in the offline queue",
			},
			[]string{"method"},
		),
		replaysTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatchclient_offline_replays_total",
				Help: "Offline queue replays by outcome (success, requeued, dropped)",
			},
			[]string{"result"},
		),
		fallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatchclient_fallbacks_total",
				Help: "Hybrid mode responses served without the backend, by source (stale, mock)",
			},
			[]string{"source", "endpoint"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatchclient_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type", "method", "endpoint"},
		),
		registerer: registry,
	}
}

// RecordRequest records the status of one attempt.
func (mc *MetricsCollector) RecordRequest(method, endpoint string, statusCode int) {
	if mc == nil {
		return
	}

	mc.requestsTotal.WithLabelValues(method, strconv.Itoa(statusCode), endpoint).Inc()
}

// RecordDuration observes the total time spent on a call.
func (mc *MetricsCollector) RecordDuration(method, endpoint string, duration time.Duration) {
	if mc == nil {
		return
	}

	mc.requestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRequestStart increments in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// RecordRequestEnd decrements in-flight gauge.
func (mc *MetricsCollector) RecordRequestEnd(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Dec()
}

// RecordRetry counts a retry; reason is "rate_limited" or "network".
func (mc *MetricsCollector) RecordRetry(method, endpoint, reason string) {
	if mc == nil {
		return
	}

	mc.retriesTotal.WithLabelValues(method, endpoint, reason).Inc()
}

// RecordCircuitBreakerState sets gauge to breaker state.
func (mc *MetricsCollector) RecordCircuitBreakerState(name string, state CircuitState) {
	if mc == nil {
		return
	}

	mc.circuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCacheHit increments cache hit counter.
func (mc *MetricsCollector) RecordCacheHit(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.cacheHits.WithLabelValues(method, endpoint).Inc()
}

// RecordCacheMiss increments cache miss counter.
func (mc *MetricsCollector) RecordCacheMiss(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.cacheMisses.WithLabelValues(method, endpoint).Inc()
}

// RecordCacheSize sets cache size gauge.
func (mc *MetricsCollector) RecordCacheSize(size int) {
	if mc == nil {
		return
	}

	mc.cacheSize.Set(float64(size))
}

// RecordQueued counts a request placed in the offline queue.
func (mc *MetricsCollector) RecordQueued(method string, length int) {
	if mc == nil {
		return
	}

	mc.queuedTotal.WithLabelValues(method).Inc()
	mc.queueLength.Set(float64(length))
}

// RecordQueueLength sets the offline queue gauge.
func (mc *MetricsCollector) RecordQueueLength(length int) {
	if mc == nil {
		return
	}

	mc.queueLength.Set(float64(length))
}

// RecordReplay counts a drained request by outcome.
func (mc *MetricsCollector) RecordReplay(result string) {
	if mc == nil {
		return
	}

	mc.replaysTotal.WithLabelValues(result).Inc()
}

// RecordFallback counts a hybrid-mode response served from source.
func (mc *MetricsCollector) RecordFallback(source, endpoint string) {
	if mc == nil {
		return
	}

	mc.fallbacksTotal.WithLabelValues(source, endpoint).Inc()
}

// RecordError increments error counter by type.
func (mc *MetricsCollector) RecordError(errorType, method, endpoint string) {
	if mc == nil {
		return
	}

	mc.errorsTotal.WithLabelValues(errorType, method, endpoint).Inc()
}

// Registerer exposes the registerer the collectors were created on.
func (mc *MetricsCollector) Registerer() prometheus.Registerer {
	return mc.registerer
}
