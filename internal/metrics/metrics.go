// Package metrics provides the centralized Prometheus registry for the
// pricing engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	CalibrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "calibrations_total",
		Help:      "Total number of calibration attempts by input shape",
	}, []string{"shape"})
	CalibrationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "calibration_failures_total",
		Help:      "Total number of calibrations that found no consistent model",
	})
	MarketQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "market_queries_total",
		Help:      "Total number of market condition evaluations",
	})
	SheetsPricedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "sheets_priced_total",
		Help:      "Total number of full market sheets produced",
	})
	ModelCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "model_cache_hits_total",
		Help:      "Total number of calibrated models served from cache",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by route and status code",
	}, []string{"route", "status"})
)

// Histogram metrics
var (
	CalibrationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fairline",
		Name:      "calibration_duration_seconds",
		Help:      "Duration of calibration searches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	SheetDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fairline",
		Name:      "sheet_duration_seconds",
		Help:      "Duration of full market sheet construction in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(CalibrationsTotal)
		registry.MustRegister(CalibrationFailuresTotal)
		registry.MustRegister(MarketQueriesTotal)
		registry.MustRegister(SheetsPricedTotal)
		registry.MustRegister(ModelCacheHitsTotal)
		registry.MustRegister(HTTPRequestsTotal)

		registry.MustRegister(CalibrationDuration)
		registry.MustRegister(SheetDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordCalibration records a calibration attempt and its duration.
func RecordCalibration(shape string, durationSeconds float64) {
	CalibrationsTotal.WithLabelValues(shape).Inc()
	CalibrationDuration.Observe(durationSeconds)
}

// RecordCalibrationFailure records a calibration that found no model.
func RecordCalibrationFailure(shape string) {
	CalibrationsTotal.WithLabelValues(shape).Inc()
	CalibrationFailuresTotal.Inc()
}

// RecordMarketQuery records one market condition evaluation.
func RecordMarketQuery() {
	MarketQueriesTotal.Inc()
}

// RecordSheetPriced records a completed market sheet and its duration.
func RecordSheetPriced(durationSeconds float64) {
	SheetsPricedTotal.Inc()
	SheetDuration.Observe(durationSeconds)
}

// RecordModelCacheHit records a calibrated model served from cache.
func RecordModelCacheHit() {
	ModelCacheHitsTotal.Inc()
}

// RecordHTTPRequest records one HTTP request outcome.
func RecordHTTPRequest(route, status string) {
	HTTPRequestsTotal.WithLabelValues(route, status).Inc()
}
