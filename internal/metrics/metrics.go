// Package metrics provides the centralized Prometheus metrics registry for
// the betting optimizer.
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
	AnalysisRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betting_optimizer",
		Name:      "analysis_runs_total",
		Help:      "Total number of analysis pipeline runs",
	})
	AnalysisErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betting_optimizer",
		Name:      "analysis_errors_total",
		Help:      "Total number of failed analysis runs",
	})
	FixturesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betting_optimizer",
		Name:      "fixtures_processed_total",
		Help:      "Total number of fixtures analyzed",
	})
	FixturesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betting_optimizer",
		Name:      "fixtures_skipped_total",
		Help:      "Total number of fixtures skipped for missing odds or predictions",
	})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "betting_optimizer",
		Name:      "provider_requests_total",
		Help:      "Total number of API-Football requests by endpoint",
	}, []string{"endpoint"})
)

// Gauge metrics
var (
	SinglesEmitted = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "betting_optimizer",
		Name:      "singles_emitted",
		Help:      "Singles published by the most recent analysis run",
	})
	AccumulatorsEmitted = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "betting_optimizer",
		Name:      "accumulators_emitted",
		Help:      "Accumulators published by the most recent analysis run",
	})
	ProviderCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "betting_optimizer",
		Name:      "provider_cache_hit_ratio",
		Help:      "Hit ratio of the provider response cache",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "betting_optimizer",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of full analysis runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
	})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "betting_optimizer",
		Name:      "http_request_duration_seconds",
		Help:      "Latency of API endpoints in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysisRunsTotal)
		registry.MustRegister(AnalysisErrorsTotal)
		registry.MustRegister(FixturesProcessedTotal)
		registry.MustRegister(FixturesSkippedTotal)
		registry.MustRegister(ProviderRequestsTotal)

		registry.MustRegister(SinglesEmitted)
		registry.MustRegister(AccumulatorsEmitted)
		registry.MustRegister(ProviderCacheHitRatio)

		registry.MustRegister(AnalysisDuration)
		registry.MustRegister(HTTPRequestDuration)
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

// RecordAnalysisRun records a completed analysis run.
func RecordAnalysisRun(durationSeconds float64, singles, accumulators int) {
	AnalysisRunsTotal.Inc()
	AnalysisDuration.Observe(durationSeconds)
	SinglesEmitted.Set(float64(singles))
	AccumulatorsEmitted.Set(float64(accumulators))
}

// RecordAnalysisError records a failed analysis run.
func RecordAnalysisError() {
	AnalysisErrorsTotal.Inc()
}

// RecordFixtureProcessed records a fixture that entered scoring.
func RecordFixtureProcessed() {
	FixturesProcessedTotal.Inc()
}

// RecordFixtureSkipped records a fixture dropped before scoring.
func RecordFixtureSkipped() {
	FixturesSkippedTotal.Inc()
}

// RecordProviderRequest records one upstream request by endpoint.
func RecordProviderRequest(endpoint string) {
	ProviderRequestsTotal.WithLabelValues(endpoint).Inc()
}

// UpdateCacheHitRatio updates the provider cache hit ratio gauge.
func UpdateCacheHitRatio(ratio float64) {
	ProviderCacheHitRatio.Set(ratio)
}

// RecordHTTPRequest records API endpoint latency.
func RecordHTTPRequest(path string, durationSeconds float64) {
	HTTPRequestDuration.WithLabelValues(path).Observe(durationSeconds)
}
