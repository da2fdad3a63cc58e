package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resilience_analyses_total",
		Help: "Total number of route analysis requests",
	})
	AnalysisDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "resilience_analysis_duration_ms",
		Help:    "End-to-end analysis duration in milliseconds",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})
	NoRoutesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resilience_no_routes_total",
		Help: "Total analysis requests where both route providers returned nothing",
	})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resilience_provider_requests_total",
		Help: "Total outbound provider requests",
	}, []string{"provider"})
	ProviderFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resilience_provider_failures_total",
		Help: "Total outbound provider requests that failed after retries",
	}, []string{"provider"})
	ProviderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resilience_provider_duration_ms",
		Help:    "Outbound provider call duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	}, []string{"provider"})
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resilience_sample_cache_hits_total",
		Help: "Total sample cache hits",
	}, []string{"cache"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resilience_sample_cache_misses_total",
		Help: "Total sample cache misses",
	}, []string{"cache"})
)

func init() {
	prometheus.MustRegister(
		AnalysesTotal,
		AnalysisDurationMs,
		NoRoutesTotal,
		ProviderRequestsTotal,
		ProviderFailuresTotal,
		ProviderDurationMs,
		CacheHitsTotal,
		CacheMissesTotal,
	)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }
