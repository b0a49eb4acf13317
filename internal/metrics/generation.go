package metrics

import "github.com/prometheus/client_golang/prometheus"

// Generation Prometheus metrics.
var (
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scentdex",
			Name:      "generation_requests_total",
			Help:      "Total number of explanation generation attempts",
		},
		[]string{"tier", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scentdex",
			Name:      "generation_request_duration_seconds",
			Help:      "Explanation generation duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tier"},
	)

	GenerationFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scentdex",
			Name:      "generation_fallbacks_total",
			Help:      "Total number of fallbacks past a generation tier",
		},
		[]string{"from_tier", "reason"},
	)

	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scentdex",
			Name:      "generation_tokens_total",
			Help:      "Total generation tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	RecommendationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scentdex",
			Name:      "recommendation_cache_total",
			Help:      "Recommendation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "stale"
	)

	RecommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scentdex",
			Name:      "recommendations_served_total",
			Help:      "Total recommendation requests served",
		},
		[]string{"strategy", "degraded"},
	)
)

// RegisterEngineMetrics registers all engine metrics with the default
// registry. Called explicitly from the composition root (no init()).
func RegisterEngineMetrics() {
	prometheus.MustRegister(
		GenerationRequestsTotal,
		GenerationRequestDuration,
		GenerationFallbacksTotal,
		GenerationTokensTotal,
		RecommendationCacheTotal,
		RecommendationsServedTotal,
	)
}
