package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommend HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommend endpoint",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommend requests",
	})

	// How many times the LLM was unreachable and retrieval order was served instead
	LLMFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_llm_fallbacks_total",
		Help: "Recommendations served from raw retrieval order after an LLM failure",
	})

	// Cache hits for recommend responses
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_cache_hits_total",
		Help: "Recommend responses served from the response cache",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequestsTotal,
		LLMFallbacksTotal,
		CacheHitsTotal,
	)
}
