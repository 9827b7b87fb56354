package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Запросы к новостным провайдерам: provider, result (success, empty, failure, rejected)
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_reader_provider_requests_total",
			Help: "Number of requests made to news providers by result",
		},
		[]string{"provider", "result"},
	)

	// 0 = closed, 1 = half-open, 2 = open
	ProviderBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "news_reader_provider_breaker_state",
			Help: "Circuit breaker state per news provider",
		},
		[]string{"provider"},
	)

	// Результаты fetch в координаторе: succeeded, empty, cached, failed, skipped, stale
	FeedFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_reader_feed_fetches_total",
			Help: "Feed fetch outcomes observed by the coordinator",
		},
		[]string{"outcome"},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_reader_storage_errors_total",
			Help: "Key-value store failures by operation",
		},
		[]string{"op"},
	)

	Summaries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_reader_summaries_total",
			Help: "Summarization requests by intent and result",
		},
		[]string{"intent", "result"},
	)
)
