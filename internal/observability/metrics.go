package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keeper_messages_processed_total",
		Help: "The total number of processed forwarded messages by outcome",
	}, []string{"status"})

	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keeper_llm_requests_total",
		Help: "Total number of LLM requests",
	}, []string{"model", "status"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "keeper_llm_request_duration_seconds",
		Help:    "Duration of LLM requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})

	CategoriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keeper_categories_created_total",
		Help: "Total number of newly created categories",
	})
)
