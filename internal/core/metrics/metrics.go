package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TransactionsProcessed *prometheus.CounterVec
	TransactionsRejected  *prometheus.CounterVec
	PersistenceErrors     prometheus.Counter

	ClassifierRequests *prometheus.CounterVec
	ClassifierDuration prometheus.Histogram

	CategoryCacheLookups *prometheus.CounterVec
	CategoryCacheErrors  *prometheus.CounterVec
}

// NewMetrics registers every collector on reg. Pass prometheus.DefaultRegisterer
// to expose them on /metrics, or a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_processed_total",
				Help: "Total number of transactions routed and persisted",
			},
			[]string{"rail"},
		),
		TransactionsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_rejected_total",
				Help: "Total number of transactions rejected by validation",
			},
			[]string{"reason"},
		),
		PersistenceErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_persistence_errors_total",
				Help: "Total number of failed transaction inserts",
			},
		),
		ClassifierRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_classifier_requests_total",
				Help: "Total number of external classification calls by outcome",
			},
			[]string{"outcome"},
		),
		ClassifierDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_classifier_request_duration_seconds",
				Help:    "Duration of external classification calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		CategoryCacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_category_cache_lookups_total",
				Help: "Total number of category cache lookups by result",
			},
			[]string{"result"},
		),
		CategoryCacheErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_category_cache_errors_total",
				Help: "Total number of category cache store failures by operation",
			},
			[]string{"operation"},
		),
	}
}
