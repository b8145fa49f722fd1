// Package cache memoizes classifier answers keyed by reference and canonical
// amount. There is no TTL and no eviction: a stored category is returned for
// every later lookup of the same key.
package cache

import (
	"context"

	"github.com/Nzyazin/ledger/internal/core/classifier"
	"github.com/Nzyazin/ledger/internal/core/logger"
	"github.com/Nzyazin/ledger/internal/core/metrics"
	"github.com/shopspring/decimal"
)

type ComputeFunc func(ctx context.Context, key Key) classifier.Classification

type CategoryCache struct {
	store        Store
	log          logger.Logger
	metrics      *metrics.Metrics
	skipDegraded bool
}

type Option func(*CategoryCache)

// WithSkipDegraded keeps sentinel answers out of the store, so a key that
// failed once is classified again on its next lookup.
func WithSkipDegraded() Option {
	return func(c *CategoryCache) {
		c.skipDegraded = true
	}
}

func NewCategoryCache(store Store, log logger.Logger, m *metrics.Metrics, opts ...Option) *CategoryCache {
	c := &CategoryCache{store: store, log: log, metrics: m}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the stored category for key, or runs compute and
// stores its answer. compute runs without any cache lock held, so two
// concurrent misses on a fresh key may both call it; the first answer stored
// wins and both callers receive it. Sentinel answers are stored like any
// other unless WithSkipDegraded is set. A failing store never fails the
// lookup.
func (c *CategoryCache) GetOrCompute(ctx context.Context, key Key, compute ComputeFunc) string {
	category, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.metrics.CategoryCacheErrors.WithLabelValues("get").Inc()
		c.log.Warn("Category cache read failed", logger.ErrorField("error", err))
	}
	if ok {
		c.metrics.CategoryCacheLookups.WithLabelValues("hit").Inc()
		return category
	}
	c.metrics.CategoryCacheLookups.WithLabelValues("miss").Inc()

	result := compute(ctx, key)
	if result.Degraded() && c.skipDegraded {
		return result.Category
	}

	stored, err := c.store.PutIfAbsent(ctx, key, result.Category)
	if err != nil {
		c.metrics.CategoryCacheErrors.WithLabelValues("put").Inc()
		c.log.Warn("Category cache write failed", logger.ErrorField("error", err))
		return result.Category
	}
	return stored
}

type Classifier interface {
	Classify(ctx context.Context, reference, amount string) classifier.Classification
}

// CachedClassifier puts a CategoryCache in front of a Classifier.
type CachedClassifier struct {
	cache      *CategoryCache
	classifier Classifier
}

func NewCachedClassifier(cache *CategoryCache, c Classifier) *CachedClassifier {
	return &CachedClassifier{cache: cache, classifier: c}
}

func (cc *CachedClassifier) Categorize(ctx context.Context, reference string, amount decimal.Decimal) string {
	return cc.cache.GetOrCompute(ctx, NewKey(reference, amount), func(ctx context.Context, key Key) classifier.Classification {
		return cc.classifier.Classify(ctx, key.Reference, key.Amount)
	})
}
