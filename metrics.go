package s3templates

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var resolveCacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "s3templates_resolve_cache_hits",
	Help: "Template resolutions answered from the object cache",
})

var resolveCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
	Name: "s3templates_resolve_cache_misses",
	Help: "Template resolutions that missed the object cache",
})

var bucketRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "s3templates_bucket_refreshes",
	Help: "Full bucket listings triggered by cache misses or explicit refresh",
}, []string{"status"})

var bucketRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "s3templates_bucket_refresh_duration",
	Help:    "Time to drain a full bucket listing",
	Buckets: prometheus.ExponentialBucketsRange(0.001, 30, 20),
})
