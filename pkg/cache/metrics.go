package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks snapshots served from a store
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hn_cache_hits_total",
			Help: "Total number of identifier cache hits",
		},
		[]string{"store"}, // "memory", "redis"
	)

	// CacheMisses tracks absent or expired snapshots
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hn_cache_misses_total",
			Help: "Total number of identifier cache misses",
		},
		[]string{"store"},
	)

	// CacheErrors tracks store operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hn_cache_errors_total",
			Help: "Total number of identifier store errors",
		},
		[]string{"operation"}, // "load", "save"
	)

	// CachedIdentifiers tracks the length of the last stored list
	CachedIdentifiers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hn_cache_identifiers",
			Help: "Number of identifiers in the last stored snapshot",
		},
	)
)
