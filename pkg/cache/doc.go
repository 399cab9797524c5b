// Package cache memoizes the upstream list of newest story identifiers.
//
// The list is held as a single Snapshot under a fixed key and is considered
// fresh for DefaultTTL (5 minutes) after it was stored. A miss or an expired
// snapshot triggers exactly one upstream request; a failed request leaves the
// slot untouched so the next call retries.
//
// # Basic Usage
//
//	ids := cache.NewIdentifierCache(hnClient)
//	list, err := ids.Identifiers(ctx)
//	if err != nil {
//		// upstream unavailable, nothing cached
//	}
//
// # Shared Snapshot
//
// Replicas can share one snapshot through Redis:
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	ids := cache.NewIdentifierCache(hnClient,
//		cache.WithStore(cache.NewRedisStore(redisClient)),
//	)
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - hn_cache_hits_total{store} - Snapshot served from the store
//   - hn_cache_misses_total{store} - Snapshot absent or expired
//   - hn_cache_errors_total{operation} - Store load/save errors
//   - hn_cache_identifiers - Length of the last stored identifier list
//
// Concurrent misses are not coalesced: each caller may hit upstream and the
// last write wins. Fetching the list is idempotent, so no invariant depends
// on single-flight behavior.
package cache
