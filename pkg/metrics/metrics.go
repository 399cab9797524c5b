// Package metrics exposes the Prometheus registry used by the news proxy.
// All metrics are defined in their respective packages (cache, client, news)
// to maintain modularity and avoid circular dependencies.
//
// This package provides the scrape handler and documentation for all
// available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the Prometheus registry used by the news proxy.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler returns the scrape handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - hn_cache_hits_total{store} (Counter): Identifier list served from the store
//   - hn_cache_misses_total{store} (Counter): Absent or expired snapshot, upstream fetch
//   - hn_cache_errors_total{operation} (Counter): Store load/save failures
//   - hn_cached_identifiers (Gauge): Length of the last cached identifier list
//
// Upstream Metrics (pkg/client):
//   - hn_upstream_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - hn_upstream_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - hn_upstream_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Page Metrics (pkg/news):
//   - hn_pages_served_total (Counter): Pages assembled
//   - hn_items_omitted_total (Counter): Items dropped because they could not be resolved
//   - hn_degraded_responses_total{reason} (Counter): Empty responses served instead of an error
//   - hn_fetch_page_duration_seconds (Histogram): Page assembly duration
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(hn_cache_hits_total[5m])) /
//   (sum(rate(hn_cache_hits_total[5m])) + sum(rate(hn_cache_misses_total[5m])))
//
//   # Degraded Page Rate
//   sum(rate(hn_degraded_responses_total[5m])) / rate(hn_pages_served_total[5m])
//
//   # P95 Upstream Latency
//   histogram_quantile(0.95, rate(hn_upstream_request_duration_seconds_bucket[5m]))
