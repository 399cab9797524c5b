package news

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesServedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hn_pages_served_total",
		Help: "Total pages assembled by the aggregation service",
	})

	itemsOmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hn_items_omitted_total",
		Help: "Total items dropped from a page because they could not be resolved",
	})

	degradedResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_degraded_responses_total",
		Help: "Total pages answered with an empty result by reason",
	}, []string{"reason"}) // "identifiers", "panic"

	fetchPageDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hn_fetch_page_duration_seconds",
		Help:    "Time to assemble one page in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
)
