package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_search_queries_total",
			Help: "Total number of search queries processed",
		},
		[]string{"path"}, // semantic | fallback | passthrough | empty
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "discovery_search_duration_seconds",
			Help: "Duration of ranking a candidate set in seconds",
		},
		[]string{"path"},
	)

	ResultCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_result_cache_hits_total",
			Help: "Result cache hits by lookup kind",
		},
		[]string{"kind"},
	)

	ResultCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_result_cache_misses_total",
			Help: "Result cache misses by lookup kind",
		},
		[]string{"kind"},
	)

	IndexRebuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_index_rebuilds_total",
			Help: "Total number of ranking index rebuilds",
		},
	)

	IndexedGigs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discovery_indexed_gigs",
			Help: "Number of gigs in the current ranking index snapshot",
		},
	)

	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_recommendations_served_total",
			Help: "Total number of recommendation responses served",
		},
	)
)
