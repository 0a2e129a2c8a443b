// Package metrics provides Prometheus metrics for the family API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LayoutComputationsTotal tracks layout recomputations by strategy and
	// cache outcome
	LayoutComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "family",
			Subsystem: "layout",
			Name:      "computations_total",
			Help:      "Total number of layout computations by strategy and cache outcome",
		},
		[]string{"strategy", "outcome"},
	)

	// LayoutDuration tracks layout computation duration in seconds
	LayoutDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "family",
			Subsystem: "layout",
			Name:      "duration_seconds",
			Help:      "Duration of layout computations in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"strategy"},
	)

	// PeopleTotal tracks person create/delete operations
	PeopleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "family",
			Subsystem: "store",
			Name:      "people_operations_total",
			Help:      "Total number of person store operations",
		},
		[]string{"operation"},
	)

	// RelationshipsTotal tracks relationship create/delete operations
	RelationshipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "family",
			Subsystem: "store",
			Name:      "relationship_operations_total",
			Help:      "Total number of relationship store operations",
		},
		[]string{"operation"},
	)

	// ShareLinksTotal tracks share link operations by outcome
	ShareLinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "family",
			Subsystem: "share",
			Name:      "links_total",
			Help:      "Total number of share link operations by outcome",
		},
		[]string{"operation", "outcome"},
	)
)
