//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics holds the engine-wide metric vectors. Consumers curry
// them with their own label values, see adapters/repos/graph/metrics.go.
type PrometheusMetrics struct {
	Registerer prometheus.Registerer

	DeleteEdgesDurations *prometheus.HistogramVec
	PartitionResults     *prometheus.CounterVec
	LockConflicts        *prometheus.CounterVec
	BatchOperations      *prometheus.HistogramVec
}

// NewPrometheusMetrics creates and registers all vectors on the given
// registerer; nil means the default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &PrometheusMetrics{
		Registerer: reg,
		DeleteEdgesDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "graphkv_delete_edges_durations_ms",
			Help:    "Duration of complete delete-edges requests",
			Buckets: latencyBuckets,
		}, []string{"space"}),
		PartitionResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphkv_partition_results_total",
			Help: "Per-partition mutation outcomes by result code",
		}, []string{"space", "code"}),
		LockConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphkv_lock_conflicts_total",
			Help: "Edge-level memory lock conflicts",
		}, []string{"space"}),
		BatchOperations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "graphkv_batch_operations",
			Help:    "Number of staged operations per committed batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"space"}),
	}

	reg.MustRegister(m.DeleteEdgesDurations, m.PartitionResults,
		m.LockConflicts, m.BatchOperations)

	return m
}

var latencyBuckets = []float64{1, 5, 10, 50, 100, 500, 1000, 5000}
