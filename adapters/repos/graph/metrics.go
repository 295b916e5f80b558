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

package graph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/weaviate/graphkv/entities/resultcode"
	"github.com/weaviate/graphkv/usecases/monitoring"
)

type Metrics struct {
	logger     logrus.FieldLogger
	monitoring bool

	deleteEdgesTime  prometheus.Observer
	partitionResults *prometheus.CounterVec
	lockConflicts    prometheus.Counter
	batchOps         prometheus.Observer
}

func NewMetrics(logger logrus.FieldLogger, prom *monitoring.PrometheusMetrics,
	spaceName string,
) *Metrics {
	m := &Metrics{
		logger: logger,
	}

	if prom == nil {
		return m
	}

	m.monitoring = true
	m.deleteEdgesTime = prom.DeleteEdgesDurations.With(prometheus.Labels{
		"space": spaceName,
	})
	m.partitionResults = prom.PartitionResults.MustCurryWith(prometheus.Labels{
		"space": spaceName,
	})
	m.lockConflicts = prom.LockConflicts.With(prometheus.Labels{
		"space": spaceName,
	})
	m.batchOps = prom.BatchOperations.With(prometheus.Labels{
		"space": spaceName,
	})

	return m
}

func (m *Metrics) DeleteEdgesDone(start time.Time) {
	if !m.monitoring {
		return
	}
	m.deleteEdgesTime.Observe(float64(time.Since(start)) / float64(time.Millisecond))
}

func (m *Metrics) PartitionResult(code resultcode.Code) {
	if !m.monitoring {
		return
	}
	m.partitionResults.With(prometheus.Labels{"code": code.String()}).Inc()
}

func (m *Metrics) LockConflict() {
	if !m.monitoring {
		return
	}
	m.lockConflicts.Inc()
}

func (m *Metrics) BatchOps(n int) {
	if !m.monitoring {
		return
	}
	m.batchOps.Observe(float64(n))
}
