// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package reconciler

import "github.com/prometheus/client_golang/prometheus"

// metrics are the observability counterparts of cockroach's lease manager
// acquisition counters, adapted to the catalog cache's own update path.
// They are registered once per Reconciler instance against the supplied
// registerer (or prometheus.DefaultRegisterer if nil), following the same
// per-subsystem metric struct convention.
type metrics struct {
	ready               prometheus.Gauge
	lastSyncedVersion   prometheus.Gauge
	deltaLogSize        prometheus.Gauge
	updateBatchesTotal  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &metrics{
		ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_ready",
			Help: "1 if the catalog cache has applied at least one update batch.",
		}),
		lastSyncedVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_last_synced_version",
			Help: "The highest catalog version definitively absorbed from broadcasts.",
		}),
		deltaLogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_delta_log_size",
			Help: "Number of tombstone entries currently held in the delta log.",
		}),
		updateBatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_update_batches_total",
			Help: "Update batches applied, partitioned by outcome.",
		}, []string{"outcome"}),
	}
	for _, c := range []prometheus.Collector{m.ready, m.lastSyncedVersion, m.deltaLogSize, m.updateBatchesTotal} {
		// Registration is best-effort: a duplicate registration (e.g. two
		// Reconcilers in one test process sharing the default registerer)
		// must not panic the cache.
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
		}
	}
	return m
}
