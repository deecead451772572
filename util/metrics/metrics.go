// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics aids in defining Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the Prometheus namespace of every metric the project defines.
const Namespace = "goinfer"

// Registry encapsulates metrics creation and registration. Collectors are
// created in the project's Namespace under the Registry's Subsystem.
type Registry struct {
	R         prometheus.Registerer
	Subsystem string
}

// NewCounter returns a new created and registered Prometheus Counter.
func (mr Registry) NewCounter(name, help string) prometheus.Counter {
	pm := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: mr.Subsystem,
		Name:      name,
		Help:      help,
	})
	mr.R.MustRegister(pm)
	return pm
}

// NewCounterVec returns a new created and registered Prometheus CounterVec
// partitioned by the given labels.
func (mr Registry) NewCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	pm := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: mr.Subsystem,
		Name:      name,
		Help:      help,
	}, labels)
	mr.R.MustRegister(pm)
	return pm
}

// NewGauge returns a new created and registered Prometheus Gauge.
func (mr Registry) NewGauge(name, help string) prometheus.Gauge {
	pm := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: mr.Subsystem,
		Name:      name,
		Help:      help,
	})
	mr.R.MustRegister(pm)
	return pm
}

// NewSummary returns a new and registered Prometheus Summary with the usual
// 50/90/99th percentile objectives.
func (mr Registry) NewSummary(name, help string) prometheus.Summary {
	pm := prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace:  Namespace,
		Subsystem:  mr.Subsystem,
		Name:       name,
		Help:       help,
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	})
	mr.R.MustRegister(pm)
	return pm
}

// NewHistogram returns a new and registered Prometheus Histogram.
func (mr Registry) NewHistogram(name, help string, buckets []float64) prometheus.Histogram {
	pm := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: mr.Subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
	mr.R.MustRegister(pm)
	return pm
}
