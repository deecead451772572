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

package infer

import (
	metricsutil "github.com/ntamas/biopython/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type inferMetrics struct {
	queries       *prometheus.CounterVec
	expansions    prometheus.Histogram
	limitExceeded prometheus.Counter
}

var metrics inferMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer, Subsystem: "infer"}
	metrics = inferMetrics{
		queries: mr.NewCounterVec("queries_total",
			"The number of queries solved, partitioned by which endpoints were bound.",
			"kind"),
		expansions: mr.NewHistogram("expansions",
			`The number of derived relationships each query expanded before reaching
a fixpoint, an answer, or the search limit.`,
			prometheus.ExponentialBuckets(1, 4, 10)),
		limitExceeded: mr.NewCounter("search_limit_exceeded_total",
			"The number of queries abandoned because they exceeded the search limit."),
	}
}
