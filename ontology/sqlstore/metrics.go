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

package sqlstore

import (
	metricsutil "github.com/ntamas/biopython/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type sqlStoreMetrics struct {
	cacheLookups         *prometheus.CounterVec
	statements           prometheus.Counter
	unknownRelationTypes prometheus.Counter
	relationTypesLoaded  prometheus.Gauge
}

var metrics sqlStoreMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer, Subsystem: "sqlstore"}
	metrics = sqlStoreMetrics{
		cacheLookups: mr.NewCounterVec("cache_lookups_total",
			`The number of term lookups by ID, partitioned by whether the term cache
could answer them ("hit"), knew the term doesn't exist ("negative_hit"), or
had to query the database ("miss").`,
			"result"),
		statements: mr.NewCounter("statements_total",
			"The number of SQL queries issued."),
		unknownRelationTypes: mr.NewCounter("unknown_relationship_types_total",
			`The number of relationship type rows skipped because their name isn't a
known relationship type. Edges of these types are invisible to the store.`),
		relationTypesLoaded: mr.NewGauge("relationship_types_loaded",
			"The number of relationship types read by the last cache initialization."),
	}
}
