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

// Package ontology defines the Gene Ontology data model: terms identified by
// GO IDs, the closed set of relationship types and their subtype order, typed
// relationships between terms, and the Store interface that ontology backends
// implement.
//
// Two backends are provided in sub-packages. memstore holds a mutable ontology
// in memory, sqlstore exposes a read-only ontology kept in a relational
// database. Both satisfy Store identically, so code that only needs to read an
// ontology (such as the inference engine) should accept a Store.
//
// A Store is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package ontology
