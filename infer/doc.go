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

// Package infer answers queries about relationships between Gene Ontology
// terms that follow from the stored relationships and a set of composition
// rules.
//
// For example, given the stored relationships
//
//	[lysosome] -is_a-> [vacuole] -part_of-> [cytoplasm] -part_of-> [intracellular]
//
// and the default rules, the query (lysosome, part_of, ?) finds
//
//	[lysosome] -part_of-> [cytoplasm]
//	[lysosome] -part_of-> [intracellular]
//
// Queries may leave either the subject or the object unbound, but not both.
// With the object unbound the engine searches forward from the subject,
// composing the relationships derived so far with the edges leaving their
// object. With the subject unbound it searches backward from the object. A
// fully bound query runs the forward search and stops as soon as it derives
// the queried relationship.
//
// Each search remembers the (term, relationship type) pairs it has expanded
// and never expands one twice, so searches terminate even on cyclic data.
package infer
