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
	"context"

	"github.com/ntamas/biopython/ontology"
	log "github.com/sirupsen/logrus"
)

// Propagate applies the true path rule to the annotation a: a gene product
// annotated to a term is also annotated to every term it is inheritably
// related to. It returns a followed by one copy of a for each such term. A
// negated annotation doesn't propagate and is returned alone.
//
// a's GO ID must name a term of s, by primary ID or alias.
func (e *Engine) Propagate(ctx context.Context, s ontology.Store, a *ontology.Annotation) ([]*ontology.Annotation, error) {
	term, err := s.TermByID(a.GOID)
	if err != nil {
		return nil, err
	}
	res := []*ontology.Annotation{a}
	if a.Negated() {
		return res, nil
	}
	q := Query{Subject: term, Relation: ontology.Inheritable}
	ancestors, err := e.Solve(ctx, s, q)
	if err != nil {
		return nil, err
	}
	for _, t := range ancestors.Terms() {
		if t.ID() == term.ID() {
			continue
		}
		res = append(res, a.WithTerm(t))
	}
	log.WithFields(log.Fields{
		"object": a.DBObjectID,
		"term":   term.ID(),
		"terms":  len(res),
	}).Debug("Propagated annotation")
	return res, nil
}
