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
	"fmt"

	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/rules"
	log "github.com/sirupsen/logrus"
)

// searchKey identifies a derived relationship by its far endpoint (the object
// in a forward search, the subject in a backward search) and its type.
type searchKey struct {
	termID string
	typ    ontology.RelType
}

// search is the state of solving a single query.
type search struct {
	ctx       context.Context
	store     Store
	rules     *rules.Rules
	query     Query
	reachable []ontology.RelType
	maxSteps  int

	// visited holds the keys of every derived relationship that was queued.
	visited map[searchKey]struct{}
	// queue holds the derived relationships yet to be expanded.
	queue []ontology.Relationship
	// adjacent caches the edges read from the store, keyed by the ID of the
	// term they were read for.
	adjacent map[string][]ontology.Relationship
	// steps counts the expanded relationships.
	steps int
	// facts accumulates the answers.
	facts []ontology.Relationship
}

// relevant returns true if relationships of type t can contribute to an
// answer.
func (s *search) relevant(t ontology.RelType) bool {
	for _, r := range s.reachable {
		if t.IsSubtypeOf(r) {
			return true
		}
	}
	return false
}

// push queues rel unless a relationship with the same key was queued before.
func (s *search) push(key searchKey, rel ontology.Relationship) {
	if _, seen := s.visited[key]; seen {
		return
	}
	s.visited[key] = struct{}{}
	s.queue = append(s.queue, rel)
}

// pop removes and returns the oldest queued relationship. The queue must not
// be empty.
func (s *search) pop() ontology.Relationship {
	rel := s.queue[0]
	s.queue = s.queue[1:]
	return rel
}

// next checks the search limits and returns the next relationship to expand.
// ok is false once the queue is empty.
func (s *search) next() (rel ontology.Relationship, ok bool, err error) {
	if len(s.queue) == 0 {
		return rel, false, nil
	}
	if err := s.ctx.Err(); err != nil {
		return rel, false, err
	}
	if s.maxSteps > 0 && s.steps >= s.maxSteps {
		return rel, false, fmt.Errorf("%w: gave up on %v after %d expansions",
			ErrSearchLimit, s.query, s.steps)
	}
	s.steps++
	return s.pop(), true, nil
}

// edges returns the stored relationships of a relevant type whose subject
// (outgoing) or object (incoming) is t.
func (s *search) edges(t *ontology.Term, outgoing bool) ([]ontology.Relationship, error) {
	key := "<" + t.ID()
	if outgoing {
		key = ">" + t.ID()
	}
	if rels, cached := s.adjacent[key]; cached {
		return rels, nil
	}
	var all []ontology.Relationship
	var err error
	if outgoing {
		all, err = s.store.Relationships(t, nil)
	} else {
		all, err = s.store.Relationships(nil, t)
	}
	if err != nil {
		return nil, err
	}
	var rels []ontology.Relationship
	for _, r := range all {
		if s.relevant(r.Type) {
			rels = append(rels, r)
		}
	}
	s.adjacent[key] = rels
	return rels, nil
}

// answers returns true if rel answers the query.
func (s *search) answers(rel ontology.Relationship) bool {
	return rel.Type.IsSubtypeOf(s.query.Relation)
}

// forward searches for relationships from the query's subject. If the query's
// object is bound, it stops at the first relationship to it that answers the
// query.
func (s *search) forward() error {
	start, err := s.edges(s.query.Subject, true)
	if err != nil {
		return err
	}
	for _, e := range start {
		s.push(searchKey{e.Object.ID(), e.Type}, e)
	}
	for {
		d, ok, err := s.next()
		if err != nil || !ok {
			return err
		}
		if s.answers(d) {
			if s.query.Object == nil {
				s.facts = append(s.facts, d)
			} else if d.Object.Equal(s.query.Object) {
				s.facts = append(s.facts, d)
				log.WithFields(log.Fields{
					"query":      s.query.String(),
					"expansions": s.steps,
				}).Debug("Found bound relationship, stopping search")
				return nil
			}
		}
		next, err := s.edges(d.Object, true)
		if err != nil {
			return err
		}
		for _, e := range next {
			r, ok := s.rules.Apply(d, e)
			if ok && s.relevant(r.Type) {
				s.push(searchKey{r.Object.ID(), r.Type}, r)
			}
		}
	}
}

// backward searches for relationships to the query's object.
func (s *search) backward() error {
	start, err := s.edges(s.query.Object, false)
	if err != nil {
		return err
	}
	for _, e := range start {
		s.push(searchKey{e.Subject.ID(), e.Type}, e)
	}
	for {
		d, ok, err := s.next()
		if err != nil || !ok {
			return err
		}
		if s.answers(d) {
			s.facts = append(s.facts, d)
		}
		prev, err := s.edges(d.Subject, false)
		if err != nil {
			return err
		}
		for _, e := range prev {
			r, ok := s.rules.Apply(e, d)
			if ok && s.relevant(r.Type) {
				s.push(searchKey{r.Subject.ID(), r.Type}, r)
			}
		}
	}
}
