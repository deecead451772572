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
	"errors"
	"fmt"

	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/rules"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// Store is the subset of ontology.Store the engine reads from.
type Store interface {
	HasTerm(t *ontology.Term) (bool, error)
	Relationships(subject, object *ontology.Term) ([]ontology.Relationship, error)
}

// Options control the searches of an Engine.
type Options struct {
	// MaxSteps bounds the number of derived relationships a single query may
	// expand. Zero means unbounded.
	MaxSteps int
}

// Engine solves queries using an ordered rule set. An Engine holds no state
// between queries, and is safe for concurrent use if the Stores it's given
// are.
type Engine struct {
	rules *rules.Rules
	opts  Options
}

// New returns an Engine using the given rules, or rules.Default() if rs is
// nil.
func New(rs *rules.Rules, opts Options) *Engine {
	if rs == nil {
		rs = rules.Default()
	}
	return &Engine{rules: rs, opts: opts}
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() *rules.Rules {
	return e.rules
}

// Result is the answer to a query.
type Result struct {
	Query Query
	// Facts are the derived relationships that answer the query, at most one
	// per (term, relationship type) pair, in the order they were found. For a
	// fully bound query it holds the single relationship proving it, if any.
	Facts []ontology.Relationship
	// Holds is true if Facts is not empty.
	Holds bool
	// Expansions is the number of derived relationships the search expanded.
	Expansions int
}

// Terms returns the distinct terms found for the unbound endpoint of the
// query, in the order they were found. It returns the bound object for a
// fully bound query that holds.
func (r *Result) Terms() []*ontology.Term {
	var res []*ontology.Term
	seen := make(map[string]bool)
	for _, f := range r.Facts {
		t := f.Object
		if r.Query.Subject == nil {
			t = f.Subject
		}
		if !seen[t.ID()] {
			seen[t.ID()] = true
			res = append(res, t)
		}
	}
	return res
}

// Solve answers the query q using the relationships in s. It fails with
// ErrInvalidQuery for malformed queries, with ErrNoSuchTerm if a bound term is
// not in s, with ErrSearchLimit if the search exceeds Options.MaxSteps, and
// with ctx's error if ctx is done before the search completes.
func (e *Engine) Solve(ctx context.Context, s Store, q Query) (*Result, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	for _, t := range []*ontology.Term{q.Subject, q.Object} {
		if t == nil {
			continue
		}
		has, err := s.HasTerm(t)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, fmt.Errorf("%w: %s", ontology.ErrNoSuchTerm, t.ID())
		}
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "infer.Solve")
	span.SetTag("query", q.String())
	span.SetTag("kind", q.Kind())
	defer span.Finish()
	metrics.queries.WithLabelValues(q.Kind()).Inc()

	relevantRules, reachable := e.rules.RestrictTo(q.Relation)
	span.SetTag("relevantRules", relevantRules.Len())
	srch := &search{
		ctx:       ctx,
		store:     s,
		rules:     e.rules,
		query:     q,
		reachable: reachable,
		maxSteps:  e.opts.MaxSteps,
		visited:   make(map[searchKey]struct{}),
		adjacent:  make(map[string][]ontology.Relationship),
	}
	log.WithFields(log.Fields{
		"query":         q.String(),
		"relevantRules": relevantRules.Len(),
		"reachable":     reachable,
	}).Debug("Solving query")

	var err error
	if q.Subject != nil {
		err = srch.forward()
	} else {
		err = srch.backward()
	}
	metrics.expansions.Observe(float64(srch.steps))
	span.SetTag("expansions", srch.steps)
	if err != nil {
		if errors.Is(err, ErrSearchLimit) {
			metrics.limitExceeded.Inc()
		}
		return nil, err
	}
	res := &Result{
		Query:      q,
		Facts:      srch.facts,
		Holds:      len(srch.facts) > 0,
		Expansions: srch.steps,
	}
	log.WithFields(log.Fields{
		"query":      q.String(),
		"facts":      len(res.Facts),
		"expansions": res.Expansions,
	}).Debug("Solved query")
	return res, nil
}
