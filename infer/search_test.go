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
	"math/rand"
	"testing"

	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/ontology/memstore"
	"github.com/ntamas/biopython/rules"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SolveSpan(t *testing.T) {
	tracer := mocktracer.New()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(opentracing.NoopTracer{})

	s := miniOntology(t)
	q, err := NewQuery(s, "GO:0006350", "is_a", nil)
	require.NoError(t, err)
	res, err := New(nil, Options{}).Solve(context.Background(), s, q)
	require.NoError(t, err)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "infer.Solve", spans[0].OperationName)
	assert.Equal(t, "object_unbound", spans[0].Tag("kind"))
	// Only the is_a, any rule can infer is_a.
	assert.Equal(t, 1, spans[0].Tag("relevantRules"))
	assert.Equal(t, res.Expansions, spans[0].Tag("expansions"))
}

// solveUnpruned runs the search of q following every edge, whatever its
// type.
func solveUnpruned(t *testing.T, s Store, rs *rules.Rules, q Query) *Result {
	srch := &search{
		ctx:       context.Background(),
		store:     s,
		rules:     rs,
		query:     q,
		reachable: []ontology.RelType{ontology.Any},
		visited:   make(map[searchKey]struct{}),
		adjacent:  make(map[string][]ontology.Relationship),
	}
	var err error
	if q.Subject != nil {
		err = srch.forward()
	} else {
		err = srch.backward()
	}
	require.NoError(t, err)
	return &Result{Query: q, Facts: srch.facts, Holds: len(srch.facts) > 0}
}

func randomRules(rnd *rand.Rand, concrete []ontology.RelType) *rules.Rules {
	all := ontology.RelTypes()
	var rs []rules.Rule
	for n := 1 + rnd.Intn(5); n > 0; n-- {
		r := rules.Rule{
			First:  all[rnd.Intn(len(all))],
			Second: all[rnd.Intn(len(all))],
		}
		switch rnd.Intn(3) {
		case 0:
			r.Result = rules.CopyFirst
		case 1:
			r.Result = rules.CopySecond
		default:
			r.Result = rules.Fixed(concrete[rnd.Intn(len(concrete))])
		}
		rs = append(rs, r)
	}
	return rules.New(rs...)
}

func factStrings(facts []ontology.Relationship) []string {
	res := make([]string, len(facts))
	for i, f := range facts {
		res[i] = f.String()
	}
	return res
}

// Restricting the search to the types RestrictTo finds reachable must give
// the same answers as following every edge.
func Test_PruningKeepsAnswers(t *testing.T) {
	var concrete []ontology.RelType
	for _, typ := range ontology.RelTypes() {
		if !typ.Abstract() {
			concrete = append(concrete, typ)
		}
	}
	rnd := rand.New(rand.NewSource(1))
	ctx := context.Background()
	for round := 0; round < 40; round++ {
		s := memstore.New("random")
		terms := make([]*ontology.Term, 6)
		for i := range terms {
			terms[i] = ontology.MustNewTerm(fmt.Sprintf("GO:%07d", i+1), fmt.Sprintf("term %d", i+1))
			require.NoError(t, s.AddTerm(terms[i]))
		}
		for i := 0; i < 10; i++ {
			require.NoError(t, s.AddRelationship(
				terms[rnd.Intn(len(terms))], terms[rnd.Intn(len(terms))],
				concrete[rnd.Intn(len(concrete))]))
		}
		rs := rules.Default()
		if round > 0 {
			rs = randomRules(rnd, concrete)
		}
		engine := New(rs, Options{})
		for _, rel := range ontology.RelTypes() {
			for _, term := range terms {
				other := terms[rnd.Intn(len(terms))]
				for _, q := range []Query{
					{Subject: term, Relation: rel},
					{Relation: rel, Object: term},
					{Subject: term, Relation: rel, Object: other},
				} {
					pruned, err := engine.Solve(ctx, s, q)
					require.NoError(t, err)
					full := solveUnpruned(t, s, rs, q)
					msg := fmt.Sprintf("round %d, query %v, rules %v", round, q, rs.Rules())
					if q.Subject != nil && q.Object != nil {
						assert.Equal(t, full.Holds, pruned.Holds, msg)
					} else {
						assert.ElementsMatch(t, factStrings(full.Facts), factStrings(pruned.Facts), msg)
					}
				}
			}
		}
	}
}
