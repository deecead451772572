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
	"testing"

	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/ontology/memstore"
	"github.com/ntamas/biopython/ontology/storetest"
	"github.com/ntamas/biopython/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func miniOntology(t *testing.T) *memstore.Store {
	s := memstore.New("mini")
	storetest.LoadMini(t, s)
	return s
}

func Test_UnboundSubject(t *testing.T) {
	s := miniOntology(t)
	q, err := NewQuery(s, nil, "is_a", "GO:0008150")
	require.NoError(t, err)
	res, err := New(nil, Options{}).Solve(context.Background(), s, q)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"GO:0008152", "GO:0040007", "GO:0009058", "GO:0010467", "GO:0006350"},
		termIDs(res.Terms()))
	for _, f := range res.Facts {
		assert.Equal(t, ontology.IsA, f.Type)
		assert.Equal(t, "GO:0008150", f.Object.ID())
	}
	assert.True(t, res.Holds)
}

func Test_UnboundObject(t *testing.T) {
	s := miniOntology(t)
	q, err := NewQuery(s, "GO:0005764", ontology.PartOf, nil)
	require.NoError(t, err)
	res, err := New(nil, Options{}).Solve(context.Background(), s, q)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"GO:0005737", "GO:0005622", "GO:0005575"},
		termIDs(res.Terms()))

	q.Relation = ontology.Inheritable
	res, err = New(nil, Options{}).Solve(context.Background(), s, q)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"GO:0005773", "GO:0043226", "GO:0005737", "GO:0005622", "GO:0005575"},
		termIDs(res.Terms()))
	// lysosome is both is_a and part_of cellular_component.
	assert.Len(t, res.Facts, 6)
}

func Test_BoundStopsEarly(t *testing.T) {
	s := miniOntology(t)
	engine := New(nil, Options{})
	bound, err := NewQuery(s, "GO:0006350", "is_a", "GO:0009058")
	require.NoError(t, err)
	res, err := engine.Solve(context.Background(), s, bound)
	require.NoError(t, err)
	assert.True(t, res.Holds)
	if assert.Len(t, res.Facts, 1) {
		assert.Equal(t, "GO:0006350 is_a GO:0009058", res.Facts[0].String())
	}
	assert.Equal(t, []string{"GO:0009058"}, termIDs(res.Terms()))

	unbound := bound
	unbound.Object = nil
	full, err := engine.Solve(context.Background(), s, unbound)
	require.NoError(t, err)
	assert.Less(t, res.Expansions, full.Expansions)
}

func Test_Cycles(t *testing.T) {
	s := memstore.New("cyclic")
	a := ontology.MustNewTerm("GO:0000001", "a")
	b := ontology.MustNewTerm("GO:0000002", "b")
	c := ontology.MustNewTerm("GO:0000003", "c")
	require.NoError(t, s.AddRelationship(a, b, ontology.IsA))
	require.NoError(t, s.AddRelationship(b, c, ontology.IsA))
	require.NoError(t, s.AddRelationship(c, a, ontology.IsA))
	require.NoError(t, s.AddRelationship(b, b, ontology.PartOf))
	engine := New(nil, Options{})

	res, err := engine.Solve(context.Background(), s, Query{Subject: a, Relation: ontology.Any})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"GO:0000001", "GO:0000002", "GO:0000003"}, termIDs(res.Terms()))

	res, err = engine.Solve(context.Background(), s, Query{Relation: ontology.PartOf, Object: b})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"GO:0000001", "GO:0000002", "GO:0000003"}, termIDs(res.Terms()))

	res, err = engine.Solve(context.Background(), s, Query{Subject: c, Relation: ontology.Regulates, Object: a})
	require.NoError(t, err)
	assert.False(t, res.Holds)
}

func Test_SearchLimit(t *testing.T) {
	s := miniOntology(t)
	q, err := NewQuery(s, "GO:0006350", "is_a", nil)
	require.NoError(t, err)

	_, err = New(nil, Options{MaxSteps: 2}).Solve(context.Background(), s, q)
	assert.True(t, errors.Is(err, ErrSearchLimit), "got %v", err)

	res, err := New(nil, Options{MaxSteps: 3}).Solve(context.Background(), s, q)
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Expansions)
}

func Test_Cancelled(t *testing.T) {
	s := miniOntology(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q, err := NewQuery(s, "GO:0006350", "is_a", nil)
	require.NoError(t, err)
	_, err = New(nil, Options{}).Solve(ctx, s, q)
	assert.Equal(t, context.Canceled, err)
}

func Test_InvalidQueries(t *testing.T) {
	s := miniOntology(t)
	engine := New(nil, Options{})
	transcription, err := s.TermByID("GO:0006350")
	require.NoError(t, err)

	_, err = engine.Solve(context.Background(), s, Query{Relation: ontology.IsA})
	assert.True(t, errors.Is(err, ErrInvalidQuery), "got %v", err)
	_, err = engine.Solve(context.Background(), s, Query{Subject: transcription})
	assert.True(t, errors.Is(err, ErrInvalidQuery), "got %v", err)

	stranger := ontology.MustNewTerm("GO:1234567", "not in the ontology")
	_, err = engine.Solve(context.Background(), s, Query{Subject: stranger, Relation: ontology.IsA})
	assert.True(t, errors.Is(err, ontology.ErrNoSuchTerm), "got %v", err)
	_, err = engine.Solve(context.Background(), s, Query{Subject: transcription, Relation: ontology.IsA, Object: stranger})
	assert.True(t, errors.Is(err, ontology.ErrNoSuchTerm), "got %v", err)
}

func Test_CustomRules(t *testing.T) {
	s := miniOntology(t)
	// Without the is_a ∘ any rule, nothing is inherited through is_a.
	engine := New(rules.New(
		rules.Rule{First: ontology.PartOf, Second: ontology.PartOf, Result: rules.Fixed(ontology.PartOf)},
	), Options{})
	q, err := NewQuery(s, "GO:0005764", "part_of", "GO:0005622")
	require.NoError(t, err)
	res, err := engine.Solve(context.Background(), s, q)
	require.NoError(t, err)
	assert.False(t, res.Holds)

	q, err = NewQuery(s, "GO:0005773", "part_of", "GO:0005622")
	require.NoError(t, err)
	res, err = engine.Solve(context.Background(), s, q)
	require.NoError(t, err)
	assert.True(t, res.Holds)
}

func termIDs(terms []*ontology.Term) []string {
	res := make([]string, len(terms))
	for i, t := range terms {
		res[i] = t.ID()
	}
	return res
}
