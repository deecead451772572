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

// Package storetest contains a conformance test suite for ontology.Store
// implementations. Backends call Run from their own tests with a function that
// returns a Store loaded with the Fixture terms and relationships.
package storetest

import (
	"errors"
	"testing"

	"github.com/ntamas/biopython/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TermSpec describes a fixture term.
type TermSpec struct {
	ID      string
	Name    string
	Aliases []string
}

// RelSpec describes a fixture relationship.
type RelSpec struct {
	Subject string
	Object  string
	Type    ontology.RelType
}

// FixtureTerms are the terms a prepared Store must contain.
var FixtureTerms = []TermSpec{
	{ID: "GO:0008150", Name: "biological_process"},
	{ID: "GO:0051704", Name: "multi-organism process"},
	{ID: "GO:0043901", Name: "negative regulation of multi-organism process"},
	{ID: "GO:0003674", Name: "molecular_function", Aliases: []string{"GO:0005554"}},
}

// FixtureRelationships are the relationships a prepared Store must contain.
var FixtureRelationships = []RelSpec{
	{Subject: "GO:0051704", Object: "GO:0008150", Type: ontology.IsA},
	{Subject: "GO:0043901", Object: "GO:0051704", Type: ontology.NegativelyRegulates},
}

// Load adds the fixture terms and relationships to a mutable Store.
func Load(t *testing.T, s ontology.Store) {
	load(t, s, FixtureTerms, FixtureRelationships)
}

func load(t *testing.T, s ontology.Store, termSpecs []TermSpec, relSpecs []RelSpec) {
	terms := make(map[string]*ontology.Term)
	for _, spec := range termSpecs {
		term, err := ontology.NewTerm(spec.ID, spec.Name, spec.Aliases...)
		require.NoError(t, err)
		require.NoError(t, s.AddTerm(term))
		terms[spec.ID] = term
	}
	for _, r := range relSpecs {
		require.NoError(t, s.AddRelationship(terms[r.Subject], terms[r.Object], r.Type))
	}
}

// Run runs the read-only conformance tests. prepared must return a fresh Store
// containing exactly the fixture terms and relationships.
func Run(t *testing.T, prepared func(t *testing.T) ontology.Store) {
	term := func(t *testing.T, s ontology.Store, id string) *ontology.Term {
		res, err := s.TermByID(id)
		require.NoError(t, err)
		return res
	}
	bioProcess, multiOrg, negRegMultiOrg, molFunction :=
		"GO:0008150", "GO:0051704", "GO:0043901", "GO:0003674"

	t.Run("counts", func(t *testing.T) {
		s := prepared(t)
		n, err := s.NumTerms()
		assert.NoError(t, err)
		assert.Equal(t, len(FixtureTerms), n)
		n, err = s.NumRelationships()
		assert.NoError(t, err)
		assert.Equal(t, len(FixtureRelationships), n)
	})

	t.Run("term by id", func(t *testing.T) {
		s := prepared(t)
		for _, spec := range FixtureTerms {
			res, err := s.TermByID(spec.ID)
			if assert.NoError(t, err, spec.ID) {
				assert.Equal(t, spec.ID, res.ID())
				assert.Equal(t, spec.Name, res.Name())
				assert.True(t, res.Owner() == s, "term should be owned by the store")
			}
			res, err = s.TermByID(spec.ID[len(ontology.IDPrefix):])
			if assert.NoError(t, err, "bare digits of %s", spec.ID) {
				assert.Equal(t, spec.ID, res.ID())
			}
		}
		_, err := s.TermByID("GO:1234567")
		assert.True(t, errors.Is(err, ontology.ErrNoSuchTerm), "got %v", err)
		_, err = s.TermByID("GO:1")
		assert.True(t, errors.Is(err, ontology.ErrFormat), "got %v", err)
	})

	t.Run("term by alias", func(t *testing.T) {
		s := prepared(t)
		for _, spec := range FixtureTerms {
			for _, alias := range spec.Aliases {
				res, err := s.TermByID(alias)
				if assert.NoError(t, err, alias) {
					assert.Equal(t, spec.ID, res.ID())
					assert.Contains(t, res.Aliases(), alias)
				}
			}
		}
	})

	t.Run("has term", func(t *testing.T) {
		s := prepared(t)
		has, err := s.HasTerm(term(t, s, bioProcess))
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = s.HasTerm(ontology.MustNewTerm("GO:1234567", "nonexistent term"))
		assert.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("relationships between pair", func(t *testing.T) {
		s := prepared(t)
		t1, t2 := term(t, s, bioProcess), term(t, s, multiOrg)
		rels, err := s.Relationships(t2, t1)
		assert.NoError(t, err)
		assertRels(t, []ontology.Relationship{{Subject: t2, Object: t1, Type: ontology.IsA}}, rels)

		rels, err = s.Relationships(t1, t2)
		assert.NoError(t, err)
		assert.Empty(t, rels)
	})

	t.Run("relationships given subject", func(t *testing.T) {
		s := prepared(t)
		t1, t2 := term(t, s, bioProcess), term(t, s, multiOrg)
		rels, err := s.Relationships(t2, nil)
		assert.NoError(t, err)
		assertRels(t, []ontology.Relationship{{Subject: t2, Object: t1, Type: ontology.IsA}}, rels)

		rels, err = s.Relationships(t1, nil)
		assert.NoError(t, err)
		assert.Empty(t, rels)
	})

	t.Run("relationships given object", func(t *testing.T) {
		s := prepared(t)
		t1, t2, t3 := term(t, s, bioProcess), term(t, s, multiOrg), term(t, s, negRegMultiOrg)
		rels, err := s.Relationships(nil, t1)
		assert.NoError(t, err)
		assertRels(t, []ontology.Relationship{{Subject: t2, Object: t1, Type: ontology.IsA}}, rels)

		rels, err = s.Relationships(nil, t2)
		assert.NoError(t, err)
		assertRels(t, []ontology.Relationship{{Subject: t3, Object: t2, Type: ontology.NegativelyRegulates}}, rels)
	})

	t.Run("relationships of unknown term", func(t *testing.T) {
		s := prepared(t)
		_, err := s.Relationships(ontology.MustNewTerm("GO:1234567", "nonexistent term"), nil)
		assert.True(t, errors.Is(err, ontology.ErrNoSuchTerm), "got %v", err)
	})

	t.Run("all relationships", func(t *testing.T) {
		s := prepared(t)
		rels, err := s.Relationships(nil, nil)
		assert.NoError(t, err)
		act := make([]RelSpec, len(rels))
		for i, r := range rels {
			act[i] = RelSpec{Subject: r.Subject.ID(), Object: r.Object.ID(), Type: r.Type}
		}
		assert.ElementsMatch(t, FixtureRelationships, act)
	})

	t.Run("has relationship", func(t *testing.T) {
		s := prepared(t)
		t2, t3 := term(t, s, multiOrg), term(t, s, negRegMultiOrg)
		for rt, exp := range map[ontology.RelType]bool{
			ontology.Any:                 true,
			ontology.Regulates:           true,
			ontology.NegativelyRegulates: true,
			ontology.PositivelyRegulates: false,
			ontology.Inheritable:         false,
		} {
			has, err := ontology.HasRelationship(s, t3, t2, rt)
			assert.NoError(t, err)
			assert.Equal(t, exp, has, "%v", rt)
		}
		has, err := ontology.HasRelationship(s, t2, t3, ontology.Any)
		assert.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("terms", func(t *testing.T) {
		s := prepared(t)
		collect := func() []string {
			var ids []string
			assert.NoError(t, s.Terms(func(term *ontology.Term) error {
				ids = append(ids, term.ID())
				return nil
			}))
			return ids
		}
		var exp []string
		for _, spec := range FixtureTerms {
			exp = append(exp, spec.ID)
		}
		assert.ElementsMatch(t, exp, collect())
		assert.ElementsMatch(t, exp, collect(), "Terms should be restartable")

		count := 0
		err := s.Terms(func(*ontology.Term) error {
			count++
			return ontology.ErrHalt
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, count)

		boom := errors.New("boom")
		err = s.Terms(func(*ontology.Term) error {
			return boom
		})
		assert.Equal(t, boom, err)

		all, err := ontology.AllTerms(s)
		assert.NoError(t, err)
		assert.Len(t, all, len(FixtureTerms))
	})

	t.Run("orphaned terms", func(t *testing.T) {
		s := prepared(t)
		orphans, err := s.OrphanedTerms()
		assert.NoError(t, err)
		if assert.Len(t, orphans, 1) {
			assert.Equal(t, molFunction, orphans[0].ID())
		}
	})

	t.Run("ensure term", func(t *testing.T) {
		s := prepared(t)
		res, err := ontology.EnsureTerm(s, "0008150")
		assert.NoError(t, err)
		assert.Equal(t, bioProcess, res.ID())

		standalone := ontology.MustNewTerm("GO:1234567", "standalone")
		res, err = ontology.EnsureTerm(s, standalone)
		assert.NoError(t, err)
		assert.True(t, res == standalone)

		_, err = ontology.EnsureTerm(s, 8150)
		assert.True(t, errors.Is(err, ontology.ErrFormat), "got %v", err)
		_, err = ontology.EnsureTerm(s, "GO:7654321")
		assert.True(t, errors.Is(err, ontology.ErrNoSuchTerm), "got %v", err)
	})
}

// assertRels asserts that act contains the same relationships as exp, in any
// order, comparing terms by ID.
func assertRels(t *testing.T, exp, act []ontology.Relationship) {
	t.Helper()
	if !assert.Equal(t, len(exp), len(act), "relationships: %v", act) {
		return
	}
	for _, e := range exp {
		found := false
		for _, a := range act {
			if e.Equal(a) {
				found = true
				break
			}
		}
		assert.True(t, found, "relationship %v not found in %v", e, act)
	}
}
