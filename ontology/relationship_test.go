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

package ontology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_RelationshipImplies(t *testing.T) {
	a := MustNewTerm("GO:0000001", "A")
	b := MustNewTerm("GO:0000002", "B")
	c := MustNewTerm("GO:0000003", "C")
	rels := []Relationship{
		{a, b, PositivelyRegulates},
		{a, b, Regulates},
		{a, b, IsA},
		{a, c, Regulates},
		{a, b, Inheritable},
	}
	expected := [][]bool{
		{true, true, false, false, false},
		{false, true, false, false, false},
		{false, false, true, false, true},
		{false, false, false, true, false},
		{false, false, false, false, true},
	}
	for i, r1 := range rels {
		for j, r2 := range rels {
			assert.Equal(t, expected[i][j], r1.Implies(r2), "rels[%d].Implies(rels[%d])", i, j)
		}
	}
}

func Test_RelationshipEqual(t *testing.T) {
	a := MustNewTerm("GO:0000001", "A")
	a2 := MustNewTerm("GO:0000001", "A again")
	b := MustNewTerm("GO:0000002", "B")
	r := Relationship{a, b, IsA}
	assert.True(t, r.Equal(Relationship{a2, b, IsA}))
	assert.False(t, r.Equal(Relationship{a, b, PartOf}))
	assert.False(t, r.Equal(Relationship{b, a, IsA}))
	assert.False(t, r.Equal(Relationship{a, b, Inheritable}), "equality doesn't consider subtypes")
	assert.Equal(t, "GO:0000001 is_a GO:0000002", r.String())
	assert.Equal(t, "? part_of GO:0000002", Relationship{nil, b, PartOf}.String())
}

func Test_CheckStorable(t *testing.T) {
	assert.NoError(t, CheckStorable(Regulates))
	assert.True(t, errors.Is(CheckStorable(Any), ErrAbstractRelType))
	assert.True(t, errors.Is(CheckStorable(Inheritable), ErrAbstractRelType))
	assert.True(t, errors.Is(CheckStorable(NoRelType), ErrUnknownRelation))
}
