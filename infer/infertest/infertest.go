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

// Package infertest checks that the inference engine proves exactly the
// expected relationships over an ontology.Store holding the storetest mini
// ontology.
package infertest

import (
	"context"
	"testing"

	"github.com/ntamas/biopython/infer"
	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/ontology/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CheckInferences runs every storetest.MiniInferences case against s with the
// default rules. Each case is checked three ways: with the object unbound,
// with the subject unbound, and fully bound.
func CheckInferences(t *testing.T, s ontology.Store) {
	engine := infer.New(nil, infer.Options{MaxSteps: 10000})
	ctx := context.Background()
	for _, c := range storetest.MiniInferences {
		t.Run(c.Name, func(t *testing.T) {
			subject, err := s.TermByID(c.Subject)
			require.NoError(t, err)
			object, err := s.TermByID(c.Object)
			require.NoError(t, err)
			proves := func(res *infer.Result) bool {
				for _, f := range res.Facts {
					if f.Subject.Equal(subject) && f.Object.Equal(object) && f.Type.IsSubtypeOf(c.Relation) {
						return true
					}
				}
				return false
			}

			res, err := engine.Solve(ctx, s, infer.Query{Subject: subject, Relation: c.Relation})
			if assert.NoError(t, err) {
				assert.Equal(t, c.Holds, proves(res), "object unbound query")
			}
			res, err = engine.Solve(ctx, s, infer.Query{Relation: c.Relation, Object: object})
			if assert.NoError(t, err) {
				assert.Equal(t, c.Holds, proves(res), "subject unbound query")
			}
			res, err = engine.Solve(ctx, s, infer.Query{Subject: subject, Relation: c.Relation, Object: object})
			if assert.NoError(t, err) {
				assert.Equal(t, c.Holds, res.Holds, "bound query")
				assert.Equal(t, c.Holds, proves(res), "bound query facts")
			}
		})
	}
}
