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
	"errors"
	"fmt"

	"github.com/ntamas/biopython/ontology"
)

var (
	// ErrInvalidQuery is returned for queries that can't be answered, such as
	// ones with both the subject and the object unbound.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrSearchLimit is returned when a search needs more expansions than
	// Options.MaxSteps allows.
	ErrSearchLimit = errors.New("inference search limit exceeded")
)

// Query asks which relationships of type Relation, or a subtype of it, hold
// between Subject and Object. A nil Subject or Object is unbound.
type Query struct {
	Subject  *ontology.Term
	Relation ontology.RelType
	Object   *ontology.Term
}

// NewQuery builds a query against s. subject and object may each be nil
// (unbound), a *ontology.Term, or a GO ID to be resolved with s.TermByID.
// relation may be an ontology.RelType or the name of one.
func NewQuery(s ontology.Store, subject, relation, object interface{}) (Query, error) {
	var q Query
	var err error
	if subject != nil {
		if q.Subject, err = ontology.EnsureTerm(s, subject); err != nil {
			return Query{}, err
		}
	}
	if object != nil {
		if q.Object, err = ontology.EnsureTerm(s, object); err != nil {
			return Query{}, err
		}
	}
	switch r := relation.(type) {
	case ontology.RelType:
		q.Relation = r
	case string:
		if q.Relation, err = ontology.ParseRelType(r); err != nil {
			return Query{}, err
		}
	case nil:
		return Query{}, fmt.Errorf("%w: relation is unbound", ErrInvalidQuery)
	default:
		return Query{}, fmt.Errorf("%w: relation should be a RelType or a name, got %T", ErrInvalidQuery, relation)
	}
	if err := q.validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Kind describes the shape of the query: "object_unbound",
// "subject_unbound", "bound" or "unbound".
func (q Query) Kind() string {
	switch {
	case q.Subject != nil && q.Object != nil:
		return "bound"
	case q.Subject != nil:
		return "object_unbound"
	case q.Object != nil:
		return "subject_unbound"
	default:
		return "unbound"
	}
}

func (q Query) validate() error {
	if q.Subject == nil && q.Object == nil {
		return fmt.Errorf("%w: subject and object are both unbound", ErrInvalidQuery)
	}
	if !q.Relation.Valid() {
		return fmt.Errorf("%w: relation is unbound", ErrInvalidQuery)
	}
	return nil
}

func (q Query) String() string {
	return ontology.Relationship{Subject: q.Subject, Object: q.Object, Type: q.Relation}.String()
}
