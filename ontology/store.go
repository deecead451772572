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
	"fmt"
)

// Store is the storage contract shared by all ontology backends.
//
// Methods that take a *Term locate it by its ID; the *Term passed in need not
// be the same value the Store returns for that ID. Read-only backends return
// ErrReadOnly from the mutating methods.
type Store interface {
	// AddTerm attaches the term and indexes its ID and aliases. It fails with
	// ErrDuplicateTerm if the ID or an alias is already in use, and with
	// ErrTermOwned if the term belongs to another Store.
	AddTerm(t *Term) error

	// TermByID returns the term with the given primary ID or alias. The id is
	// normalized first, so it may omit the "GO:" prefix. It fails with
	// ErrNoSuchTerm if there is no such term.
	TermByID(id string) (*Term, error)

	// HasTerm returns true if a term with t's ID is in the Store. It returns
	// ErrInternalStorageInconsistent if the Store's indexes disagree.
	HasTerm(t *Term) (bool, error)

	// RemoveTerm detaches the term and removes every relationship that
	// involves it. It fails with ErrNoSuchTerm if the term is not present.
	RemoveTerm(t *Term) error

	// Terms calls emit for every term in the Store. The emit function should
	// normally return nil to continue enumerating, or it can return any error
	// to stop immediately. Except for ErrHalt, such errors will be returned
	// from Terms. If emit returns ErrHalt, Terms will stop immediately and
	// return nil. emit must not modify the Store.
	Terms(emit func(*Term) error) error

	// NumTerms returns the number of terms in the Store.
	NumTerms() (int, error)

	// AddRelationship adds "subject typ object", first adding either term if
	// it's not yet in the Store. Adding a relationship that already exists is
	// a no-op. typ must not be abstract.
	AddRelationship(subject, object *Term, typ RelType) error

	// Relationships returns the stored relationships with the given subject
	// and object. A nil subject or object matches any term, so
	// Relationships(nil, nil) returns every relationship. A non-nil term that
	// isn't in the Store results in ErrNoSuchTerm.
	Relationships(subject, object *Term) ([]Relationship, error)

	// NumRelationships returns the number of relationships in the Store.
	NumRelationships() (int, error)

	// RemoveRelationship removes the relationship with exactly the given
	// subject, object and type, or returns ErrNoSuchRelationship.
	RemoveRelationship(subject, object *Term, typ RelType) error

	// OrphanedTerms returns the terms that have no relationships in either
	// direction.
	OrphanedTerms() ([]*Term, error)
}

// EnsureTerm resolves termOrID to a term of the Store. A *Term is returned as
// is, a string is looked up with TermByID. Any other value results in a
// *FormatError.
func EnsureTerm(s Store, termOrID interface{}) (*Term, error) {
	switch v := termOrID.(type) {
	case *Term:
		return v, nil
	case string:
		return s.TermByID(v)
	default:
		return nil, &FormatError{Input: termOrID, Reason: "expected a *Term or a GO ID"}
	}
}

// HasRelationship returns true if the Store has a relationship from subject
// to object whose type is typ or a subtype of it. Use Any to test for a
// relationship of any type.
func HasRelationship(s Store, subject, object *Term, typ RelType) (bool, error) {
	rels, err := s.Relationships(subject, object)
	if err != nil {
		return false, err
	}
	for _, r := range rels {
		if r.Type.IsSubtypeOf(typ) {
			return true, nil
		}
	}
	return false, nil
}

// AllTerms collects every term of the Store into a slice.
func AllTerms(s Store) ([]*Term, error) {
	var res []*Term
	err := s.Terms(func(t *Term) error {
		res = append(res, t)
		return nil
	})
	return res, err
}

// CheckStorable returns an error if relationships of type typ can't be
// stored.
func CheckStorable(typ RelType) error {
	if !typ.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownRelation, typ)
	}
	if typ.Abstract() {
		return fmt.Errorf("%w: %v", ErrAbstractRelType, typ)
	}
	return nil
}
