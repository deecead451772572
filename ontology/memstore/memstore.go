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

// Package memstore provides an in-memory, mutable implementation of
// ontology.Store.
//
// Each term has a single record holding the term and its incoming and outgoing
// relationships. Records are kept in a B-Tree ordered by GO ID, which makes
// enumeration deterministic, and are also reachable through an index keyed by
// primary ID and by every alias. Both structures are updated together by each
// mutation.
package memstore

import (
	"fmt"

	"github.com/google/btree"
	"github.com/ntamas/biopython/ontology"
	log "github.com/sirupsen/logrus"
)

const btreeDegree = 16

// termRecord is the authoritative state of a single term: the term itself and
// its adjacency lists.
type termRecord struct {
	id   string
	term *ontology.Term
	// out holds the relationships where term is the subject.
	out []ontology.Relationship
	// in holds the relationships where term is the object.
	in []ontology.Relationship
}

func recordLess(a, b *termRecord) bool {
	return a.id < b.id
}

// Store is an in-memory ontology. The zero value is not usable, use New.
type Store struct {
	name    string
	records *btree.BTreeG[*termRecord]
	// index maps primary IDs and aliases to records.
	index   map[string]*termRecord
	numRels int
}

var _ ontology.Store = (*Store)(nil)

// New returns a new empty ontology. The name is only used for logging and
// display purposes.
func New(name string) *Store {
	return &Store{
		name:    name,
		records: btree.NewG[*termRecord](btreeDegree, recordLess),
		index:   make(map[string]*termRecord),
	}
}

// Name returns the name given to New.
func (s *Store) Name() string {
	return s.name
}

func (s *Store) String() string {
	return fmt.Sprintf("memstore.Store(%q, %d terms, %d relationships)", s.name, s.records.Len(), s.numRels)
}

// AddTerm implements ontology.Store.
func (s *Store) AddTerm(t *ontology.Term) error {
	if owner := t.Owner(); owner != nil && owner != ontology.Store(s) {
		return fmt.Errorf("%w: %s", ontology.ErrTermOwned, t.ID())
	}
	if _, exists := s.index[t.ID()]; exists {
		return fmt.Errorf("%w: %s", ontology.ErrDuplicateTerm, t.ID())
	}
	aliases := t.Aliases()
	for _, a := range aliases {
		if _, exists := s.index[a]; exists {
			return fmt.Errorf("%w: alias %s of %s", ontology.ErrDuplicateTerm, a, t.ID())
		}
	}
	if err := t.Attach(s); err != nil {
		return err
	}
	rec := &termRecord{id: t.ID(), term: t}
	s.records.ReplaceOrInsert(rec)
	s.index[rec.id] = rec
	for _, a := range aliases {
		s.index[a] = rec
	}
	return nil
}

// TermByID implements ontology.Store.
func (s *Store) TermByID(id string) (*ontology.Term, error) {
	normID, err := ontology.NormalizeID(id)
	if err != nil {
		return nil, err
	}
	rec, exists := s.index[normID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ontology.ErrNoSuchTerm, normID)
	}
	return rec.term, nil
}

// HasTerm implements ontology.Store.
func (s *Store) HasTerm(t *ontology.Term) (bool, error) {
	_, exists, err := s.lookup(t)
	return exists, err
}

// lookup returns the record for t's ID. It cross checks the B-Tree and the
// index, and reports ErrInternalStorageInconsistent when they disagree.
func (s *Store) lookup(t *ontology.Term) (*termRecord, bool, error) {
	inTree, treeHas := s.records.Get(&termRecord{id: t.ID()})
	inIndex, indexHas := s.index[t.ID()]
	if indexHas && !treeHas && inIndex.id != t.ID() {
		// t's ID is an alias of some other term.
		indexHas = false
	}
	if treeHas != indexHas || (treeHas && inTree != inIndex) {
		log.WithFields(log.Fields{
			"ontology": s.name,
			"term":     t.ID(),
			"inTree":   treeHas,
			"inIndex":  indexHas,
		}).Error("Term storage is inconsistent")
		return nil, false, fmt.Errorf("%w: term %s (in records: %v, in index: %v)",
			ontology.ErrInternalStorageInconsistent, t.ID(), treeHas, indexHas)
	}
	if !treeHas {
		return nil, false, nil
	}
	for _, a := range inTree.term.Aliases() {
		if s.index[a] != inTree {
			return nil, false, fmt.Errorf("%w: alias %s of term %s isn't indexed",
				ontology.ErrInternalStorageInconsistent, a, t.ID())
		}
	}
	return inTree, true, nil
}

// mustLookup is like lookup but fails with ErrNoSuchTerm if t isn't present.
func (s *Store) mustLookup(t *ontology.Term) (*termRecord, error) {
	rec, exists, err := s.lookup(t)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ontology.ErrNoSuchTerm, t.ID())
	}
	return rec, nil
}

// RemoveTerm implements ontology.Store.
func (s *Store) RemoveTerm(t *ontology.Term) error {
	rec, err := s.mustLookup(t)
	if err != nil {
		return err
	}
	for _, r := range rec.out {
		if other := s.index[r.Object.ID()]; other != rec {
			other.in = removeRel(other.in, r)
		}
		s.numRels--
	}
	for _, r := range rec.in {
		if other := s.index[r.Subject.ID()]; other != rec {
			other.out = removeRel(other.out, r)
			s.numRels--
		}
	}
	s.unlinkRecord(rec)
	if t != rec.term {
		t.Detach()
	}
	return nil
}

// Terms implements ontology.Store. Terms are enumerated in GO ID order.
func (s *Store) Terms(emit func(*ontology.Term) error) error {
	var err error
	s.records.Ascend(func(rec *termRecord) bool {
		err = emit(rec.term)
		return err == nil
	})
	if err == ontology.ErrHalt {
		return nil
	}
	return err
}

// NumTerms implements ontology.Store.
func (s *Store) NumTerms() (int, error) {
	return s.records.Len(), nil
}

// AddRelationship implements ontology.Store.
func (s *Store) AddRelationship(subject, object *ontology.Term, typ ontology.RelType) error {
	if err := ontology.CheckStorable(typ); err != nil {
		return err
	}
	for _, t := range []*ontology.Term{subject, object} {
		if owner := t.Owner(); owner != nil && owner != ontology.Store(s) {
			return fmt.Errorf("%w: %s", ontology.ErrTermOwned, t.ID())
		}
	}
	subjRec, subjAdded, err := s.ensureRecord(subject)
	if err != nil {
		return err
	}
	objRec, _, err := s.ensureRecord(object)
	if err != nil {
		if subjAdded {
			s.unlinkRecord(subjRec)
		}
		return err
	}
	rel := ontology.Relationship{Subject: subjRec.term, Object: objRec.term, Type: typ}
	for _, r := range subjRec.out {
		if r.Equal(rel) {
			return nil
		}
	}
	subjRec.out = append(subjRec.out, rel)
	objRec.in = append(objRec.in, rel)
	s.numRels++
	return nil
}

// ensureRecord returns the record for t, adding t to the store first if
// needed. added is true if t was added by this call.
func (s *Store) ensureRecord(t *ontology.Term) (rec *termRecord, added bool, err error) {
	rec, exists, err := s.lookup(t)
	if err != nil || exists {
		return rec, false, err
	}
	if err := s.AddTerm(t); err != nil {
		return nil, false, err
	}
	return s.index[t.ID()], true, nil
}

// unlinkRecord undoes AddTerm for a record that has no relationships yet.
func (s *Store) unlinkRecord(rec *termRecord) {
	s.records.Delete(rec)
	delete(s.index, rec.id)
	for _, a := range rec.term.Aliases() {
		delete(s.index, a)
	}
	rec.term.Detach()
}

// Relationships implements ontology.Store.
func (s *Store) Relationships(subject, object *ontology.Term) ([]ontology.Relationship, error) {
	switch {
	case subject == nil && object == nil:
		res := make([]ontology.Relationship, 0, s.numRels)
		s.records.Ascend(func(rec *termRecord) bool {
			res = append(res, rec.out...)
			return true
		})
		return res, nil

	case object == nil:
		rec, err := s.mustLookup(subject)
		if err != nil {
			return nil, err
		}
		return append([]ontology.Relationship(nil), rec.out...), nil

	case subject == nil:
		rec, err := s.mustLookup(object)
		if err != nil {
			return nil, err
		}
		return append([]ontology.Relationship(nil), rec.in...), nil

	default:
		subjRec, err := s.mustLookup(subject)
		if err != nil {
			return nil, err
		}
		if _, err := s.mustLookup(object); err != nil {
			return nil, err
		}
		var res []ontology.Relationship
		for _, r := range subjRec.out {
			if r.Object.ID() == object.ID() {
				res = append(res, r)
			}
		}
		return res, nil
	}
}

// NumRelationships implements ontology.Store.
func (s *Store) NumRelationships() (int, error) {
	return s.numRels, nil
}

// RemoveRelationship implements ontology.Store.
func (s *Store) RemoveRelationship(subject, object *ontology.Term, typ ontology.RelType) error {
	subjRec, err := s.mustLookup(subject)
	if err != nil {
		return err
	}
	objRec, err := s.mustLookup(object)
	if err != nil {
		return err
	}
	rel := ontology.Relationship{Subject: subjRec.term, Object: objRec.term, Type: typ}
	n := len(subjRec.out)
	subjRec.out = removeRel(subjRec.out, rel)
	if len(subjRec.out) == n {
		return fmt.Errorf("%w: %v", ontology.ErrNoSuchRelationship, rel)
	}
	objRec.in = removeRel(objRec.in, rel)
	s.numRels--
	return nil
}

// OrphanedTerms implements ontology.Store.
func (s *Store) OrphanedTerms() ([]*ontology.Term, error) {
	var res []*ontology.Term
	s.records.Ascend(func(rec *termRecord) bool {
		if len(rec.in) == 0 && len(rec.out) == 0 {
			res = append(res, rec.term)
		}
		return true
	})
	return res, nil
}

// removeRel returns rels without rel. It modifies rels in place.
func removeRel(rels []ontology.Relationship, rel ontology.Relationship) []ontology.Relationship {
	for i, r := range rels {
		if r.Equal(rel) {
			return append(rels[:i], rels[i+1:]...)
		}
	}
	return rels
}

// Copy returns a new Store holding detached copies of every term and
// relationship of src. It's typically used to take an in-memory snapshot of a
// database-backed ontology.
func Copy(name string, src ontology.Store) (*Store, error) {
	dst := New(name)
	err := src.Terms(func(t *ontology.Term) error {
		return dst.AddTerm(t.Clone())
	})
	if err != nil {
		return nil, err
	}
	rels, err := src.Relationships(nil, nil)
	if err != nil {
		return nil, err
	}
	for _, r := range rels {
		subj, err := dst.mustLookup(r.Subject)
		if err != nil {
			return nil, err
		}
		obj, err := dst.mustLookup(r.Object)
		if err != nil {
			return nil, err
		}
		if err := dst.AddRelationship(subj.term, obj.term, r.Type); err != nil {
			return nil, err
		}
	}
	log.WithFields(log.Fields{
		"ontology":      name,
		"terms":         dst.records.Len(),
		"relationships": dst.numRels,
	}).Debug("Copied ontology")
	return dst, nil
}
