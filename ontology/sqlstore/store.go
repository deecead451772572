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

// Package sqlstore provides a read-only ontology.Store backed by a relational
// database that follows the Gene Ontology database layout:
//
//	term          (id, name, term_type, acc, is_obsolete, ...)
//	term2term     (relationship_type_id, term1_id, term2_id, ...)
//	term_synonym  (term_id, term_synonym, acc_synonym, ...)
//
// Relationship types are themselves rows of the term table with a term_type of
// 'relationship'. In term2term, term1_id is the parent (the object of the
// relationship) and term2_id the child (the subject).
//
// Terms and relationship types are read lazily and cached for the lifetime of
// the Store, or until ClearCache is called. A Store is not safe for concurrent
// use.
package sqlstore

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/ntamas/biopython/ontology"
	log "github.com/sirupsen/logrus"
)

const (
	// goTermFilter restricts a term table alias to GO terms, which excludes
	// relationship types and other bookkeeping rows.
	goTermFilter = "%[1]s.acc LIKE 'GO:_______'"

	termColumns = "t.id, t.acc, t.name, t.term_type, t.is_obsolete"

	edgeFrom = "term2term r JOIN term s ON s.id = r.term2_id JOIN term o ON o.id = r.term1_id"

	// defaultPageSize is the number of terms Terms reads per query.
	defaultPageSize = 500

	// maxInList caps the number of parameters in a single IN list.
	maxInList = 500
)

var (
	termsWhere = fmt.Sprintf(goTermFilter, "t")
	edgesWhere = fmt.Sprintf(goTermFilter, "s") + " AND " + fmt.Sprintf(goTermFilter, "o")
)

type termRow struct {
	ID         int64  `db:"id"`
	Acc        string `db:"acc"`
	Name       string `db:"name"`
	TermType   string `db:"term_type"`
	IsObsolete bool   `db:"is_obsolete"`
}

// aliasedTermRow is a term found through one of its alternative IDs.
type aliasedTermRow struct {
	Requested string `db:"requested"`
	termRow
}

type synonymRow struct {
	TermID int64  `db:"term_id"`
	Acc    string `db:"acc_synonym"`
}

type edgeRow struct {
	SubjectID int64 `db:"subject_id"`
	ObjectID  int64 `db:"object_id"`
	TypeID    int64 `db:"type_id"`
}

type relTypeRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// queries are the statements with a fixed number of parameters, rewritten for
// the Store's placeholder style.
type queries struct {
	termByAcc     string
	termBySynonym string
	termsPage     string
	numTerms      string
	relTypes      string
}

// Store is a read-only ontology.Store over a database/sql connection.
type Store struct {
	db       *sqlx.DB
	style    PlaceholderStyle
	q        queries
	cache    *termCache
	pageSize int
}

var _ ontology.Store = (*Store)(nil)

// New returns a Store that reads from db. style must match the placeholders
// db's driver expects.
func New(db *sqlx.DB, style PlaceholderStyle) *Store {
	s := &Store{
		db:       db,
		style:    style,
		cache:    newTermCache(),
		pageSize: defaultPageSize,
	}
	s.q = queries{
		termByAcc: s.rebind("SELECT " + termColumns + " FROM term t WHERE t.acc = %s"),
		termBySynonym: s.rebind("SELECT " + termColumns +
			" FROM term t JOIN term_synonym ts ON ts.term_id = t.id" +
			" WHERE ts.acc_synonym = %s AND " + termsWhere + " ORDER BY t.id"),
		termsPage: s.rebind("SELECT " + termColumns + " FROM term t WHERE " + termsWhere +
			" AND t.id > %s ORDER BY t.id LIMIT %s"),
		numTerms: "SELECT COUNT(*) FROM term t WHERE " + termsWhere,
		relTypes: "SELECT id, name FROM term WHERE term_type = 'relationship' ORDER BY id",
	}
	return s
}

// Open connects to a database with the given database/sql driver and returns
// a Store reading from it. The driver must have been registered, typically by
// a blank import.
func Open(driver, dsn string, style PlaceholderStyle) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, err
	}
	return New(db, style), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) String() string {
	return fmt.Sprintf("sqlstore.Store(%s, %s placeholders)", s.db.DriverName(), s.style)
}

// ClearCache discards every cached term and relationship type. Terms returned
// earlier stay valid, but later lookups return new *Term values.
func (s *Store) ClearCache() {
	s.cache = newTermCache()
}

func (s *Store) rebind(query string) string {
	return RewriteQueryMarkers(query, s.style)
}

func (s *Store) selectRows(dest interface{}, query string, args ...interface{}) error {
	metrics.statements.Inc()
	log.WithFields(log.Fields{"query": query, "args": args}).Debug("sqlstore query")
	return s.db.Select(dest, query, args...)
}

func (s *Store) getRow(dest interface{}, query string, args ...interface{}) error {
	metrics.statements.Inc()
	log.WithFields(log.Fields{"query": query, "args": args}).Debug("sqlstore query")
	return s.db.Get(dest, query, args...)
}

// AddTerm returns ErrReadOnly.
func (s *Store) AddTerm(*ontology.Term) error {
	return ontology.ErrReadOnly
}

// RemoveTerm returns ErrReadOnly.
func (s *Store) RemoveTerm(*ontology.Term) error {
	return ontology.ErrReadOnly
}

// AddRelationship returns ErrReadOnly.
func (s *Store) AddRelationship(_, _ *ontology.Term, _ ontology.RelType) error {
	return ontology.ErrReadOnly
}

// RemoveRelationship returns ErrReadOnly.
func (s *Store) RemoveRelationship(_, _ *ontology.Term, _ ontology.RelType) error {
	return ontology.ErrReadOnly
}

// TermByID implements ontology.Store. When no term has id as its primary ID,
// the term_synonym table is consulted.
func (s *Store) TermByID(id string) (*ontology.Term, error) {
	normID, err := ontology.NormalizeID(id)
	if err != nil {
		return nil, err
	}
	if t, found := s.cache.term(normID); found {
		metrics.cacheLookups.WithLabelValues("hit").Inc()
		return t, nil
	}
	if s.cache.isMiss(normID) {
		metrics.cacheLookups.WithLabelValues("negative_hit").Inc()
		return nil, fmt.Errorf("%w: %s", ontology.ErrNoSuchTerm, normID)
	}
	metrics.cacheLookups.WithLabelValues("miss").Inc()
	var rows []termRow
	if err := s.selectRows(&rows, s.q.termByAcc, normID); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if err := s.selectRows(&rows, s.q.termBySynonym, normID); err != nil {
			return nil, err
		}
	}
	if len(rows) == 0 {
		s.cache.addMiss(normID)
		return nil, fmt.Errorf("%w: %s", ontology.ErrNoSuchTerm, normID)
	}
	terms, err := s.loadTerms(rows[:1])
	if err != nil {
		return nil, err
	}
	return terms[0], nil
}

// TermsByIDs looks up many terms at once. The result has the same length and
// order as ids; the entry for an ID that matches no primary ID or alias is
// nil. It fails only on malformed IDs and database errors.
func (s *Store) TermsByIDs(ids []string) ([]*ontology.Term, error) {
	normIDs := make([]string, len(ids))
	var pending []string
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		normID, err := ontology.NormalizeID(id)
		if err != nil {
			return nil, err
		}
		normIDs[i] = normID
		if seen[normID] {
			continue
		}
		seen[normID] = true
		if _, found := s.cache.term(normID); found {
			metrics.cacheLookups.WithLabelValues("hit").Inc()
			continue
		}
		if s.cache.isMiss(normID) {
			metrics.cacheLookups.WithLabelValues("negative_hit").Inc()
			continue
		}
		metrics.cacheLookups.WithLabelValues("miss").Inc()
		pending = append(pending, normID)
	}

	err := forEachChunk(pending, func(chunk []string) error {
		var rows []termRow
		query := s.rebind("SELECT " + termColumns + " FROM term t WHERE t.acc IN (" + markerList(len(chunk)) + ")")
		if err := s.selectRows(&rows, query, inArgs(chunk)...); err != nil {
			return err
		}
		_, err := s.loadTerms(rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	pending = stillMissing(s.cache, pending)
	err = forEachChunk(pending, func(chunk []string) error {
		var rows []aliasedTermRow
		query := s.rebind("SELECT ts.acc_synonym AS requested, " + termColumns +
			" FROM term t JOIN term_synonym ts ON ts.term_id = t.id" +
			" WHERE " + termsWhere + " AND ts.acc_synonym IN (" + markerList(len(chunk)) + ")" +
			" ORDER BY t.id")
		if err := s.selectRows(&rows, query, inArgs(chunk)...); err != nil {
			return err
		}
		termRows := make([]termRow, len(rows))
		for i := range rows {
			termRows[i] = rows[i].termRow
		}
		_, err := s.loadTerms(termRows)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, id := range stillMissing(s.cache, pending) {
		s.cache.addMiss(id)
	}
	res := make([]*ontology.Term, len(normIDs))
	for i, id := range normIDs {
		res[i], _ = s.cache.term(id)
	}
	return res, nil
}

func stillMissing(c *termCache, ids []string) []string {
	var res []string
	for _, id := range ids {
		if _, found := c.term(id); !found {
			res = append(res, id)
		}
	}
	return res
}

// HasTerm implements ontology.Store. Only primary IDs are considered: a term
// whose ID is an alias of a stored term is not in the Store.
func (s *Store) HasTerm(t *ontology.Term) (bool, error) {
	_, found, err := s.rowID(t)
	return found, err
}

// rowID returns the term row with t's ID as its primary ID.
func (s *Store) rowID(t *ontology.Term) (int64, bool, error) {
	if rowID, found := s.cache.rowID(t.ID()); found {
		return rowID, true, nil
	}
	if _, found := s.cache.term(t.ID()); found || s.cache.isMiss(t.ID()) {
		// Either an alias or nothing at all.
		return 0, false, nil
	}
	var rows []termRow
	if err := s.selectRows(&rows, s.q.termByAcc, t.ID()); err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	if _, err := s.loadTerms(rows[:1]); err != nil {
		return 0, false, err
	}
	return rows[0].ID, true, nil
}

func (s *Store) mustRowID(t *ontology.Term) (int64, error) {
	rowID, found, err := s.rowID(t)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ontology.ErrNoSuchTerm, t.ID())
	}
	return rowID, nil
}

// Terms implements ontology.Store. Terms are read a page at a time, in the
// order of their row IDs.
func (s *Store) Terms(emit func(*ontology.Term) error) error {
	after := int64(-1)
	for {
		var rows []termRow
		if err := s.selectRows(&rows, s.q.termsPage, after, s.pageSize); err != nil {
			return err
		}
		terms, err := s.loadTerms(rows)
		if err != nil {
			return err
		}
		for _, t := range terms {
			if err := emit(t); err != nil {
				if err == ontology.ErrHalt {
					return nil
				}
				return err
			}
		}
		if len(rows) < s.pageSize {
			return nil
		}
		after = rows[len(rows)-1].ID
	}
}

// NumTerms implements ontology.Store.
func (s *Store) NumTerms() (int, error) {
	var n int
	err := s.getRow(&n, s.q.numTerms)
	return n, err
}

// Relationships implements ontology.Store. Edges whose type isn't a known
// relationship type are skipped.
func (s *Store) Relationships(subject, object *ontology.Term) ([]ontology.Relationship, error) {
	var conds []string
	var args []interface{}
	if subject != nil {
		rowID, err := s.mustRowID(subject)
		if err != nil {
			return nil, err
		}
		conds = append(conds, "r.term2_id = %s")
		args = append(args, rowID)
	}
	if object != nil {
		rowID, err := s.mustRowID(object)
		if err != nil {
			return nil, err
		}
		conds = append(conds, "r.term1_id = %s")
		args = append(args, rowID)
	}
	typeCond, typeArgs, err := s.relTypeCondition()
	if err != nil || typeCond == "" {
		return nil, err
	}
	conds = append(conds, typeCond)
	args = append(args, typeArgs...)

	var rows []edgeRow
	query := s.rebind("SELECT r.term2_id AS subject_id, r.term1_id AS object_id, r.relationship_type_id AS type_id" +
		" FROM " + edgeFrom + " WHERE " + edgesWhere + " AND " + strings.Join(conds, " AND ") +
		" ORDER BY r.term2_id, r.term1_id, r.relationship_type_id")
	if err := s.selectRows(&rows, query, args...); err != nil {
		return nil, err
	}
	rowIDs := make([]int64, 0, 2*len(rows))
	for _, row := range rows {
		rowIDs = append(rowIDs, row.SubjectID, row.ObjectID)
	}
	terms, err := s.termsByRowIDs(rowIDs)
	if err != nil {
		return nil, err
	}
	res := make([]ontology.Relationship, 0, len(rows))
	for _, row := range rows {
		subj, obj := terms[row.SubjectID], terms[row.ObjectID]
		if subj == nil || obj == nil {
			return nil, fmt.Errorf("%w: term2term row (%d, %d) refers to a term that can't be read",
				ontology.ErrInternalStorageInconsistent, row.SubjectID, row.ObjectID)
		}
		res = append(res, ontology.Relationship{
			Subject: subj,
			Object:  obj,
			Type:    s.cache.relTypes[row.TypeID],
		})
	}
	return res, nil
}

// NumRelationships implements ontology.Store.
func (s *Store) NumRelationships() (int, error) {
	typeCond, typeArgs, err := s.relTypeCondition()
	if err != nil || typeCond == "" {
		return 0, err
	}
	var n int
	err = s.getRow(&n, s.rebind("SELECT COUNT(*) FROM "+edgeFrom+" WHERE "+edgesWhere+" AND "+typeCond),
		typeArgs...)
	return n, err
}

// OrphanedTerms implements ontology.Store.
func (s *Store) OrphanedTerms() ([]*ontology.Term, error) {
	query := "SELECT " + termColumns + " FROM term t WHERE " + termsWhere
	var args []interface{}
	typeCond, typeArgs, err := s.relTypeCondition()
	if err != nil {
		return nil, err
	}
	if typeCond != "" {
		edges := " FROM " + edgeFrom + " WHERE " + edgesWhere + " AND " + typeCond
		query += " AND t.id NOT IN (SELECT r.term1_id" + edges + ")" +
			" AND t.id NOT IN (SELECT r.term2_id" + edges + ")"
		args = append(append(args, typeArgs...), typeArgs...)
	}
	var rows []termRow
	if err := s.selectRows(&rows, s.rebind(query+" ORDER BY t.id"), args...); err != nil {
		return nil, err
	}
	return s.loadTerms(rows)
}

// relTypeCondition returns a condition on term2term r that selects the edges
// of known relationship types, along with its arguments. The condition is
// empty if the database has no known relationship types at all.
func (s *Store) relTypeCondition() (string, []interface{}, error) {
	if err := s.loadRelTypes(); err != nil {
		return "", nil, err
	}
	ids := s.cache.relTypeIDs
	if len(ids) == 0 {
		return "", nil, nil
	}
	return "r.relationship_type_id IN (" + markerList(len(ids)) + ")", inArgs(ids), nil
}

// loadRelTypes reads the relationship types, once per cache lifetime. Rows
// naming a type that isn't an ontology.RelType, or one that can't be stored,
// are skipped, along with every edge of that type.
func (s *Store) loadRelTypes() error {
	if s.cache.relTypes != nil {
		return nil
	}
	var rows []relTypeRow
	if err := s.selectRows(&rows, s.q.relTypes); err != nil {
		return err
	}
	types := make(map[int64]ontology.RelType, len(rows))
	for _, row := range rows {
		typ, err := ontology.ParseRelType(row.Name)
		if err == nil {
			err = ontology.CheckStorable(typ)
		}
		if err != nil {
			metrics.unknownRelationTypes.Inc()
			log.WithFields(log.Fields{
				"rowID": row.ID,
				"name":  row.Name,
				"error": err,
			}).Debug("Skipping relationship type")
			continue
		}
		types[row.ID] = typ
	}
	metrics.relationTypesLoaded.Set(float64(len(types)))
	s.cache.setRelTypes(types)
	return nil
}

// termsByRowIDs returns the terms read from the given term rows.
func (s *Store) termsByRowIDs(rowIDs []int64) (map[int64]*ontology.Term, error) {
	res := make(map[int64]*ontology.Term, len(rowIDs))
	var pending []int64
	for _, rowID := range rowIDs {
		if _, done := res[rowID]; done {
			continue
		}
		t, found := s.cache.termByRowID(rowID)
		res[rowID] = t
		if !found {
			pending = append(pending, rowID)
		}
	}
	err := forEachChunk(pending, func(chunk []int64) error {
		var rows []termRow
		query := s.rebind("SELECT " + termColumns + " FROM term t WHERE t.id IN (" + markerList(len(chunk)) + ")")
		if err := s.selectRows(&rows, query, inArgs(chunk)...); err != nil {
			return err
		}
		terms, err := s.loadTerms(rows)
		for i, t := range terms {
			res[rows[i].ID] = t
		}
		return err
	})
	return res, err
}

// loadTerms returns a term for each of the rows, in the same order, building
// and caching the ones that aren't cached yet.
func (s *Store) loadTerms(rows []termRow) ([]*ontology.Term, error) {
	res := make([]*ontology.Term, len(rows))
	var pending []int64
	for i, row := range rows {
		if t, found := s.cache.termByRowID(row.ID); found {
			res[i] = t
		} else {
			pending = append(pending, row.ID)
		}
	}
	if len(pending) == 0 {
		return res, nil
	}
	aliases, err := s.synonyms(pending)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if res[i] != nil {
			continue
		}
		if t, found := s.cache.termByRowID(row.ID); found {
			res[i] = t
			continue
		}
		t, err := s.newTerm(row, aliases[row.ID])
		if err != nil {
			return nil, err
		}
		s.cache.add(row.ID, t)
		res[i] = t
	}
	return res, nil
}

// newTerm builds an attached term from a term row and its alternative IDs.
func (s *Store) newTerm(row termRow, aliases []string) (*ontology.Term, error) {
	t, err := ontology.NewTerm(row.Acc, row.Name)
	if err != nil {
		return nil, err
	}
	for _, a := range aliases {
		if err := t.AddAlias(a); err != nil {
			log.WithFields(log.Fields{
				"term":  row.Acc,
				"alias": a,
				"error": err,
			}).Debug("Skipping malformed alternative ID")
		}
	}
	if row.TermType != "" {
		if err := t.AddTag("namespace", row.TermType); err != nil {
			return nil, err
		}
	}
	if row.IsObsolete {
		if err := t.AddTag("is_obsolete", "true"); err != nil {
			return nil, err
		}
	}
	if err := t.Attach(s); err != nil {
		return nil, err
	}
	return t, nil
}

// synonyms returns the alternative IDs of the given term rows.
func (s *Store) synonyms(rowIDs []int64) (map[int64][]string, error) {
	res := make(map[int64][]string)
	err := forEachChunk(rowIDs, func(chunk []int64) error {
		var rows []synonymRow
		query := s.rebind("SELECT term_id, acc_synonym FROM term_synonym" +
			" WHERE acc_synonym IS NOT NULL AND term_id IN (" + markerList(len(chunk)) + ")" +
			" ORDER BY term_id, acc_synonym")
		if err := s.selectRows(&rows, query, inArgs(chunk)...); err != nil {
			return err
		}
		for _, row := range rows {
			res[row.TermID] = append(res[row.TermID], row.Acc)
		}
		return nil
	})
	return res, err
}

// forEachChunk calls fn with consecutive slices of vals no longer than
// maxInList. It stops at the first error.
func forEachChunk[T any](vals []T, fn func([]T) error) error {
	for len(vals) > 0 {
		n := len(vals)
		if n > maxInList {
			n = maxInList
		}
		if err := fn(vals[:n]); err != nil {
			return err
		}
		vals = vals[n:]
	}
	return nil
}

func inArgs[T any](vals []T) []interface{} {
	res := make([]interface{}, len(vals))
	for i, v := range vals {
		res[i] = v
	}
	return res
}
