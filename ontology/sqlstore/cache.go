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

package sqlstore

import (
	"sort"

	"github.com/ntamas/biopython/ontology"
)

// termCache remembers the terms and relationship types read from the
// database. It also remembers the IDs that are known not to exist, so that
// repeated lookups of a missing term don't hit the database.
//
// The cache does nothing to cap the number of terms it holds; it only ever
// shrinks when it's thrown away by Store.ClearCache.
type termCache struct {
	// byAcc maps primary IDs and aliases to terms.
	byAcc map[string]*ontology.Term
	// rowIDs maps primary IDs to term.id values.
	rowIDs map[string]int64
	// byRowID maps term.id values to terms.
	byRowID map[int64]*ontology.Term
	// misses holds IDs that are neither a primary ID nor an alias of any
	// term.
	misses map[string]struct{}

	// relTypes maps the term.id of relationship type rows to the RelType they
	// name. It's nil until loaded.
	relTypes map[int64]ontology.RelType
	// relTypeIDs holds the keys of relTypes in increasing order.
	relTypeIDs []int64
}

func newTermCache() *termCache {
	return &termCache{
		byAcc:   make(map[string]*ontology.Term),
		rowIDs:  make(map[string]int64),
		byRowID: make(map[int64]*ontology.Term),
		misses:  make(map[string]struct{}),
	}
}

// add remembers t, which was read from the term row rowID.
func (c *termCache) add(rowID int64, t *ontology.Term) {
	c.byRowID[rowID] = t
	c.rowIDs[t.ID()] = rowID
	c.byAcc[t.ID()] = t
	delete(c.misses, t.ID())
	for _, a := range t.Aliases() {
		c.byAcc[a] = t
		delete(c.misses, a)
	}
}

// term returns the cached term with the given primary ID or alias.
func (c *termCache) term(id string) (*ontology.Term, bool) {
	t, found := c.byAcc[id]
	return t, found
}

// termByRowID returns the cached term read from the given term row.
func (c *termCache) termByRowID(rowID int64) (*ontology.Term, bool) {
	t, found := c.byRowID[rowID]
	return t, found
}

// rowID returns the term row of the term whose primary ID is id. The second
// return value is false if that isn't known.
func (c *termCache) rowID(id string) (int64, bool) {
	rowID, found := c.rowIDs[id]
	return rowID, found
}

// addMiss remembers that no term has id as its primary ID or alias.
func (c *termCache) addMiss(id string) {
	c.misses[id] = struct{}{}
}

// isMiss returns true if id is known not to exist.
func (c *termCache) isMiss(id string) bool {
	_, miss := c.misses[id]
	return miss
}

// setRelTypes remembers the relationship types.
func (c *termCache) setRelTypes(types map[int64]ontology.RelType) {
	c.relTypes = types
	c.relTypeIDs = make([]int64, 0, len(types))
	for id := range types {
		c.relTypeIDs = append(c.relTypeIDs, id)
	}
	sort.Slice(c.relTypeIDs, func(i, j int) bool {
		return c.relTypeIDs[i] < c.relTypeIDs[j]
	})
}
